package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photofolio/pkg/handlers"
)

// newServeCmd creates a new command for serving the content API
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the content API server",
		Long:  `Start the HTTP server exposing the content index as JSON and serving images from storage.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			engine, err := NewEngine(ctx)
			if err != nil {
				log.Fatalf("Failed to initialize engine: %v", err)
			}
			serveAPI(engine)
		},
	}
}

// serveAPI runs the HTTP server over the engine
func serveAPI(engine *Engine) {
	server := handlers.NewServer(engine.Store, engine.Index, engine.Galleries, engine.Logger)

	fmt.Printf("Starting server at port %s\n", engine.Config.Port)
	fmt.Printf("Index URL: http://localhost:%s/api/index\n", engine.Config.Port)

	if err := http.ListenAndServe(engine.Config.ServerAddress(), server.Routes()); err != nil {
		engine.Logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
