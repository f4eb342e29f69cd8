package main

import (
	"context"
	"log"
	"net/http"

	"photofolio/cmd"
	"photofolio/pkg/handlers"
)

func main() {
	ctx := context.Background()

	engine, err := cmd.NewEngine(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	server := handlers.NewServer(engine.Store, engine.Index, engine.Galleries, engine.Logger)

	log.Printf("Starting server at port %s", engine.Config.Port)
	if err := http.ListenAndServe(engine.Config.ServerAddress(), server.Routes()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
