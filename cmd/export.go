package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// newExportCmd creates a new command for exporting the content index
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export the content index",
		Long:  `Export the full content index in the specified format. Currently supported formats: json.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			engine, err := NewEngine(ctx)
			if err != nil {
				log.Fatalf("Failed to initialize engine: %v", err)
			}

			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			exportIndex(ctx, engine, format)
		},
	}
}

// exportIndex exports the content index in the specified format
func exportIndex(ctx context.Context, engine *Engine, format string) {
	if format != "json" {
		fmt.Printf("Unsupported export format: %s\n", format)
		fmt.Println("Supported formats: json")
		os.Exit(1)
	}

	idx, err := engine.Index.Get(ctx)
	if err != nil {
		fmt.Printf("Error loading index: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling index: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}
