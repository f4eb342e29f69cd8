package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// newInvalidateCmd creates a new command for invalidating the content index
func newInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate",
		Short: "Delete the cached content index",
		Long:  `Delete the persisted content index so the next read triggers a full rebuild. A no-op when no index exists.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			engine, err := NewEngine(ctx)
			if err != nil {
				log.Fatalf("Failed to initialize engine: %v", err)
			}

			if err := engine.Index.Invalidate(ctx); err != nil {
				log.Fatalf("Invalidate failed: %v", err)
			}
			fmt.Println("Content index invalidated")
		},
	}
}
