package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// newRebuildCmd creates a new command for rebuilding the content index
func newRebuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the content index",
		Long:  `Run all scanners against storage and write a fresh content index, replacing any cached one.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			engine, err := NewEngine(ctx)
			if err != nil {
				log.Fatalf("Failed to initialize engine: %v", err)
			}

			idx, err := engine.Index.Rebuild(ctx)
			if err != nil {
				log.Fatalf("Rebuild failed: %v", err)
			}

			fmt.Println("Content index rebuilt:")
			fmt.Printf("  Galleries: %d\n", idx.Stats.Galleries)
			fmt.Printf("  Photos:    %d\n", idx.Stats.Photos)
			fmt.Printf("  Posts:     %d\n", idx.Stats.Posts)
			fmt.Printf("  Pages:     %d\n", idx.Stats.Pages)
			fmt.Printf("  Updated:   %s\n", idx.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
		},
	}
}
