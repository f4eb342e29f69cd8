package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// newListTagsCmd creates a new command for listing tags
func newListTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-tags",
		Short: "List all tags",
		Long:  `List all aggregated tags with their gallery, photo and post counts.`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			engine, err := NewEngine(ctx)
			if err != nil {
				log.Fatalf("Failed to initialize engine: %v", err)
			}

			idx, err := engine.Index.Get(ctx)
			if err != nil {
				log.Fatalf("Failed to load index: %v", err)
			}

			fmt.Println("Tags:")
			fmt.Println("=====")

			for _, tag := range idx.Tags {
				fmt.Printf("%s\n", tag.Label)
				fmt.Printf("  Galleries: %d, Photos: %d, Posts: %d\n", tag.Galleries, tag.Photos, tag.Posts)
			}

			fmt.Printf("\nTotal: %d tags\n", len(idx.Tags))
		},
	}
}
