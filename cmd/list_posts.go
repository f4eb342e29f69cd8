package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// newListPostsCmd creates a new command for listing blog posts
func newListPostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-posts",
		Short: "List all blog posts",
		Long:  `List all indexed blog posts with date, reading time and draft status.`,
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

			fmt.Println("Blog Posts:")
			fmt.Println("===========")

			for _, post := range idx.Posts {
				marker := ""
				if post.Draft {
					marker = " [draft]"
				}
				fmt.Printf("- %s%s\n", post.Title, marker)
				fmt.Printf("  Slug: %s\n", post.Slug)
				fmt.Printf("  Date: %s, %d min read\n", post.Date.Format("2006-01-02"), post.ReadingTime)
				if post.Excerpt != "" {
					fmt.Printf("  %s\n", post.Excerpt)
				}
				fmt.Println()
			}

			fmt.Printf("Total: %d posts\n", len(idx.Posts))
		},
	}
}
