package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// newShowGalleryCmd creates a new command for showing gallery details
func newShowGalleryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-gallery [slug]",
		Short: "Show photos in a specific gallery",
		Long:  `Show detailed information about photos in a specific gallery identified by its slug.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			engine, err := NewEngine(ctx)
			if err != nil {
				log.Fatalf("Failed to initialize engine: %v", err)
			}
			showGallery(ctx, engine, args[0])
		},
	}
}

// showGallery displays details about a specific gallery
func showGallery(ctx context.Context, engine *Engine, slug string) {
	galleries, err := engine.Galleries.Scan(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	for _, gallery := range galleries {
		if gallery.Slug != slug {
			continue
		}

		fmt.Printf("Gallery: %s\n", gallery.Title)
		fmt.Printf("Category: %s\n", gallery.Category)
		fmt.Printf("Photos: %d\n", gallery.PhotoCount)
		if len(gallery.Tags) > 0 {
			fmt.Printf("Tags: %v\n", gallery.Tags)
		}
		fmt.Println("================")

		for i, photo := range gallery.Photos {
			url, err := engine.Store.SignedURL(ctx, photo.Path)
			if err != nil {
				url = photo.Path
			}
			fmt.Printf("%d. %s\n", i+1, photo.Filename)
			if photo.Title != "" {
				fmt.Printf("   Title: %s\n", photo.Title)
			}
			if photo.Hidden {
				fmt.Println("   Hidden")
			}
			fmt.Printf("   Taken: %s\n", photo.DateTaken.Format("2006-01-02"))
			fmt.Printf("   URL: %s\n", url)
			fmt.Println()
		}
		return
	}

	fmt.Printf("Error: gallery not found: %s\n", slug)
	os.Exit(1)
}
