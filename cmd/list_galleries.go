package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"photofolio/pkg/models"
)

// newListGalleriesCmd creates a new command for listing galleries
func newListGalleriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-galleries",
		Short: "List all galleries",
		Long:  `List all galleries organized by category with the number of photos in each.`,
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
			listGalleries(idx.Galleries)
		},
	}
}

// listGalleries displays all galleries grouped by category
func listGalleries(galleries []models.GallerySummary) {
	byCategory := make(map[string][]models.GallerySummary)
	var categories []string
	for _, gallery := range galleries {
		if _, ok := byCategory[gallery.Category]; !ok {
			categories = append(categories, gallery.Category)
		}
		byCategory[gallery.Category] = append(byCategory[gallery.Category], gallery)
	}

	fmt.Println("Photo Galleries:")
	fmt.Println("===============")

	total := 0
	for _, category := range categories {
		name := category
		if name == "" {
			name = "(uncategorized)"
		}
		fmt.Printf("Category: %s\n", name)

		for _, gallery := range byCategory[category] {
			marker := ""
			if gallery.IsParentGallery {
				marker = " [parent]"
			}
			if gallery.Private {
				marker += " [private]"
			}
			fmt.Printf("  - %s (photos: %d)%s\n", gallery.Title, gallery.PhotoCount, marker)
			fmt.Printf("    Slug: %s\n", gallery.Slug)
			total++
		}

		fmt.Println()
	}

	fmt.Printf("Total: %d galleries across %d categories\n", total, len(categories))
}
