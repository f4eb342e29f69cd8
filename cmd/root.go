package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"photofolio/pkg/config"
	"photofolio/pkg/exif"
	"photofolio/pkg/index"
	"photofolio/pkg/scanner"
	"photofolio/pkg/snapshot"
	"photofolio/pkg/storage"
)

// Configuration flags
var (
	environment    string
	storageBackend string
	bucketName     string
	contentDir     string
	portNumber     string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photofolio",
		Short: "Photofolio is a zero-configuration photo gallery and blog engine",
		Long: `Photofolio turns a folder of images into a gallery and a folder of
markdown into a blog. It maintains a cached content index over a pluggable
storage backend (Google Cloud Storage, local filesystem, or a bundled
read-only snapshot) and can serve the catalog via a JSON API.`,
	}

	// Persistent flags override the matching environment variables
	rootCmd.PersistentFlags().StringVarP(&environment, "environment", "e", "", "Set ENVIRONMENT (dev or production)")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "backend", "", "Set STORAGE_BACKEND (gcs, local, embedded)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set BUCKET_NAME for the gcs backend")
	rootCmd.PersistentFlags().StringVarP(&contentDir, "content-dir", "d", "", "Set CONTENT_DIR for the local backend")
	rootCmd.PersistentFlags().StringVarP(&portNumber, "port", "p", "", "Set PORT for the serve command")

	rootCmd.AddCommand(newRebuildCmd())
	rootCmd.AddCommand(newInvalidateCmd())
	rootCmd.AddCommand(newListGalleriesCmd())
	rootCmd.AddCommand(newListPostsCmd())
	rootCmd.AddCommand(newListTagsCmd())
	rootCmd.AddCommand(newShowGalleryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	if environment != "" {
		os.Setenv("ENVIRONMENT", environment)
	}
	if storageBackend != "" {
		os.Setenv("STORAGE_BACKEND", storageBackend)
	}
	if bucketName != "" {
		os.Setenv("BUCKET_NAME", bucketName)
	}
	if contentDir != "" {
		os.Setenv("CONTENT_DIR", contentDir)
	}
	if portNumber != "" {
		os.Setenv("PORT", portNumber)
	}

	return config.Load()
}

// Engine wires the storage backend, scanners and index service together.
type Engine struct {
	Config    *config.Config
	Logger    *zap.Logger
	Store     storage.Storage
	Galleries *scanner.GalleryScanner
	Posts     *scanner.BlogScanner
	Pages     *scanner.PageScanner
	Index     *index.Service
}

// NewEngine builds the whole engine from configuration; the chosen
// backend is threaded explicitly through every component.
func NewEngine(ctx context.Context) (*Engine, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, cfg, snapshot.Content())
	if err != nil {
		return nil, err
	}

	galleries := scanner.NewGalleryScanner(store, exif.NewReader(), logger)
	posts := scanner.NewBlogScanner(store, logger)
	pages := scanner.NewPageScanner(store, logger)

	return &Engine{
		Config:    cfg,
		Logger:    logger,
		Store:     store,
		Galleries: galleries,
		Posts:     posts,
		Pages:     pages,
		Index:     index.New(store, galleries, posts, pages, logger),
	}, nil
}
