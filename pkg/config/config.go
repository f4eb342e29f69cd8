package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Backend names accepted by STORAGE_BACKEND.
const (
	BackendGCS      = "gcs"
	BackendLocal    = "local"
	BackendEmbedded = "embedded"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string // "production" or "dev"
	StorageBackend string // explicit backend override, empty = pick by environment
	BucketName     string // GCS bucket for the gcs backend
	ContentDir     string // root directory for the local backend
	Port           string
}

// ErrBucketNameNotSet is returned when a production context has no object
// store configured. Production never falls back to a read-only backend.
var ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

// ErrUnknownBackend is returned when STORAGE_BACKEND names no known backend.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Load loads configuration from the environment. A .env file in the
// working directory is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("ENVIRONMENT", "dev"),
		StorageBackend: os.Getenv("STORAGE_BACKEND"),
		BucketName:     os.Getenv("BUCKET_NAME"),
		ContentDir:     getEnv("CONTENT_DIR", "./content"),
		Port:           getEnv("PORT", "8080"),
	}

	if _, err := cfg.Backend(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Backend resolves the storage backend selection policy: an explicit
// STORAGE_BACKEND always wins; production requires the object store and
// fails loudly when the bucket is unconfigured; everything else defaults
// to the local filesystem.
func (c *Config) Backend() (string, error) {
	switch c.StorageBackend {
	case BackendGCS:
		if c.BucketName == "" {
			return "", ErrBucketNameNotSet
		}
		return BackendGCS, nil
	case BackendLocal, BackendEmbedded:
		return c.StorageBackend, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, c.StorageBackend)
	}

	if c.Environment == "production" {
		if c.BucketName == "" {
			return "", ErrBucketNameNotSet
		}
		return BackendGCS, nil
	}
	return BackendLocal, nil
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// NewLogger builds the process logger: human-readable in dev, JSON in
// production.
func (c *Config) NewLogger() (*zap.Logger, error) {
	if c.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
