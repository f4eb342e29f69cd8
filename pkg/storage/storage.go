// Package storage provides a uniform read/write/list contract over a
// concrete content backend: Google Cloud Storage, the local filesystem,
// or a bundled read-only snapshot.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"photofolio/pkg/config"
	"photofolio/pkg/models"
)

// ErrReadOnly is returned by every mutating method of a read-only backend.
var ErrReadOnly = errors.New("storage is read-only")

// ErrNoSnapshot is returned when the embedded backend is selected without
// a bundled snapshot.
var ErrNoSnapshot = errors.New("no embedded snapshot available")

// Storage is the backend contract. Keys are slash-separated paths relative
// to the storage root. Get and GetText report a missing key as a nil/empty
// result, not an error; real I/O failures are returned as errors.
type Storage interface {
	// List returns the immediate children (files and one level of
	// subdirectories) of prefix. Directories are reported with size 0.
	List(ctx context.Context, prefix string) ([]models.FileInfo, error)
	// ListRecursive returns every file (no directories) under prefix,
	// regardless of depth, paginating internally where the backend
	// limits page size.
	ListRecursive(ctx context.Context, prefix string) ([]models.FileInfo, error)
	Get(ctx context.Context, key string) ([]byte, error)
	GetText(ctx context.Context, key string) (string, error)
	// Put creates or overwrites key. The content type is detected from
	// the extension when not supplied.
	Put(ctx context.Context, key string, data []byte, contentType ...string) error
	Delete(ctx context.Context, key string) error
	// DeleteDirectory removes every object under prefix and returns the
	// number of objects deleted.
	DeleteDirectory(ctx context.Context, prefix string) (int, error)
	// Exists is true for real objects and for "virtual directories":
	// keys with no object of their own but with children under them.
	Exists(ctx context.Context, key string) (bool, error)
	Move(ctx context.Context, src, dst string) error
	Copy(ctx context.Context, src, dst string) error
	// SignedURL returns a URL through which the object is reachable.
	// Backends without time-limited URLs return a path into the site's
	// own image-serving endpoint.
	SignedURL(ctx context.Context, key string) (string, error)
}

// New chooses a backend from the configuration. snapshot is the bundled
// read-only filesystem used by the embedded backend and may be nil when
// that backend is never selected.
func New(ctx context.Context, cfg *config.Config, snapshot fs.FS) (Storage, error) {
	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendGCS:
		return NewGCS(ctx, cfg.BucketName)
	case config.BackendLocal:
		return NewLocal(cfg.ContentDir), nil
	case config.BackendEmbedded:
		if snapshot == nil {
			return nil, ErrNoSnapshot
		}
		return NewEmbedded(snapshot), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, backend)
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".svg":  "image/svg+xml",
	".css":  "text/css",
	".html": "text/html",
	".md":   "text/markdown",
	".json": "application/json",
	".yml":  "application/x-yaml",
	".yaml": "application/x-yaml",
	".txt":  "text/plain",
}

// ContentTypeFor detects a content type from the key's extension.
func ContentTypeFor(key string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(key))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// normalizeKey strips leading and trailing slashes from a key or prefix.
func normalizeKey(key string) string {
	return strings.Trim(key, "/")
}
