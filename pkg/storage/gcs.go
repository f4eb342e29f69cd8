package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"photofolio/pkg/models"
)

// deleteBatchSize caps how many objects DeleteDirectory removes per pass.
const deleteBatchSize = 100

// GCS is the Google Cloud Storage backend. Required in production
// contexts; a bucket has no real directories, so directory semantics are
// synthesized from key prefixes.
type GCS struct {
	client     *storage.Client
	bucket     *storage.BucketHandle
	bucketName string
}

// NewGCS creates a Cloud Storage backend for the named bucket.
func NewGCS(ctx context.Context, bucketName string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{
		client:     client,
		bucket:     client.Bucket(bucketName),
		bucketName: bucketName,
	}, nil
}

// Close releases the underlying client.
func (g *GCS) Close() error {
	return g.client.Close()
}

// List returns the immediate children of prefix using delimiter listing.
// Synthesized subdirectories are reported with size 0.
func (g *GCS) List(ctx context.Context, prefix string) ([]models.FileInfo, error) {
	prefix = normalizeKey(prefix)
	query := &storage.Query{Delimiter: "/"}
	if prefix != "" {
		query.Prefix = prefix + "/"
	}

	var infos []models.FileInfo
	it := g.bucket.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", prefix, err)
		}
		if attrs.Prefix != "" {
			dir := normalizeKey(attrs.Prefix)
			infos = append(infos, models.FileInfo{
				Name:        baseName(dir),
				Path:        dir,
				IsDirectory: true,
			})
			continue
		}
		if normalizeKey(attrs.Name) == prefix {
			continue
		}
		infos = append(infos, models.FileInfo{
			Name:         baseName(attrs.Name),
			Path:         attrs.Name,
			Size:         attrs.Size,
			LastModified: attrs.Updated,
		})
	}
	return infos, nil
}

// ListRecursive returns all objects under prefix. The iterator paginates
// against the API internally.
func (g *GCS) ListRecursive(ctx context.Context, prefix string) ([]models.FileInfo, error) {
	prefix = normalizeKey(prefix)
	query := &storage.Query{}
	if prefix != "" {
		query.Prefix = prefix + "/"
	}

	var infos []models.FileInfo
	it := g.bucket.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list recursive %q: %w", prefix, err)
		}
		infos = append(infos, models.FileInfo{
			Name:         baseName(attrs.Name),
			Path:         attrs.Name,
			Size:         attrs.Size,
			LastModified: attrs.Updated,
		})
	}
	return infos, nil
}

// Get returns the full contents of key, or nil if the object is absent.
func (g *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	reader, err := g.bucket.Object(normalizeKey(key)).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

// GetText returns the contents of key as a string, or "" if absent.
func (g *GCS) GetText(ctx context.Context, key string) (string, error) {
	data, err := g.Get(ctx, key)
	return string(data), err
}

// Put creates or overwrites key with the given data.
func (g *GCS) Put(ctx context.Context, key string, data []byte, contentType ...string) error {
	key = normalizeKey(key)
	writer := g.bucket.Object(key).NewWriter(ctx)
	if len(contentType) > 0 && contentType[0] != "" {
		writer.ContentType = contentType[0]
	} else {
		writer.ContentType = ContentTypeFor(key)
	}

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent object is a no-op.
func (g *GCS) Delete(ctx context.Context, key string) error {
	err := g.bucket.Object(normalizeKey(key)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// DeleteDirectory lists everything under prefix and deletes it in batches
// of deleteBatchSize. Returns the number of objects deleted.
func (g *GCS) DeleteDirectory(ctx context.Context, prefix string) (int, error) {
	files, err := g.ListRecursive(ctx, prefix)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for start := 0; start < len(files); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(files) {
			end = len(files)
		}
		for _, file := range files[start:end] {
			if err := g.Delete(ctx, file.Path); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}

// Exists is true when key names a real object, or when it is a virtual
// directory: no object of its own but at least one child under it.
func (g *GCS) Exists(ctx context.Context, key string) (bool, error) {
	key = normalizeKey(key)
	_, err := g.bucket.Object(key).Attrs(ctx)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, storage.ErrObjectNotExist) {
		return false, fmt.Errorf("exists %q: %w", key, err)
	}

	it := g.bucket.Objects(ctx, &storage.Query{Prefix: key + "/"})
	_, err = it.Next()
	if errors.Is(err, iterator.Done) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %q: %w", key, err)
	}
	return true, nil
}

// Move is read-then-write-then-delete; the bucket has no native rename.
func (g *GCS) Move(ctx context.Context, src, dst string) error {
	if err := g.Copy(ctx, src, dst); err != nil {
		return err
	}
	return g.Delete(ctx, src)
}

// Copy duplicates src at dst server-side.
func (g *GCS) Copy(ctx context.Context, src, dst string) error {
	srcObj := g.bucket.Object(normalizeKey(src))
	dstObj := g.bucket.Object(normalizeKey(dst))
	if _, err := dstObj.CopierFrom(srcObj).Run(ctx); err != nil {
		return fmt.Errorf("copy %q to %q: %w", src, dst, err)
	}
	return nil
}

// SignedURL returns a 24-hour signed URL for key, falling back to the
// site's image-serving path when signing credentials are unavailable.
func (g *GCS) SignedURL(_ context.Context, key string) (string, error) {
	key = normalizeKey(key)
	url, err := g.bucket.SignedURL(key, &storage.SignedURLOptions{
		Expires: time.Now().Add(24 * time.Hour),
		Method:  "GET",
	})
	if err != nil {
		return "/images/" + key, nil
	}
	return url, nil
}

func baseName(key string) string {
	key = normalizeKey(key)
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}
