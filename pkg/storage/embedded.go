package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"photofolio/pkg/models"
)

// Embedded serves a bundled read-only snapshot of content, typically an
// embed.FS compiled into the binary. Every mutating method fails with
// ErrReadOnly.
type Embedded struct {
	fsys fs.FS
}

// NewEmbedded creates a read-only backend over fsys.
func NewEmbedded(fsys fs.FS) *Embedded {
	return &Embedded{fsys: fsys}
}

func fsPath(key string) string {
	key = normalizeKey(key)
	if key == "" {
		return "."
	}
	return key
}

// List returns the immediate children of prefix. A missing directory is
// an empty listing.
func (e *Embedded) List(_ context.Context, prefix string) ([]models.FileInfo, error) {
	prefix = normalizeKey(prefix)
	entries, err := fs.ReadDir(e.fsys, fsPath(prefix))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	infos := make([]models.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info := models.FileInfo{
			Name:        entry.Name(),
			Path:        path.Join(prefix, entry.Name()),
			IsDirectory: entry.IsDir(),
		}
		if !entry.IsDir() {
			fi, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %q: %w", info.Path, err)
			}
			info.Size = fi.Size()
			info.LastModified = fi.ModTime()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ListRecursive returns all files under prefix, regardless of depth.
func (e *Embedded) ListRecursive(_ context.Context, prefix string) ([]models.FileInfo, error) {
	prefix = normalizeKey(prefix)

	var infos []models.FileInfo
	err := fs.WalkDir(e.fsys, fsPath(prefix), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		infos = append(infos, models.FileInfo{
			Name:         d.Name(),
			Path:         p,
			Size:         fi.Size(),
			LastModified: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", prefix, err)
	}
	return infos, nil
}

// Get returns the full contents of key, or nil if absent.
func (e *Embedded) Get(_ context.Context, key string) ([]byte, error) {
	data, err := fs.ReadFile(e.fsys, fsPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return data, nil
}

// GetText returns the contents of key as a string, or "" if absent.
func (e *Embedded) GetText(ctx context.Context, key string) (string, error) {
	data, err := e.Get(ctx, key)
	return string(data), err
}

// Put always fails: the snapshot is read-only.
func (e *Embedded) Put(context.Context, string, []byte, ...string) error {
	return ErrReadOnly
}

// Delete always fails: the snapshot is read-only.
func (e *Embedded) Delete(context.Context, string) error {
	return ErrReadOnly
}

// DeleteDirectory always fails: the snapshot is read-only.
func (e *Embedded) DeleteDirectory(context.Context, string) (int, error) {
	return 0, ErrReadOnly
}

// Exists reports whether key names a file or directory in the snapshot.
func (e *Embedded) Exists(_ context.Context, key string) (bool, error) {
	_, err := fs.Stat(e.fsys, fsPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %q: %w", key, err)
	}
	return true, nil
}

// Move always fails: the snapshot is read-only.
func (e *Embedded) Move(context.Context, string, string) error {
	return ErrReadOnly
}

// Copy always fails: the snapshot is read-only.
func (e *Embedded) Copy(context.Context, string, string) error {
	return ErrReadOnly
}

// SignedURL returns the image-serving path for key.
func (e *Embedded) SignedURL(_ context.Context, key string) (string, error) {
	return "/images/" + strings.TrimPrefix(normalizeKey(key), "/"), nil
}
