package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"photofolio/pkg/models"
)

// Local is the filesystem backend, rooted at a base directory. Used in
// local/dev contexts.
type Local struct {
	root string
}

// NewLocal creates a filesystem backend rooted at root.
func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (l *Local) abs(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(normalizeKey(key)))
}

// List returns the immediate children of prefix. A missing directory is
// an empty listing, not an error.
func (l *Local) List(_ context.Context, prefix string) ([]models.FileInfo, error) {
	prefix = normalizeKey(prefix)
	entries, err := os.ReadDir(l.abs(prefix))
	if os.IsNotExist(err) {
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
func (l *Local) ListRecursive(_ context.Context, prefix string) ([]models.FileInfo, error) {
	prefix = normalizeKey(prefix)
	base := l.abs(prefix)

	var infos []models.FileInfo
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
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
		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return err
		}
		infos = append(infos, models.FileInfo{
			Name:         d.Name(),
			Path:         filepath.ToSlash(rel),
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

// Get returns the full contents of key, or nil if the key is absent.
func (l *Local) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(l.abs(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return data, nil
}

// GetText returns the contents of key as a string, or "" if absent.
func (l *Local) GetText(ctx context.Context, key string) (string, error) {
	data, err := l.Get(ctx, key)
	return string(data), err
}

// Put creates or overwrites key, creating parent directories as needed.
func (l *Local) Put(_ context.Context, key string, data []byte, _ ...string) error {
	target := l.abs(key)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (l *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(l.abs(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// DeleteDirectory removes every file under prefix and returns the count.
func (l *Local) DeleteDirectory(ctx context.Context, prefix string) (int, error) {
	files, err := l.ListRecursive(ctx, prefix)
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(l.abs(prefix)); err != nil {
		return 0, fmt.Errorf("delete directory %q: %w", prefix, err)
	}
	return len(files), nil
}

// Exists reports whether key names a file or a directory.
func (l *Local) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(l.abs(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists %q: %w", key, err)
	}
	return true, nil
}

// Move renames src to dst using the filesystem's native rename.
func (l *Local) Move(_ context.Context, src, dst string) error {
	target := l.abs(dst)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("move %q: %w", dst, err)
	}
	if err := os.Rename(l.abs(src), target); err != nil {
		return fmt.Errorf("move %q to %q: %w", src, dst, err)
	}
	return nil
}

// Copy duplicates src at dst.
func (l *Local) Copy(ctx context.Context, src, dst string) error {
	data, err := l.Get(ctx, src)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("copy %q: source not found", src)
	}
	return l.Put(ctx, dst, data)
}

// SignedURL returns the image-serving path for key; the local backend has
// no time-limited URLs.
func (l *Local) SignedURL(_ context.Context, key string) (string, error) {
	return "/images/" + strings.TrimPrefix(normalizeKey(key), "/"), nil
}
