// Package index maintains the persisted, versioned content index: the
// compact catalog of galleries, posts and pages served on every request
// and rebuilt from storage on demand.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"photofolio/pkg/models"
	"photofolio/pkg/scanner"
	"photofolio/pkg/storage"
	"photofolio/pkg/tags"
)

// SchemaVersion stamps every persisted index. Bumping it invalidates all
// existing caches on next read.
const SchemaVersion = 3

// IndexKey is the well-known root-level key of the persisted index file.
const IndexKey = "content-index.json"

const memoryCacheKey = "content-index"

// Service orchestrates the scanners and owns the index lifecycle.
//
// Known race: the persisted index is read-modify-write with no
// compare-and-swap, so two concurrent incremental updates can lose one
// writer's delta. Accepted for a single-admin deployment.
type Service struct {
	store     storage.Storage
	galleries *scanner.GalleryScanner
	posts     *scanner.BlogScanner
	pages     *scanner.PageScanner
	memory    *cache.Cache
	logger    *zap.Logger
}

// New creates the index service with a short-lived in-process cache in
// front of the persisted file.
func New(store storage.Storage, galleries *scanner.GalleryScanner, posts *scanner.BlogScanner, pages *scanner.PageScanner, logger *zap.Logger) *Service {
	return &Service{
		store:     store,
		galleries: galleries,
		posts:     posts,
		pages:     pages,
		memory:    cache.New(5*time.Minute, 10*time.Minute),
		logger:    logger,
	}
}

// Get returns the current index, serving the cached copy when present
// and valid and rebuilding transparently otherwise.
func (s *Service) Get(ctx context.Context) (*models.ContentIndex, error) {
	if cached, found := s.memory.Get(memoryCacheKey); found {
		s.logger.Debug("content index memory cache hit")
		return cached.(*models.ContentIndex), nil
	}

	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if idx != nil {
		s.memory.Set(memoryCacheKey, idx, cache.DefaultExpiration)
		return idx, nil
	}
	return s.Rebuild(ctx)
}

// load fetches the persisted index. A missing file, a version mismatch
// or an unreadable document are all cache misses, never errors.
func (s *Service) load(ctx context.Context) (*models.ContentIndex, error) {
	data, err := s.store.Get(ctx, IndexKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var idx models.ContentIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		s.logger.Warn("unreadable content index, rebuilding", zap.Error(err))
		return nil, nil
	}
	if idx.Version != SchemaVersion {
		s.logger.Info("content index version mismatch, rebuilding",
			zap.Int("found", idx.Version),
			zap.Int("want", SchemaVersion))
		return nil, nil
	}
	return &idx, nil
}

// Rebuild runs all three scanners plus the parent-metadata pass
// concurrently, assembles a fresh index, persists it and primes the
// memory cache.
func (s *Service) Rebuild(ctx context.Context) (*models.ContentIndex, error) {
	s.logger.Info("rebuilding content index")

	var (
		galleries []models.Gallery
		posts     []models.BlogPost
		pages     []models.Page
		parents   []models.ParentMeta
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		galleries, err = s.galleries.Scan(gctx)
		return err
	})
	g.Go(func() (err error) {
		posts, err = s.posts.Scan(gctx)
		return err
	})
	g.Go(func() (err error) {
		pages, err = s.pages.Scan(gctx)
		return err
	})
	g.Go(func() (err error) {
		parents, err = s.galleries.ScanParentMetadata(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &models.ContentIndex{
		Version:   SchemaVersion,
		UpdatedAt: time.Now().UTC(),
		Galleries: make([]models.GallerySummary, 0, len(galleries)),
		Posts:     make([]models.PostSummary, 0, len(posts)),
		Pages:     make([]models.PageSummary, 0, len(pages)),
		Parents:   parents,
	}
	for _, gallery := range galleries {
		idx.Galleries = append(idx.Galleries, SummarizeGallery(gallery))
	}
	for _, post := range posts {
		idx.Posts = append(idx.Posts, SummarizePost(post))
	}
	for _, page := range pages {
		idx.Pages = append(idx.Pages, SummarizePage(page))
	}
	idx.Tags = tags.Build(galleries, posts)
	idx.Stats = computeStats(idx)

	if err := s.persist(ctx, idx); err != nil {
		return nil, err
	}
	s.memory.Set(memoryCacheKey, idx, cache.DefaultExpiration)
	s.logger.Info("content index rebuilt",
		zap.Int("galleries", idx.Stats.Galleries),
		zap.Int("photos", idx.Stats.Photos),
		zap.Int("posts", idx.Stats.Posts),
		zap.Int("pages", idx.Stats.Pages))
	return idx, nil
}

// persist writes the index file. A read-only backend cannot persist; the
// freshly built index is still served from memory in that case.
func (s *Service) persist(ctx context.Context, idx *models.ContentIndex) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return err
	}
	err = s.store.Put(ctx, IndexKey, data, "application/json")
	if errors.Is(err, storage.ErrReadOnly) {
		s.logger.Debug("read-only storage, index not persisted")
		return nil
	}
	return err
}

// Invalidate deletes the persisted index outright, forcing the next read
// to rebuild. Idempotent when the file is already absent.
func (s *Service) Invalidate(ctx context.Context) error {
	s.memory.Flush()
	return s.store.Delete(ctx, IndexKey)
}

// SummarizeGallery strips a gallery down to its compact index entry.
func SummarizeGallery(g models.Gallery) models.GallerySummary {
	return models.GallerySummary{
		Slug:            g.Slug,
		Title:           g.Title,
		Description:     g.Description,
		Cover:           g.Cover,
		Category:        g.Category,
		PhotoCount:      g.PhotoCount,
		Private:         g.Private,
		Order:           g.Order,
		Tags:            g.Tags,
		IsParentGallery: g.IsParentGallery,
	}
}

// SummarizePost strips a blog post down to its compact index entry.
func SummarizePost(p models.BlogPost) models.PostSummary {
	return models.PostSummary{
		Slug:        p.Slug,
		Title:       p.Title,
		Date:        p.Date,
		Excerpt:     p.Excerpt,
		ReadingTime: p.ReadingTime,
		Tags:        p.Tags,
		Draft:       p.Draft,
		Cover:       p.Cover,
	}
}

// SummarizePage strips a page down to its compact index entry.
func SummarizePage(p models.Page) models.PageSummary {
	return models.PageSummary{
		Slug:   p.Slug,
		Title:  p.Title,
		Hidden: p.Hidden,
	}
}

func computeStats(idx *models.ContentIndex) models.IndexStats {
	stats := models.IndexStats{
		Galleries: len(idx.Galleries),
		Posts:     len(idx.Posts),
		Pages:     len(idx.Pages),
	}
	for _, gallery := range idx.Galleries {
		stats.Photos += gallery.PhotoCount
	}
	return stats
}

// UpdateGallery patches one gallery entry in place after a single-entity
// edit: replace by slug when found, append otherwise, with the stats
// rollup adjusted by the delta. With no cache at all it falls back to a
// full rebuild.
func (s *Service) UpdateGallery(ctx context.Context, summary models.GallerySummary) (*models.ContentIndex, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return s.Rebuild(ctx)
	}

	found := false
	for i, existing := range idx.Galleries {
		if existing.Slug == summary.Slug {
			idx.Stats.Photos += summary.PhotoCount - existing.PhotoCount
			idx.Galleries[i] = summary
			found = true
			break
		}
	}
	if !found {
		idx.Galleries = append(idx.Galleries, summary)
		idx.Stats.Galleries++
		idx.Stats.Photos += summary.PhotoCount
	}

	return s.commit(ctx, idx)
}

// RemoveGallery splices one gallery entry out of the index. No-op when
// the cache or the entry is absent.
func (s *Service) RemoveGallery(ctx context.Context, slug string) error {
	idx, err := s.load(ctx)
	if err != nil || idx == nil {
		return err
	}

	for i, existing := range idx.Galleries {
		if existing.Slug == slug {
			idx.Galleries = append(idx.Galleries[:i], idx.Galleries[i+1:]...)
			idx.Stats.Galleries--
			idx.Stats.Photos -= existing.PhotoCount
			_, err = s.commit(ctx, idx)
			return err
		}
	}
	return nil
}

// UpdatePost patches one post entry in place, appending when new and
// falling back to a full rebuild with no cache.
func (s *Service) UpdatePost(ctx context.Context, summary models.PostSummary) (*models.ContentIndex, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return s.Rebuild(ctx)
	}

	found := false
	for i, existing := range idx.Posts {
		if existing.Slug == summary.Slug {
			idx.Posts[i] = summary
			found = true
			break
		}
	}
	if !found {
		idx.Posts = append(idx.Posts, summary)
		idx.Stats.Posts++
	}

	return s.commit(ctx, idx)
}

// RemovePost splices one post entry out of the index. No-op when absent.
func (s *Service) RemovePost(ctx context.Context, slug string) error {
	idx, err := s.load(ctx)
	if err != nil || idx == nil {
		return err
	}

	for i, existing := range idx.Posts {
		if existing.Slug == slug {
			idx.Posts = append(idx.Posts[:i], idx.Posts[i+1:]...)
			idx.Stats.Posts--
			_, err = s.commit(ctx, idx)
			return err
		}
	}
	return nil
}

// UpdatePage patches one page entry in place, appending when new and
// falling back to a full rebuild with no cache.
func (s *Service) UpdatePage(ctx context.Context, summary models.PageSummary) (*models.ContentIndex, error) {
	idx, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return s.Rebuild(ctx)
	}

	found := false
	for i, existing := range idx.Pages {
		if existing.Slug == summary.Slug {
			idx.Pages[i] = summary
			found = true
			break
		}
	}
	if !found {
		idx.Pages = append(idx.Pages, summary)
		idx.Stats.Pages++
	}

	return s.commit(ctx, idx)
}

// RemovePage splices one page entry out of the index. No-op when absent.
func (s *Service) RemovePage(ctx context.Context, slug string) error {
	idx, err := s.load(ctx)
	if err != nil || idx == nil {
		return err
	}

	for i, existing := range idx.Pages {
		if existing.Slug == slug {
			idx.Pages = append(idx.Pages[:i], idx.Pages[i+1:]...)
			idx.Stats.Pages--
			_, err = s.commit(ctx, idx)
			return err
		}
	}
	return nil
}

func (s *Service) commit(ctx context.Context, idx *models.ContentIndex) (*models.ContentIndex, error) {
	idx.UpdatedAt = time.Now().UTC()
	if err := s.persist(ctx, idx); err != nil {
		return nil, err
	}
	s.memory.Set(memoryCacheKey, idx, cache.DefaultExpiration)
	return idx, nil
}
