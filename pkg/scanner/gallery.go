package scanner

import (
	"context"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"photofolio/pkg/exif"
	"photofolio/pkg/models"
	"photofolio/pkg/storage"
)

// GalleryMeta is the gallery-level sidecar file (gallery.yml).
type GalleryMeta struct {
	Title           string   `yaml:"title"`
	Description     string   `yaml:"description"`
	Cover           string   `yaml:"cover"`
	Date            string   `yaml:"date"`
	Tags            []string `yaml:"tags"`
	Category        string   `yaml:"category"`
	Private         bool     `yaml:"private"`
	Password        string   `yaml:"password"`
	Order           *int     `yaml:"order"`
	IncludeChildren bool     `yaml:"includeChildren"`
}

// PhotoOverride is one per-filename record in the photo sidecar file
// (photos.yml). The file is an ordered list; a record's position supplies
// its sort key unless an explicit order is given.
type PhotoOverride struct {
	Filename    string   `yaml:"filename"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Hidden      bool     `yaml:"hidden"`
	Order       *int     `yaml:"order"`
}

type photoMetaFile struct {
	Photos []PhotoOverride `yaml:"photos"`
}

// MetadataSource identifies one of the sources of truth merged into a
// photo field.
type MetadataSource int

const (
	// SourceSidecar is the per-photo override record in photos.yml.
	SourceSidecar MetadataSource = iota
	// SourceEmbedded is metadata extracted from the image file itself.
	SourceEmbedded
)

// MetadataPrecedence is the resolution order for every photo field:
// sidecar override beats embedded metadata; neither means absent.
var MetadataPrecedence = []MetadataSource{SourceSidecar, SourceEmbedded}

func resolveField(values map[MetadataSource]string) string {
	for _, src := range MetadataPrecedence {
		if v := values[src]; v != "" {
			return v
		}
	}
	return ""
}

func resolveTags(values map[MetadataSource][]string) []string {
	for _, src := range MetadataPrecedence {
		if v := values[src]; len(v) > 0 {
			return v
		}
	}
	return nil
}

// GalleryScanner walks the galleries root depth-first and produces
// Gallery entities.
type GalleryScanner struct {
	store     storage.Storage
	extractor exif.Extractor
	logger    *zap.Logger
}

// NewGalleryScanner creates a gallery scanner over the given storage.
func NewGalleryScanner(store storage.Storage, extractor exif.Extractor, logger *zap.Logger) *GalleryScanner {
	return &GalleryScanner{store: store, extractor: extractor, logger: logger}
}

// Scan walks the whole galleries tree. Directories with neither images
// nor a gallery sidecar are skipped but still recursed into.
func (s *GalleryScanner) Scan(ctx context.Context) ([]models.Gallery, error) {
	galleries := []models.Gallery{}
	if err := s.scanDir(ctx, GalleriesRoot, &galleries); err != nil {
		return nil, err
	}
	return galleries, nil
}

func (s *GalleryScanner) scanDir(ctx context.Context, dir string, out *[]models.Gallery) error {
	entries, err := s.store.List(ctx, dir)
	if err != nil {
		return err
	}

	var images []models.FileInfo
	var subdirs []models.FileInfo
	for _, entry := range entries {
		if entry.IsDirectory {
			subdirs = append(subdirs, entry)
			continue
		}
		if IsImageFile(entry.Name) {
			images = append(images, entry)
		}
	}

	if dir != GalleriesRoot {
		meta, hasMeta, err := s.readGalleryMeta(ctx, dir)
		if err != nil {
			return err
		}
		if len(images) > 0 || hasMeta {
			gallery, err := s.buildGallery(ctx, dir, images, meta, hasMeta)
			if err != nil {
				return err
			}
			*out = append(*out, gallery)
		}
	}

	for _, sub := range subdirs {
		if err := s.scanDir(ctx, sub.Path, out); err != nil {
			return err
		}
	}
	return nil
}

// readGalleryMeta reads and parses gallery.yml. A malformed file is
// logged and treated as present-but-empty so the directory still
// qualifies; a missing file reports hasMeta false.
func (s *GalleryScanner) readGalleryMeta(ctx context.Context, dir string) (GalleryMeta, bool, error) {
	key := path.Join(dir, GalleryMetaFile)
	text, err := s.store.GetText(ctx, key)
	if err != nil {
		return GalleryMeta{}, false, err
	}
	if text == "" {
		return GalleryMeta{}, false, nil
	}

	var meta GalleryMeta
	if err := yaml.Unmarshal([]byte(text), &meta); err != nil {
		s.logger.Warn("malformed gallery sidecar, using defaults",
			zap.String("key", key),
			zap.Error(err))
		return GalleryMeta{}, true, nil
	}
	return meta, true, nil
}

// readPhotoOverrides reads photos.yml into a filename-keyed map plus the
// source list order. hasFile distinguishes "no sidecar" from "empty".
func (s *GalleryScanner) readPhotoOverrides(ctx context.Context, dir string) (map[string]PhotoOverride, map[string]int, bool, error) {
	key := path.Join(dir, PhotoMetaFile)
	text, err := s.store.GetText(ctx, key)
	if err != nil {
		return nil, nil, false, err
	}
	if text == "" {
		return nil, nil, false, nil
	}

	var file photoMetaFile
	if err := yaml.Unmarshal([]byte(text), &file); err != nil {
		s.logger.Warn("malformed photo sidecar, using defaults",
			zap.String("key", key),
			zap.Error(err))
		return nil, nil, false, nil
	}

	overrides := make(map[string]PhotoOverride, len(file.Photos))
	positions := make(map[string]int, len(file.Photos))
	for i, override := range file.Photos {
		overrides[override.Filename] = override
		positions[override.Filename] = i
	}
	return overrides, positions, true, nil
}

func (s *GalleryScanner) buildGallery(ctx context.Context, dir string, images []models.FileInfo, meta GalleryMeta, hasMeta bool) (models.Gallery, error) {
	overrides, positions, hasOrderFile, err := s.readPhotoOverrides(ctx, dir)
	if err != nil {
		return models.Gallery{}, err
	}

	photos := make([]models.Photo, 0, len(images))
	for _, image := range images {
		photo, err := s.buildPhoto(ctx, image, overrides, positions, hasOrderFile)
		if err != nil {
			return models.Gallery{}, err
		}
		photos = append(photos, photo)
	}
	sortPhotos(photos)

	relPath := strings.TrimPrefix(strings.TrimPrefix(dir, GalleriesRoot), "/")
	gallery := models.Gallery{
		Slug:            SlugFromPath(relPath),
		Title:           meta.Title,
		Description:     meta.Description,
		Photos:          photos,
		Category:        meta.Category,
		Private:         meta.Private,
		Password:        meta.Password,
		Order:           meta.Order,
		Date:            ParseDate(meta.Date),
		IsParentGallery: hasMeta && len(photos) == 0,
	}
	if gallery.Title == "" {
		gallery.Title = TitleFromName(path.Base(dir))
	}
	if gallery.Category == "" {
		gallery.Category = parentCategory(relPath)
	}

	gallery.Cover = resolveCover(dir, meta.Cover, photos)
	for _, photo := range photos {
		if !photo.Hidden {
			gallery.PhotoCount++
		}
	}
	gallery.Tags = collectGalleryTags(meta.Tags, photos)

	return gallery, nil
}

// buildPhoto merges the sidecar override and embedded metadata for one
// image with the MetadataPrecedence order.
func (s *GalleryScanner) buildPhoto(ctx context.Context, file models.FileInfo, overrides map[string]PhotoOverride, positions map[string]int, hasOrderFile bool) (models.Photo, error) {
	var embedded *models.PhotoMeta
	if IsJPEG(file.Name) {
		data, err := s.store.Get(ctx, file.Path)
		if err != nil {
			return models.Photo{}, err
		}
		if data != nil {
			embedded, err = s.extractor.Extract(data)
			if err != nil {
				s.logger.Debug("no embedded metadata",
					zap.String("path", file.Path),
					zap.Error(err))
				embedded = nil
			}
		}
	}

	override, hasOverride := overrides[file.Name]

	titles := map[MetadataSource]string{SourceSidecar: override.Title}
	descriptions := map[MetadataSource]string{SourceSidecar: override.Description}
	tags := map[MetadataSource][]string{SourceSidecar: override.Tags}
	if embedded != nil {
		titles[SourceEmbedded] = embedded.Title
		descriptions[SourceEmbedded] = embedded.Description
		tags[SourceEmbedded] = embedded.Keywords
	}

	photo := models.Photo{
		Path:        file.Path,
		Filename:    file.Name,
		Title:       resolveField(titles),
		Description: resolveField(descriptions),
		Tags:        resolveTags(tags),
		DateTaken:   file.LastModified,
		Hidden:      override.Hidden,
		Meta:        embedded,
	}
	if embedded != nil && embedded.DateTaken != nil {
		photo.DateTaken = *embedded.DateTaken
	}

	if hasOverride {
		switch {
		case override.Order != nil:
			photo.Order = override.Order
		case hasOrderFile:
			pos := positions[file.Name]
			photo.Order = &pos
		}
	}
	return photo, nil
}

// sortPhotos orders photos by explicit order first (ties broken by
// numeric-aware filename), with unordered photos after all ordered ones
// in filename order.
func sortPhotos(photos []models.Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		pi, pj := photos[i], photos[j]
		switch {
		case pi.Order != nil && pj.Order != nil:
			if *pi.Order != *pj.Order {
				return *pi.Order < *pj.Order
			}
			return NaturalLess(pi.Filename, pj.Filename)
		case pi.Order != nil:
			return true
		case pj.Order != nil:
			return false
		default:
			return NaturalLess(pi.Filename, pj.Filename)
		}
	})
}

// resolveCover picks the gallery cover: explicit override, else the first
// sorted photo. A bare filename override is resolved within the gallery
// directory.
func resolveCover(dir, explicit string, photos []models.Photo) string {
	if explicit != "" {
		if !strings.Contains(explicit, "/") {
			return path.Join(dir, explicit)
		}
		return explicit
	}
	if len(photos) > 0 {
		return photos[0].Path
	}
	return ""
}

// collectGalleryTags unions explicit gallery tags with the tags of its
// non-hidden photos, first casing wins per normalized key.
func collectGalleryTags(explicit []string, photos []models.Photo) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(tag string) {
		key := NormalizeTag(tag)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(tag))
	}
	for _, tag := range explicit {
		add(tag)
	}
	for _, photo := range photos {
		if photo.Hidden {
			continue
		}
		for _, tag := range photo.Tags {
			add(tag)
		}
	}
	return out
}

// parentCategory is the dotted path of the gallery's containing
// directory, so sub-galleries inherit their parent's category.
func parentCategory(relPath string) string {
	segments := strings.Split(strings.Trim(relPath, "/"), "/")
	if len(segments) < 2 {
		return ""
	}
	return strings.Join(segments[:len(segments)-1], ".")
}

// ScanParentMetadata is the separate top-level pass that collects
// metadata-only directories (a gallery.yml, zero direct images), used by
// the navigation builder to order container nodes. Private containers
// are left out.
func (s *GalleryScanner) ScanParentMetadata(ctx context.Context) ([]models.ParentMeta, error) {
	parents := []models.ParentMeta{}
	if err := s.scanParentDir(ctx, GalleriesRoot, &parents); err != nil {
		return nil, err
	}
	return parents, nil
}

func (s *GalleryScanner) scanParentDir(ctx context.Context, dir string, out *[]models.ParentMeta) error {
	entries, err := s.store.List(ctx, dir)
	if err != nil {
		return err
	}

	hasImages := false
	var subdirs []models.FileInfo
	for _, entry := range entries {
		if entry.IsDirectory {
			subdirs = append(subdirs, entry)
			continue
		}
		if IsImageFile(entry.Name) {
			hasImages = true
		}
	}

	if dir != GalleriesRoot && !hasImages {
		meta, hasMeta, err := s.readGalleryMeta(ctx, dir)
		if err != nil {
			return err
		}
		if hasMeta && !meta.Private {
			relPath := strings.TrimPrefix(strings.TrimPrefix(dir, GalleriesRoot), "/")
			parent := models.ParentMeta{
				Slug:  SlugFromPath(relPath),
				Title: meta.Title,
				Order: meta.Order,
			}
			if parent.Title == "" {
				parent.Title = TitleFromName(path.Base(dir))
			}
			*out = append(*out, parent)
		}
	}

	for _, sub := range subdirs {
		if err := s.scanParentDir(ctx, sub.Path, out); err != nil {
			return err
		}
	}
	return nil
}
