package models

import "time"

// FileInfo is a single directory-listing record produced by a storage
// backend. It is never persisted.
type FileInfo struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
	IsDirectory  bool      `json:"isDirectory"`
}

// PhotoMeta holds descriptive fields extracted from an image file itself.
type PhotoMeta struct {
	DateTaken   *time.Time `json:"dateTaken,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Keywords    []string   `json:"keywords,omitempty"`
	Author      string     `json:"author,omitempty"`
	CameraMake  string     `json:"cameraMake,omitempty"`
	CameraModel string     `json:"cameraModel,omitempty"`
	Exposure    string     `json:"exposure,omitempty"`
	Aperture    string     `json:"aperture,omitempty"`
	ISO         int        `json:"iso,omitempty"`
	FocalLength string     `json:"focalLength,omitempty"`
	Latitude    *float64   `json:"gpsLat,omitempty"`
	Longitude   *float64   `json:"gpsLon,omitempty"`
}

// Photo represents one image inside a gallery. The Path is its identity,
// stable within the gallery. Field values are resolved with the precedence
// sidecar override > embedded metadata > none.
type Photo struct {
	Path        string     `json:"path"`
	Filename    string     `json:"filename"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	DateTaken   time.Time  `json:"dateTaken"`
	Order       *int       `json:"order,omitempty"`
	Hidden      bool       `json:"hidden,omitempty"`
	Meta        *PhotoMeta `json:"meta,omitempty"`
}

// Gallery is a directory exposed as a browsable photo collection. A
// directory qualifies when it contains at least one image or carries a
// gallery sidecar file.
type Gallery struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Cover           string    `json:"cover,omitempty"`
	Photos          []Photo   `json:"photos"`
	PhotoCount      int       `json:"photoCount"`
	Category        string    `json:"category,omitempty"`
	Private         bool      `json:"private,omitempty"`
	Password        string    `json:"-"`
	Order           *int      `json:"order,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	Date            time.Time `json:"date,omitzero"`
	IsParentGallery bool      `json:"isParentGallery,omitempty"`
}

// BlogPost is a markdown post, either a folder with a content file or a
// bare markdown file under the posts root.
type BlogPost struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Excerpt     string    `json:"excerpt,omitempty"`
	ReadingTime int       `json:"readingTime"`
	Tags        []string  `json:"tags,omitempty"`
	Draft       bool      `json:"draft,omitempty"`
	Cover       string    `json:"cover,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Body        string    `json:"-"`
	Path        string    `json:"path"`
}

// Page is a simple static page, markdown or raw HTML, with an optional
// custom stylesheet.
type Page struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Content   string `json:"-"`
	HTML      string `json:"-"`
	IsHTML    bool   `json:"isHtml,omitempty"`
	CustomCSS string `json:"-"`
	Hidden    bool   `json:"hidden,omitempty"`
	Path      string `json:"path"`
}

// Tag is an aggregate over all galleries and posts. Name is the normalized
// aggregation key, Label the first human-readable casing seen.
type Tag struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Galleries int    `json:"galleries"`
	Photos    int    `json:"photos"`
	Posts     int    `json:"posts"`
}

// GallerySummary is the compact gallery entry stored in the content index.
// Photo arrays are stripped; the index is a catalog, not the source of truth.
type GallerySummary struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Cover           string   `json:"cover,omitempty"`
	Category        string   `json:"category,omitempty"`
	PhotoCount      int      `json:"photoCount"`
	Private         bool     `json:"private,omitempty"`
	Order           *int     `json:"order,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	IsParentGallery bool     `json:"isParentGallery,omitempty"`
}

// PostSummary is the compact blog post entry stored in the content index.
type PostSummary struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Excerpt     string    `json:"excerpt,omitempty"`
	ReadingTime int       `json:"readingTime"`
	Tags        []string  `json:"tags,omitempty"`
	Draft       bool      `json:"draft,omitempty"`
	Cover       string    `json:"cover,omitempty"`
}

// PageSummary is the compact page entry stored in the content index.
type PageSummary struct {
	Slug   string `json:"slug"`
	Title  string `json:"title"`
	Hidden bool   `json:"hidden,omitempty"`
}

// ParentMeta is a navigation-only entry for a directory that carries a
// gallery sidecar file but no photos of its own.
type ParentMeta struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Order *int   `json:"order,omitempty"`
}

// IndexStats is the rollup computed on every full rebuild.
type IndexStats struct {
	Galleries int `json:"galleries"`
	Photos    int `json:"photos"`
	Posts     int `json:"posts"`
	Pages     int `json:"pages"`
}

// ContentIndex is the persisted, versioned catalog of all content. A
// version mismatch on read is treated as a cache miss, never an error.
type ContentIndex struct {
	Version   int              `json:"version"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Galleries []GallerySummary `json:"galleries"`
	Posts     []PostSummary    `json:"posts"`
	Pages     []PageSummary    `json:"pages"`
	Parents   []ParentMeta     `json:"parents"`
	Tags      []Tag            `json:"tags"`
	Stats     IndexStats       `json:"stats"`
}
