package scanner

import (
	"bytes"
	"context"
	"path"
	"sort"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"photofolio/pkg/models"
	"photofolio/pkg/storage"
)

// MaxBlogLikeSubdirs is the page rejection threshold: a folder whose
// markdown-bearing subfolders exceed it is considered blog-shaped, not a
// static page. Kept from the source system; override per scanner via
// BlogLikeThreshold.
const MaxBlogLikeSubdirs = 2

// PageMeta is the optional page sidecar file (page.yml). An explicit
// content type overrides the blog-shape heuristic.
type PageMeta struct {
	Title  string `yaml:"title"`
	Type   string `yaml:"type"`
	Hidden bool   `yaml:"hidden"`
}

// PageScanner produces Page entities from the pages root.
type PageScanner struct {
	store  storage.Storage
	logger *zap.Logger
	md     goldmark.Markdown

	// BlogLikeThreshold defaults to MaxBlogLikeSubdirs.
	BlogLikeThreshold int
}

// NewPageScanner creates a page scanner over the given storage.
func NewPageScanner(store storage.Storage, logger *zap.Logger) *PageScanner {
	return &PageScanner{
		store:             store,
		logger:            logger,
		md:                goldmark.New(),
		BlogLikeThreshold: MaxBlogLikeSubdirs,
	}
}

// Scan lists the top-level folders under the pages root and builds a
// Page from each folder that passes the blog-shape heuristic.
func (s *PageScanner) Scan(ctx context.Context) ([]models.Page, error) {
	entries, err := s.store.List(ctx, PagesRoot)
	if err != nil {
		return nil, err
	}

	pages := []models.Page{}
	for _, entry := range entries {
		if !entry.IsDirectory {
			continue
		}
		page, err := s.scanFolder(ctx, entry)
		if err != nil {
			return nil, err
		}
		if page != nil {
			pages = append(pages, *page)
		}
	}
	return pages, nil
}

func (s *PageScanner) scanFolder(ctx context.Context, folder models.FileInfo) (*models.Page, error) {
	entries, err := s.store.List(ctx, folder.Path)
	if err != nil {
		return nil, err
	}

	meta, err := s.readPageMeta(ctx, folder.Path)
	if err != nil {
		return nil, err
	}

	if meta.Type != "" && meta.Type != "page" {
		return nil, nil
	}
	if meta.Type != "page" {
		blogLike, err := s.countMarkdownSubdirs(ctx, entries)
		if err != nil {
			return nil, err
		}
		if blogLike > s.BlogLikeThreshold {
			s.logger.Debug("folder looks blog-shaped, not a page",
				zap.String("path", folder.Path),
				zap.Int("markdownSubdirs", blogLike))
			return nil, nil
		}
	}

	content := pickPageContent(entries)
	if content == nil {
		s.logger.Warn("page folder has no content file, skipping",
			zap.String("path", folder.Path))
		return nil, nil
	}

	text, err := s.store.GetText(ctx, content.Path)
	if err != nil {
		return nil, err
	}

	page := &models.Page{
		Slug:   Slugify(folder.Name),
		Title:  meta.Title,
		IsHTML: IsHTMLFile(content.Name),
		Hidden: meta.Hidden,
		Path:   content.Path,
	}

	if page.IsHTML {
		page.Content = text
		page.HTML = text
	} else {
		fm, body, err := ParseFrontMatter(text)
		if err != nil {
			s.logger.Warn("malformed front matter, using defaults",
				zap.String("path", content.Path),
				zap.Error(err))
		}
		page.Content = body
		page.HTML = s.render(body)
		if page.Title == "" {
			page.Title = fm.Title
		}
		if fm.Hidden {
			page.Hidden = true
		}
	}
	if page.Title == "" {
		page.Title = TitleFromName(folder.Name)
	}

	for _, name := range []string{"style.css", "styles.css"} {
		css, err := s.store.GetText(ctx, path.Join(folder.Path, name))
		if err != nil {
			return nil, err
		}
		if css != "" {
			page.CustomCSS = css
			break
		}
	}

	return page, nil
}

func (s *PageScanner) readPageMeta(ctx context.Context, dir string) (PageMeta, error) {
	key := path.Join(dir, PageMetaFile)
	text, err := s.store.GetText(ctx, key)
	if err != nil {
		return PageMeta{}, err
	}
	if text == "" {
		return PageMeta{}, nil
	}

	var meta PageMeta
	if err := yaml.Unmarshal([]byte(text), &meta); err != nil {
		s.logger.Warn("malformed page sidecar, using defaults",
			zap.String("key", key),
			zap.Error(err))
		return PageMeta{}, nil
	}
	return meta, nil
}

// countMarkdownSubdirs counts how many direct subfolders contain
// markdown, the signal for a blog-like structure.
func (s *PageScanner) countMarkdownSubdirs(ctx context.Context, entries []models.FileInfo) (int, error) {
	count := 0
	for _, entry := range entries {
		if !entry.IsDirectory {
			continue
		}
		children, err := s.store.List(ctx, entry.Path)
		if err != nil {
			return 0, err
		}
		for _, child := range children {
			if !child.IsDirectory && IsMarkdownFile(child.Name) {
				count++
				break
			}
		}
	}
	return count, nil
}

// pickPageContent applies the main content priority:
// index.html > index.md > first .html > first .md.
func pickPageContent(entries []models.FileInfo) *models.FileInfo {
	byName := make(map[string]models.FileInfo, len(entries))
	var html, markdown []models.FileInfo
	for _, entry := range entries {
		if entry.IsDirectory {
			continue
		}
		byName[entry.Name] = entry
		switch {
		case IsHTMLFile(entry.Name):
			html = append(html, entry)
		case IsMarkdownFile(entry.Name):
			markdown = append(markdown, entry)
		}
	}

	for _, name := range []string{"index.html", "index.md"} {
		if entry, ok := byName[name]; ok {
			return &entry
		}
	}
	for _, candidates := range [][]models.FileInfo{html, markdown} {
		if len(candidates) > 0 {
			sort.Slice(candidates, func(i, j int) bool {
				return NaturalLess(candidates[i].Name, candidates[j].Name)
			})
			return &candidates[0]
		}
	}
	return nil
}

func (s *PageScanner) render(body string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(body), &buf); err != nil {
		s.logger.Warn("markdown render failed", zap.Error(err))
		return ""
	}
	return buf.String()
}
