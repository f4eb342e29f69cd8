package scanner

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"

	"photofolio/pkg/models"
	"photofolio/pkg/storage"
)

func newPageScanner(fsys fstest.MapFS) *PageScanner {
	return NewPageScanner(storage.NewEmbedded(fsys), zap.NewNop())
}

func findPage(t *testing.T, pages []models.Page, slug string) models.Page {
	t.Helper()
	for _, p := range pages {
		if p.Slug == slug {
			return p
		}
	}
	t.Fatalf("page %q not found in %d pages", slug, len(pages))
	return models.Page{}
}

func TestPageMarkdownRendered(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/about/index.md": &fstest.MapFile{Data: []byte("---\ntitle: About Me\n---\n# Hello\n\nSome *text*.")},
	}

	pages, err := newPageScanner(fsys).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	p := findPage(t, pages, "about")
	if p.Title != "About Me" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.IsHTML {
		t.Error("markdown page flagged as HTML")
	}
	if !strings.Contains(p.HTML, "<h1>") || !strings.Contains(p.HTML, "<em>") {
		t.Errorf("rendered HTML missing markup: %q", p.HTML)
	}
	if strings.Contains(p.Content, "<h1>") {
		t.Error("Content should hold the raw markdown body")
	}
}

func TestPageHTMLPassthrough(t *testing.T) {
	raw := "<html><body><p>Hand written.</p></body></html>"
	fsys := fstest.MapFS{
		"pages/legacy/index.html": &fstest.MapFile{Data: []byte(raw)},
	}

	pages, err := newPageScanner(fsys).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	p := findPage(t, pages, "legacy")
	if !p.IsHTML {
		t.Error("IsHTML should be set")
	}
	if p.HTML != raw {
		t.Errorf("HTML must pass through untouched, got %q", p.HTML)
	}
}

func TestPageContentPriority(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/p/index.html": &fstest.MapFile{Data: []byte("<p>html</p>")},
		"pages/p/index.md":   &fstest.MapFile{Data: []byte("md")},
		"pages/p/other.html": &fstest.MapFile{Data: []byte("<p>other</p>")},
	}

	pages, err := newPageScanner(fsys).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	p := findPage(t, pages, "p")
	if p.Path != "pages/p/index.html" {
		t.Errorf("Path = %q, index.html should win", p.Path)
	}
}

func TestPageBlogShapedFolderRejected(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/notes/index.md":     &fstest.MapFile{Data: []byte("hub")},
		"pages/notes/a/post.md":    &fstest.MapFile{Data: []byte("a")},
		"pages/notes/b/post.md":    &fstest.MapFile{Data: []byte("b")},
		"pages/notes/c/post.md":    &fstest.MapFile{Data: []byte("c")},
		"pages/simple/index.md":    &fstest.MapFile{Data: []byte("fine")},
		"pages/simple/assets/x.md": &fstest.MapFile{Data: []byte("one is fine")},
	}

	pages, err := newPageScanner(fsys).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// notes has three markdown subfolders, over the threshold of two.
	for _, p := range pages {
		if p.Slug == "notes" {
			t.Fatal("blog-shaped folder should be rejected")
		}
	}
	findPage(t, pages, "simple")
}

func TestPageExplicitTypeOverridesHeuristic(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/hub/page.yml":  &fstest.MapFile{Data: []byte("type: page\ntitle: The Hub\n")},
		"pages/hub/index.md":  &fstest.MapFile{Data: []byte("hub body")},
		"pages/hub/a/post.md": &fstest.MapFile{Data: []byte("a")},
		"pages/hub/b/post.md": &fstest.MapFile{Data: []byte("b")},
		"pages/hub/c/post.md": &fstest.MapFile{Data: []byte("c")},
	}

	pages, err := newPageScanner(fsys).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	p := findPage(t, pages, "hub")
	if p.Title != "The Hub" {
		t.Errorf("Title = %q", p.Title)
	}
}

func TestPageExplicitNonPageTypeRejected(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/feed/page.yml": &fstest.MapFile{Data: []byte("type: blog\n")},
		"pages/feed/index.md": &fstest.MapFile{Data: []byte("body")},
	}

	pages, err := newPageScanner(fsys).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("type != page must be rejected, got %+v", pages)
	}
}

func TestPageCustomCSS(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/styled/index.md":  &fstest.MapFile{Data: []byte("body")},
		"pages/styled/style.css": &fstest.MapFile{Data: []byte("body { color: red }")},
	}

	pages, err := newPageScanner(fsys).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	p := findPage(t, pages, "styled")
	if p.CustomCSS != "body { color: red }" {
		t.Errorf("CustomCSS = %q", p.CustomCSS)
	}
}

func TestPageHiddenFromFrontMatter(t *testing.T) {
	fsys := fstest.MapFS{
		"pages/secret/index.md": &fstest.MapFile{Data: []byte("---\nhidden: true\n---\nshh")},
	}

	pages, err := newPageScanner(fsys).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if !findPage(t, pages, "secret").Hidden {
		t.Error("Hidden flag from front matter lost")
	}
}
