package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"

	"photofolio/pkg/index"
	"photofolio/pkg/models"
	"photofolio/pkg/scanner"
	"photofolio/pkg/storage"
)

type noExif struct{}

func (noExif) Extract([]byte) (*models.PhotoMeta, error) {
	return nil, errors.New("no embedded metadata")
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	fsys := fstest.MapFS{
		"galleries/japan/tokyo/a.png": &fstest.MapFile{Data: []byte("img-a")},
		"galleries/japan/tokyo/b.png": &fstest.MapFile{Data: []byte("img-b")},
		"galleries/hidden/gallery.yml": &fstest.MapFile{
			Data: []byte("private: true\n"),
		},
		"blog/hello/index.md": &fstest.MapFile{
			Data: []byte("---\ntitle: Hello\ndate: 2024-01-01\ntags: [intro]\n---\nFirst."),
		},
		"blog/wip.md": &fstest.MapFile{
			Data: []byte("---\ndraft: true\n---\nNot yet."),
		},
		"pages/about/index.md": &fstest.MapFile{Data: []byte("About.")},
	}

	store := storage.NewEmbedded(fsys)
	logger := zap.NewNop()
	galleries := scanner.NewGalleryScanner(store, noExif{}, logger)
	svc := index.New(store, galleries,
		scanner.NewBlogScanner(store, logger),
		scanner.NewPageScanner(store, logger),
		logger)
	return NewServer(store, svc, galleries, logger)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func TestHandleIndex(t *testing.T) {
	srv := newTestServer(t)

	var idx models.ContentIndex
	decode(t, get(t, srv, "/api/index"), &idx)

	if idx.Version != index.SchemaVersion {
		t.Errorf("Version = %d", idx.Version)
	}
	if idx.Stats.Galleries != 2 || idx.Stats.Photos != 2 {
		t.Errorf("Stats = %+v", idx.Stats)
	}
}

func TestHandleGalleriesFiltersPrivate(t *testing.T) {
	srv := newTestServer(t)

	var galleries []models.GallerySummary
	decode(t, get(t, srv, "/api/galleries"), &galleries)

	if len(galleries) != 1 {
		t.Fatalf("got %d galleries, want the public one only", len(galleries))
	}
	if galleries[0].Slug != "japan/tokyo" {
		t.Errorf("Slug = %q", galleries[0].Slug)
	}
}

func TestHandleGallery(t *testing.T) {
	srv := newTestServer(t)

	var g models.Gallery
	decode(t, get(t, srv, "/api/galleries/japan/tokyo"), &g)
	if g.Slug != "japan/tokyo" || len(g.Photos) != 2 {
		t.Errorf("gallery = %+v", g)
	}

	if rec := get(t, srv, "/api/galleries/no/such"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec := get(t, srv, "/api/galleries/"); rec.Code != http.StatusNotFound {
		t.Errorf("empty slug status = %d, want 404", rec.Code)
	}
}

func TestHandlePostsFiltersDrafts(t *testing.T) {
	srv := newTestServer(t)

	var posts []models.PostSummary
	decode(t, get(t, srv, "/api/posts"), &posts)

	if len(posts) != 1 {
		t.Fatalf("got %d posts, want the published one only", len(posts))
	}
	if posts[0].Slug != "hello" {
		t.Errorf("Slug = %q", posts[0].Slug)
	}
}

func TestHandleNavigation(t *testing.T) {
	srv := newTestServer(t)

	var nodes []*index.NavNode
	decode(t, get(t, srv, "/api/navigation"), &nodes)

	if len(nodes) != 1 || nodes[0].Slug != "japan" {
		t.Fatalf("nodes = %+v, private galleries must not appear", nodes)
	}
	if len(nodes[0].Children) != 1 || nodes[0].Children[0].Slug != "japan/tokyo" {
		t.Errorf("children = %+v", nodes[0].Children)
	}
}

func TestHandleTags(t *testing.T) {
	srv := newTestServer(t)

	var tags []models.Tag
	decode(t, get(t, srv, "/api/tags"), &tags)

	if len(tags) != 1 || tags[0].Name != "intro" {
		t.Errorf("tags = %+v", tags)
	}
}

func TestHandleImage(t *testing.T) {
	srv := newTestServer(t)

	rec := get(t, srv, "/images/galleries/japan/tokyo/a.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "img-a" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Error("missing Cache-Control")
	}

	if rec := get(t, srv, "/images/galleries/missing.png"); rec.Code != http.StatusNotFound {
		t.Errorf("missing image status = %d, want 404", rec.Code)
	}
}

func TestHandleImageRejectsTraversal(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/images/x", nil)
	req.URL.Path = "/images/../go.mod"
	rec := httptest.NewRecorder()
	srv.handleImage(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("traversal status = %d, want 404", rec.Code)
	}
}
