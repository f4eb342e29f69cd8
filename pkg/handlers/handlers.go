// Package handlers exposes the content engine over HTTP: a JSON API for
// the index and an image-serving endpoint that backs the non-signed
// storage URLs.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"photofolio/pkg/index"
	"photofolio/pkg/models"
	"photofolio/pkg/scanner"
	"photofolio/pkg/storage"
)

// Server bundles the handler dependencies; everything is injected, no
// ambient state.
type Server struct {
	store     storage.Storage
	index     *index.Service
	galleries *scanner.GalleryScanner
	logger    *zap.Logger
}

// NewServer creates the HTTP surface over the given engine parts.
func NewServer(store storage.Storage, idx *index.Service, galleries *scanner.GalleryScanner, logger *zap.Logger) *Server {
	return &Server{store: store, index: idx, galleries: galleries, logger: logger}
}

// Routes registers all endpoints on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/index", s.handleIndex)
	mux.HandleFunc("GET /api/navigation", s.handleNavigation)
	mux.HandleFunc("GET /api/galleries", s.handleGalleries)
	mux.HandleFunc("GET /api/galleries/", s.handleGallery)
	mux.HandleFunc("GET /api/posts", s.handlePosts)
	mux.HandleFunc("GET /api/tags", s.handleTags)
	mux.HandleFunc("GET /images/", s.handleImage)
	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", zap.Error(err))
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	idx, err := s.index.Get(r.Context())
	if err != nil {
		s.logger.Error("get index", zap.Error(err))
		http.Error(w, "index unavailable", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, idx)
}

func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	idx, err := s.index.Get(r.Context())
	if err != nil {
		s.logger.Error("get index", zap.Error(err))
		http.Error(w, "index unavailable", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, index.BuildNavigation(idx.Galleries, idx.Parents))
}

func (s *Server) handleGalleries(w http.ResponseWriter, r *http.Request) {
	idx, err := s.index.Get(r.Context())
	if err != nil {
		s.logger.Error("get index", zap.Error(err))
		http.Error(w, "index unavailable", http.StatusInternalServerError)
		return
	}
	visible := make([]models.GallerySummary, 0, len(idx.Galleries))
	for _, gallery := range idx.Galleries {
		if !gallery.Private {
			visible = append(visible, gallery)
		}
	}
	s.writeJSON(w, visible)
}

// handleGallery serves one full gallery, photos included. The index only
// carries summaries, so this rescans the gallery tree.
func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/galleries/"), "/")
	if slug == "" {
		http.NotFound(w, r)
		return
	}

	galleries, err := s.galleries.Scan(r.Context())
	if err != nil {
		s.logger.Error("scan galleries", zap.Error(err))
		http.Error(w, "galleries unavailable", http.StatusInternalServerError)
		return
	}
	for _, gallery := range galleries {
		if gallery.Slug == slug {
			s.writeJSON(w, gallery)
			return
		}
	}
	s.logger.Info("gallery not found", zap.String("slug", slug))
	http.NotFound(w, r)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	idx, err := s.index.Get(r.Context())
	if err != nil {
		s.logger.Error("get index", zap.Error(err))
		http.Error(w, "index unavailable", http.StatusInternalServerError)
		return
	}
	published := make([]models.PostSummary, 0, len(idx.Posts))
	for _, post := range idx.Posts {
		if !post.Draft {
			published = append(published, post)
		}
	}
	s.writeJSON(w, published)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	idx, err := s.index.Get(r.Context())
	if err != nil {
		s.logger.Error("get index", zap.Error(err))
		http.Error(w, "index unavailable", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, idx.Tags)
}

// handleImage streams an object's bytes. Non-signing backends hand out
// /images/<key> URLs that land here.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	key := strings.Trim(strings.TrimPrefix(r.URL.Path, "/images/"), "/")
	if key == "" || strings.Contains(key, "..") {
		http.NotFound(w, r)
		return
	}

	data, err := s.store.Get(r.Context(), key)
	if err != nil {
		s.logger.Error("get image", zap.String("key", key), zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", storage.ContentTypeFor(key))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		return
	}
}
