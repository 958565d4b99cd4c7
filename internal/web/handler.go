package web

import (
	"context"
	_ "crypto/sha256"
	"errors"
	"log"
	"mime"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	godigest "github.com/opencontainers/go-digest"
)

// StorageDriver is the read side of a content driver.
type StorageDriver interface {
	Name() string
	GetContent(ctx context.Context, path string) ([]byte, error)
}

var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".svg":  "image/svg+xml",
	".txt":  "text/plain; charset=utf-8",
}

// SiteHandler serves the protected site from a storage driver.
type SiteHandler struct {
	driver StorageDriver
}

func NewSiteHandler(driver StorageDriver) *SiteHandler {
	return &SiteHandler{driver: driver}
}

func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	p := r.URL.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index.html"
	}

	content, err := h.driver.GetContent(r.Context(), p)
	if errors.Is(err, os.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Failed to read %s from %s: %v", p, h.driver.Name(), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	etag := `"` + godigest.FromBytes(content).Encoded() + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType(p))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	w.Write(content)
}

func contentType(p string) string {
	ext := strings.ToLower(path.Ext(p))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
