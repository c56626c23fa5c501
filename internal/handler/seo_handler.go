package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// SeoHandler serves the crawler-facing files. The sitemap is a generated
// artifact on disk; robots.txt is rendered from the configured site URL.
type SeoHandler struct {
	siteURL    string
	outputRoot string
}

// NewSeoHandler creates a new SeoHandler.
func NewSeoHandler(siteURL, outputRoot string) *SeoHandler {
	return &SeoHandler{siteURL: siteURL, outputRoot: outputRoot}
}

// robotsHandler serves a robots.txt pointing crawlers at the sitemap.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "Disallow: /api/admin/")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Sitemap: "+h.siteURL+"/sitemap.xml")
}

// sitemapHandler serves the generated sitemap.xml from disk.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.outputRoot, "sitemap.xml")
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "Sitemap not generated yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	http.ServeFile(w, r, path)
}
