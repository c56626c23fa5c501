package handler

import (
	"context"
	"net/http"

	"kasrah-cms/internal/logger"
	"kasrah-cms/internal/middleware"
)

// Regenerator defines the bulk regeneration operations exposed to admins.
type Regenerator interface {
	RegenerateAll(ctx context.Context) (succeeded, failed int, err error)
	RegenerateHomepage(ctx context.Context) error
	RegenerateSitemap(ctx context.Context) (string, error)
}

// GenerateHandler exposes manual regeneration of the static site.
type GenerateHandler struct {
	regen Regenerator
	log   logger.Logger
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(regen Regenerator, log logger.Logger) *GenerateHandler {
	return &GenerateHandler{regen: regen, log: log}
}

// allArticlesHandler rebuilds every published article page and the homepage,
// reporting per-article success and failure counts.
func (h *GenerateHandler) allArticlesHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	succeeded, failed, err := h.regen.RegenerateAll(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to regenerate articles", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"successCount": succeeded,
		"errorCount":   failed,
	})
	return nil
}

// indexHandler rebuilds the homepage.
func (h *GenerateHandler) indexHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := h.regen.RegenerateHomepage(r.Context()); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to regenerate homepage", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	return nil
}

// sitemapHandler rebuilds the sitemap.
func (h *GenerateHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	path, err := h.regen.RegenerateSitemap(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to regenerate sitemap", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "path": path})
	return nil
}
