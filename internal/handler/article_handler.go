package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"kasrah-cms/internal/data"
	"kasrah-cms/internal/logger"
	"kasrah-cms/internal/middleware"
	"kasrah-cms/internal/service"

	"github.com/go-chi/chi/v5"
)

// ArticleHandler holds the dependencies for the article handlers.
type ArticleHandler struct {
	articleService service.ArticleServicer
	log            logger.Logger
}

// NewArticleHandler creates a new ArticleHandler with the given dependencies.
func NewArticleHandler(as service.ArticleServicer, log logger.Logger) *ArticleHandler {
	return &ArticleHandler{articleService: as, log: log}
}

// articleResponse is the JSON projection of an article. Title, description
// and content are selected by the requested language, falling back to the
// primary (Arabic) text when no translation exists.
type articleResponse struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Content      string     `json:"content,omitempty"`
	Description  string     `json:"description,omitempty"`
	MetaTitle    string     `json:"meta_title,omitempty"`
	MetaDesc     string     `json:"meta_description,omitempty"`
	MetaKeywords string     `json:"meta_keywords,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	Author       string     `json:"author"`
	Category     string     `json:"category"`
	Language     string     `json:"language"`
	IsPublished  bool       `json:"is_published"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

func toArticleResponse(a *data.Article, lang string, includeContent bool) articleResponse {
	resp := articleResponse{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Author:      a.Author,
		Category:    a.Category,
		Language:    a.Language,
		IsPublished: a.IsPublished,
		PublishedAt: a.PublishedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if a.Description != nil {
		resp.Description = *a.Description
	}
	if includeContent {
		resp.Content = a.Content
	}
	if lang == "en" {
		if a.TitleEn != nil && *a.TitleEn != "" {
			resp.Title = *a.TitleEn
		}
		if a.DescriptionEn != nil && *a.DescriptionEn != "" {
			resp.Description = *a.DescriptionEn
		}
		if includeContent && a.ContentEn != nil && *a.ContentEn != "" {
			resp.Content = *a.ContentEn
		}
	}
	if a.MetaTitle != nil {
		resp.MetaTitle = *a.MetaTitle
	}
	if a.MetaDesc != nil {
		resp.MetaDesc = *a.MetaDesc
	}
	if a.MetaKeywords != nil {
		resp.MetaKeywords = *a.MetaKeywords
	}
	if a.ImageURL != nil {
		resp.ImageURL = *a.ImageURL
	}
	if a.ThumbnailURL != nil {
		resp.ThumbnailURL = *a.ThumbnailURL
	}
	return resp
}

// listHandler serves the public article listing. Supported query parameters:
// lang (ar|en), category, exclude (article ID), limit.
func (h *ArticleHandler) listHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	q := r.URL.Query()
	lang := q.Get("lang")
	category := q.Get("category")

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return &middleware.AppError{Error: errors.New("bad limit"), Message: "limit must be a non-negative integer", Code: http.StatusBadRequest}
		}
		limit = n
	}
	var excludeID int64
	if v := q.Get("exclude"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return &middleware.AppError{Error: errors.New("bad exclude"), Message: "exclude must be an article ID", Code: http.StatusBadRequest}
		}
		excludeID = n
	}

	var (
		articles []*data.Article
		err      error
	)
	if category != "" || excludeID != 0 {
		articles, err = h.articleService.ListPublishedFiltered(r.Context(), category, excludeID, limit)
	} else {
		articles, err = h.articleService.ListPublished(r.Context(), limit)
	}
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to retrieve articles", Code: http.StatusInternalServerError}
	}

	resp := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, toArticleResponse(a, lang, false))
	}
	respondJSON(w, http.StatusOK, resp)
	return nil
}

// getHandler serves a single published article by slug.
func (h *ArticleHandler) getHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")
	article, err := h.articleService.GetArticleBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return &middleware.AppError{Error: err, Message: "Article not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Error: err, Message: "Failed to retrieve article", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, toArticleResponse(article, r.URL.Query().Get("lang"), true))
	return nil
}

// adminListHandler returns every article including drafts.
func (h *ArticleHandler) adminListHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	articles, err := h.articleService.ListAll(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to retrieve articles", Code: http.StatusInternalServerError}
	}
	resp := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, toArticleResponse(a, "", false))
	}
	respondJSON(w, http.StatusOK, resp)
	return nil
}

// adminGetHandler returns one article, draft or published, by ID.
func (h *ArticleHandler) adminGetHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := articleIDParam(r)
	if appErr != nil {
		return appErr
	}
	article, err := h.articleService.GetArticleByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return &middleware.AppError{Error: err, Message: "Article not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Error: err, Message: "Failed to retrieve article", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, toArticleResponse(article, "", true))
	return nil
}

// createHandler stores a new article and responds with the stored record.
func (h *ArticleHandler) createHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var a data.Article
	if err := decodeJSON(r, &a); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}

	created, err := h.articleService.CreateArticle(r.Context(), &a)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSlug) {
			return &middleware.AppError{Error: err, Message: "Invalid article slug", Code: http.StatusBadRequest}
		}
		return &middleware.AppError{Error: err, Message: "Failed to create article", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusCreated, toArticleResponse(created, "", true))
	return nil
}

// updateHandler applies changes to an existing article.
func (h *ArticleHandler) updateHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := articleIDParam(r)
	if appErr != nil {
		return appErr
	}

	var a data.Article
	if err := decodeJSON(r, &a); err != nil {
		return &middleware.AppError{Error: err, Message: "Invalid request body", Code: http.StatusBadRequest}
	}
	a.ID = id

	updated, err := h.articleService.UpdateArticle(r.Context(), &a)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			return &middleware.AppError{Error: err, Message: "Article not found", Code: http.StatusNotFound}
		case errors.Is(err, service.ErrInvalidSlug):
			return &middleware.AppError{Error: err, Message: "Invalid article slug", Code: http.StatusBadRequest}
		default:
			return &middleware.AppError{Error: err, Message: "Failed to update article", Code: http.StatusInternalServerError}
		}
	}
	respondJSON(w, http.StatusOK, toArticleResponse(updated, "", true))
	return nil
}

// deleteHandler removes an article.
func (h *ArticleHandler) deleteHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := articleIDParam(r)
	if appErr != nil {
		return appErr
	}
	if err := h.articleService.DeleteArticle(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			return &middleware.AppError{Error: err, Message: "Article not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Error: err, Message: "Failed to delete article", Code: http.StatusInternalServerError}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	return nil
}

func articleIDParam(r *http.Request) (int64, *middleware.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, &middleware.AppError{Error: err, Message: "Invalid article ID", Code: http.StatusBadRequest}
	}
	return id, nil
}
