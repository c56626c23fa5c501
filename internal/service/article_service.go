package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"kasrah-cms/internal/data"
	"kasrah-cms/internal/logger"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// ErrArticleNotFound is returned when no article matches the given identifier.
var ErrArticleNotFound = errors.New("article not found")

// ErrInvalidSlug is returned for slugs that cannot form a safe file name or URL.
var ErrInvalidSlug = errors.New("invalid article slug")

// slugPattern permits lowercase latin letters, digits, Arabic letters, and
// hyphens. Anything else would leak into file paths and URLs.
var slugPattern = regexp.MustCompile(`^[a-z0-9\x{0600}-\x{06FF}-]+$`)

var imgSrcPattern = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)

const descriptionExcerptLen = 160

// ArticleRepository defines the interface for database operations on articles.
type ArticleRepository interface {
	CreateArticle(ctx context.Context, a *data.Article) error
	GetArticleByID(ctx context.Context, id int64) (*data.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*data.Article, error)
	UpdateArticle(ctx context.Context, a *data.Article) error
	DeleteArticle(ctx context.Context, id int64) error
	ListPublished(ctx context.Context, limit int) ([]*data.Article, error)
	ListAll(ctx context.Context) ([]*data.Article, error)
	ListPublishedFiltered(ctx context.Context, category string, excludeID int64, limit int) ([]*data.Article, error)
}

// SiteRegenerator defines the static site updates the service triggers after
// content changes. Regeneration failures are logged but never roll back the
// database write that caused them.
type SiteRegenerator interface {
	ArticleCreated(ctx context.Context, a *data.Article) error
	ArticleUpdated(ctx context.Context, a *data.Article, oldSlug string) error
	ArticleDeleted(ctx context.Context, slug string) error
}

// ArticleServicer defines the interface for interacting with articles.
type ArticleServicer interface {
	CreateArticle(ctx context.Context, a *data.Article) (*data.Article, error)
	UpdateArticle(ctx context.Context, a *data.Article) (*data.Article, error)
	DeleteArticle(ctx context.Context, id int64) error
	GetArticleByID(ctx context.Context, id int64) (*data.Article, error)
	GetArticleBySlug(ctx context.Context, slug string) (*data.Article, error)
	ListPublished(ctx context.Context, limit int) ([]*data.Article, error)
	ListAll(ctx context.Context) ([]*data.Article, error)
	ListPublishedFiltered(ctx context.Context, category string, excludeID int64, limit int) ([]*data.Article, error)
}

// ArticleService provides business logic for managing articles.
type ArticleService struct {
	repo     ArticleRepository
	regen    SiteRegenerator
	stripper *bluemonday.Policy
	log      logger.Logger
}

// NewArticleService creates a new ArticleService with the given repository
// and site regenerator.
func NewArticleService(repo ArticleRepository, regen SiteRegenerator, log logger.Logger) *ArticleService {
	return &ArticleService{
		repo:  repo,
		regen: regen,
		// StripTagsPolicy removes all markup. It is used to derive plain
		// text descriptions from article HTML.
		stripper: bluemonday.StripTagsPolicy(),
		log:      log,
	}
}

// CreateArticle validates and stores a new article, then materializes its
// static page if it is published.
func (s *ArticleService) CreateArticle(ctx context.Context, a *data.Article) (*data.Article, error) {
	if err := s.prepare(a); err != nil {
		return nil, err
	}
	if a.IsPublished && a.PublishedAt == nil {
		now := time.Now().UTC()
		a.PublishedAt = &now
	}

	if err := s.repo.CreateArticle(ctx, a); err != nil {
		return nil, err
	}

	if err := s.regen.ArticleCreated(ctx, a); err != nil {
		s.log.Error(err, fmt.Sprintf("Static regeneration failed after creating article %q", a.Slug))
	}
	return a, nil
}

// UpdateArticle applies changes to an existing article and refreshes its
// static page, cleaning up the old file when the slug changed or the article
// was unpublished.
func (s *ArticleService) UpdateArticle(ctx context.Context, a *data.Article) (*data.Article, error) {
	existing, err := s.repo.GetArticleByID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	oldSlug := existing.Slug

	if err := s.prepare(a); err != nil {
		return nil, err
	}
	if a.IsPublished && a.PublishedAt == nil {
		if existing.PublishedAt != nil {
			a.PublishedAt = existing.PublishedAt
		} else {
			now := time.Now().UTC()
			a.PublishedAt = &now
		}
	}

	if err := s.repo.UpdateArticle(ctx, a); err != nil {
		return nil, err
	}

	if err := s.regen.ArticleUpdated(ctx, a, oldSlug); err != nil {
		s.log.Error(err, fmt.Sprintf("Static regeneration failed after updating article %q", a.Slug))
	}
	return a, nil
}

// DeleteArticle removes an article and its static page.
func (s *ArticleService) DeleteArticle(ctx context.Context, id int64) error {
	existing, err := s.repo.GetArticleByID(ctx, id)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}

	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return err
	}

	if err := s.regen.ArticleDeleted(ctx, existing.Slug); err != nil {
		s.log.Error(err, fmt.Sprintf("Static regeneration failed after deleting article %q", existing.Slug))
	}
	return nil
}

// GetArticleByID retrieves a single article by its numeric ID.
func (s *ArticleService) GetArticleByID(ctx context.Context, id int64) (*data.Article, error) {
	return s.repo.GetArticleByID(ctx, id)
}

// GetArticleBySlug retrieves a single published article by its slug.
func (s *ArticleService) GetArticleBySlug(ctx context.Context, slug string) (*data.Article, error) {
	return s.repo.GetArticleBySlug(ctx, slug)
}

// ListPublished returns published articles, newest first.
func (s *ArticleService) ListPublished(ctx context.Context, limit int) ([]*data.Article, error) {
	return s.repo.ListPublished(ctx, limit)
}

// ListAll returns every article including drafts.
func (s *ArticleService) ListAll(ctx context.Context) ([]*data.Article, error) {
	return s.repo.ListAll(ctx)
}

// ListPublishedFiltered returns published articles filtered by category,
// optionally excluding one article.
func (s *ArticleService) ListPublishedFiltered(ctx context.Context, category string, excludeID int64, limit int) ([]*data.Article, error) {
	return s.repo.ListPublishedFiltered(ctx, category, excludeID, limit)
}

// prepare validates the slug, renders Markdown-authored content to HTML, and
// fills derivable fields: a missing thumbnail is taken from the first image in
// the content, and a missing description is excerpted from the content's
// plain text.
func (s *ArticleService) prepare(a *data.Article) error {
	a.Slug = strings.TrimSpace(a.Slug)
	if a.Slug == "" || !slugPattern.MatchString(a.Slug) {
		return ErrInvalidSlug
	}
	if strings.TrimSpace(a.Title) == "" {
		return errors.New("article title is required")
	}

	if a.ContentMarkdown != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(a.ContentMarkdown), &buf); err != nil {
			return fmt.Errorf("render markdown content: %w", err)
		}
		a.Content = buf.String()
		a.ContentMarkdown = ""
	}

	if (a.ThumbnailURL == nil || *a.ThumbnailURL == "") && a.Content != "" {
		if m := imgSrcPattern.FindStringSubmatch(a.Content); m != nil {
			a.ThumbnailURL = &m[1]
		}
	}

	if (a.Description == nil || *a.Description == "") && a.Content != "" {
		text := strings.Join(strings.Fields(s.stripper.Sanitize(a.Content)), " ")
		if text != "" {
			excerpt := truncateRunes(text, descriptionExcerptLen)
			a.Description = &excerpt
		}
	}
	return nil
}

// truncateRunes shortens s to at most n runes, never splitting a rune.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
