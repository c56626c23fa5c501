// Package sitegen keeps the generated static files (article pages, homepage,
// sitemap) consistent with database state. Each materializer is a full,
// idempotent rewrite of one output file; the Regenerator decides which
// materializers to run for a given mutation event.
package sitegen

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"kasrah-cms/internal/config"
	"kasrah-cms/internal/data"
	"kasrah-cms/internal/logger"
)

// ArticleSource provides the published-article sets the materializers render.
type ArticleSource interface {
	ListPublished(ctx context.Context, limit int) ([]*data.Article, error)
}

// SettingsSource provides the site settings rows embedded into every
// generated file.
type SettingsSource interface {
	GetAllSettings(ctx context.Context) ([]*data.Setting, error)
}

// Generator renders database state into static files under the output root.
type Generator struct {
	articles  ArticleSource
	settings  SettingsSource
	log       logger.Logger
	templates fs.FS

	siteURL      string
	outputRoot   string
	articlesDir  string
	templatesDir string // optional on-disk override for embedded templates

	now func() time.Time
}

// NewGenerator creates a Generator writing into cfg.OutputRoot, loading
// templates from templateFS (optionally overridden by files in
// cfg.TemplatesDir).
func NewGenerator(articles ArticleSource, settings SettingsSource, log logger.Logger, cfg config.SiteConfig, templateFS fs.FS) *Generator {
	return &Generator{
		articles:     articles,
		settings:     settings,
		log:          log,
		templates:    templateFS,
		siteURL:      cfg.URL,
		outputRoot:   cfg.OutputRoot,
		articlesDir:  cfg.ArticlesDir,
		templatesDir: cfg.TemplatesDir,
		now:          time.Now,
	}
}

// ArticleFilePath returns the on-disk path of the generated page for slug.
func (g *Generator) ArticleFilePath(slug string) string {
	return filepath.Join(g.outputRoot, g.articlesDir, slug+".html")
}

// HomepageFilePath returns the on-disk path of the generated homepage.
func (g *Generator) HomepageFilePath() string {
	return filepath.Join(g.outputRoot, "index.html")
}

// SitemapFilePath returns the on-disk path of the generated sitemap.
func (g *Generator) SitemapFilePath() string {
	return filepath.Join(g.outputRoot, "sitemap.xml")
}

// RemoveArticleFile deletes the generated page for slug. A file that does not
// exist is not an error: unpublished articles never had one.
func (g *Generator) RemoveArticleFile(slug string) error {
	err := os.Remove(g.ArticleFilePath(slug))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove article file for slug '%s': %w", slug, err)
	}
	return nil
}

// loadTemplate reads a named template, preferring the on-disk override
// directory when one is configured.
func (g *Generator) loadTemplate(name string) (string, error) {
	if g.templatesDir != "" {
		b, err := os.ReadFile(filepath.Join(g.templatesDir, name))
		if err == nil {
			return string(b), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read template override %s: %w", name, err)
		}
	}
	b, err := fs.ReadFile(g.templates, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return string(b), nil
}

// writeFileAtomic writes data to path via a temp file and rename, so readers
// never observe a truncated file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}

// firstNonEmpty returns the first value that is neither nil nor empty.
// Bilingual and SEO fields all resolve through the same ordered-fallback
// chain (primary, secondary override, literal default).
func firstNonEmpty(vals ...*string) string {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

// str is a convenience for building firstNonEmpty chains from literals.
func str(s string) *string { return &s }
