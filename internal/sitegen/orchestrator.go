package sitegen

import (
	"context"
	"fmt"
	"time"

	"kasrah-cms/internal/data"
	"kasrah-cms/internal/logger"
)

// Regenerator maps article and settings lifecycle events to the materializer
// runs that keep the generated files consistent with the database. Every
// invocation is a one-shot synchronous sequence; failures here are soft:
// the triggering database mutation has already committed and is never rolled
// back.
type Regenerator struct {
	gen *Generator
	log logger.Logger

	sitemapInterval time.Duration
}

// NewRegenerator creates a Regenerator around gen. interval controls the
// scheduled sitemap rebuild started by Start.
func NewRegenerator(gen *Generator, log logger.Logger, interval time.Duration) *Regenerator {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Regenerator{gen: gen, log: log, sitemapInterval: interval}
}

// ArticleCreated regenerates files after a new article was inserted. Articles
// created unpublished have no file side effects.
func (r *Regenerator) ArticleCreated(ctx context.Context, a *data.Article) error {
	if !a.IsPublished {
		return nil
	}
	if _, err := r.gen.MaterializeArticle(ctx, a); err != nil {
		return fmt.Errorf("failed to materialize created article '%s': %w", a.Slug, err)
	}
	if _, err := r.gen.MaterializeHomepage(ctx); err != nil {
		return fmt.Errorf("failed to materialize homepage: %w", err)
	}
	return nil
}

// ArticleUpdated regenerates files after an article update. oldSlug is the
// slug the row held before the update; when the slug changed the old file is
// removed first so the rename never leaves two files. When the article is no
// longer published its file is removed. The homepage is always rebuilt from
// the updated published set.
func (r *Regenerator) ArticleUpdated(ctx context.Context, a *data.Article, oldSlug string) error {
	if a.IsPublished {
		if oldSlug != "" && oldSlug != a.Slug {
			if err := r.gen.RemoveArticleFile(oldSlug); err != nil {
				r.log.Error(err, "failed to remove old-slug article file")
			}
		}
		if _, err := r.gen.MaterializeArticle(ctx, a); err != nil {
			return fmt.Errorf("failed to materialize updated article '%s': %w", a.Slug, err)
		}
	} else {
		if err := r.gen.RemoveArticleFile(a.Slug); err != nil {
			return fmt.Errorf("failed to remove unpublished article file '%s': %w", a.Slug, err)
		}
		// An unpublish that followed a rename must not leave the old file.
		if oldSlug != "" && oldSlug != a.Slug {
			if err := r.gen.RemoveArticleFile(oldSlug); err != nil {
				r.log.Error(err, "failed to remove old-slug article file")
			}
		}
	}
	if _, err := r.gen.MaterializeHomepage(ctx); err != nil {
		return fmt.Errorf("failed to materialize homepage: %w", err)
	}
	return nil
}

// ArticleDeleted removes the article's file and rebuilds the homepage. It
// runs even when the article was never published; removing a missing file is
// a no-op.
func (r *Regenerator) ArticleDeleted(ctx context.Context, slug string) error {
	if slug != "" {
		if err := r.gen.RemoveArticleFile(slug); err != nil {
			return fmt.Errorf("failed to remove deleted article file '%s': %w", slug, err)
		}
	}
	if _, err := r.gen.MaterializeHomepage(ctx); err != nil {
		return fmt.Errorf("failed to materialize homepage: %w", err)
	}
	return nil
}

// SettingsChanged rewrites every file that embeds settings: the homepage and
// each published article. It never aborts on a per-article failure; the
// returned counts report how many article files were rewritten and how many
// failed.
func (r *Regenerator) SettingsChanged(ctx context.Context) (succeeded, failed int, err error) {
	if _, herr := r.gen.MaterializeHomepage(ctx); herr != nil {
		r.log.Error(herr, "failed to rebuild homepage after settings change")
		err = herr
	}

	articles, lerr := r.gen.articles.ListPublished(ctx, 0)
	if lerr != nil {
		return 0, 0, fmt.Errorf("failed to list published articles: %w", lerr)
	}
	for _, a := range articles {
		if _, aerr := r.gen.MaterializeArticle(ctx, a); aerr != nil {
			r.log.Error(aerr, fmt.Sprintf("failed to rebuild article '%s' after settings change", a.Slug))
			failed++
			continue
		}
		succeeded++
	}
	r.log.Info(fmt.Sprintf("settings change applied to %d article files (%d failed) and homepage", succeeded, failed))
	return succeeded, failed, err
}

// RegenerateAll rebuilds every published article file and then the homepage.
// Best-effort: it counts per-article successes and failures instead of
// aborting early.
func (r *Regenerator) RegenerateAll(ctx context.Context) (succeeded, failed int, err error) {
	articles, lerr := r.gen.articles.ListPublished(ctx, 0)
	if lerr != nil {
		return 0, 0, fmt.Errorf("failed to list published articles: %w", lerr)
	}
	for _, a := range articles {
		if _, aerr := r.gen.MaterializeArticle(ctx, a); aerr != nil {
			r.log.Error(aerr, fmt.Sprintf("failed to regenerate article '%s'", a.Slug))
			failed++
			continue
		}
		succeeded++
	}
	if _, herr := r.gen.MaterializeHomepage(ctx); herr != nil {
		r.log.Error(herr, "failed to regenerate homepage")
		err = herr
	}
	return succeeded, failed, err
}

// RegenerateHomepage rebuilds only the homepage file.
func (r *Regenerator) RegenerateHomepage(ctx context.Context) error {
	_, err := r.gen.MaterializeHomepage(ctx)
	return err
}

// RegenerateSitemap rebuilds only the sitemap file.
func (r *Regenerator) RegenerateSitemap(ctx context.Context) (string, error) {
	return r.gen.MaterializeSitemap(ctx)
}

// Start runs the sitemap materializer once immediately, then on every tick of
// the configured interval, until ctx is cancelled. Event-driven rebuilds may
// overlap the scheduled one; both are idempotent full rewrites, so overlap
// only wastes work.
func (r *Regenerator) Start(ctx context.Context) {
	if _, err := r.gen.MaterializeSitemap(ctx); err != nil {
		r.log.Error(err, "initial sitemap generation failed")
	}

	ticker := time.NewTicker(r.sitemapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.gen.MaterializeSitemap(ctx); err != nil {
				r.log.Error(err, "scheduled sitemap generation failed")
			}
		}
	}
}
