package sitegen

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"kasrah-cms/internal/data"
	"kasrah-cms/internal/render"
)

const articleTemplateName = "article-template.html"

// publishDateFormat is the human-readable date shown on pages. The
// machine-readable placeholders always carry RFC 3339.
const publishDateFormat = "02/01/2006"

// MaterializeArticle renders the article into its static HTML file at the
// path keyed by the article's current slug, overwriting any existing file.
// Callers must only pass published articles. Returns the written file path.
func (g *Generator) MaterializeArticle(ctx context.Context, a *data.Article) (string, error) {
	settings := g.siteSettings(ctx)

	tmpl, err := g.loadTemplate(articleTemplateName)
	if err != nil {
		return "", err
	}

	path := g.ArticleFilePath(a.Slug)
	out := render.Render(tmpl, g.articleReplacements(a, settings))
	if err := writeFileAtomic(path, []byte(out)); err != nil {
		return "", fmt.Errorf("failed to write article file for slug '%s': %w", a.Slug, err)
	}
	return path, nil
}

// articleReplacements builds the full placeholder map for one article.
// Bilingual fields fall back primary -> secondary -> literal default; SEO
// fields fall back to the content fields. Dates default to now when the
// source timestamp is absent.
func (g *Generator) articleReplacements(a *data.Article, settings map[string]string) map[string]string {
	publishedAt := g.now()
	if a.PublishedAt != nil {
		publishedAt = *a.PublishedAt
	}
	publishDateISO := publishedAt.UTC().Format(time.RFC3339)
	modifiedDateISO := publishDateISO
	if a.UpdatedAt != nil {
		modifiedDateISO = a.UpdatedAt.UTC().Format(time.RFC3339)
	}

	repl := g.settingsReplacements(settings)
	repl["TITLE"] = firstNonEmpty(str(a.Title), a.TitleEn, str(defaultArticleTitle))
	repl["DESCRIPTION"] = firstNonEmpty(a.Description, a.DescriptionEn)
	repl["IMAGE"] = firstNonEmpty(a.ImageURL, a.ThumbnailURL)
	repl["URL"] = g.siteURL + "/articles/" + a.Slug
	repl["AUTHOR"] = firstNonEmpty(str(a.Author), str(defaultAuthor))
	repl["PUBLISH_DATE"] = publishedAt.Format(publishDateFormat)
	repl["PUBLISH_DATE_ISO"] = publishDateISO
	repl["MODIFIED_DATE_ISO"] = modifiedDateISO
	repl["CONTENT"] = firstNonEmpty(str(a.Content), a.ContentEn)
	repl["SLUG"] = a.Slug
	repl["ID"] = strconv.FormatInt(a.ID, 10)
	repl["CATEGORY"] = a.Category
	repl["META_TITLE"] = firstNonEmpty(a.MetaTitle, str(a.Title), a.TitleEn)
	repl["META_DESCRIPTION"] = firstNonEmpty(a.MetaDesc, a.Description, a.DescriptionEn)
	repl["META_KEYWORDS"] = firstNonEmpty(a.MetaKeywords)
	return repl
}
