package sitegen

import (
	"context"
	"fmt"
	"strings"

	"kasrah-cms/internal/data"
	"kasrah-cms/internal/render"
)

const indexTemplateName = "index-template.html"

// homepageArticleCount is the number of most-recent published articles shown
// on the homepage.
const homepageArticleCount = 10

// placeholderThumbnail is shown for articles without any image.
const placeholderThumbnail = "https://via.placeholder.com/400x250/1e3a8a/ffffff?text=كسرة"

// articleCardTemplate is the repeating fragment rendered once per homepage
// article and concatenated into {{ARTICLES_HTML}}.
const articleCardTemplate = `        <div class="article-card" onclick="window.location.href='/articles/{{SLUG}}.html'">
            <div class="article-image">
                <img src="{{THUMBNAIL}}" alt="{{TITLE}}" loading="lazy">
            </div>
            <div class="article-content">
                <h3 class="article-title">{{TITLE}}</h3>
                <p class="article-description">{{DESCRIPTION}}</p>
                <div class="article-meta">
                    <span class="article-author">من: {{AUTHOR}}</span>
                    <span class="article-date">{{PUBLISH_DATE}}</span>
                </div>
            </div>
        </div>
`

// MaterializeHomepage renders the homepage from the most recent published
// articles and the current settings, overwriting the index file. Returns the
// written file path.
func (g *Generator) MaterializeHomepage(ctx context.Context) (string, error) {
	settings := g.siteSettings(ctx)

	articles, err := g.articles.ListPublished(ctx, homepageArticleCount)
	if err != nil {
		return "", fmt.Errorf("failed to load homepage articles: %w", err)
	}

	tmpl, err := g.loadTemplate(indexTemplateName)
	if err != nil {
		return "", err
	}

	var cards strings.Builder
	for _, a := range articles {
		cards.WriteString(render.Render(articleCardTemplate, g.cardReplacements(a)))
	}

	repl := g.settingsReplacements(settings)
	repl["ARTICLES_HTML"] = cards.String()

	path := g.HomepageFilePath()
	out := render.Render(tmpl, repl)
	if err := writeFileAtomic(path, []byte(out)); err != nil {
		return "", fmt.Errorf("failed to write homepage file: %w", err)
	}
	return path, nil
}

func (g *Generator) cardReplacements(a *data.Article) map[string]string {
	publishedAt := g.now()
	if a.PublishedAt != nil {
		publishedAt = *a.PublishedAt
	}
	return map[string]string{
		"SLUG":         a.Slug,
		"TITLE":        a.Title,
		"DESCRIPTION":  firstNonEmpty(a.Description),
		"THUMBNAIL":    firstNonEmpty(a.ThumbnailURL, a.ImageURL, str(placeholderThumbnail)),
		"AUTHOR":       firstNonEmpty(str(a.Author), str(defaultAuthor)),
		"PUBLISH_DATE": publishedAt.Format(publishDateFormat),
	}
}
