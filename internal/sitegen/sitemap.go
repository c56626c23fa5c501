package sitegen

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"kasrah-cms/internal/data"
)

type sitemapURL struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   string   `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// staticRoute is a fixed site page listed ahead of articles in the sitemap.
type staticRoute struct {
	path       string
	changeFreq string
	priority   string
}

var staticRoutes = []staticRoute{
	{"", "daily", "1.0"},
	{"/pages/news/index.html", "daily", "0.9"},
	{"/pages/competitions.html", "weekly", "0.8"},
	{"/pages/favorites.html", "weekly", "0.7"},
	{"/pages/more.html", "monthly", "0.6"},
}

// Categories whose articles get the higher base priority.
var highPriorityCategories = map[string]bool{
	"أخبار":     true,
	"كرة القدم": true,
}

// MaterializeSitemap writes the sitemap: static routes first, then every
// published article with recency-derived priority and change frequency.
// Returns the written file path.
func (g *Generator) MaterializeSitemap(ctx context.Context) (string, error) {
	articles, err := g.articles.ListPublished(ctx, 0)
	if err != nil {
		return "", fmt.Errorf("failed to load articles for sitemap: %w", err)
	}

	now := g.now()
	nowISO := now.UTC().Format(time.RFC3339)

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, r := range staticRoutes {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        g.siteURL + r.path,
			LastMod:    nowISO,
			ChangeFreq: r.changeFreq,
			Priority:   r.priority,
		})
	}
	for _, a := range articles {
		set.URLs = append(set.URLs, g.articleSitemapURL(a, now))
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	out := append([]byte(xml.Header), body...)
	out = append(out, '\n')

	path := g.SitemapFilePath()
	if err := writeFileAtomic(path, out); err != nil {
		return "", fmt.Errorf("failed to write sitemap file: %w", err)
	}

	g.log.Info(fmt.Sprintf("sitemap generated: %d static routes, %d articles", len(staticRoutes), len(articles)))
	return path, nil
}

func (g *Generator) articleSitemapURL(a *data.Article, now time.Time) sitemapURL {
	lastMod := now
	if a.UpdatedAt != nil {
		lastMod = *a.UpdatedAt
	} else if a.PublishedAt != nil {
		lastMod = *a.PublishedAt
	}

	publishedAt := now
	if a.PublishedAt != nil {
		publishedAt = *a.PublishedAt
	}
	ageDays := int(now.Sub(publishedAt).Hours() / 24)

	priority := "0.8"
	if highPriorityCategories[a.Category] {
		priority = "0.9"
	}
	// Older articles step down regardless of category.
	if ageDays > 30 {
		priority = "0.7"
	}
	if ageDays > 90 {
		priority = "0.6"
	}

	changeFreq := "monthly"
	switch {
	case ageDays < 7:
		changeFreq = "daily"
	case ageDays < 30:
		changeFreq = "weekly"
	}

	return sitemapURL{
		Loc:        g.siteURL + "/articles/" + a.Slug + ".html",
		LastMod:    lastMod.UTC().Format(time.RFC3339),
		ChangeFreq: changeFreq,
		Priority:   priority,
	}
}
