//go:build integration

package data

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// setupArticleTest creates a new in-memory SQLite database and an article
// repository for testing. It returns the repository and a teardown function
// to be deferred.
func setupArticleTest(t *testing.T) (*SQLArticleRepository, *sqlx.DB, func()) {
	t.Helper()

	// Use a non-shared in-memory database for complete test isolation.
	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}

	schema := `
	CREATE TABLE articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		title_en TEXT,
		slug TEXT UNIQUE NOT NULL,
		content TEXT NOT NULL,
		content_en TEXT,
		description TEXT,
		description_en TEXT,
		meta_title TEXT,
		meta_description TEXT,
		meta_keywords TEXT,
		image_url TEXT,
		thumbnail_url TEXT,
		author TEXT NOT NULL DEFAULT 'كسرة - Kasrah',
		category TEXT NOT NULL DEFAULT 'رياضة',
		language TEXT NOT NULL DEFAULT 'ar',
		is_published BOOLEAN NOT NULL DEFAULT TRUE,
		published_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	db.MustExec(schema)

	repo := NewSQLArticleRepository(db)

	teardown := func() {
		db.Close()
	}

	return repo, db, teardown
}

func testArticle(slug string) *Article {
	return &Article{
		Title:       "عنوان تجريبي",
		Slug:        slug,
		Content:     "<p>محتوى المقال</p>",
		Author:      "كسرة - Kasrah",
		Category:    "رياضة",
		Language:    "ar",
		IsPublished: true,
	}
}

func TestArticleRepository_CreateAndGet(t *testing.T) {
	repo, _, teardown := setupArticleTest(t)
	defer teardown()
	ctx := context.Background()

	a := testArticle("test-article")
	if err := repo.CreateArticle(ctx, a); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if a.ID == 0 {
		t.Fatal("expected CreateArticle to assign an ID")
	}

	got, err := repo.GetArticleByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetArticleByID failed: %v", err)
	}
	if got.Slug != "test-article" {
		t.Errorf("Slug = %q, want %q", got.Slug, "test-article")
	}
	if got.Title != a.Title {
		t.Errorf("Title = %q, want %q", got.Title, a.Title)
	}

	bySlug, err := repo.GetArticleBySlug(ctx, "test-article")
	if err != nil {
		t.Fatalf("GetArticleBySlug failed: %v", err)
	}
	if bySlug.ID != a.ID {
		t.Errorf("ID = %d, want %d", bySlug.ID, a.ID)
	}
}

func TestArticleRepository_GetBySlugExcludesUnpublished(t *testing.T) {
	repo, _, teardown := setupArticleTest(t)
	defer teardown()
	ctx := context.Background()

	a := testArticle("draft-article")
	a.IsPublished = false
	if err := repo.CreateArticle(ctx, a); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	if _, err := repo.GetArticleBySlug(ctx, "draft-article"); err == nil {
		t.Error("expected GetArticleBySlug to fail for an unpublished article")
	}
}

func TestArticleRepository_Update(t *testing.T) {
	repo, _, teardown := setupArticleTest(t)
	defer teardown()
	ctx := context.Background()

	a := testArticle("original-slug")
	if err := repo.CreateArticle(ctx, a); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	a.Slug = "renamed-slug"
	a.Title = "عنوان محدث"
	if err := repo.UpdateArticle(ctx, a); err != nil {
		t.Fatalf("UpdateArticle failed: %v", err)
	}

	got, err := repo.GetArticleByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetArticleByID failed: %v", err)
	}
	if got.Slug != "renamed-slug" {
		t.Errorf("Slug = %q, want %q", got.Slug, "renamed-slug")
	}
	if got.Title != "عنوان محدث" {
		t.Errorf("Title = %q, want %q", got.Title, "عنوان محدث")
	}

	missing := testArticle("missing")
	missing.ID = 9999
	if err := repo.UpdateArticle(ctx, missing); err == nil {
		t.Error("expected UpdateArticle to fail for a missing id")
	}
}

func TestArticleRepository_Delete(t *testing.T) {
	repo, _, teardown := setupArticleTest(t)
	defer teardown()
	ctx := context.Background()

	a := testArticle("to-delete")
	if err := repo.CreateArticle(ctx, a); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if err := repo.DeleteArticle(ctx, a.ID); err != nil {
		t.Fatalf("DeleteArticle failed: %v", err)
	}
	if _, err := repo.GetArticleByID(ctx, a.ID); err == nil {
		t.Error("expected GetArticleByID to fail after delete")
	}
	if err := repo.DeleteArticle(ctx, a.ID); err == nil {
		t.Error("expected DeleteArticle to fail for a missing id")
	}
}

func TestArticleRepository_ListPublished(t *testing.T) {
	repo, db, teardown := setupArticleTest(t)
	defer teardown()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, slug := range []string{"oldest", "middle", "newest"} {
		a := testArticle(slug)
		if err := repo.CreateArticle(ctx, a); err != nil {
			t.Fatalf("CreateArticle failed: %v", err)
		}
		db.MustExec(`UPDATE articles SET published_at = ? WHERE id = ?`, base.AddDate(0, 0, i), a.ID)
	}
	draft := testArticle("unpublished")
	draft.IsPublished = false
	if err := repo.CreateArticle(ctx, draft); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	published, err := repo.ListPublished(ctx, 0)
	if err != nil {
		t.Fatalf("ListPublished failed: %v", err)
	}
	if len(published) != 3 {
		t.Fatalf("expected 3 published articles, got %d", len(published))
	}
	if published[0].Slug != "newest" || published[2].Slug != "oldest" {
		t.Errorf("expected newest-first ordering, got %q..%q", published[0].Slug, published[2].Slug)
	}

	limited, err := repo.ListPublished(ctx, 2)
	if err != nil {
		t.Fatalf("ListPublished with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 articles with limit, got %d", len(limited))
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 articles in ListAll, got %d", len(all))
	}
}

func TestArticleRepository_ListPublishedFiltered(t *testing.T) {
	repo, _, teardown := setupArticleTest(t)
	defer teardown()
	ctx := context.Background()

	news := testArticle("news-article")
	news.Category = "أخبار"
	if err := repo.CreateArticle(ctx, news); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	sport := testArticle("sport-article")
	if err := repo.CreateArticle(ctx, sport); err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}

	filtered, err := repo.ListPublishedFiltered(ctx, "أخبار", 0, 0)
	if err != nil {
		t.Fatalf("ListPublishedFiltered failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Slug != "news-article" {
		t.Errorf("expected only the news article, got %d results", len(filtered))
	}

	excluded, err := repo.ListPublishedFiltered(ctx, "", news.ID, 0)
	if err != nil {
		t.Fatalf("ListPublishedFiltered with exclude failed: %v", err)
	}
	if len(excluded) != 1 || excluded[0].ID == news.ID {
		t.Errorf("expected the news article to be excluded")
	}
}
