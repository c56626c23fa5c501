package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const articleColumns = `id, title, title_en, slug, content, content_en, description, description_en,
	meta_title, meta_description, meta_keywords, image_url, thumbnail_url,
	author, category, language, is_published, published_at, updated_at`

// SQLArticleRepository is a concrete implementation of the ArticleRepository interface using sqlx.
type SQLArticleRepository struct {
	db *sqlx.DB
}

// NewSQLArticleRepository creates a new SQLArticleRepository.
func NewSQLArticleRepository(db *sqlx.DB) *SQLArticleRepository {
	return &SQLArticleRepository{db: db}
}

// CreateArticle inserts a new article and fills in the database-assigned ID.
// Note: MySQL does not support a RETURNING clause, so the ID comes from
// LastInsertId and the timestamp columns keep their database defaults.
func (r *SQLArticleRepository) CreateArticle(ctx context.Context, a *Article) error {
	query := `INSERT INTO articles (title, title_en, slug, content, content_en, description, description_en,
		meta_title, meta_description, meta_keywords, image_url, thumbnail_url,
		author, category, language, is_published)
		VALUES (:title, :title_en, :slug, :content, :content_en, :description, :description_en,
		:meta_title, :meta_description, :meta_keywords, :image_url, :thumbnail_url,
		:author, :category, :language, :is_published)`
	res, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return fmt.Errorf("failed to execute create article query: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted article id: %w", err)
	}
	a.ID = id
	return nil
}

// GetArticleByID retrieves a single article by its ID.
func (r *SQLArticleRepository) GetArticleByID(ctx context.Context, id int64) (*Article, error) {
	var a Article
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = ?`
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("article with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by id: %w", err)
	}
	return &a, nil
}

// GetArticleBySlug retrieves a single published article by its slug.
func (r *SQLArticleRepository) GetArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	var a Article
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = ? AND is_published = TRUE`
	if err := r.db.GetContext(ctx, &a, query, slug); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("article with slug %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}
	return &a, nil
}

// UpdateArticle updates an existing article. The updated_at column is set to
// the current database time.
func (r *SQLArticleRepository) UpdateArticle(ctx context.Context, a *Article) error {
	query := `UPDATE articles SET title = :title, title_en = :title_en, slug = :slug,
		content = :content, content_en = :content_en, description = :description, description_en = :description_en,
		meta_title = :meta_title, meta_description = :meta_description, meta_keywords = :meta_keywords,
		image_url = :image_url, thumbnail_url = :thumbnail_url,
		author = :author, category = :category, language = :language, is_published = :is_published,
		updated_at = CURRENT_TIMESTAMP WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return fmt.Errorf("failed to update article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update article with id %d: %w", a.ID, ErrNotFound)
	}
	return nil
}

// DeleteArticle removes an article by its ID.
func (r *SQLArticleRepository) DeleteArticle(ctx context.Context, id int64) error {
	query := `DELETE FROM articles WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("delete article with id %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListPublished retrieves published articles ordered by publish date, newest
// first. limit <= 0 means no limit.
func (r *SQLArticleRepository) ListPublished(ctx context.Context, limit int) ([]*Article, error) {
	var articles []*Article
	query := `SELECT ` + articleColumns + ` FROM articles WHERE is_published = TRUE ORDER BY published_at DESC`
	var err error
	if limit > 0 {
		err = r.db.SelectContext(ctx, &articles, query+` LIMIT ?`, limit)
	} else {
		err = r.db.SelectContext(ctx, &articles, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list published articles: %w", err)
	}
	return articles, nil
}

// ListAll retrieves every article, published or not, newest first.
func (r *SQLArticleRepository) ListAll(ctx context.Context) ([]*Article, error) {
	var articles []*Article
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY published_at DESC`
	if err := r.db.SelectContext(ctx, &articles, query); err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, nil
}

// ListPublishedFiltered retrieves published articles with optional category
// filter, exclusion of one article ID, and a row limit, for the public
// listing API.
func (r *SQLArticleRepository) ListPublishedFiltered(ctx context.Context, category string, excludeID int64, limit int) ([]*Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE is_published = TRUE`
	args := []interface{}{}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	if excludeID > 0 {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}
	query += ` ORDER BY published_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	var articles []*Article
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list filtered articles: %w", err)
	}
	return articles, nil
}
