package data

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Article represents a single news article in the database. Title, content and
// description carry the primary-language text; the _en columns are optional
// secondary-language overrides. The generated HTML file under the articles
// directory is a derived projection of this row, keyed by Slug.
//
// ContentMarkdown is accepted on writes only: when set, it is rendered to
// HTML into Content before the row is stored. It is never persisted.
type Article struct {
	ID              int64      `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	TitleEn         *string    `db:"title_en" json:"title_en"`
	Slug            string     `db:"slug" json:"slug"`
	Content         string     `db:"content" json:"content"`
	ContentMarkdown string     `db:"-" json:"content_markdown,omitempty"`
	ContentEn       *string    `db:"content_en" json:"content_en"`
	Description     *string    `db:"description" json:"description"`
	DescriptionEn   *string    `db:"description_en" json:"description_en"`
	MetaTitle       *string    `db:"meta_title" json:"meta_title"`
	MetaDesc        *string    `db:"meta_description" json:"meta_description"`
	MetaKeywords    *string    `db:"meta_keywords" json:"meta_keywords"`
	ImageURL        *string    `db:"image_url" json:"image_url"`
	ThumbnailURL    *string    `db:"thumbnail_url" json:"thumbnail_url"`
	Author          string     `db:"author" json:"author"`
	Category        string     `db:"category" json:"category"`
	Language        string     `db:"language" json:"language"`
	IsPublished     bool       `db:"is_published" json:"is_published"`
	PublishedAt     *time.Time `db:"published_at" json:"published_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at"`
}

// Setting is a single site_settings row. The full table folds into a flat
// key/value map consumed by the static-file generators.
type Setting struct {
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"setting_key" json:"setting_key"`
	Value     string    `db:"setting_value" json:"setting_value"`
	Type      string    `db:"setting_type" json:"setting_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Advertisement represents an ad slot payload. Ads are served to the public UI
// straight from the database and never materialized to disk.
type Advertisement struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	AdCode    string    `db:"ad_code" json:"ad_code"`
	Position  string    `db:"position" json:"position"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Ad positions accepted by the advertisements table.
const (
	AdPositionHeader  = "header"
	AdPositionSidebar = "sidebar"
	AdPositionContent = "content"
	AdPositionFooter  = "footer"
)
