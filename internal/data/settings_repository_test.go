//go:build integration

package data

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

func setupSettingsTest(t *testing.T) (*SQLSettingsRepository, func()) {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	if err != nil {
		t.Fatalf("Failed to connect to sqlite test database: %v", err)
	}

	schema := `
	CREATE TABLE site_settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		setting_key TEXT UNIQUE NOT NULL,
		setting_value TEXT,
		setting_type TEXT NOT NULL DEFAULT 'text',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	db.MustExec(schema)

	repo := NewSQLSettingsRepository(db)
	teardown := func() { db.Close() }
	return repo, teardown
}

func TestSettingsRepository_UpsertInsertsThenUpdates(t *testing.T) {
	repo, teardown := setupSettingsTest(t)
	defer teardown()
	ctx := context.Background()

	if err := repo.UpsertSetting(ctx, "primary_color", "#1e3a8a"); err != nil {
		t.Fatalf("UpsertSetting insert failed: %v", err)
	}
	if err := repo.UpsertSetting(ctx, "primary_color", "#ff0000"); err != nil {
		t.Fatalf("UpsertSetting update failed: %v", err)
	}
	if err := repo.UpsertSetting(ctx, "site_name", "كسرة"); err != nil {
		t.Fatalf("UpsertSetting second key failed: %v", err)
	}

	settings, err := repo.GetAllSettings(ctx)
	if err != nil {
		t.Fatalf("GetAllSettings failed: %v", err)
	}
	if len(settings) != 2 {
		t.Fatalf("expected 2 settings rows, got %d", len(settings))
	}

	values := map[string]string{}
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	if values["primary_color"] != "#ff0000" {
		t.Errorf("primary_color = %q, want %q", values["primary_color"], "#ff0000")
	}
	if values["site_name"] != "كسرة" {
		t.Errorf("site_name = %q, want %q", values["site_name"], "كسرة")
	}
}
