package data

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLSettingsRepository provides access to the site_settings table.
type SQLSettingsRepository struct {
	db *sqlx.DB
}

// NewSQLSettingsRepository creates a new SQLSettingsRepository.
func NewSQLSettingsRepository(db *sqlx.DB) *SQLSettingsRepository {
	return &SQLSettingsRepository{db: db}
}

// GetAllSettings retrieves every settings row.
func (r *SQLSettingsRepository) GetAllSettings(ctx context.Context) ([]*Setting, error) {
	var settings []*Setting
	query := `SELECT id, setting_key, setting_value, setting_type, created_at, updated_at FROM site_settings`
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// UpsertSetting updates a setting by key, inserting the row if it does not
// exist yet. Update-then-insert keeps the statement portable across MySQL and
// SQLite, which disagree on upsert syntax.
func (r *SQLSettingsRepository) UpsertSetting(ctx context.Context, key, value string) error {
	update := `UPDATE site_settings SET setting_value = ?, updated_at = CURRENT_TIMESTAMP WHERE setting_key = ?`
	result, err := r.db.ExecContext(ctx, update, value, key)
	if err != nil {
		return fmt.Errorf("failed to update setting '%s': %w", key, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	insert := `INSERT INTO site_settings (setting_key, setting_value, setting_type) VALUES (?, ?, 'text')`
	if _, err := r.db.ExecContext(ctx, insert, key, value); err != nil {
		return fmt.Errorf("failed to insert setting '%s': %w", key, err)
	}
	return nil
}
