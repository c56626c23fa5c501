package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLAdsRepository provides access to the advertisements table.
type SQLAdsRepository struct {
	db *sqlx.DB
}

// NewSQLAdsRepository creates a new SQLAdsRepository.
func NewSQLAdsRepository(db *sqlx.DB) *SQLAdsRepository {
	return &SQLAdsRepository{db: db}
}

// CreateAd inserts a new advertisement and fills in the database-assigned ID.
func (r *SQLAdsRepository) CreateAd(ctx context.Context, ad *Advertisement) error {
	query := `INSERT INTO advertisements (name, ad_code, position, is_active)
		VALUES (:name, :ad_code, :position, :is_active)`
	res, err := r.db.NamedExecContext(ctx, query, ad)
	if err != nil {
		return fmt.Errorf("failed to create advertisement: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted advertisement id: %w", err)
	}
	ad.ID = id
	return nil
}

// GetAdByID retrieves a single advertisement by its ID.
func (r *SQLAdsRepository) GetAdByID(ctx context.Context, id int64) (*Advertisement, error) {
	var ad Advertisement
	query := `SELECT id, name, ad_code, position, is_active, created_at, updated_at FROM advertisements WHERE id = ?`
	if err := r.db.GetContext(ctx, &ad, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("advertisement with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get advertisement: %w", err)
	}
	return &ad, nil
}

// UpdateAd updates an existing advertisement.
func (r *SQLAdsRepository) UpdateAd(ctx context.Context, ad *Advertisement) error {
	query := `UPDATE advertisements SET name = :name, ad_code = :ad_code, position = :position,
		is_active = :is_active, updated_at = CURRENT_TIMESTAMP WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, ad)
	if err != nil {
		return fmt.Errorf("failed to update advertisement: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update advertisement with id %d: %w", ad.ID, ErrNotFound)
	}
	return nil
}

// DeleteAd removes an advertisement by its ID.
func (r *SQLAdsRepository) DeleteAd(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM advertisements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete advertisement: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("delete advertisement with id %d: %w", id, ErrNotFound)
	}
	return nil
}

// ListAds retrieves every advertisement, newest first.
func (r *SQLAdsRepository) ListAds(ctx context.Context) ([]*Advertisement, error) {
	var ads []*Advertisement
	query := `SELECT id, name, ad_code, position, is_active, created_at, updated_at FROM advertisements ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &ads, query); err != nil {
		return nil, fmt.Errorf("failed to list advertisements: %w", err)
	}
	return ads, nil
}

// ListActiveAds retrieves active advertisements, optionally filtered by position.
func (r *SQLAdsRepository) ListActiveAds(ctx context.Context, position string) ([]*Advertisement, error) {
	var ads []*Advertisement
	query := `SELECT id, name, ad_code, position, is_active, created_at, updated_at FROM advertisements WHERE is_active = TRUE`
	var err error
	if position != "" {
		err = r.db.SelectContext(ctx, &ads, query+` AND position = ?`, position)
	} else {
		err = r.db.SelectContext(ctx, &ads, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list active advertisements: %w", err)
	}
	return ads, nil
}
