package service

import (
	"context"
	"fmt"

	"kasrah-cms/internal/data"
	"kasrah-cms/internal/logger"
)

// SettingsRepository defines the interface for database operations on site settings.
type SettingsRepository interface {
	GetAllSettings(ctx context.Context) ([]*data.Setting, error)
	UpsertSetting(ctx context.Context, key, value string) error
}

// SettingsRegenerator rebuilds site pages after branding changes.
type SettingsRegenerator interface {
	SettingsChanged(ctx context.Context) (succeeded, failed int, err error)
}

// SettingsServicer defines the interface for reading and updating site settings.
type SettingsServicer interface {
	GetAllSettings(ctx context.Context) (map[string]string, error)
	UpdateSettings(ctx context.Context, values map[string]string) error
}

// SettingsService provides business logic for site settings. Because settings
// feed every rendered page, any update triggers a full regeneration.
type SettingsService struct {
	repo  SettingsRepository
	regen SettingsRegenerator
	log   logger.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo SettingsRepository, regen SettingsRegenerator, log logger.Logger) *SettingsService {
	return &SettingsService{repo: repo, regen: regen, log: log}
}

// GetAllSettings returns all settings as a key/value map.
func (s *SettingsService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	settings, err := s.repo.GetAllSettings(ctx)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}
	return values, nil
}

// UpdateSettings upserts each provided key and then regenerates the site.
// A regeneration failure is logged but does not fail the update; the stored
// values are already durable.
func (s *SettingsService) UpdateSettings(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if err := s.repo.UpsertSetting(ctx, key, value); err != nil {
			return fmt.Errorf("upsert setting %q: %w", key, err)
		}
	}

	succeeded, failed, err := s.regen.SettingsChanged(ctx)
	if err != nil {
		s.log.Error(err, "Site regeneration failed after settings update")
	} else if failed > 0 {
		s.log.Warn(fmt.Sprintf("Settings regeneration finished with %d pages rebuilt, %d failures", succeeded, failed))
	}
	return nil
}
