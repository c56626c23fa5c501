package service

import (
	"context"
	"errors"
	"strings"

	"kasrah-cms/internal/data"
)

// ErrAdNotFound is returned when no advertisement matches the given ID.
var ErrAdNotFound = errors.New("advertisement not found")

// ErrInvalidAdPosition is returned for positions outside the known set.
var ErrInvalidAdPosition = errors.New("invalid advertisement position")

// AdsRepository defines the interface for database operations on advertisements.
type AdsRepository interface {
	CreateAd(ctx context.Context, ad *data.Advertisement) error
	GetAdByID(ctx context.Context, id int64) (*data.Advertisement, error)
	UpdateAd(ctx context.Context, ad *data.Advertisement) error
	DeleteAd(ctx context.Context, id int64) error
	ListAds(ctx context.Context) ([]*data.Advertisement, error)
	ListActiveAds(ctx context.Context, position string) ([]*data.Advertisement, error)
}

// AdsServicer defines the interface for managing advertisements.
type AdsServicer interface {
	CreateAd(ctx context.Context, ad *data.Advertisement) (*data.Advertisement, error)
	UpdateAd(ctx context.Context, ad *data.Advertisement) (*data.Advertisement, error)
	DeleteAd(ctx context.Context, id int64) error
	ListAds(ctx context.Context) ([]*data.Advertisement, error)
	ListActiveAds(ctx context.Context, position string) ([]*data.Advertisement, error)
}

// AdsService provides business logic for managing advertisements.
type AdsService struct {
	repo AdsRepository
}

// NewAdsService creates a new AdsService with the given repository.
func NewAdsService(repo AdsRepository) *AdsService {
	return &AdsService{repo: repo}
}

// CreateAd validates and stores a new advertisement.
func (s *AdsService) CreateAd(ctx context.Context, ad *data.Advertisement) (*data.Advertisement, error) {
	if err := validateAd(ad); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAd(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// UpdateAd validates and stores changes to an existing advertisement.
func (s *AdsService) UpdateAd(ctx context.Context, ad *data.Advertisement) (*data.Advertisement, error) {
	if err := validateAd(ad); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetAdByID(ctx, ad.ID); err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrAdNotFound
		}
		return nil, err
	}
	if err := s.repo.UpdateAd(ctx, ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// DeleteAd removes an advertisement.
func (s *AdsService) DeleteAd(ctx context.Context, id int64) error {
	return s.repo.DeleteAd(ctx, id)
}

// ListAds returns every advertisement including inactive ones.
func (s *AdsService) ListAds(ctx context.Context) ([]*data.Advertisement, error) {
	return s.repo.ListAds(ctx)
}

// ListActiveAds returns active advertisements, optionally filtered by position.
func (s *AdsService) ListActiveAds(ctx context.Context, position string) ([]*data.Advertisement, error) {
	if position != "" && !validAdPosition(position) {
		return nil, ErrInvalidAdPosition
	}
	return s.repo.ListActiveAds(ctx, position)
}

func validateAd(ad *data.Advertisement) error {
	if strings.TrimSpace(ad.Name) == "" {
		return errors.New("advertisement name is required")
	}
	if !validAdPosition(ad.Position) {
		return ErrInvalidAdPosition
	}
	return nil
}

func validAdPosition(position string) bool {
	switch position {
	case data.AdPositionHeader, data.AdPositionSidebar, data.AdPositionContent, data.AdPositionFooter:
		return true
	}
	return false
}
