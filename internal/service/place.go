package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/obrandt/wayplan/internal/domain"
	"github.com/obrandt/wayplan/internal/repo"
)

// PlaceService implements business logic for durable Place records.
type PlaceService struct {
	places repo.PlaceRepo
}

// NewPlaceService constructs a PlaceService backed by the provided PlaceRepo.
func NewPlaceService(places repo.PlaceRepo) *PlaceService {
	return &PlaceService{places: places}
}

// Create validates and persists a new place.
func (s *PlaceService) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	if strings.TrimSpace(place.Name) == "" {
		return domain.Place{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if place.Lat < -90 || place.Lat > 90 || place.Lng < -180 || place.Lng > 180 {
		return domain.Place{}, fmt.Errorf("%w: coordinates out of range", domain.ErrValidation)
	}
	result, err := s.places.Create(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single place by ID.
func (s *PlaceService) GetByID(ctx context.Context, id int64) (domain.Place, error) {
	result, err := s.places.GetByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all places ordered by name.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlaceService) List(ctx context.Context) ([]domain.Place, error) {
	places, err := s.places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PlaceService.List: %w", err)
	}
	if places == nil {
		return []domain.Place{}, nil
	}
	return places, nil
}
