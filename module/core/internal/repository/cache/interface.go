package cache

import (
	"context"

	"github.com/nandanugg/tourist-safety/module/core/domain"
)

// LocationCache holds the last known fix per tourist. Get returns
// (nil, nil) on a miss.
type LocationCache interface {
	SetLatest(ctx context.Context, loc *domain.TouristLocation) error
	GetLatest(ctx context.Context, touristID string) (*domain.TouristLocation, error)
}
