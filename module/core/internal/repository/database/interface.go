package database

import (
	"context"

	"github.com/nandanugg/tourist-safety/module/core/domain"
)

type LocationRepository interface {
	Insert(ctx context.Context, loc *domain.TouristLocation) error
	GetLatest(ctx context.Context, touristID string) (*domain.TouristLocation, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TouristLocation, error)
	GetAllTourists(ctx context.Context) ([]domain.Tourist, error)
}

type GeofenceRepository interface {
	Insert(ctx context.Context, gf *domain.Geofence) error
	Get(ctx context.Context, id string) (*domain.Geofence, error)
	List(ctx context.Context) ([]domain.Geofence, error)
	ListActive(ctx context.Context) ([]domain.Geofence, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type AlertRepository interface {
	Insert(ctx context.Context, alert *domain.GeofenceAlert) error
	Get(ctx context.Context, id string) (*domain.GeofenceAlert, error)
	ListByTourist(ctx context.Context, touristID string) ([]domain.GeofenceAlert, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
