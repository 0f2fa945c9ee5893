package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/cache"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/database"
)

type LocationService struct {
	repo   database.LocationRepository
	cache  cache.LocationCache
	clock  clockwork.Clock
	logger *zap.Logger
}

func NewLocationService(repo database.LocationRepository, c cache.LocationCache, clock clockwork.Clock, logger *zap.Logger) *LocationService {
	return &LocationService{repo: repo, cache: c, clock: clock, logger: logger}
}

// SaveLocation persists the fix and refreshes the last-known point. A fix
// without a timestamp is stamped with the current time. A cache failure is
// logged and does not fail the save.
func (s *LocationService) SaveLocation(ctx context.Context, tl *domain.TouristLocation) error {
	if tl.Location.Timestamp.IsZero() {
		tl.Location.Timestamp = s.clock.Now()
	}
	if err := s.repo.Insert(ctx, tl); err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	if err := s.cache.SetLatest(ctx, tl); err != nil {
		s.logger.Warn("cache latest location", zap.String("tourist_id", tl.TouristID), zap.Error(err))
	}
	return nil
}

func (s *LocationService) GetLatest(ctx context.Context, touristID string) (*domain.TouristLocation, error) {
	tl, err := s.cache.GetLatest(ctx, touristID)
	if err != nil {
		s.logger.Warn("read cached location", zap.String("tourist_id", touristID), zap.Error(err))
	}
	if tl != nil {
		return tl, nil
	}
	return s.repo.GetLatest(ctx, touristID)
}

func (s *LocationService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TouristLocation, error) {
	return s.repo.GetHistory(ctx, query)
}

func (s *LocationService) GetAllTourists(ctx context.Context) ([]domain.Tourist, error) {
	return s.repo.GetAllTourists(ctx)
}
