package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/database"
)

// AlertService serves the per-tourist alert feed.
type AlertService struct {
	repo   database.AlertRepository
	logger *zap.Logger
}

func NewAlertService(repo database.AlertRepository, logger *zap.Logger) *AlertService {
	return &AlertService{repo: repo, logger: logger}
}

func (s *AlertService) ListByTourist(ctx context.Context, touristID string) ([]domain.GeofenceAlert, error) {
	return s.repo.ListByTourist(ctx, touristID)
}

func (s *AlertService) Get(ctx context.Context, id string) (*domain.GeofenceAlert, error) {
	return s.repo.Get(ctx, id)
}

func (s *AlertService) MarkRead(ctx context.Context, id string) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("alert marked read", zap.String("alert_id", id))
	return nil
}

// Dismiss removes an alert from the tourist's feed.
func (s *AlertService) Dismiss(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Debug("alert dismissed", zap.String("alert_id", id))
	return nil
}
