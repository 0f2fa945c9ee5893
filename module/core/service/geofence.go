package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/geofence"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/database"
	"github.com/nandanugg/tourist-safety/module/core/internal/repository/publisher"
	"github.com/nandanugg/tourist-safety/observability"
)

type GeofenceService struct {
	repo      database.GeofenceRepository
	alerts    database.AlertRepository
	publisher publisher.AlertPublisher
	clock     clockwork.Clock
	metrics   *observability.Metrics
	logger    *zap.Logger
}

func NewGeofenceService(
	repo database.GeofenceRepository,
	alerts database.AlertRepository,
	pub publisher.AlertPublisher,
	clock clockwork.Clock,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *GeofenceService {
	return &GeofenceService{
		repo:      repo,
		alerts:    alerts,
		publisher: pub,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *GeofenceService) Create(ctx context.Context, gf *domain.Geofence) (*domain.Geofence, error) {
	if gf.ID == "" {
		gf.ID = uuid.NewString()
	}
	if gf.Name == "" {
		return nil, &domain.InvalidZoneError{GeofenceID: gf.ID, Reason: "name is required"}
	}
	if !gf.Classification.Valid() {
		return nil, &domain.InvalidZoneError{GeofenceID: gf.ID, Reason: fmt.Sprintf("unknown classification %q", gf.Classification)}
	}
	if err := geofence.ValidateZone(gf); err != nil {
		return nil, err
	}
	gf.CreatedAt = s.clock.Now().UTC()

	if err := s.repo.Insert(ctx, gf); err != nil {
		return nil, fmt.Errorf("insert geofence: %w", err)
	}
	s.logger.Info("geofence created",
		zap.String("geofence_id", gf.ID),
		zap.String("classification", string(gf.Classification)),
		zap.Float64("radius", gf.Radius),
	)
	return gf, nil
}

func (s *GeofenceService) Get(ctx context.Context, id string) (*domain.Geofence, error) {
	return s.repo.Get(ctx, id)
}

func (s *GeofenceService) List(ctx context.Context) ([]domain.Geofence, error) {
	return s.repo.List(ctx)
}

func (s *GeofenceService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info("geofence toggled", zap.String("geofence_id", id), zap.Bool("active", active))
	return nil
}

func (s *GeofenceService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("geofence deleted", zap.String("geofence_id", id))
	return nil
}

// Evaluate checks point against the currently active zones.
func (s *GeofenceService) Evaluate(ctx context.Context, point domain.GeoPoint) (domain.ContainmentResult, error) {
	result, _, err := s.evaluate(ctx, point)
	return result, err
}

// CheckAndAlert evaluates a tourist fix, then stores and publishes one alert
// per matched zone that has notifications enabled. On failure it returns the
// alerts already handled along with the error.
func (s *GeofenceService) CheckAndAlert(ctx context.Context, tl *domain.TouristLocation) ([]domain.GeofenceAlert, error) {
	result, zones, err := s.evaluate(ctx, tl.Location.Point())
	if err != nil {
		return nil, err
	}

	ts := tl.Location.Timestamp
	if ts.IsZero() {
		ts = s.clock.Now()
	}

	alerts := make([]domain.GeofenceAlert, 0, len(result.Matches))
	for _, m := range result.Matches {
		if !zones[m.GeofenceID].Notify {
			continue
		}
		alert := newAlert(tl, m, ts)
		if err := s.alerts.Insert(ctx, &alert); err != nil {
			return alerts, fmt.Errorf("store alert for geofence %s: %w", m.GeofenceID, err)
		}
		if err := s.publisher.PublishAlert(ctx, &alert); err != nil {
			s.metrics.AlertsPublished.WithLabelValues("error").Inc()
			return alerts, fmt.Errorf("publish alert for geofence %s: %w", m.GeofenceID, err)
		}
		s.metrics.AlertsPublished.WithLabelValues("success").Inc()
		alerts = append(alerts, alert)
	}

	if len(alerts) > 0 {
		s.logger.Info("geofence alerts published",
			zap.String("tourist_id", tl.TouristID),
			zap.Int("count", len(alerts)),
			zap.Bool("hazard", result.InHazard()),
		)
	}
	return alerts, nil
}

func (s *GeofenceService) evaluate(ctx context.Context, point domain.GeoPoint) (domain.ContainmentResult, map[string]domain.Geofence, error) {
	start := time.Now()
	defer func() { s.metrics.EvaluationDuration.Observe(time.Since(start).Seconds()) }()

	if err := geofence.ValidatePoint(point); err != nil {
		s.metrics.Evaluations.WithLabelValues("invalid_point").Inc()
		return domain.ContainmentResult{}, nil, err
	}

	zones, err := s.repo.ListActive(ctx)
	if err != nil {
		s.metrics.Evaluations.WithLabelValues("error").Inc()
		return domain.ContainmentResult{}, nil, fmt.Errorf("load active geofences: %w", err)
	}

	result, err := geofence.Evaluate(point, zones)
	if err != nil {
		var zoneErr *domain.InvalidZoneError
		if errors.As(err, &zoneErr) {
			s.logger.Warn("stored geofence failed validation", zap.String("geofence_id", zoneErr.GeofenceID), zap.Error(err))
			s.metrics.Evaluations.WithLabelValues("invalid_zone").Inc()
		} else {
			s.metrics.Evaluations.WithLabelValues("error").Inc()
		}
		return domain.ContainmentResult{}, nil, err
	}

	s.metrics.Evaluations.WithLabelValues("ok").Inc()
	byID := make(map[string]domain.Geofence, len(zones))
	for _, z := range zones {
		byID[z.ID] = z
	}
	for _, m := range result.Matches {
		s.metrics.Matches.WithLabelValues(string(m.Classification)).Inc()
	}
	return result, byID, nil
}

func newAlert(tl *domain.TouristLocation, m domain.Match, ts time.Time) domain.GeofenceAlert {
	level := domain.AlertInfo
	if m.Classification == domain.Hazard {
		level = domain.AlertWarning
	}
	return domain.GeofenceAlert{
		ID:             uuid.NewString(),
		TouristID:      tl.TouristID,
		GeofenceID:     m.GeofenceID,
		GeofenceName:   m.Name,
		Classification: m.Classification,
		Level:          level,
		Message:        fmt.Sprintf("You are in %s", m.Name),
		Location:       tl.Location,
		Timestamp:      ts.Unix(),
	}
}
