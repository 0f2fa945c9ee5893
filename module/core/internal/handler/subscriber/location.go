package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/geofence"
	"github.com/nandanugg/tourist-safety/observability"
)

const (
	TopicPattern  = "/safety/tourist/+/location"
	handleTimeout = 10 * time.Second
)

type locationService interface {
	SaveLocation(ctx context.Context, tl *domain.TouristLocation) error
}

type geofenceService interface {
	CheckAndAlert(ctx context.Context, tl *domain.TouristLocation) ([]domain.GeofenceAlert, error)
}

type LocationMessage struct {
	TouristID string  `json:"tourist_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

type LocationSubscriber struct {
	client      mqtt.Client
	locationSvc locationService
	geofenceSvc geofenceService
	metrics     *observability.Metrics
	logger      *zap.Logger
}

func NewLocationSubscriber(
	client mqtt.Client,
	locationSvc locationService,
	geofenceSvc geofenceService,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *LocationSubscriber {
	return &LocationSubscriber{
		client:      client,
		locationSvc: locationSvc,
		geofenceSvc: geofenceSvc,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(TopicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	s.metrics.LocationsReceived.Inc()

	var raw LocationMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.metrics.LocationsRejected.Inc()
		s.logger.Warn("invalid location message", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	if err := validateLocationMessage(&raw); err != nil {
		s.metrics.LocationsRejected.Inc()
		s.logger.Warn("location validation failed", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	tl := &domain.TouristLocation{
		TouristID: raw.TouristID,
		Location: domain.Location{
			Lat:       raw.Latitude,
			Lon:       raw.Longitude,
			Accuracy:  raw.Accuracy,
			Timestamp: time.Unix(raw.Timestamp, 0),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := s.locationSvc.SaveLocation(ctx, tl); err != nil {
		s.logger.Error("save location", zap.String("tourist_id", tl.TouristID), zap.Error(err))
		return
	}

	if _, err := s.geofenceSvc.CheckAndAlert(ctx, tl); err != nil {
		s.logger.Error("geofence check", zap.String("tourist_id", tl.TouristID), zap.Error(err))
	}
}

func validateLocationMessage(msg *LocationMessage) error {
	if msg.TouristID == "" {
		return fmt.Errorf("tourist_id: required")
	}
	if err := geofence.ValidatePoint(domain.GeoPoint{Lat: msg.Latitude, Lon: msg.Longitude}); err != nil {
		return err
	}
	if msg.Accuracy < 0 {
		return fmt.Errorf("accuracy: must not be negative")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
