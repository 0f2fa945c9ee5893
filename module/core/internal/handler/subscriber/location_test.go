package subscriber

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/observability"
)

type mockLocationSvc struct {
	saveLocationFn func(ctx context.Context, tl *domain.TouristLocation) error
}

func (m *mockLocationSvc) SaveLocation(ctx context.Context, tl *domain.TouristLocation) error {
	return m.saveLocationFn(ctx, tl)
}

type mockGeofenceSvc struct {
	checkAndAlertFn func(ctx context.Context, tl *domain.TouristLocation) ([]domain.GeofenceAlert, error)
}

func (m *mockGeofenceSvc) CheckAndAlert(ctx context.Context, tl *domain.TouristLocation) ([]domain.GeofenceAlert, error) {
	return m.checkAndAlertFn(ctx, tl)
}

type fakeMQTTMessage struct {
	payload []byte
}

func (f *fakeMQTTMessage) Duplicate() bool   { return false }
func (f *fakeMQTTMessage) Qos() byte         { return 0 }
func (f *fakeMQTTMessage) Retained() bool    { return false }
func (f *fakeMQTTMessage) Topic() string     { return "/safety/tourist/T-1001/location" }
func (f *fakeMQTTMessage) MessageID() uint16 { return 0 }
func (f *fakeMQTTMessage) Payload() []byte   { return f.payload }
func (f *fakeMQTTMessage) Ack()              {}

func newTestSubscriber(locSvc locationService, geoSvc geofenceService) (*LocationSubscriber, *observability.Metrics) {
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	return NewLocationSubscriber(nil, locSvc, geoSvc, metrics, zap.NewNop()), metrics
}

func TestHandleMessage_Success(t *testing.T) {
	var saved *domain.TouristLocation
	var checked *domain.TouristLocation

	locSvc := &mockLocationSvc{
		saveLocationFn: func(_ context.Context, tl *domain.TouristLocation) error {
			saved = tl
			return nil
		},
	}
	geoSvc := &mockGeofenceSvc{
		checkAndAlertFn: func(_ context.Context, tl *domain.TouristLocation) ([]domain.GeofenceAlert, error) {
			checked = tl
			return nil, nil
		},
	}

	sub, metrics := newTestSubscriber(locSvc, geoSvc)

	msg := LocationMessage{
		TouristID: "T-1001",
		Latitude:  28.6139,
		Longitude: 77.209,
		Accuracy:  15,
		Timestamp: 1715003456,
	}
	payload, _ := json.Marshal(msg)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})

	if saved == nil {
		t.Fatal("expected SaveLocation to be called")
	}
	if saved.TouristID != "T-1001" {
		t.Errorf("expected T-1001, got %s", saved.TouristID)
	}
	if saved.Location.Lat != 28.6139 {
		t.Errorf("expected 28.6139, got %f", saved.Location.Lat)
	}
	if saved.Location.Accuracy != 15 {
		t.Errorf("expected accuracy 15, got %f", saved.Location.Accuracy)
	}
	expectedTs := time.Unix(1715003456, 0)
	if !saved.Location.Timestamp.Equal(expectedTs) {
		t.Errorf("expected %v, got %v", expectedTs, saved.Location.Timestamp)
	}
	if checked == nil {
		t.Fatal("expected CheckAndAlert to be called")
	}
	if got := testutil.ToFloat64(metrics.LocationsReceived); got != 1 {
		t.Errorf("expected 1 received, got %v", got)
	}
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	locSvc := &mockLocationSvc{
		saveLocationFn: func(_ context.Context, _ *domain.TouristLocation) error {
			t.Fatal("SaveLocation should not be called")
			return nil
		},
	}

	sub, metrics := newTestSubscriber(locSvc, &mockGeofenceSvc{})
	sub.handleMessage(nil, &fakeMQTTMessage{payload: []byte("invalid")})

	if got := testutil.ToFloat64(metrics.LocationsRejected); got != 1 {
		t.Errorf("expected 1 rejected, got %v", got)
	}
}

func TestHandleMessage_ValidationError(t *testing.T) {
	locSvc := &mockLocationSvc{
		saveLocationFn: func(_ context.Context, _ *domain.TouristLocation) error {
			t.Fatal("SaveLocation should not be called")
			return nil
		},
	}

	sub, _ := newTestSubscriber(locSvc, &mockGeofenceSvc{})

	// empty tourist_id
	msg := LocationMessage{Latitude: 28.6, Longitude: 77.2, Timestamp: 1715003456}
	payload, _ := json.Marshal(msg)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})
}

func TestHandleMessage_SaveError_SkipsGeofence(t *testing.T) {
	locSvc := &mockLocationSvc{
		saveLocationFn: func(_ context.Context, _ *domain.TouristLocation) error {
			return errors.New("db error")
		},
	}
	geoSvc := &mockGeofenceSvc{
		checkAndAlertFn: func(_ context.Context, _ *domain.TouristLocation) ([]domain.GeofenceAlert, error) {
			t.Fatal("CheckAndAlert should not be called when save fails")
			return nil, nil
		},
	}

	sub, _ := newTestSubscriber(locSvc, geoSvc)

	msg := LocationMessage{TouristID: "T-1001", Latitude: 28.6, Longitude: 77.2, Timestamp: 1715003456}
	payload, _ := json.Marshal(msg)
	sub.handleMessage(nil, &fakeMQTTMessage{payload: payload})
}

func TestValidateLocationMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     LocationMessage
		wantErr bool
	}{
		{"valid", LocationMessage{TouristID: "X", Latitude: 0, Longitude: 0, Timestamp: 1}, false},
		{"poles and dateline", LocationMessage{TouristID: "X", Latitude: -90, Longitude: 180, Timestamp: 1}, false},
		{"empty tourist_id", LocationMessage{Latitude: 0, Longitude: 0, Timestamp: 1}, true},
		{"lat too low", LocationMessage{TouristID: "X", Latitude: -91, Longitude: 0, Timestamp: 1}, true},
		{"lat too high", LocationMessage{TouristID: "X", Latitude: 95, Longitude: 0, Timestamp: 1}, true},
		{"lon too low", LocationMessage{TouristID: "X", Latitude: 0, Longitude: -181, Timestamp: 1}, true},
		{"lon too high", LocationMessage{TouristID: "X", Latitude: 0, Longitude: 181, Timestamp: 1}, true},
		{"negative accuracy", LocationMessage{TouristID: "X", Accuracy: -1, Timestamp: 1}, true},
		{"zero timestamp", LocationMessage{TouristID: "X", Latitude: 0, Longitude: 0, Timestamp: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLocationMessage(&tt.msg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLocationMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
