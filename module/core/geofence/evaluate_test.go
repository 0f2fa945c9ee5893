package geofence

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandanugg/tourist-safety/module/core/domain"
)

var (
	connaughtPlace = domain.GeoPoint{Lat: 28.6139, Lon: 77.2090}

	hotelZone = domain.Geofence{
		ID:             "1",
		Name:           "Hotel Safe Zone",
		Center:         domain.GeoPoint{Lat: 28.6139, Lon: 77.2090},
		Radius:         500,
		Classification: domain.Safe,
		Active:         true,
	}
	constructionZone = domain.Geofence{
		ID:             "2",
		Name:           "Construction Area",
		Center:         domain.GeoPoint{Lat: 28.6119, Lon: 77.2070},
		Radius:         300,
		Classification: domain.Hazard,
		Active:         true,
	}
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.GeoPoint
		want float64
	}{
		{"same point", connaughtPlace, connaughtPlace, 0},
		{"jakarta 0.0012 deg south", domain.GeoPoint{Lat: -6.2088, Lon: 106.8456}, domain.GeoPoint{Lat: -6.2100, Lon: 106.8456}, 133.43},
		{"new delhi zones", connaughtPlace, constructionZone.Center, 295.93},
		{"equator milli-degree", domain.GeoPoint{Lat: 0, Lon: 0}, domain.GeoPoint{Lat: 0, Lon: 0.001}, 111.19},
		{"antimeridian", domain.GeoPoint{Lat: 0, Lon: 179.999}, domain.GeoPoint{Lat: 0, Lon: -179.999}, 222.39},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), 0.01)
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := domain.GeoPoint{Lat: 51.5007, Lon: -0.1246}
	b := domain.GeoPoint{Lat: 40.6892, Lon: -74.0445}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-6)
}

func TestEvaluate_NewDelhiScenario(t *testing.T) {
	result, err := Evaluate(connaughtPlace, []domain.Geofence{hotelZone, constructionZone})
	require.NoError(t, err)

	require.Len(t, result.Matches, 2)
	assert.Equal(t, connaughtPlace, result.Point)

	assert.Equal(t, "1", result.Matches[0].GeofenceID)
	assert.Equal(t, domain.Safe, result.Matches[0].Classification)
	assert.InDelta(t, 0, result.Matches[0].Distance, 1e-9)

	// ~296m from the construction center, inside its 300m radius
	assert.Equal(t, "2", result.Matches[1].GeofenceID)
	assert.Equal(t, domain.Hazard, result.Matches[1].Classification)
	assert.InDelta(t, 295.93, result.Matches[1].Distance, 0.01)
	assert.True(t, result.InHazard())
}

func TestEvaluate_OutsideRadius(t *testing.T) {
	zone := constructionZone
	zone.Radius = 290

	result, err := Evaluate(connaughtPlace, []domain.Geofence{zone})
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
}

func TestEvaluate_BoundaryIsInside(t *testing.T) {
	zone := constructionZone
	zone.Radius = Distance(connaughtPlace, zone.Center)

	result, err := Evaluate(connaughtPlace, []domain.Geofence{zone})
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, zone.Radius, result.Matches[0].Distance)
}

func TestEvaluate_EmptyZones(t *testing.T) {
	result, err := Evaluate(connaughtPlace, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Matches)
	assert.Empty(t, result.Matches)
}

func TestEvaluate_InactiveSkipped(t *testing.T) {
	zone := hotelZone
	zone.Active = false

	result, err := Evaluate(connaughtPlace, []domain.Geofence{zone, constructionZone})
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "2", result.Matches[0].GeofenceID)
}

func TestEvaluate_InactiveInvalidZoneIgnored(t *testing.T) {
	zone := hotelZone
	zone.Active = false
	zone.Radius = 0

	result, err := Evaluate(connaughtPlace, []domain.Geofence{zone})
	require.NoError(t, err)
	assert.Empty(t, result.Matches)
}

func TestEvaluate_PreservesOrder(t *testing.T) {
	result, err := Evaluate(connaughtPlace, []domain.Geofence{constructionZone, hotelZone})
	require.NoError(t, err)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "2", result.Matches[0].GeofenceID)
	assert.Equal(t, "1", result.Matches[1].GeofenceID)
}

func TestEvaluate_Idempotent(t *testing.T) {
	zones := []domain.Geofence{hotelZone, constructionZone}

	first, err := Evaluate(connaughtPlace, zones)
	require.NoError(t, err)
	second, err := Evaluate(connaughtPlace, zones)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []domain.Geofence{hotelZone, constructionZone}, zones)
}

func TestEvaluate_Antimeridian(t *testing.T) {
	zone := domain.Geofence{
		ID:             "fiji",
		Center:         domain.GeoPoint{Lat: 0, Lon: -179.999},
		Radius:         500,
		Classification: domain.Safe,
		Active:         true,
	}

	result, err := Evaluate(domain.GeoPoint{Lat: 0, Lon: 179.999}, []domain.Geofence{zone})
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.InDelta(t, 222.39, result.Matches[0].Distance, 0.01)
}

func TestEvaluate_InvalidPoint(t *testing.T) {
	tests := []struct {
		name  string
		point domain.GeoPoint
	}{
		{"latitude 95", domain.GeoPoint{Lat: 95, Lon: 0}},
		{"latitude -90.5", domain.GeoPoint{Lat: -90.5, Lon: 0}},
		{"longitude 181", domain.GeoPoint{Lat: 0, Lon: 181}},
		{"NaN", domain.GeoPoint{Lat: math.NaN(), Lon: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.point, []domain.Geofence{hotelZone})
			var pointErr *domain.InvalidPointError
			assert.True(t, errors.As(err, &pointErr), "got %v", err)
		})
	}
}

func TestEvaluate_PoleAndDatelineAreValid(t *testing.T) {
	for _, p := range []domain.GeoPoint{{Lat: 90, Lon: 180}, {Lat: -90, Lon: -180}} {
		_, err := Evaluate(p, nil)
		assert.NoError(t, err)
	}
}

func TestEvaluate_InvalidZone(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(z *domain.Geofence)
	}{
		{"zero radius", func(z *domain.Geofence) { z.Radius = 0 }},
		{"negative radius", func(z *domain.Geofence) { z.Radius = -10 }},
		{"infinite radius", func(z *domain.Geofence) { z.Radius = math.Inf(1) }},
		{"center out of range", func(z *domain.Geofence) { z.Center.Lat = 120 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := constructionZone
			tt.mutate(&bad)

			result, err := Evaluate(connaughtPlace, []domain.Geofence{hotelZone, bad})
			var zoneErr *domain.InvalidZoneError
			require.True(t, errors.As(err, &zoneErr), "got %v", err)
			assert.Equal(t, "2", zoneErr.GeofenceID)
			assert.Empty(t, result.Matches)
		})
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	zones := []domain.Geofence{hotelZone, constructionZone}
	want, err := Evaluate(connaughtPlace, zones)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Evaluate(connaughtPlace, zones)
			assert.NoError(t, err)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
}
