package domain

import (
	"errors"
	"fmt"
)

var (
	ErrGeofenceNotFound = errors.New("geofence not found")
	ErrTouristNotFound  = errors.New("tourist not found")
	ErrAlertNotFound    = errors.New("alert not found")
)

// InvalidPointError is returned when a coordinate is outside WGS-84 range.
type InvalidPointError struct {
	Point  GeoPoint
	Reason string
}

func (e *InvalidPointError) Error() string {
	return fmt.Sprintf("invalid point (%v, %v): %s", e.Point.Lat, e.Point.Lon, e.Reason)
}

// InvalidZoneError is returned for a zone with a non-positive radius or a
// malformed center.
type InvalidZoneError struct {
	GeofenceID string
	Reason     string
}

func (e *InvalidZoneError) Error() string {
	return fmt.Sprintf("invalid geofence %q: %s", e.GeofenceID, e.Reason)
}
