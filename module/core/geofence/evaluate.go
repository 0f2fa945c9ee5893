// Package geofence evaluates circular geofence containment for a point.
//
// A point on the boundary (distance == radius) is inside: zones are closed
// disks. Evaluate holds no state and is safe for concurrent use.
package geofence

import (
	"math"

	"github.com/nandanugg/tourist-safety/module/core/domain"
)

const EarthRadiusMeters = 6371000

// Evaluate returns the active zones containing point, in the order given.
// The point and every active zone are validated before any distance is
// computed, so a validation failure never yields a partial result.
func Evaluate(point domain.GeoPoint, zones []domain.Geofence) (domain.ContainmentResult, error) {
	if err := ValidatePoint(point); err != nil {
		return domain.ContainmentResult{}, err
	}
	for i := range zones {
		if !zones[i].Active {
			continue
		}
		if err := ValidateZone(&zones[i]); err != nil {
			return domain.ContainmentResult{}, err
		}
	}

	result := domain.ContainmentResult{Point: point, Matches: []domain.Match{}}
	for _, z := range zones {
		if !z.Active {
			continue
		}
		dist := Distance(point, z.Center)
		if dist <= z.Radius {
			result.Matches = append(result.Matches, domain.Match{
				GeofenceID:     z.ID,
				Name:           z.Name,
				Classification: z.Classification,
				Distance:       dist,
			})
		}
	}
	return result, nil
}

// Distance is the haversine great-circle distance in meters.
func Distance(a, b domain.GeoPoint) float64 {
	phi1 := toRad(a.Lat)
	phi2 := toRad(b.Lat)
	dPhi := toRad(b.Lat - a.Lat)
	dLambda := toRad(b.Lon - a.Lon)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func ValidatePoint(p domain.GeoPoint) error {
	switch {
	case math.IsNaN(p.Lat) || math.IsNaN(p.Lon):
		return &domain.InvalidPointError{Point: p, Reason: "coordinate is NaN"}
	case p.Lat < -90 || p.Lat > 90:
		return &domain.InvalidPointError{Point: p, Reason: "latitude must be between -90 and 90"}
	case p.Lon < -180 || p.Lon > 180:
		return &domain.InvalidPointError{Point: p, Reason: "longitude must be between -180 and 180"}
	}
	return nil
}

func ValidateZone(z *domain.Geofence) error {
	if math.IsNaN(z.Radius) || math.IsInf(z.Radius, 0) || z.Radius <= 0 {
		return &domain.InvalidZoneError{GeofenceID: z.ID, Reason: "radius must be a positive number of meters"}
	}
	if err := ValidatePoint(z.Center); err != nil {
		return &domain.InvalidZoneError{GeofenceID: z.ID, Reason: "center: " + err.Error()}
	}
	return nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
