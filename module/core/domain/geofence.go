package domain

import "time"

type Classification string

const (
	Safe   Classification = "safe"
	Hazard Classification = "hazard"
)

func (c Classification) Valid() bool {
	return c == Safe || c == Hazard
}

// Geofence is a named circular region. Radius is in meters.
type Geofence struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Center         GeoPoint       `json:"center"`
	Radius         float64        `json:"radius"`
	Classification Classification `json:"classification"`
	Active         bool           `json:"active"`
	Notify         bool           `json:"notify"`
	CreatedAt      time.Time      `json:"created_at"`
}

type Match struct {
	GeofenceID     string         `json:"geofence_id"`
	Name           string         `json:"name"`
	Classification Classification `json:"classification"`
	Distance       float64        `json:"distance"`
}

// ContainmentResult lists the zones containing Point, in the order the
// zones were supplied.
type ContainmentResult struct {
	Point   GeoPoint `json:"point"`
	Matches []Match  `json:"matches"`
}

// InHazard reports whether any matched zone is classified as a hazard.
func (r ContainmentResult) InHazard() bool {
	for _, m := range r.Matches {
		if m.Classification == Hazard {
			return true
		}
	}
	return false
}

type AlertLevel string

const (
	AlertInfo    AlertLevel = "info"
	AlertWarning AlertLevel = "warning"
)

type GeofenceAlert struct {
	ID             string         `json:"id"`
	TouristID      string         `json:"tourist_id"`
	GeofenceID     string         `json:"geofence_id"`
	GeofenceName   string         `json:"geofence"`
	Classification Classification `json:"classification"`
	Level          AlertLevel     `json:"type"`
	Message        string         `json:"message"`
	Location       Location       `json:"location"`
	Timestamp      int64          `json:"timestamp"`
	Read           bool           `json:"is_read"`
}
