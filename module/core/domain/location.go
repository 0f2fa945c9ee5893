package domain

import "time"

// GeoPoint is a WGS-84 coordinate in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

type Location struct {
	Lat       float64   `json:"latitude"`
	Lon       float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

func (l Location) Point() GeoPoint {
	return GeoPoint{Lat: l.Lat, Lon: l.Lon}
}

type TouristLocation struct {
	TouristID string   `json:"tourist_id"`
	Location  Location `json:"location"`
}

type Tourist struct {
	TouristID string `json:"tourist_id"`
}

type HistoryQuery struct {
	TouristID string
	Start     time.Time
	End       time.Time
}
