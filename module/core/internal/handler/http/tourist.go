package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/tourist-safety/module/core/domain"
	"github.com/nandanugg/tourist-safety/module/core/geofence"
)

type locationService interface {
	SaveLocation(ctx context.Context, tl *domain.TouristLocation) error
	GetLatest(ctx context.Context, touristID string) (*domain.TouristLocation, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TouristLocation, error)
	GetAllTourists(ctx context.Context) ([]domain.Tourist, error)
}

type alertService interface {
	CheckAndAlert(ctx context.Context, tl *domain.TouristLocation) ([]domain.GeofenceAlert, error)
}

type locationResponse struct {
	TouristID string  `json:"tourist_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

type trackRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Accuracy  float64  `json:"accuracy"`
	Timestamp int64    `json:"timestamp"`
}

type trackResponse struct {
	Success  bool                   `json:"success"`
	Location locationResponse       `json:"location"`
	Alerts   []domain.GeofenceAlert `json:"alerts"`
}

type TouristHandler struct {
	locationSvc locationService
	alertSvc    alertService
}

func NewTouristHandler(locationSvc locationService, alertSvc alertService) *TouristHandler {
	return &TouristHandler{locationSvc: locationSvc, alertSvc: alertSvc}
}

func (h *TouristHandler) Register(r *gin.RouterGroup) {
	r.GET("/tourists", h.GetAllTourists)
	r.GET("/tourists/:tourist_id/location", h.GetLatestLocation)
	r.POST("/tourists/:tourist_id/location", h.TrackLocation)
	r.GET("/tourists/:tourist_id/history", h.GetHistory)
}

func (h *TouristHandler) GetAllTourists(c *gin.Context) {
	tourists, err := h.locationSvc.GetAllTourists(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tourists"})
		return
	}
	if tourists == nil {
		tourists = []domain.Tourist{}
	}

	c.JSON(http.StatusOK, tourists)
}

func (h *TouristHandler) GetLatestLocation(c *gin.Context) {
	touristID := c.Param("tourist_id")

	tl, err := h.locationSvc.GetLatest(c.Request.Context(), touristID)
	if err != nil {
		writeError(c, err, "failed to fetch location")
		return
	}

	c.JSON(http.StatusOK, toLocationResponse(tl))
}

// TrackLocation stores a fix reported by the tourist's device and returns
// the geofence alerts it raised.
func (h *TouristHandler) TrackLocation(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	// A zero timestamp is stamped by the location service's clock.
	var ts time.Time
	if req.Timestamp > 0 {
		ts = time.Unix(req.Timestamp, 0)
	}
	tl := &domain.TouristLocation{
		TouristID: c.Param("tourist_id"),
		Location: domain.Location{
			Lat:       *req.Latitude,
			Lon:       *req.Longitude,
			Accuracy:  req.Accuracy,
			Timestamp: ts,
		},
	}

	if err := geofence.ValidatePoint(tl.Location.Point()); err != nil {
		writeError(c, err, "")
		return
	}

	ctx := c.Request.Context()
	if err := h.locationSvc.SaveLocation(ctx, tl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to track location"})
		return
	}

	alerts, err := h.alertSvc.CheckAndAlert(ctx, tl)
	if err != nil {
		writeError(c, err, "failed to evaluate geofences")
		return
	}

	c.JSON(http.StatusOK, trackResponse{
		Success:  true,
		Location: toLocationResponse(tl),
		Alerts:   alerts,
	})
}

func (h *TouristHandler) GetHistory(c *gin.Context) {
	touristID := c.Param("tourist_id")

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		TouristID: touristID,
		Start:     time.Unix(start, 0),
		End:       time.Unix(end, 0),
	}

	locations, err := h.locationSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]locationResponse, len(locations))
	for i, tl := range locations {
		results[i] = toLocationResponse(&tl)
	}
	c.JSON(http.StatusOK, results)
}

func toLocationResponse(tl *domain.TouristLocation) locationResponse {
	return locationResponse{
		TouristID: tl.TouristID,
		Latitude:  tl.Location.Lat,
		Longitude: tl.Location.Lon,
		Accuracy:  tl.Location.Accuracy,
		Timestamp: tl.Location.Timestamp.Unix(),
	}
}
