package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/tourist-safety/module/core/domain"
)

type geofenceService interface {
	Create(ctx context.Context, gf *domain.Geofence) (*domain.Geofence, error)
	Get(ctx context.Context, id string) (*domain.Geofence, error)
	List(ctx context.Context) ([]domain.Geofence, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Evaluate(ctx context.Context, point domain.GeoPoint) (domain.ContainmentResult, error)
}

type createGeofenceRequest struct {
	ID             string                `json:"id"`
	Name           string                `json:"name" binding:"required"`
	Center         *domain.GeoPoint      `json:"center" binding:"required"`
	Radius         float64               `json:"radius"`
	Classification domain.Classification `json:"classification" binding:"required"`
	Active         *bool                 `json:"active"`
	Notify         *bool                 `json:"notify"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type evaluateRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

type GeofenceHandler struct {
	svc geofenceService
}

func NewGeofenceHandler(svc geofenceService) *GeofenceHandler {
	return &GeofenceHandler{svc: svc}
}

func (h *GeofenceHandler) Register(r *gin.RouterGroup) {
	r.GET("/geofences", h.List)
	r.POST("/geofences", h.Create)
	r.POST("/geofences/evaluate", h.Evaluate)
	r.GET("/geofences/:id", h.Get)
	r.PATCH("/geofences/:id/active", h.SetActive)
	r.DELETE("/geofences/:id", h.Delete)
}

func (h *GeofenceHandler) List(c *gin.Context) {
	zones, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch geofences"})
		return
	}
	c.JSON(http.StatusOK, zones)
}

func (h *GeofenceHandler) Get(c *gin.Context) {
	gf, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch geofence")
		return
	}
	c.JSON(http.StatusOK, gf)
}

func (h *GeofenceHandler) Create(c *gin.Context) {
	var req createGeofenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid geofence body"})
		return
	}

	gf := &domain.Geofence{
		ID:             req.ID,
		Name:           req.Name,
		Center:         *req.Center,
		Radius:         req.Radius,
		Classification: req.Classification,
		Active:         boolOr(req.Active, true),
		Notify:         boolOr(req.Notify, true),
	}

	created, err := h.svc.Create(c.Request.Context(), gf)
	if err != nil {
		writeError(c, err, "failed to create geofence")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *GeofenceHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active is required"})
		return
	}

	id := c.Param("id")
	if err := h.svc.SetActive(c.Request.Context(), id, *req.Active); err != nil {
		writeError(c, err, "failed to update geofence")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "active": *req.Active})
}

func (h *GeofenceHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "failed to delete geofence")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GeofenceHandler) Evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}

	result, err := h.svc.Evaluate(c.Request.Context(), domain.GeoPoint{Lat: *req.Latitude, Lon: *req.Longitude})
	if err != nil {
		writeError(c, err, "failed to evaluate geofences")
		return
	}
	c.JSON(http.StatusOK, result)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
