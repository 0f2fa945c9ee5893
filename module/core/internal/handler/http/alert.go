package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/tourist-safety/module/core/domain"
)

type alertFeedService interface {
	ListByTourist(ctx context.Context, touristID string) ([]domain.GeofenceAlert, error)
	Get(ctx context.Context, id string) (*domain.GeofenceAlert, error)
	MarkRead(ctx context.Context, id string) error
	Dismiss(ctx context.Context, id string) error
}

// AlertHandler exposes the stored geofence alerts a tourist's app polls.
type AlertHandler struct {
	svc alertFeedService
}

func NewAlertHandler(svc alertFeedService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

func (h *AlertHandler) Register(r *gin.RouterGroup) {
	r.GET("/tourists/:tourist_id/alerts", h.ListByTourist)
	r.GET("/alerts/:id", h.Get)
	r.POST("/alerts/:id/read", h.MarkRead)
	r.DELETE("/alerts/:id", h.Dismiss)
}

func (h *AlertHandler) ListByTourist(c *gin.Context) {
	alerts, err := h.svc.ListByTourist(c.Request.Context(), c.Param("tourist_id"))
	if err != nil {
		writeError(c, err, "failed to fetch alerts")
		return
	}
	if alerts == nil {
		alerts = []domain.GeofenceAlert{}
	}

	c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandler) Get(c *gin.Context) {
	alert, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch alert")
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (h *AlertHandler) MarkRead(c *gin.Context) {
	if err := h.svc.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "failed to update alert")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AlertHandler) Dismiss(c *gin.Context) {
	if err := h.svc.Dismiss(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, "failed to dismiss alert")
		return
	}

	c.Status(http.StatusNoContent)
}
