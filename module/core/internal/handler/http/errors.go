package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/tourist-safety/module/core/domain"
)

// writeError maps validation failures to 400 and unknown records to 404.
func writeError(c *gin.Context, err error, fallback string) {
	var pointErr *domain.InvalidPointError
	var zoneErr *domain.InvalidZoneError
	switch {
	case errors.As(err, &pointErr), errors.As(err, &zoneErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrGeofenceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "geofence not found"})
	case errors.Is(err, domain.ErrTouristNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "tourist not found"})
	case errors.Is(err, domain.ErrAlertNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
