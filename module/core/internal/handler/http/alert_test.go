package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandanugg/tourist-safety/module/core/domain"
)

type fakeAlertFeed struct {
	alerts  []domain.GeofenceAlert
	listErr error
}

func (f *fakeAlertFeed) ListByTourist(_ context.Context, touristID string) ([]domain.GeofenceAlert, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.GeofenceAlert
	for _, a := range f.alerts {
		if a.TouristID == touristID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAlertFeed) Get(_ context.Context, id string) (*domain.GeofenceAlert, error) {
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			return &f.alerts[i], nil
		}
	}
	return nil, domain.ErrAlertNotFound
}

func (f *fakeAlertFeed) MarkRead(_ context.Context, id string) error {
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			f.alerts[i].Read = true
			return nil
		}
	}
	return domain.ErrAlertNotFound
}

func (f *fakeAlertFeed) Dismiss(_ context.Context, id string) error {
	for i := range f.alerts {
		if f.alerts[i].ID == id {
			f.alerts = append(f.alerts[:i], f.alerts[i+1:]...)
			return nil
		}
	}
	return domain.ErrAlertNotFound
}

func setupAlertRouter(svc alertFeedService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAlertHandler(svc).Register(r.Group(""))
	return r
}

func TestAlertFeed_ListAndMarkRead(t *testing.T) {
	feed := &fakeAlertFeed{alerts: []domain.GeofenceAlert{
		{ID: "a-1", TouristID: "T-1001", GeofenceName: "Construction Area", Level: domain.AlertWarning, Timestamp: 1715003456},
		{ID: "a-2", TouristID: "T-2002", GeofenceName: "Hotel Safe Zone", Level: domain.AlertInfo, Timestamp: 1715003400},
	}}
	r := setupAlertRouter(feed)

	w := doJSON(r, "GET", "/tourists/T-1001/alerts", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "a-1", listed[0]["id"])
	assert.Equal(t, "warning", listed[0]["type"])
	assert.Equal(t, false, listed[0]["is_read"])

	w = doJSON(r, "POST", "/alerts/a-1/read", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, "GET", "/alerts/a-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.GeofenceAlert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Read)
}

func TestAlertFeed_Dismiss(t *testing.T) {
	feed := &fakeAlertFeed{alerts: []domain.GeofenceAlert{{ID: "a-1", TouristID: "T-1001"}}}
	r := setupAlertRouter(feed)

	require.Equal(t, http.StatusNoContent, doJSON(r, "DELETE", "/alerts/a-1", "").Code)
	assert.Empty(t, feed.alerts)
	assert.Equal(t, http.StatusNotFound, doJSON(r, "DELETE", "/alerts/a-1", "").Code)
}

func TestAlertFeed_EmptyListIsArray(t *testing.T) {
	r := setupAlertRouter(&fakeAlertFeed{})

	w := doJSON(r, "GET", "/tourists/T-9999/alerts", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAlertFeed_UnknownAlert(t *testing.T) {
	r := setupAlertRouter(&fakeAlertFeed{})

	assert.Equal(t, http.StatusNotFound, doJSON(r, "POST", "/alerts/missing/read", "").Code)
	assert.Equal(t, http.StatusNotFound, doJSON(r, "GET", "/alerts/missing", "").Code)
}

func TestAlertFeed_StoreError(t *testing.T) {
	r := setupAlertRouter(&fakeAlertFeed{listErr: errors.New("db down")})

	w := doJSON(r, "GET", "/tourists/T-1001/alerts", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
