package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubDemandRepo struct {
	repository.DemandRepository
	demand *models.Demand
}

func (s *stubDemandRepo) FindByID(ctx context.Context, id uint) (*models.Demand, error) {
	if s.demand == nil || s.demand.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copy := *s.demand
	return &copy, nil
}

func (s *stubDemandRepo) UpdateStatus(ctx context.Context, id uint, status string) (*models.Demand, error) {
	copy := *s.demand
	copy.Status = status
	return &copy, nil
}

type stubActivityLogRepo struct {
	repository.ActivityLogRepository
	entries []models.ActivityLog
}

func (s *stubActivityLogRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	s.entries = append(s.entries, *entry)
	return nil
}

// asUser injects the auth context the way the JWT middleware does
func asUser(id uint, profile string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", id)
		c.Set("userProfile", profile)
		c.Next()
	}
}

func demandRouter(demand *models.Demand, userID uint, profile string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	demandService := services.NewDemandService(
		&stubDemandRepo{demand: demand},
		nil,
		services.NewActivityLogService(&stubActivityLogRepo{}),
	)
	h := NewDemandHandler(demandService)

	router := gin.New()
	router.Use(asUser(userID, profile))
	router.GET("/api/demandas/:id", h.Show)
	router.PATCH("/api/demandas/status/:id", h.UpdateStatus)
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = new(bytes.Buffer)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestDemandShow_OwnerSeesDemand(t *testing.T) {
	demand := &models.Demand{ID: 1, Titulo: "Audiência", Status: models.DemandStatusPending, ClienteID: 10}
	router := demandRouter(demand, 10, models.ProfileClient)

	rec, env := doJSON(t, router, http.MethodGet, "/api/demandas/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestDemandShow_OtherClientGets403(t *testing.T) {
	demand := &models.Demand{ID: 1, Status: models.DemandStatusPending, ClienteID: 10}
	router := demandRouter(demand, 11, models.ProfileClient)

	rec, env := doJSON(t, router, http.MethodGet, "/api/demandas/1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)
}

func TestDemandShow_UnknownIDGets404(t *testing.T) {
	router := demandRouter(nil, 1, models.ProfileAdmin)

	rec, env := doJSON(t, router, http.MethodGet, "/api/demandas/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestDemandShow_BadIDGets400(t *testing.T) {
	router := demandRouter(nil, 1, models.ProfileAdmin)

	rec, env := doJSON(t, router, http.MethodGet, "/api/demandas/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestDemandUpdateStatus_ClientGets403(t *testing.T) {
	demand := &models.Demand{ID: 1, Status: models.DemandStatusPending, ClienteID: 10}
	router := demandRouter(demand, 10, models.ProfileClient)

	rec, env := doJSON(t, router, http.MethodPatch, "/api/demandas/status/1",
		map[string]string{"status": models.DemandStatusInProgress})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, env.Success)
}

func TestDemandUpdateStatus_AdminSucceeds(t *testing.T) {
	demand := &models.Demand{ID: 1, Status: models.DemandStatusPending, ClienteID: 10}
	router := demandRouter(demand, 1, models.ProfileAdmin)

	rec, env := doJSON(t, router, http.MethodPatch, "/api/demandas/status/1",
		map[string]string{"status": models.DemandStatusInProgress})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	var data models.DemandResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, models.DemandStatusInProgress, data.Status)
}

func TestDemandUpdateStatus_MissingBodyGets400(t *testing.T) {
	demand := &models.Demand{ID: 1, Status: models.DemandStatusPending, ClienteID: 10}
	router := demandRouter(demand, 1, models.ProfileAdmin)

	rec, env := doJSON(t, router, http.MethodPatch, "/api/demandas/status/1", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}
