package list_services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	session         *domain.Session
	includeInactive bool
	err             error
}

func (f *fakeService) ListServices(_ context.Context, session *domain.Session, includeInactive bool) (*models.ServiceListResponse, error) {
	f.session = session
	f.includeInactive = includeInactive
	if f.err != nil {
		return nil, f.err
	}
	return &models.ServiceListResponse{Services: []models.ServiceResponse{{ID: 1, Name: "Corte", DurationMinutes: 30, Active: true}}}, nil
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	admin := &domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/services?includeInactive=true", nil)
	r = r.WithContext(middleware.WithSession(r.Context(), admin))
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.includeInactive)
	assert.Same(t, admin, svc.session)
	assert.Contains(t, w.Body.String(), `"name":"Corte"`)
}

func TestHandle_Anonymous(t *testing.T) {
	svc := &fakeService{}

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.session)
	assert.False(t, svc.includeInactive)
}

func TestHandle_Errors(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{}, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/services?includeInactive=perhaps", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("db")}, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
