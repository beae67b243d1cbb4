package create_client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	req *models.CreateClientRequest
	err error
}

func (f *fakeService) CreateClient(_ context.Context, _ *domain.Session, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ClientResponse{ID: 8, FullName: req.FullName, Phone: req.Phone}, nil
}

func serve(svc *fakeService, body string, session *domain.Session) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/clients", strings.NewReader(body))
	if session != nil {
		r = r.WithContext(middleware.WithSession(r.Context(), session))
	}
	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	svc := &fakeService{}
	staff := &domain.Session{UserID: uuid.New(), Role: domain.RoleProfessional}

	w := serve(svc, `{"fullName":"Maria Silva","phone":"+5511999990000"}`, staff)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.req)
	assert.Equal(t, "+5511999990000", svc.req.Phone)

	var resp models.ClientResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(8), resp.ID)
	assert.False(t, resp.Registered)
}

func TestHandle_Errors(t *testing.T) {
	admin := &domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}
	valid := `{"fullName":"Maria Silva","phone":"+5511999990000"}`

	tests := []struct {
		name    string
		body    string
		session *domain.Session
		err     error
		want    int
	}{
		{name: "no session", body: valid, want: http.StatusUnauthorized},
		{name: "missing phone", body: `{"fullName":"Maria Silva"}`, session: admin, want: http.StatusBadRequest},
		{name: "blank name", body: valid, session: admin, err: clients.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "client role", body: valid, session: admin, err: clients.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", body: valid, session: admin, err: errors.New("db"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.body, tt.session)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
