package update_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	id  int64
	req *models.UpdateClientRequest
	err error
}

func (f *fakeService) UpdateClient(_ context.Context, _ *domain.Session, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error) {
	f.id = id
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ClientResponse{ID: id, FullName: "Maria Silva", Phone: "+5511888880000"}, nil
}

func serve(svc *fakeService, target, body string, session *domain.Session) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/clients/{clientId}", NewHandler(svc, logger.NewNop()).Handle)

	r := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	if session != nil {
		r = r.WithContext(middleware.WithSession(r.Context(), session))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_UpdatesPhone(t *testing.T) {
	svc := &fakeService{}
	staff := &domain.Session{UserID: uuid.New(), Role: domain.RoleProfessional}

	w := serve(svc, "/api/v1/clients/4", `{"phone":"+5511888880000"}`, staff)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(4), svc.id)
	require.NotNil(t, svc.req.Phone)
	assert.Equal(t, "+5511888880000", *svc.req.Phone)
	assert.Nil(t, svc.req.FullName)
}

func TestHandle_Errors(t *testing.T) {
	admin := &domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name    string
		target  string
		body    string
		session *domain.Session
		err     error
		want    int
	}{
		{name: "bad id", target: "/api/v1/clients/abc", body: `{}`, session: admin, want: http.StatusBadRequest},
		{name: "no session", target: "/api/v1/clients/4", body: `{}`, want: http.StatusUnauthorized},
		{name: "unknown field", target: "/api/v1/clients/4", body: `{"email":"a@b.c"}`, session: admin, want: http.StatusBadRequest},
		{name: "blank name", target: "/api/v1/clients/4", body: `{"fullName":" "}`, session: admin, err: clients.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "client role", target: "/api/v1/clients/4", body: `{}`, session: admin, err: clients.ErrAccessDenied, want: http.StatusForbidden},
		{name: "not found", target: "/api/v1/clients/4", body: `{}`, session: admin, err: clients.ErrClientNotFound, want: http.StatusNotFound},
		{name: "internal", target: "/api/v1/clients/4", body: `{}`, session: admin, err: errors.New("db"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.target, tt.body, tt.session)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
