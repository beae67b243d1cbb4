package get_report_overview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) Overview(_ context.Context, _ *domain.Session) (*models.OverviewResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.OverviewResponse{
		Timezone:      "America/Sao_Paulo",
		Today:         "2026-03-10",
		TodayByStatus: map[string]int{"scheduled": 4},
	}, nil
}

func TestHandle(t *testing.T) {
	admin := &domain.Session{UserID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name    string
		session *domain.Session
		err     error
		want    int
	}{
		{name: "ok", session: admin, want: http.StatusOK},
		{name: "no session", want: http.StatusUnauthorized},
		{name: "not admin", session: admin, err: reports.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", session: admin, err: errors.New("db"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/reports/overview", nil)
			if tt.session != nil {
				r = r.WithContext(middleware.WithSession(r.Context(), tt.session))
			}
			w := httptest.NewRecorder()
			NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle(w, r)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"today":"2026-03-10"`)
			}
		})
	}
}
