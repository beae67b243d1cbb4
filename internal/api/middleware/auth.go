package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/authservice"
)

const (
	msgMissingToken     = "отсутствует токен доступа"
	msgInvalidToken     = "недействительный токен доступа"
	msgAuthUnavailable  = "сервис аутентификации недоступен"
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer "
)

// Authenticator строит domain.Session по Bearer токену.
// Пользователь проверяется во внешнем сервисе аутентификации, роль берется из profiles.
type Authenticator struct {
	users  UserResolver
	roles  RoleResolver
	logger Logger
}

func NewAuthenticator(users UserResolver, roles RoleResolver, logger Logger) *Authenticator {
	return &Authenticator{
		users:  users,
		roles:  roles,
		logger: logger,
	}
}

// Auth требует действительный токен
func (a *Authenticator) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			a.logger.Warn("%s %s - Missing access token", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		session, status := a.resolve(r, token)
		if session == nil {
			a.respond(w, status)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// OptionalAuth пропускает анонимные запросы, но отклоняет недействительный токен
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		session, status := a.resolve(r, token)
		if session == nil {
			a.respond(w, status)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (a *Authenticator) resolve(r *http.Request, token string) (*domain.Session, int) {
	ctx := r.Context()

	user, err := a.users.GetUser(ctx, token)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidToken) {
			a.logger.Warn("%s %s - Invalid access token", r.Method, r.URL.Path)
			return nil, http.StatusUnauthorized
		}
		a.logger.Error("%s %s - Failed to resolve user: %v", r.Method, r.URL.Path, err)
		return nil, http.StatusServiceUnavailable
	}

	role, err := a.roles.GetProfileRole(ctx, user.ID)
	switch {
	case errors.Is(err, catalogRepo.ErrProfileNotFound):
		// Пользователь без профиля сотрудника записывается как клиент
		role = domain.RoleClient
	case err != nil:
		a.logger.Error("%s %s - Failed to get profile role: user_id=%s, error=%v", r.Method, r.URL.Path, user.ID, err)
		return nil, http.StatusInternalServerError
	}

	return &domain.Session{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        role,
		AccessToken: token,
	}, http.StatusOK
}

func (a *Authenticator) respond(w http.ResponseWriter, status int) {
	switch status {
	case http.StatusUnauthorized:
		handlers.RespondUnauthorized(w, msgInvalidToken)
	case http.StatusServiceUnavailable:
		handlers.RespondServiceUnavailable(w, msgAuthUnavailable)
	default:
		handlers.RespondInternalError(w)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(authorizationHeader)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}
