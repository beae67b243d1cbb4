package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	"github.com/m04kA/SMC-SalonBooking/internal/service/clients/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Service сервис клиентской базы салона. Доступен только сотрудникам
type Service struct {
	clientRepo ClientRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// ListClients получает клиентов, отсортированных по имени.
// Limit по умолчанию 50, не больше 200.
func (s *Service) ListClients(ctx context.Context, session *domain.Session, filter domain.ClientsFilter) (*models.ClientListResponse, error) {
	if !session.IsStaff() {
		s.logger.Warn("ListClients: access denied for user=%s", sessionUser(session))
		return nil, ErrAccessDenied
	}

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	if filter.Limit == 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	filter.Search = strings.TrimSpace(filter.Search)

	clients, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListClients: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClients - repository error: %v", ErrInternal, err)
	}

	resp := &models.ClientListResponse{
		Clients: make([]models.ClientResponse, 0, len(clients)),
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}
	for _, c := range clients {
		resp.Clients = append(resp.Clients, models.FromDomain(c))
	}

	return resp, nil
}

// CreateClient добавляет клиента без учетной записи
func (s *Service) CreateClient(ctx context.Context, session *domain.Session, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	if !session.IsStaff() {
		s.logger.Warn("CreateClient: access denied for user=%s", sessionUser(session))
		return nil, ErrAccessDenied
	}

	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	c := &domain.Client{
		FullName: strings.TrimSpace(req.FullName),
		Phone:    strings.TrimSpace(req.Phone),
	}
	if err := validateClient(c); err != nil {
		return nil, err
	}

	created, err := s.clientRepo.Create(ctx, c)
	if err != nil {
		s.logger.Error("CreateClient: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateClient: created client id=%d by user=%s", created.ID, sessionUser(session))

	resp := models.FromDomain(created)
	return &resp, nil
}

// UpdateClient меняет имя или телефон клиента
func (s *Service) UpdateClient(ctx context.Context, session *domain.Session, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error) {
	if !session.IsStaff() {
		s.logger.Warn("UpdateClient: access denied for user=%s", sessionUser(session))
		return nil, ErrAccessDenied
	}

	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("UpdateClient: client id=%d not found", id)
			return nil, ErrClientNotFound
		}
		s.logger.Error("UpdateClient: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateClient - get client: %v", ErrInternal, err)
	}

	updated := *c
	if req.FullName != nil {
		updated.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		updated.Phone = strings.TrimSpace(*req.Phone)
	}
	if err := validateClient(&updated); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		s.logger.Error("UpdateClient: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateClient - update client: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateClient: client id=%d updated by user=%s", id, sessionUser(session))

	resp := models.FromDomain(&updated)
	return &resp, nil
}

func validateClient(c *domain.Client) error {
	if c.FullName == "" {
		return fmt.Errorf("%w: fullName must not be empty", ErrInvalidInput)
	}
	if c.Phone == "" {
		return fmt.Errorf("%w: phone must not be empty", ErrInvalidInput)
	}
	return nil
}

func sessionUser(session *domain.Session) string {
	if session == nil {
		return "anonymous"
	}
	return session.UserID.String()
}
