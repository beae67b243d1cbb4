package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

// Service сервис услуг и профессионалов салона
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListServices получает услуги, отсортированные по названию.
// Неактивные услуги видит только администратор.
func (s *Service) ListServices(ctx context.Context, session *domain.Session, includeInactive bool) (*models.ServiceListResponse, error) {
	activeOnly := !(includeInactive && session.IsAdmin())

	services, err := s.catalogRepo.ListServices(ctx, activeOnly)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	resp := &models.ServiceListResponse{Services: make([]models.ServiceResponse, 0, len(services))}
	for _, svc := range services {
		resp.Services = append(resp.Services, models.FromDomainService(svc))
	}

	return resp, nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	svc, err := s.catalogRepo.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetService: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainService(svc)
	return &resp, nil
}

// CreateService создает услугу. Доступно только администратору
func (s *Service) CreateService(ctx context.Context, session *domain.Session, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	if !session.IsAdmin() {
		s.logger.Warn("CreateService: access denied for user=%s", sessionUser(session))
		return nil, ErrAccessDenied
	}

	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	svc := &domain.Service{
		Name:                   strings.TrimSpace(req.Name),
		Price:                  req.Price,
		AverageDurationMinutes: req.DurationMinutes,
		Active:                 true,
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, svc)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%d name=%q by user=%s", created.ID, created.Name, sessionUser(session))

	resp := models.FromDomainService(created)
	return &resp, nil
}

// UpdateService меняет название, цену или длительность услуги. Доступно только администратору.
// Длительность влияет только на новые записи.
func (s *Service) UpdateService(ctx context.Context, session *domain.Session, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	return s.modifyService(ctx, session, "UpdateService", id, func(svc *domain.Service) {
		if req.Name != nil {
			svc.Name = strings.TrimSpace(*req.Name)
		}
		if req.Price != nil {
			svc.Price = *req.Price
		}
		if req.DurationMinutes != nil {
			svc.AverageDurationMinutes = *req.DurationMinutes
		}
	})
}

// SetServiceActive включает или отключает услугу для записи. Доступно только администратору
func (s *Service) SetServiceActive(ctx context.Context, session *domain.Session, id int64, req *models.SetServiceActiveRequest) (*models.ServiceResponse, error) {
	if req == nil || req.Active == nil {
		return nil, fmt.Errorf("%w: active is required", ErrInvalidInput)
	}

	return s.modifyService(ctx, session, "SetServiceActive", id, func(svc *domain.Service) {
		svc.Active = *req.Active
	})
}

func (s *Service) modifyService(ctx context.Context, session *domain.Session, op string, id int64, apply func(svc *domain.Service)) (*models.ServiceResponse, error) {
	if !session.IsAdmin() {
		s.logger.Warn("%s: access denied for user=%s", op, sessionUser(session))
		return nil, ErrAccessDenied
	}

	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	svc, err := s.catalogRepo.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%d not found", op, id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - get service: %v", ErrInternal, op, err)
	}

	updated := *svc
	apply(&updated)
	if err := validateService(&updated); err != nil {
		return nil, err
	}

	if err := s.catalogRepo.UpdateService(ctx, &updated); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: repository error for service id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - update service: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: service id=%d updated by user=%s (active=%t)", op, id, sessionUser(session), updated.Active)

	resp := models.FromDomainService(&updated)
	return &resp, nil
}

// ListProfessionals получает профессионалов в порядке списка сотрудников
func (s *Service) ListProfessionals(ctx context.Context, session *domain.Session, workingOnly bool) (*models.ProfessionalListResponse, error) {
	professionals, err := s.catalogRepo.ListProfessionals(ctx, workingOnly)
	if err != nil {
		s.logger.Error("ListProfessionals: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %v", ErrInternal, err)
	}

	resp := &models.ProfessionalListResponse{Professionals: make([]models.ProfessionalResponse, 0, len(professionals))}
	for _, p := range professionals {
		resp.Professionals = append(resp.Professionals, models.FromDomainProfessional(p, session.IsAdmin()))
	}

	return resp, nil
}

// SetWorking отмечает начало или конец смены.
// Профессионал отмечает только себя, администратор любого.
func (s *Service) SetWorking(ctx context.Context, session *domain.Session, professionalID uuid.UUID, req *models.SetWorkingRequest) (*models.ProfessionalResponse, error) {
	if req == nil || req.IsWorking == nil {
		return nil, fmt.Errorf("%w: isWorking is required", ErrInvalidInput)
	}

	if !session.CanManage(professionalID) {
		s.logger.Warn("SetWorking: access denied for user=%s to professional=%s", sessionUser(session), professionalID)
		return nil, ErrAccessDenied
	}

	s.logger.Info("SetWorking: professional=%s isWorking=%t by user=%s", professionalID, *req.IsWorking, sessionUser(session))

	if err := s.catalogRepo.SetWorking(ctx, professionalID, *req.IsWorking); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("SetWorking: professional=%s not found", professionalID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("SetWorking: repository error for professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: SetWorking - repository error: %v", ErrInternal, err)
	}

	professional, err := s.catalogRepo.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		s.logger.Error("SetWorking: failed to reload professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: SetWorking - reload professional: %v", ErrInternal, err)
	}

	resp := models.FromDomainProfessional(professional, session.IsAdmin())
	return &resp, nil
}

// UpdateProfessional меняет имя, телефон и процент комиссии. Доступно только администратору
func (s *Service) UpdateProfessional(ctx context.Context, session *domain.Session, professionalID uuid.UUID, req *models.UpdateProfessionalRequest) (*models.ProfessionalResponse, error) {
	if !session.IsAdmin() {
		s.logger.Warn("UpdateProfessional: access denied for user=%s", sessionUser(session))
		return nil, ErrAccessDenied
	}

	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	professional, err := s.catalogRepo.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("UpdateProfessional: professional=%s not found", professionalID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("UpdateProfessional: repository error for professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: UpdateProfessional - get professional: %v", ErrInternal, err)
	}

	updated := *professional
	if req.FullName != nil {
		updated.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		updated.Phone = &phone
	}
	if req.CommissionPercentage != nil {
		commission := *req.CommissionPercentage
		updated.CommissionPercentage = &commission
	}

	if updated.FullName == "" {
		return nil, fmt.Errorf("%w: fullName must not be empty", ErrInvalidInput)
	}
	if c := updated.CommissionPercentage; c != nil && (*c < 0 || *c > 100) {
		return nil, fmt.Errorf("%w: commissionPercentage must be in [0, 100]", ErrInvalidInput)
	}

	if err := s.catalogRepo.UpdateProfessional(ctx, &updated); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("UpdateProfessional: repository error for professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: UpdateProfessional - update professional: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfessional: professional=%s updated by user=%s", professionalID, sessionUser(session))

	resp := models.FromDomainProfessional(&updated, true)
	return &resp, nil
}

// validateService проверяет поля услуги перед сохранением
func validateService(svc *domain.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if svc.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if svc.AverageDurationMinutes <= 0 || svc.AverageDurationMinutes > domain.MaxServiceDuration {
		return fmt.Errorf("%w: durationMinutes must be in (0, %d]", ErrInvalidInput, domain.MaxServiceDuration)
	}
	return nil
}

func sessionUser(session *domain.Session) string {
	if session == nil {
		return "anonymous"
	}
	return session.UserID.String()
}
