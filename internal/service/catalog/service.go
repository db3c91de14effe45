package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
)

// Service управление каталогом организации: услуги и сотрудники
type Service struct {
	repo   CatalogRepository
	txMgr  TransactionManager
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, txMgr TransactionManager, logger Logger) *Service {
	return &Service{
		repo:   repo,
		txMgr:  txMgr,
		logger: logger,
	}
}

// ListServices получает все услуги организации, включая неактивные
func (s *Service) ListServices(ctx context.Context, organizationID uuid.UUID) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: organization=%s", organizationID)

	services, err := s.repo.ListServices(ctx, organizationID)
	if err != nil {
		s.logger.Error("ListServices: repository error for organization=%s: %v", organizationID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// CreateService создает услугу организации
func (s *Service) CreateService(
	ctx context.Context,
	organizationID uuid.UUID,
	req *models.CreateServiceRequest,
) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: organization=%s, name=%q, duration=%d", organizationID, req.Name, req.DurationMinutes)

	service := &domain.Service{
		OrganizationID:  organizationID,
		Name:            strings.TrimSpace(req.Name),
		Description:     trimOptional(req.Description),
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := validateService(service); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.CreateService(ctx, service)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// UpdateService частично обновляет услугу. Услуга другой организации неотличима от отсутствующей.
func (s *Service) UpdateService(
	ctx context.Context,
	organizationID, serviceID uuid.UUID,
	req *models.UpdateServiceRequest,
) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: service=%s, organization=%s", serviceID, organizationID)

	service, err := s.getService(ctx, "UpdateService", organizationID, serviceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = trimOptional(req.Description)
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := validateService(service); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.UpdateService(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(updated), nil
}

// ListProfessionals получает сотрудников организации вместе с их услугами
func (s *Service) ListProfessionals(ctx context.Context, organizationID uuid.UUID) (*models.ProfessionalListResponse, error) {
	s.logger.Info("ListProfessionals: organization=%s", organizationID)

	professionals, err := s.repo.ListProfessionals(ctx, organizationID)
	if err != nil {
		s.logger.Error("ListProfessionals: repository error for organization=%s: %v", organizationID, err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainProfessionalList(professionals), nil
}

// CreateProfessional создает сотрудника и связывает его с услугами в одной транзакции.
// Все услуги должны принадлежать организации.
func (s *Service) CreateProfessional(
	ctx context.Context,
	organizationID uuid.UUID,
	req *models.CreateProfessionalRequest,
) (*models.ProfessionalResponse, error) {
	s.logger.Info("CreateProfessional: organization=%s, name=%q, services=%d", organizationID, req.Name, len(req.ServiceIDs))

	professional, err := toDomainProfessional(organizationID, req)
	if err != nil {
		s.logger.Warn("CreateProfessional: validation failed: %v", err)
		return nil, err
	}
	serviceIDs := uniqueIDs(req.ServiceIDs)

	var created *domain.Professional
	err = s.txMgr.Do(ctx, func(ctx context.Context) error {
		refs := make([]domain.ServiceRef, 0, len(serviceIDs))
		for _, serviceID := range serviceIDs {
			service, err := s.getService(ctx, "CreateProfessional", organizationID, serviceID)
			if err != nil {
				return err
			}
			refs = append(refs, domain.ServiceRef{ID: service.ID, Name: service.Name})
		}

		var err error
		created, err = s.repo.CreateProfessional(ctx, professional)
		if err != nil {
			return fmt.Errorf("%w: CreateProfessional - repository error: %v", ErrInternal, err)
		}

		if err := s.repo.AddLinks(ctx, created.ID, serviceIDs); err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: CreateProfessional - failed to link services: %v", ErrInternal, err)
		}

		created.Services = refs
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("CreateProfessional: %v", err)
		}
		return nil, err
	}

	s.logger.Info("CreateProfessional: created professional id=%s", created.ID)
	return models.FromDomainProfessional(created), nil
}

// getService получает услугу и проверяет, что она принадлежит организации
func (s *Service) getService(ctx context.Context, op string, organizationID, serviceID uuid.UUID) (*domain.Service, error) {
	service, err := s.repo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%s not found", op, serviceID)
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: %s - failed to get service: %v", ErrInternal, op, err)
	}

	if service.OrganizationID != organizationID {
		s.logger.Warn("%s: service id=%s belongs to another organization", op, serviceID)
		return nil, ErrServiceNotFound
	}

	return service, nil
}

func validateService(service *domain.Service) error {
	if utf8.RuneCountInString(service.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if service.Description != nil && utf8.RuneCountInString(*service.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}
	if !service.IsValid() {
		return fmt.Errorf("%w: name is required, duration must be between %d and %d minutes, price must not be negative",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}

func toDomainProfessional(organizationID uuid.UUID, req *models.CreateProfessionalRequest) (*domain.Professional, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	email := trimOptional(req.Email)
	if email != nil {
		if _, err := mail.ParseAddress(*email); err != nil {
			return nil, fmt.Errorf("%w: email: %v", ErrInvalidInput, err)
		}
	}

	professional := &domain.Professional{
		OrganizationID: organizationID,
		Name:           name,
		Email:          email,
		Phone:          trimOptional(req.Phone),
		Active:         true,
	}
	if req.Active != nil {
		professional.Active = *req.Active
	}

	return professional, nil
}

// trimOptional обрезает пробелы, пустая строка превращается в nil
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
