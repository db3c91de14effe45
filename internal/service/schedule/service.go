package schedule

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	blockRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service управление еженедельным расписанием и блокировками сотрудников
type Service struct {
	ruleRepo         RuleRepository
	blockRepo        BlockRepository
	professionalRepo ProfessionalRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	ruleRepo RuleRepository,
	blockRepo BlockRepository,
	professionalRepo ProfessionalRepository,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:         ruleRepo,
		blockRepo:        blockRepo,
		professionalRepo: professionalRepo,
		logger:           logger,
	}
}

// ListRules получает все правила сотрудника, включая неактивные
func (s *Service) ListRules(ctx context.Context, organizationID, professionalID uuid.UUID) (*models.RuleListResponse, error) {
	s.logger.Info("ListRules: professional=%s, organization=%s", professionalID, organizationID)

	if err := s.checkProfessional(ctx, "ListRules", organizationID, professionalID); err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListByProfessional(ctx, professionalID)
	if err != nil {
		s.logger.Error("ListRules: repository error for professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: ListRules - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRuleList(rules), nil
}

// UpsertRule создает или заменяет правило сотрудника на день недели
func (s *Service) UpsertRule(
	ctx context.Context,
	organizationID, professionalID uuid.UUID,
	dayOfWeek int,
	req *models.UpsertRuleRequest,
) (*models.RuleResponse, error) {
	s.logger.Info("UpsertRule: professional=%s, day=%d, %s-%s", professionalID, dayOfWeek, req.StartTime, req.EndTime)

	rule, err := toDomainRule(professionalID, dayOfWeek, req)
	if err != nil {
		s.logger.Warn("UpsertRule: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkProfessional(ctx, "UpsertRule", organizationID, professionalID); err != nil {
		return nil, err
	}

	saved, err := s.ruleRepo.Upsert(ctx, rule)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrProfessionalNotFound) {
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("UpsertRule: repository error for professional=%s: %v", professionalID, err)
		return nil, fmt.Errorf("%w: UpsertRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertRule: saved rule id=%s", saved.ID)
	return models.FromDomainRule(saved), nil
}

// DeleteRule удаляет правило сотрудника на день недели
func (s *Service) DeleteRule(ctx context.Context, organizationID, professionalID uuid.UUID, dayOfWeek int) error {
	s.logger.Info("DeleteRule: professional=%s, day=%d", professionalID, dayOfWeek)

	if dayOfWeek < domain.MinDayOfWeek || dayOfWeek > domain.MaxDayOfWeek {
		return fmt.Errorf("%w: dayOfWeek must be between %d and %d", ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	if err := s.checkProfessional(ctx, "DeleteRule", organizationID, professionalID); err != nil {
		return err
	}

	if err := s.ruleRepo.Delete(ctx, professionalID, dayOfWeek); err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			s.logger.Warn("DeleteRule: no rule for professional=%s on day=%d", professionalID, dayOfWeek)
			return ErrRuleNotFound
		}
		s.logger.Error("DeleteRule: repository error: %v", err)
		return fmt.Errorf("%w: DeleteRule - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ListBlocks получает блокировки сотрудника, пересекающиеся с периодом
func (s *Service) ListBlocks(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("ListBlocks: professional=%s", req.ProfessionalID)

	var from, to time.Time
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}
	if !from.IsZero() && !to.IsZero() && !to.After(from) {
		return nil, ErrInvalidTimeRange
	}

	if err := s.checkProfessional(ctx, "ListBlocks", req.OrganizationID, req.ProfessionalID); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.ListInRange(ctx, req.ProfessionalID, from, to)
	if err != nil {
		s.logger.Error("ListBlocks: repository error for professional=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: ListBlocks - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockList(blocks), nil
}

// CreateBlock создает блокировку времени сотрудника
func (s *Service) CreateBlock(
	ctx context.Context,
	organizationID, professionalID uuid.UUID,
	req *models.CreateBlockRequest,
) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: professional=%s, %s - %s", professionalID,
		req.StartTime.Format(time.RFC3339), req.EndTime.Format(time.RFC3339))

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidTimeRange
	}
	reason := strings.TrimSpace(req.Reason)
	if utf8.RuneCountInString(reason) > domain.MaxBlockReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxBlockReasonLength)
	}

	if err := s.checkProfessional(ctx, "CreateBlock", organizationID, professionalID); err != nil {
		return nil, err
	}

	created, err := s.blockRepo.Create(ctx, &domain.Block{
		ProfessionalID: professionalID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Reason:         reason,
	})
	if err != nil {
		if errors.Is(err, blockRepo.ErrProfessionalNotFound) {
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("CreateBlock: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: created block id=%s", created.ID)
	return models.FromDomainBlock(created), nil
}

// DeleteBlock удаляет блокировку. Блокировка сотрудника другой организации неотличима от отсутствующей.
func (s *Service) DeleteBlock(ctx context.Context, organizationID, blockID uuid.UUID) error {
	s.logger.Info("DeleteBlock: block=%s, organization=%s", blockID, organizationID)

	block, err := s.blockRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error: %v", err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	if err := s.checkProfessional(ctx, "DeleteBlock", organizationID, block.ProfessionalID); err != nil {
		if errors.Is(err, ErrProfessionalNotFound) {
			return ErrBlockNotFound
		}
		return err
	}

	if err := s.blockRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error: %v", err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	return nil
}

// checkProfessional проверяет, что сотрудник существует и принадлежит организации
func (s *Service) checkProfessional(ctx context.Context, op string, organizationID, professionalID uuid.UUID) error {
	professional, err := s.professionalRepo.GetProfessional(ctx, professionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			s.logger.Warn("%s: professional id=%s not found", op, professionalID)
			return ErrProfessionalNotFound
		}
		s.logger.Error("%s: failed to get professional id=%s: %v", op, professionalID, err)
		return fmt.Errorf("%w: %s - failed to get professional: %v", ErrInternal, op, err)
	}

	if professional.OrganizationID != organizationID {
		s.logger.Warn("%s: professional id=%s belongs to another organization", op, professionalID)
		return ErrProfessionalNotFound
	}

	return nil
}

// toDomainRule валидирует запрос и собирает правило
func toDomainRule(professionalID uuid.UUID, dayOfWeek int, req *models.UpsertRuleRequest) (*domain.ScheduleRule, error) {
	if dayOfWeek < domain.MinDayOfWeek || dayOfWeek > domain.MaxDayOfWeek {
		return nil, fmt.Errorf("%w: dayOfWeek must be between %d and %d", ErrInvalidInput, domain.MinDayOfWeek, domain.MaxDayOfWeek)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	rule := &domain.ScheduleRule{
		ProfessionalID: professionalID,
		DayOfWeek:      dayOfWeek,
		StartTime:      start,
		EndTime:        end,
		Active:         true,
	}
	if req.Active != nil {
		rule.Active = *req.Active
	}

	if !rule.IsValid() {
		return nil, ErrInvalidTimeRange
	}

	return rule, nil
}
