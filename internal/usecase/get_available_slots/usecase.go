package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
)

// UseCase use case для расчета слотов по услуге, сотруднику и дате
type UseCase struct {
	repo         Repository
	recorder     SlotsRecorder
	timeProvider TimeProvider
	logger       Logger
	location     *time.Location
	mergeRules   bool
}

// NewUseCase создает новый экземпляр use case. recorder может быть nil.
func NewUseCase(
	repo Repository,
	recorder SlotsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	location := opts.Location
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		repo:         repo,
		recorder:     recorder,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		location:     location,
		mergeRules:   opts.MergeOverlappingRules,
	}
}

// Execute выполняет use case получения слотов.
// Отсутствие услуги, связи или правил на день - пустой список, а не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dayStart, dayEnd := dayWindow(req.Date, uc.location)
	resp := &Response{
		Date:           dayStart,
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Slots:          []domain.SlotResult{},
	}

	uc.logger.Info("GetAvailableSlots: service=%s, professional=%s, date=%s",
		req.ServiceID, req.ProfessionalID, dayStart.Format(domain.DateFormat))

	// 1. Услуга
	service, err := uc.repo.FindService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Info("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 2. Сотрудник оказывает услугу
	if _, err := uc.repo.FindEligibilityLink(ctx, req.ServiceID, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrLinkNotFound) {
			uc.logger.Info("GetAvailableSlots: professional id=%s does not perform service id=%s",
				req.ProfessionalID, req.ServiceID)
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get eligibility link: %v", err)
		return nil, fmt.Errorf("%w: failed to get eligibility link: %v", ErrInternal, err)
	}

	// 3. Правила на день недели
	dayOfWeek := int(dayStart.Weekday())
	rules, err := uc.repo.ListActiveRules(ctx, req.ProfessionalID, &dayOfWeek)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule rules: %v", ErrInternal, err)
	}
	if len(rules) == 0 {
		uc.logger.Info("GetAvailableSlots: no active rules for professional=%s on day=%d",
			req.ProfessionalID, dayOfWeek)
		return resp, nil
	}

	// 4. Бронирования и блокировки, пересекающиеся с днем, читаем параллельно
	var (
		bookings []*domain.Booking
		blocks   []*domain.Block
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = uc.repo.ListBookingsInRange(gctx, req.ProfessionalID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to get bookings: %v", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		blocks, err = uc.repo.ListBlocksInRange(gctx, req.ProfessionalID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to get blocks: %v", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("GetAvailableSlots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Нарезка
	windows := ruleWindows(rules, dayStart, uc.mergeRules)
	resp.Slots = generateSlots(windows, service.Duration(), busyIntervals(bookings, blocks), uc.timeProvider.Now())

	available, unavailable := countAvailability(resp.Slots)
	if uc.recorder != nil {
		uc.recorder.ObserveSlots(available, unavailable)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots (%d available) for professional=%s, date=%s",
		len(resp.Slots), available, req.ProfessionalID, dayStart.Format(domain.DateFormat))

	return resp, nil
}
