package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка пересечений и вставка выполняются в одной SERIALIZABLE транзакции:
// из двух параллельных запросов на один интервал успешно завершится только один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	uc.logger.Info("CreateBooking: organization=%s, service=%s, professional=%s, start=%s",
		req.OrganizationID, req.ServiceID, req.ProfessionalID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if !req.StartTime.After(now) {
		uc.logger.Warn("CreateBooking: start=%s is not in the future", req.StartTime)
		return nil, ErrStartInPast
	}

	// 2. Услуга
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.OrganizationID != req.OrganizationID {
		uc.logger.Warn("CreateBooking: service id=%s belongs to another organization", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Сотрудник
	professional, err := uc.catalogRepo.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CreateBooking: professional id=%s not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CreateBooking: failed to get professional id=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}
	if professional.OrganizationID != req.OrganizationID {
		uc.logger.Warn("CreateBooking: professional id=%s belongs to another organization", req.ProfessionalID)
		return nil, ErrProfessionalNotFound
	}

	if !service.Active || !professional.Active {
		uc.logger.Warn("CreateBooking: service active=%t, professional active=%t", service.Active, professional.Active)
		return nil, ErrInactive
	}

	// 4. Сотрудник оказывает услугу
	if _, err := uc.catalogRepo.GetLink(ctx, req.ServiceID, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrLinkNotFound) {
			uc.logger.Warn("CreateBooking: professional id=%s does not provide service id=%s",
				req.ProfessionalID, req.ServiceID)
			return nil, ErrServiceNotProvided
		}
		uc.logger.Error("CreateBooking: failed to get eligibility link: %v", err)
		return nil, fmt.Errorf("%w: failed to get eligibility link: %v", ErrInternal, err)
	}

	slot := domain.Interval{
		Start: req.StartTime,
		End:   req.StartTime.Add(service.Duration()),
	}

	var result *domain.Booking

	// 5. Проверка пересечений и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		bookings, err := uc.bookingRepo.ListConfirmedInRange(txCtx, req.ProfessionalID, slot.Start, slot.End)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err := uc.blockRepo.ListInRange(txCtx, req.ProfessionalID, slot.Start, slot.End)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocks: %v", err)
			return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
		}

		if findConflict(slot, bookings, blocks) {
			uc.logger.Warn("CreateBooking: interval %s - %s overlaps %d bookings / %d blocks",
				slot.Start, slot.End, len(bookings), len(blocks))
			return ErrSlotNotAvailable
		}

		booking := &domain.Booking{
			OrganizationID: req.OrganizationID,
			ProfessionalID: req.ProfessionalID,
			ServiceID:      req.ServiceID,
			StartTime:      slot.Start,
			EndTime:        slot.End,
			Status:         domain.StatusConfirmed,
			ClientName:     strings.TrimSpace(req.ClientName),
			ClientEmail:    req.ClientEmail,
			ClientPhone:    req.ClientPhone,
			Notes:          req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Параллельная транзакция заняла интервал раньше
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict for professional=%s: %v", req.ProfessionalID, err)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrSlotNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s", result.ID)

	return &Response{
		ID:               result.ID,
		OrganizationID:   result.OrganizationID,
		ServiceID:        result.ServiceID,
		ProfessionalID:   result.ProfessionalID,
		StartTime:        result.StartTime,
		EndTime:          result.EndTime,
		Status:           string(result.Status),
		ServiceName:      service.Name,
		ServicePrice:     service.Price,
		ProfessionalName: professional.Name,
		ClientName:       result.ClientName,
		ClientEmail:      result.ClientEmail,
		ClientPhone:      result.ClientPhone,
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}
