package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/dashboard/models"
)

// Service сводка для главной страницы организации
type Service struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает сервис сводки. "Сегодня" считается в location.
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// GetStats возвращает счетчики организации и ближайшие подтвержденные записи
func (s *Service) GetStats(ctx context.Context, organizationID uuid.UUID) (*models.DashboardStatsResponse, error) {
	s.logger.Info("GetStats: organization=%s", organizationID)

	now := s.timeProvider.Now()
	local := now.In(s.location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	stats := &domain.DashboardStats{}
	err := s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		stats.TotalBookings, stats.TodayBookings, err = s.bookingRepo.CountForDashboard(ctx, organizationID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("count bookings: %v", err)
		}

		stats.ActiveServices, stats.ActiveProfessionals, err = s.catalogRepo.CountActive(ctx, organizationID)
		if err != nil {
			return fmt.Errorf("count catalog: %v", err)
		}

		stats.Upcoming, err = s.bookingRepo.ListUpcoming(ctx, organizationID, now, domain.DashboardUpcomingLimit)
		if err != nil {
			return fmt.Errorf("list upcoming: %v", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("GetStats: organization=%s: %v", organizationID, err)
		return nil, fmt.Errorf("%w: GetStats - %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats, s.location), nil
}
