package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Repository read-only доступ к данным, нужным для расчета слотов
type Repository interface {
	// FindService возвращает catalog.ErrServiceNotFound, если услуги нет
	FindService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error)
	// FindEligibilityLink возвращает catalog.ErrLinkNotFound, если сотрудник не оказывает услугу
	FindEligibilityLink(ctx context.Context, serviceID, professionalID uuid.UUID) (*domain.ServiceProfessionalLink, error)
	ListActiveRules(ctx context.Context, professionalID uuid.UUID, dayOfWeek *int) ([]*domain.ScheduleRule, error)
	ListBookingsInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
	ListBlocksInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Block, error)
}

// SlotsRecorder метрики сгенерированных слотов
type SlotsRecorder interface {
	ObserveSlots(available, unavailable int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
