package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountForDashboard(ctx context.Context, organizationID uuid.UUID, dayStart, dayEnd time.Time) (total, today int, err error)
	ListUpcoming(ctx context.Context, organizationID uuid.UUID, now time.Time, limit int) ([]domain.UpcomingBooking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	CountActive(ctx context.Context, organizationID uuid.UUID) (services, professionals int, err error)
}

// TransactionManager читает сводку одним снимком
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
