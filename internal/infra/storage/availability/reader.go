package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// CatalogRepository чтение услуг и связей услуга-сотрудник
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetLink(ctx context.Context, serviceID, professionalID uuid.UUID) (*domain.ServiceProfessionalLink, error)
}

// ScheduleRepository чтение правил расписания
type ScheduleRepository interface {
	ListActive(ctx context.Context, professionalID uuid.UUID, dayOfWeek *int) ([]*domain.ScheduleRule, error)
}

// BookingRepository чтение бронирований
type BookingRepository interface {
	ListConfirmedInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
}

// BlockRepository чтение блокировок
type BlockRepository interface {
	ListInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Block, error)
}

// Reader собирает read-only запросы движка доступности в одном месте.
// Ошибки "не найдено" пробрасываются как есть (catalog.ErrServiceNotFound, catalog.ErrLinkNotFound).
type Reader struct {
	catalog  CatalogRepository
	schedule ScheduleRepository
	bookings BookingRepository
	blocks   BlockRepository
}

// NewReader создает адаптер поверх репозиториев
func NewReader(
	catalog CatalogRepository,
	schedule ScheduleRepository,
	bookings BookingRepository,
	blocks BlockRepository,
) *Reader {
	return &Reader{
		catalog:  catalog,
		schedule: schedule,
		bookings: bookings,
		blocks:   blocks,
	}
}

// FindService получает услугу
func (r *Reader) FindService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error) {
	return r.catalog.GetService(ctx, serviceID)
}

// FindEligibilityLink получает связь услуги и сотрудника
func (r *Reader) FindEligibilityLink(ctx context.Context, serviceID, professionalID uuid.UUID) (*domain.ServiceProfessionalLink, error) {
	return r.catalog.GetLink(ctx, serviceID, professionalID)
}

// ListActiveRules получает активные правила сотрудника, nil dayOfWeek - на все дни
func (r *Reader) ListActiveRules(ctx context.Context, professionalID uuid.UUID, dayOfWeek *int) ([]*domain.ScheduleRule, error) {
	return r.schedule.ListActive(ctx, professionalID, dayOfWeek)
}

// ListBookingsInRange получает подтвержденные бронирования, пересекающиеся с [from, to)
func (r *Reader) ListBookingsInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	return r.bookings.ListConfirmedInRange(ctx, professionalID, from, to)
}

// ListBlocksInRange получает блокировки, пересекающиеся с [from, to)
func (r *Reader) ListBlocksInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Block, error) {
	return r.blocks.ListInRange(ctx, professionalID, from, to)
}
