package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableBookings = "bookings"

var bookingColumns = []string{
	"id",
	"organization_id",
	"professional_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"client_name",
	"client_email",
	"client_phone",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её: проверка пересечений
// и вставка должны выполняться в одной SERIALIZABLE транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !booking.Status.IsValid() {
		return nil, fmt.Errorf("%w: Create - status %q", ErrInvalidStatus, booking.Status)
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"organization_id",
			"professional_id",
			"service_id",
			"start_time",
			"end_time",
			"status",
			"client_name",
			"client_email",
			"client_phone",
			"notes",
		).
		Values(
			booking.ID,
			booking.OrganizationID,
			booking.ProfessionalID,
			booking.ServiceID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.ClientName,
			booking.ClientEmail,
			booking.ClientPhone,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id})

	// В транзакции блокируем строку, чтобы отмена не гонялась с другой отменой
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListInRange получает бронирования сотрудника, которые ПЕРЕСЕКАЮТСЯ с [From, To)
func (r *Repository) ListInRange(ctx context.Context, filter domain.BookingsRangeFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := rangeQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListConfirmedInRange получает только подтвержденные бронирования, пересекающиеся с [from, to)
func (r *Repository) ListConfirmedInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	status := domain.StatusConfirmed
	return r.ListInRange(ctx, domain.BookingsRangeFilter{
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
		Status:         &status,
	})
}

// ListByOrganization получает бронирования организации с фильтрацией по статусу и периоду начала
func (r *Repository) ListByOrganization(ctx context.Context, filter domain.OrganizationBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := organizationQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrganization - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrganization - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetStats считает бронирования организации по статусам и предстоящие относительно now
func (r *Repository) GetStats(ctx context.Context, organizationID uuid.UUID, now time.Time) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusConfirmed)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?)", domain.StatusCancelled)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ? AND start_time > ?)", domain.StatusConfirmed, now)).
		From(tableBookings).
		Where(squirrel.Eq{"organization_id": organizationID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - build select query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.Total,
		&stats.Confirmed,
		&stats.Cancelled,
		&stats.Upcoming,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStats - scan stats: %v", ErrScanRow, err)
	}

	return &stats, nil
}

// CountForDashboard считает все бронирования организации и те, что начинаются в [dayStart, dayEnd)
func (r *Repository) CountForDashboard(ctx context.Context, organizationID uuid.UUID, dayStart, dayEnd time.Time) (total, today int, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := dashboardCountsQuery(organizationID, dayStart, dayEnd).ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: CountForDashboard - build select query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total, &today); err != nil {
		return 0, 0, fmt.Errorf("%w: CountForDashboard - scan counts: %v", ErrScanRow, err)
	}

	return total, today, nil
}

// ListUpcoming получает ближайшие подтвержденные бронирования организации после now
func (r *Repository) ListUpcoming(ctx context.Context, organizationID uuid.UUID, now time.Time, limit int) ([]domain.UpcomingBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upcomingQuery(organizationID, now, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	upcoming := make([]domain.UpcomingBooking, 0, limit)
	for rows.Next() {
		var b domain.UpcomingBooking
		if err := rows.Scan(&b.ID, &b.ClientName, &b.StartTime, &b.ServiceName, &b.ProfessionalName); err != nil {
			return nil, fmt.Errorf("%w: ListUpcoming - scan row: %v", ErrScanRow, err)
		}
		upcoming = append(upcoming, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - rows iteration: %v", ErrScanRow, err)
	}

	return upcoming, nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rangeQuery выборка по пересечению с [From, To): start_time < To AND end_time > From.
// Так захватываются и записи, начавшиеся накануне и переходящие через полночь.
func rangeQuery(filter domain.BookingsRangeFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"professional_id": filter.ProfessionalID}).
		Where(squirrel.Lt{"start_time": filter.To}).
		Where(squirrel.Gt{"end_time": filter.From}).
		OrderBy("start_time ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	return selectBuilder
}

func organizationQuery(filter domain.OrganizationBookingsFilter) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"organization_id": filter.OrganizationID}).
		OrderBy("start_time ASC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_time": *filter.To})
	}
	return selectBuilder
}

func dashboardCountsQuery(organizationID uuid.UUID, dayStart, dayEnd time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE start_time >= ? AND start_time < ?)", dayStart, dayEnd)).
		From(tableBookings).
		Where(squirrel.Eq{"organization_id": organizationID})
}

func upcomingQuery(organizationID uuid.UUID, now time.Time, limit int) squirrel.SelectBuilder {
	return psqlbuilder.Select("b.id", "b.client_name", "b.start_time", "s.name", "p.name").
		From(tableBookings + " b").
		Join("services s ON s.id = b.service_id").
		Join("professionals p ON p.id = b.professional_id").
		Where(squirrel.Eq{"b.organization_id": organizationID}).
		Where(squirrel.Eq{"b.status": domain.StatusConfirmed}).
		Where(squirrel.Gt{"b.start_time": now}).
		OrderBy("b.start_time ASC").
		Limit(uint64(limit))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.OrganizationID,
		&booking.ProfessionalID,
		&booking.ServiceID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
