package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Booking represents an appointment of a client with a professional
type Booking struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	Status         BookingStatus

	ClientName  string
	ClientEmail string
	ClientPhone *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies the professional's time
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// Interval returns the occupied interval [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// BookingsRangeFilter выборка бронирований сотрудника, пересекающихся с интервалом [From, To)
type BookingsRangeFilter struct {
	ProfessionalID uuid.UUID
	From           time.Time
	To             time.Time
	Status         *BookingStatus // nil - любые статусы
}

// OrganizationBookingsFilter выборка бронирований организации.
// From/To ограничивают start_time включительно, nil - без ограничения.
type OrganizationBookingsFilter struct {
	OrganizationID uuid.UUID
	Status         *BookingStatus
	From           *time.Time
	To             *time.Time
}

// BookingStats сводка по бронированиям организации
type BookingStats struct {
	Total     int
	Confirmed int
	Cancelled int
	Upcoming  int // подтвержденные с началом в будущем
}
