package domain

import (
	"time"

	"github.com/google/uuid"
)

// DashboardStats сводка организации для главной страницы
type DashboardStats struct {
	TodayBookings       int
	TotalBookings       int
	ActiveServices      int
	ActiveProfessionals int
	Upcoming            []UpcomingBooking
}

// UpcomingBooking ближайшая запись с названиями услуги и сотрудника
type UpcomingBooking struct {
	ID               uuid.UUID
	ClientName       string
	StartTime        time.Time
	ServiceName      string
	ProfessionalName string
}
