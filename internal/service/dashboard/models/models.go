package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UpcomingBookingResponse ближайшая запись
type UpcomingBookingResponse struct {
	ID               uuid.UUID `json:"id"`
	ClientName       string    `json:"clientName"`
	StartTime        time.Time `json:"startTime"`
	ServiceName      string    `json:"serviceName"`
	ProfessionalName string    `json:"professionalName"`
}

// DashboardStatsResponse сводка организации
type DashboardStatsResponse struct {
	TodayBookings       int                       `json:"todayBookings"`
	TotalBookings       int                       `json:"totalBookings"`
	ActiveServices      int                       `json:"activeServices"`
	ActiveProfessionals int                       `json:"activeProfessionals"`
	UpcomingBookings    []UpcomingBookingResponse `json:"upcomingBookings"`
}

// FromDomainStats конвертирует сводку в DTO. Время записей отдается в loc.
func FromDomainStats(s *domain.DashboardStats, loc *time.Location) *DashboardStatsResponse {
	resp := &DashboardStatsResponse{
		TodayBookings:       s.TodayBookings,
		TotalBookings:       s.TotalBookings,
		ActiveServices:      s.ActiveServices,
		ActiveProfessionals: s.ActiveProfessionals,
		UpcomingBookings:    make([]UpcomingBookingResponse, 0, len(s.Upcoming)),
	}
	for _, b := range s.Upcoming {
		resp.UpcomingBookings = append(resp.UpcomingBookings, UpcomingBookingResponse{
			ID:               b.ID,
			ClientName:       b.ClientName,
			StartTime:        b.StartTime.In(loc),
			ServiceName:      b.ServiceName,
			ProfessionalName: b.ProfessionalName,
		})
	}
	return resp
}
