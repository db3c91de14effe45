package domain

import (
	"time"

	"github.com/google/uuid"
)

// Service услуга организации. DurationMinutes задает и шаг слотов, и длину записи.
type Service struct {
	ID              uuid.UUID
	OrganizationID  uuid.UUID
	Name            string
	Description     *string
	DurationMinutes int
	Price           float64
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration возвращает длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// IsValid проверяет поля услуги перед записью
func (s *Service) IsValid() bool {
	return s.Name != "" && s.DurationMinutes >= MinServiceDurationMinutes &&
		s.DurationMinutes <= MaxServiceDurationMinutes && s.Price >= 0
}

// Professional сотрудник организации, оказывающий услуги
type Professional struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	Name           string
	Email          *string
	Phone          *string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Services заполняется только при выборке списка сотрудников
	Services []ServiceRef
}

// ServiceRef краткая ссылка на услугу
type ServiceRef struct {
	ID   uuid.UUID
	Name string
}

// ServiceProfessionalLink сотрудник может оказывать услугу
type ServiceProfessionalLink struct {
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
}
