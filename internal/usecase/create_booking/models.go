package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	OrganizationID uuid.UUID // Организация из заголовка запроса
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	StartTime      time.Time // Абсолютное время начала
	ClientName     string
	ClientEmail    string
	ClientPhone    *string
	Notes          *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	Status         string

	// Денормализованные данные
	ServiceName      string
	ServicePrice     float64
	ProfessionalName string

	ClientName  string
	ClientEmail string
	ClientPhone *string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
