package create_booking

import (
	"time"

	"github.com/google/uuid"

	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID      uuid.UUID `json:"serviceId"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	StartTime      string    `json:"startTime"` // RFC3339, "2025-10-15T10:00:00+03:00"
	ClientName     string    `json:"clientName"`
	ClientEmail    string    `json:"clientEmail"`
	ClientPhone    *string   `json:"clientPhone,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               uuid.UUID `json:"id"`
	OrganizationID   uuid.UUID `json:"organizationId"`
	ServiceID        uuid.UUID `json:"serviceId"`
	ProfessionalID   uuid.UUID `json:"professionalId"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	Status           string    `json:"status"`
	ServiceName      string    `json:"serviceName"`
	ServicePrice     float64   `json:"servicePrice"`
	ProfessionalName string    `json:"professionalName"`
	ClientName       string    `json:"clientName"`
	ClientEmail      string    `json:"clientEmail"`
	ClientPhone      *string   `json:"clientPhone,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        string    `json:"createdAt"`
	UpdatedAt        string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(organizationID uuid.UUID) (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		OrganizationID: organizationID,
		ServiceID:      r.ServiceID,
		ProfessionalID: r.ProfessionalID,
		StartTime:      startTime,
		ClientName:     r.ClientName,
		ClientEmail:    r.ClientEmail,
		ClientPhone:    r.ClientPhone,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		OrganizationID:   resp.OrganizationID,
		ServiceID:        resp.ServiceID,
		ProfessionalID:   resp.ProfessionalID,
		StartTime:        resp.StartTime.Format(time.RFC3339),
		EndTime:          resp.EndTime.Format(time.RFC3339),
		Status:           resp.Status,
		ServiceName:      resp.ServiceName,
		ServicePrice:     resp.ServicePrice,
		ProfessionalName: resp.ProfessionalName,
		ClientName:       resp.ClientName,
		ClientEmail:      resp.ClientEmail,
		ClientPhone:      resp.ClientPhone,
		Notes:            resp.Notes,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
