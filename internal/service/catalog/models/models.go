package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes int      `json:"duration"` // минуты
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"active,omitempty"` // по умолчанию true
}

// UpdateServiceRequest частичное обновление услуги: nil поля не меняются
type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"duration,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// CreateProfessionalRequest запрос на создание сотрудника вместе со связями на услуги
type CreateProfessionalRequest struct {
	Name       string      `json:"name"`
	Email      *string     `json:"email,omitempty"`
	Phone      *string     `json:"phone,omitempty"`
	Active     *bool       `json:"active,omitempty"` // по умолчанию true
	ServiceIDs []uuid.UUID `json:"services,omitempty"`
}

// Response модели

// ServiceResponse услуга
type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	OrganizationID  uuid.UUID `json:"organizationId"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes int       `json:"duration"`
	Price           float64   `json:"price"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг организации
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// ServiceRefResponse краткая ссылка на услугу
type ServiceRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProfessionalResponse сотрудник и услуги, которые он оказывает
type ProfessionalResponse struct {
	ID             uuid.UUID            `json:"id"`
	OrganizationID uuid.UUID            `json:"organizationId"`
	Name           string               `json:"name"`
	Email          *string              `json:"email,omitempty"`
	Phone          *string              `json:"phone,omitempty"`
	Active         bool                 `json:"active"`
	Services       []ServiceRefResponse `json:"services"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// ProfessionalListResponse список сотрудников организации
type ProfessionalListResponse struct {
	Professionals []ProfessionalResponse `json:"professionals"`
}

// Методы конвертации

// FromDomainService конвертирует услугу в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		OrganizationID:  s.OrganizationID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, service := range services {
		resp.Services = append(resp.Services, *FromDomainService(service))
	}
	return resp
}

// FromDomainProfessional конвертирует сотрудника в DTO
func FromDomainProfessional(p *domain.Professional) *ProfessionalResponse {
	resp := &ProfessionalResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		Active:         p.Active,
		Services:       make([]ServiceRefResponse, 0, len(p.Services)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for _, ref := range p.Services {
		resp.Services = append(resp.Services, ServiceRefResponse{ID: ref.ID, Name: ref.Name})
	}
	return resp
}

// FromDomainProfessionalList конвертирует список сотрудников в DTO
func FromDomainProfessionalList(professionals []*domain.Professional) *ProfessionalListResponse {
	resp := &ProfessionalListResponse{Professionals: make([]ProfessionalResponse, 0, len(professionals))}
	for _, professional := range professionals {
		resp.Professionals = append(resp.Professionals, *FromDomainProfessional(professional))
	}
	return resp
}
