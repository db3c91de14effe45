package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модели

// UpsertRuleRequest запрос на создание или замену правила на день недели
type UpsertRuleRequest struct {
	StartTime string `json:"startTime"`        // "HH:MM"
	EndTime   string `json:"endTime"`          // "HH:MM"
	Active    *bool  `json:"active,omitempty"` // по умолчанию true
}

// CreateBlockRequest запрос на создание блокировки
type CreateBlockRequest struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Reason    string    `json:"reason"`
}

// ListBlocksRequest запрос блокировок сотрудника за период
type ListBlocksRequest struct {
	OrganizationID uuid.UUID
	ProfessionalID uuid.UUID
	From           *time.Time
	To             *time.Time
}

// Response модели

// RuleResponse правило расписания
type RuleResponse struct {
	ID             uuid.UUID        `json:"id"`
	ProfessionalID uuid.UUID        `json:"professionalId"`
	DayOfWeek      int              `json:"dayOfWeek"`
	StartTime      types.TimeString `json:"startTime"`
	EndTime        types.TimeString `json:"endTime"`
	Active         bool             `json:"active"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// RuleListResponse список правил сотрудника
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// BlockResponse блокировка
type BlockResponse struct {
	ID             uuid.UUID `json:"id"`
	ProfessionalID uuid.UUID `json:"professionalId"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BlockListResponse список блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainRule конвертирует правило в DTO
func FromDomainRule(r *domain.ScheduleRule) *RuleResponse {
	return &RuleResponse{
		ID:             r.ID,
		ProfessionalID: r.ProfessionalID,
		DayOfWeek:      r.DayOfWeek,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		Active:         r.Active,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// FromDomainRuleList конвертирует список правил в DTO
func FromDomainRuleList(rules []*domain.ScheduleRule) *RuleListResponse {
	resp := &RuleListResponse{Rules: make([]RuleResponse, 0, len(rules))}
	for _, rule := range rules {
		resp.Rules = append(resp.Rules, *FromDomainRule(rule))
	}
	return resp
}

// FromDomainBlock конвертирует блокировку в DTO
func FromDomainBlock(b *domain.Block) *BlockResponse {
	return &BlockResponse{
		ID:             b.ID,
		ProfessionalID: b.ProfessionalID,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Reason:         b.Reason,
		CreatedAt:      b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список блокировок в DTO
func FromDomainBlockList(blocks []*domain.Block) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(blocks))}
	for _, block := range blocks {
		resp.Blocks = append(resp.Blocks, *FromDomainBlock(block))
	}
	return resp
}
