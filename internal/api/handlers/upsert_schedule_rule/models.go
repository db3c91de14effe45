package upsert_schedule_rule

import (
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

// UpsertRuleRequest HTTP request model
type UpsertRuleRequest struct {
	StartTime string `json:"startTime"`        // "09:00"
	EndTime   string `json:"endTime"`          // "18:00"
	Active    *bool  `json:"active,omitempty"` // по умолчанию true
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpsertRuleRequest) ToServiceRequest() *models.UpsertRuleRequest {
	return &models.UpsertRuleRequest{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Active:    r.Active,
	}
}
