package upsert_schedule_rule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpsertRule(
		ctx context.Context,
		organizationID, professionalID uuid.UUID,
		dayOfWeek int,
		req *models.UpsertRuleRequest,
	) (*models.RuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
