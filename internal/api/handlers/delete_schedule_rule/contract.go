package delete_schedule_rule

import (
	"context"

	"github.com/google/uuid"
)

type ScheduleService interface {
	DeleteRule(ctx context.Context, organizationID, professionalID uuid.UUID, dayOfWeek int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
