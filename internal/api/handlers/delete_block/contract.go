package delete_block

import (
	"context"

	"github.com/google/uuid"
)

type ScheduleService interface {
	DeleteBlock(ctx context.Context, organizationID, blockID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
