package get_dashboard_stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/service/dashboard/models"
)

type DashboardService interface {
	GetStats(ctx context.Context, organizationID uuid.UUID) (*models.DashboardStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
