package get_dashboard_stats

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const msgMissingOrganizationID = "отсутствует ID организации"

type Handler struct {
	service DashboardService
	logger  Logger
}

func NewHandler(service DashboardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dashboard/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		h.logger.Warn("GET /dashboard/stats - Missing organization ID")
		handlers.RespondUnauthorized(w, msgMissingOrganizationID)
		return
	}

	stats, err := h.service.GetStats(r.Context(), organizationID)
	if err != nil {
		h.logger.Error("GET /dashboard/stats - Failed to get stats: organization_id=%s, error=%v", organizationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dashboard/stats - Stats retrieved: organization_id=%s, today=%d, upcoming=%d",
		organizationID, stats.TodayBookings, len(stats.UpcomingBookings))
	handlers.RespondJSON(w, http.StatusOK, stats)
}
