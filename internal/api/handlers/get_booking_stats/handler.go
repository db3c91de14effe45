package get_booking_stats

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const msgMissingOrganizationID = "отсутствует ID организации"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/stats - Missing organization ID")
		handlers.RespondUnauthorized(w, msgMissingOrganizationID)
		return
	}

	stats, err := h.service.GetStats(r.Context(), organizationID)
	if err != nil {
		h.logger.Error("GET /bookings/stats - Failed to get stats: organization_id=%s, error=%v", organizationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/stats - Stats retrieved: organization_id=%s, total=%d", organizationID, stats.Total)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
