package list_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings"
)

const (
	msgMissingOrganizationID = "отсутствует ID организации"
	msgInvalidParams         = "некорректные параметры запроса"
	msgInvalidStatus         = "некорректный статус, ожидается confirmed или cancelled"
	msgInvalidTimeRange      = "endDate не может быть раньше startDate"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

// NewHandler location - зона, в которой границы дат совпадают с днями расписания
func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: status, startDate, endDate (YYYY-MM-DD), все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing organization ID")
		handlers.RespondUnauthorized(w, msgMissingOrganizationID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(organizationID, query.Get("status"), query.Get("startDate"), query.Get("endDate"), h.location)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid status: organization_id=%s", organizationID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /bookings - Invalid time range: organization_id=%s", organizationID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		default:
			h.logger.Error("GET /bookings - Failed to get bookings: organization_id=%s, error=%v", organizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: organization_id=%s, count=%d",
		organizationID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
