package delete_schedule_rule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidProfessionalID = "некорректный ID сотрудника"
	msgInvalidDayOfWeek      = "день недели должен быть числом от 0 (воскресенье) до 6 (суббота)"
	msgMissingOrganizationID = "отсутствует ID организации"
	msgProfessionalNotFound  = "сотрудник не найден"
	msgRuleNotFound          = "правило на этот день не найдено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/professionals/{professionalId}/schedule-rules/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	professionalID, err := uuid.Parse(vars["professionalId"])
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/schedule-rules/{day} - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("DELETE /professionals/{id}/schedule-rules/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /professionals/{id}/schedule-rules/{day} - Missing organization ID")
		handlers.RespondUnauthorized(w, msgMissingOrganizationID)
		return
	}

	if err := h.service.DeleteRule(r.Context(), organizationID, professionalID, dayOfWeek); err != nil {
		switch {
		case errors.Is(err, schedule.ErrProfessionalNotFound):
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, schedule.ErrRuleNotFound):
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		default:
			h.logger.Error("DELETE /professionals/{id}/schedule-rules/{day} - Failed to delete rule: professional_id=%s, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /professionals/{id}/schedule-rules/{day} - Rule deleted: professional_id=%s, day=%d",
		professionalID, dayOfWeek)
	handlers.RespondNoContent(w)
}
