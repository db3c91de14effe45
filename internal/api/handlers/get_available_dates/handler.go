package get_available_dates

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_dates"
)

const (
	msgMissingProfessionalID = "ID сотрудника обязателен"
	msgInvalidProfessionalID = "некорректный ID сотрудника"
	msgInvalidDaysAhead      = "daysAhead должен быть целым числом от 1 до %d"
)

type Handler struct {
	useCase          GetAvailableDatesUseCase
	defaultDaysAhead int
	maxDaysAhead     int
	logger           Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, defaultDaysAhead, maxDaysAhead int, logger Logger) *Handler {
	return &Handler{
		useCase:          useCase,
		defaultDaysAhead: defaultDaysAhead,
		maxDaysAhead:     maxDaysAhead,
		logger:           logger,
	}
}

// Handle GET /api/v1/availability/dates
// Query params: professionalId (required), daysAhead (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	professionalIDStr := query.Get("professionalId")
	if professionalIDStr == "" {
		h.logger.Warn("GET /availability/dates - Missing professional ID")
		handlers.RespondBadRequest(w, msgMissingProfessionalID)
		return
	}
	professionalID, err := uuid.Parse(professionalIDStr)
	if err != nil {
		h.logger.Warn("GET /availability/dates - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	daysAhead := h.defaultDaysAhead
	if raw := query.Get("daysAhead"); raw != "" {
		daysAhead, err = strconv.Atoi(raw)
		if err != nil || daysAhead < 1 || daysAhead > h.maxDaysAhead {
			h.logger.Warn("GET /availability/dates - Invalid daysAhead: %q", raw)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgInvalidDaysAhead, h.maxDaysAhead))
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableDates.Request{
		ProfessionalID: professionalID,
		DaysAhead:      daysAhead,
	})
	if err != nil {
		if errors.Is(err, getAvailableDates.ErrInvalidInput) {
			h.logger.Warn("GET /availability/dates - Invalid request: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /availability/dates - Failed to get dates: professional_id=%s, error=%v", professionalID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/dates - Dates retrieved: professional_id=%s, days_ahead=%d, dates_count=%d",
		professionalID, daysAhead, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
