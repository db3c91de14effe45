package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
)

const (
	msgMissingOrganizationID = "отсутствует ID организации"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidStartTime      = "некорректный формат времени начала, ожидается RFC3339"
	msgSlotNotAvailable      = "выбранный временной слот недоступен"
	msgServiceNotFound       = "услуга не найдена"
	msgProfessionalNotFound  = "сотрудник не найден"
	msgServiceNotProvided    = "сотрудник не оказывает эту услугу"
	msgInactive              = "услуга или сотрудник недоступны для записи"
	msgStartInPast           = "время начала должно быть в будущем"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing organization ID")
		handlers.RespondUnauthorized(w, msgMissingOrganizationID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(organizationID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid start time %q: %v", req.StartTime, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: professional_id=%s, start=%s",
				req.ProfessionalID, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrProfessionalNotFound):
			h.logger.Warn("POST /bookings - Professional not found: professional_id=%s", req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, createBooking.ErrServiceNotProvided):
			h.logger.Warn("POST /bookings - Service not provided: service_id=%s, professional_id=%s",
				req.ServiceID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, createBooking.ErrInactive):
			h.logger.Warn("POST /bookings - Inactive: service_id=%s, professional_id=%s", req.ServiceID, req.ProfessionalID)
			handlers.RespondBadRequest(w, msgInactive)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: start=%s", req.StartTime)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: organization_id=%s, professional_id=%s, error=%v",
				organizationID, req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, organization_id=%s, professional_id=%s",
		result.ID, organizationID, result.ProfessionalID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
