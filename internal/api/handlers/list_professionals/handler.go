package list_professionals

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
)

const msgMissingOrganizationID = "отсутствует ID организации"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/professionals
// Каждый сотрудник отдается со списком услуг (id, name).
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, ok := middleware.GetOrganizationID(r.Context())
	if !ok {
		h.logger.Warn("GET /professionals - Missing organization ID")
		handlers.RespondUnauthorized(w, msgMissingOrganizationID)
		return
	}

	result, err := h.service.ListProfessionals(r.Context(), organizationID)
	if err != nil {
		h.logger.Error("GET /professionals - Failed to list professionals: organization_id=%s, error=%v", organizationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /professionals - Professionals retrieved: organization_id=%s, count=%d",
		organizationID, len(result.Professionals))
	handlers.RespondJSON(w, http.StatusOK, result.Professionals)
}
