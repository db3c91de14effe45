package delete_schedule_rule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) DeleteRule(_ context.Context, _, _ uuid.UUID, _ int) error {
	return f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		day    string
		err    error
		status int
	}{
		{"deleted", "2", nil, http.StatusNoContent},
		{"invalid day", "x", nil, http.StatusBadRequest},
		{"day out of range", "8", schedule.ErrInvalidInput, http.StatusBadRequest},
		{"no rule", "2", schedule.ErrRuleNotFound, http.StatusNotFound},
		{"no professional", "2", schedule.ErrProfessionalNotFound, http.StatusNotFound},
		{"internal", "2", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())
			req := httptest.NewRequest(http.MethodDelete, "/", nil)
			req = mux.SetURLVars(req, map[string]string{"professionalId": uuid.NewString(), "dayOfWeek": tt.day})
			req = req.WithContext(middleware.WithOrganizationID(req.Context(), uuid.New()))
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
