package list_blocks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeService struct {
	req *models.ListBlocksRequest
	err error
}

func (f *fakeService) ListBlocks(_ context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlockListResponse{Blocks: []models.BlockResponse{}}, nil
}

func doRequest(h *Handler, professionalID, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"professionalId": professionalID})
	req = req.WithContext(middleware.WithOrganizationID(req.Context(), uuid.New()))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Range(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, time.UTC, logger.NewNop())

	rec := doRequest(h, uuid.NewString(), "from=2025-03-10&to=2025-03-10")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	require.NotNil(t, svc.req.From)
	require.NotNil(t, svc.req.To)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *svc.req.From)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), *svc.req.To)
}

func TestHandle_RangeInLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	svc := &fakeService{}
	h := NewHandler(svc, loc, logger.NewNop())

	rec := doRequest(h, uuid.NewString(), "from=2025-03-10&to=2025-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	// полночь по Москве это 21:00 UTC предыдущего дня
	assert.True(t, svc.req.From.Equal(time.Date(2025, 3, 9, 21, 0, 0, 0, time.UTC)), "from=%s", svc.req.From)
	assert.True(t, svc.req.To.Equal(time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)), "to=%s", svc.req.To)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name           string
		professionalID string
		query          string
		err            error
		status         int
	}{
		{"invalid professional", "p1", "", nil, http.StatusBadRequest},
		{"invalid from", uuid.NewString(), "from=yesterday", nil, http.StatusBadRequest},
		{"reversed", uuid.NewString(), "from=2025-03-10&to=2025-03-01", schedule.ErrInvalidTimeRange, http.StatusBadRequest},
		{"not found", uuid.NewString(), "", schedule.ErrProfessionalNotFound, http.StatusNotFound},
		{"internal", uuid.NewString(), "", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, time.UTC, logger.NewNop())

			rec := doRequest(h, tt.professionalID, tt.query)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
