package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeUseCase struct {
	req *createBooking.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBooking.Response{
		ID:               uuid.New(),
		OrganizationID:   req.OrganizationID,
		ServiceID:        req.ServiceID,
		ProfessionalID:   req.ProfessionalID,
		StartTime:        req.StartTime,
		EndTime:          req.StartTime.Add(30 * time.Minute),
		Status:           "confirmed",
		ServiceName:      "Haircut",
		ServicePrice:     25,
		ProfessionalName: "Anna",
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
	}, nil
}

func bookingBody(startTime string) string {
	return fmt.Sprintf(`{
		"serviceId": %q,
		"professionalId": %q,
		"startTime": %q,
		"clientName": "John",
		"clientEmail": "john@example.com"
	}`, uuid.NewString(), uuid.NewString(), startTime)
}

func doRequest(h *Handler, orgID *uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if orgID != nil {
		req = req.WithContext(middleware.WithOrganizationID(req.Context(), *orgID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())
	orgID := uuid.New()

	rec := doRequest(h, &orgID, bookingBody("2025-03-10T09:00:00Z"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, orgID, uc.req.OrganizationID)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), uc.req.StartTime.UTC())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10T09:00:00Z", resp.StartTime)
	assert.Equal(t, "2025-03-10T09:30:00Z", resp.EndTime)
	assert.Equal(t, "Anna", resp.ProfessionalName)
}

func TestHandle_BadInput(t *testing.T) {
	orgID := uuid.New()

	tests := []struct {
		name string
		body string
	}{
		{"broken json", `{"serviceId":`},
		{"unknown field", `{"userId": 1}`},
		{"date only", bookingBody("2025-03-10")},
		{"no zone", bookingBody("2025-03-10T09:00:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, logger.NewNop())

			rec := doRequest(h, &orgID, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.req)
		})
	}
}

func TestHandle_MissingOrganization(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.NewNop())

	rec := doRequest(h, nil, bookingBody("2025-03-10T09:00:00Z"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{createBooking.ErrServiceNotFound, http.StatusNotFound},
		{createBooking.ErrProfessionalNotFound, http.StatusNotFound},
		{createBooking.ErrServiceNotProvided, http.StatusBadRequest},
		{createBooking.ErrInactive, http.StatusBadRequest},
		{createBooking.ErrStartInPast, http.StatusBadRequest},
		{fmt.Errorf("%w: clientEmail is invalid", createBooking.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("%w: db down", createBooking.ErrInternal), http.StatusInternalServerError},
		{errors.New("unexpected"), http.StatusInternalServerError},
	}

	orgID := uuid.New()
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop())

			rec := doRequest(h, &orgID, bookingBody("2025-03-10T09:00:00Z"))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
