package list_bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// Даты отсчитываются в loc, endDate включительно: фильтр доходит до конца указанного дня.
func ToServiceRequest(
	organizationID uuid.UUID,
	statusStr, startDateStr, endDateStr string,
	loc *time.Location,
) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{OrganizationID: organizationID}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.ParseInLocation(domain.DateFormat, startDateStr, loc)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.ParseInLocation(domain.DateFormat, endDateStr, loc)
		if err != nil {
			return nil, err
		}
		endOfDay := endDate.AddDate(0, 0, 1).Add(-time.Microsecond)
		req.EndDate = &endOfDay
	}

	return req, nil
}
