package list_blocks

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

// ToServiceRequest формирует запрос к сервису. Даты отсчитываются в loc, to включительно: до конца указанного дня.
func ToServiceRequest(organizationID, professionalID uuid.UUID, fromStr, toStr string, loc *time.Location) (*models.ListBlocksRequest, error) {
	req := &models.ListBlocksRequest{
		OrganizationID: organizationID,
		ProfessionalID: professionalID,
	}

	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, err
		}
		nextDay := to.AddDate(0, 0, 1)
		req.To = &nextDay
	}

	return req, nil
}
