package create_block

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartTime string `json:"startTime"` // RFC3339
	EndTime   string `json:"endTime"`   // RFC3339
	Reason    string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest() (*models.CreateBlockRequest, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}

	return &models.CreateBlockRequest{
		StartTime: start,
		EndTime:   end,
		Reason:    r.Reason,
	}, nil
}
