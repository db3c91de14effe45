package get_available_dates

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_dates"
)

// FromUseCaseResponse возвращает даты в формате YYYY-MM-DD
func FromUseCaseResponse(resp *getAvailableDates.Response) []string {
	dates := make([]string, len(resp.Dates))
	for i, date := range resp.Dates {
		dates[i] = date.Format(domain.DateFormat)
	}
	return dates
}
