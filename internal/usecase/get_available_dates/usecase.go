package get_available_dates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UseCase подсказка для календаря: даты, в которые у сотрудника есть хотя бы одно активное правило.
// Бронирования и блокировки не учитываются.
type UseCase struct {
	ruleRepo     RuleRepository
	timeProvider TimeProvider
	logger       Logger
	location     *time.Location
}

// NewUseCase создает новый экземпляр use case. nil location - UTC.
func NewUseCase(ruleRepo RuleRepository, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		ruleRepo:     ruleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		location:     location,
	}
}

// Execute выполняет use case
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.ProfessionalID == uuid.Nil {
		uc.logger.Warn("GetAvailableDates: professionalID is required")
		return nil, fmt.Errorf("%w: professionalID is required", ErrInvalidInput)
	}

	resp := &Response{
		ProfessionalID: req.ProfessionalID,
		Dates:          []time.Time{},
	}

	if req.DaysAhead <= 0 {
		return resp, nil
	}

	rules, err := uc.ruleRepo.ListActiveRules(ctx, req.ProfessionalID, nil)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get schedule rules for professional=%s: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get schedule rules: %v", ErrInternal, err)
	}

	workdays := make(map[time.Weekday]struct{}, 7)
	for _, rule := range rules {
		if rule.Active {
			workdays[time.Weekday(rule.DayOfWeek)] = struct{}{}
		}
	}

	if len(workdays) == 0 {
		uc.logger.Info("GetAvailableDates: professional=%s has no active rules", req.ProfessionalID)
		return resp, nil
	}

	now := uc.timeProvider.Now().In(uc.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.location)

	for i := 0; i < req.DaysAhead; i++ {
		date := today.AddDate(0, 0, i)
		if _, ok := workdays[date.Weekday()]; ok {
			resp.Dates = append(resp.Dates, date)
		}
	}

	uc.logger.Info("GetAvailableDates: professional=%s, daysAhead=%d, dates=%d (from %s)",
		req.ProfessionalID, req.DaysAhead, len(resp.Dates), today.Format(domain.DateFormat))

	return resp, nil
}
