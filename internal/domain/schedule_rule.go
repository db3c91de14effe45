package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// ScheduleRule еженедельное окно доступности сотрудника в один день недели
type ScheduleRule struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	DayOfWeek      int // 0 = воскресенье ... 6 = суббота
	StartTime      types.TimeString
	EndTime        types.TimeString
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Window привязывает правило к дате и возвращает интервал [start, end)
func (r *ScheduleRule) Window(date time.Time) Interval {
	return Interval{
		Start: r.StartTime.On(date),
		End:   r.EndTime.On(date),
	}
}

// IsValid проверяет день недели и порядок времени
func (r *ScheduleRule) IsValid() bool {
	return r.DayOfWeek >= MinDayOfWeek && r.DayOfWeek <= MaxDayOfWeek &&
		r.EndTime.IsAfter(r.StartTime)
}
