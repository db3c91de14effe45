package domain

import (
	"time"

	"github.com/google/uuid"
)

// Block разовый интервал, когда сотрудник недоступен независимо от расписания
type Block struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	Reason         string
	CreatedAt      time.Time
}

// Interval возвращает интервал блокировки
func (b *Block) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}
