package get_available_dates

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса рабочих дат сотрудника
type Request struct {
	ProfessionalID uuid.UUID
	DaysAhead      int // Горизонт в днях начиная с сегодня, <= 0 - пустой результат
}

// Response модель ответа. Dates - полночь каждой даты, по возрастанию.
type Response struct {
	ProfessionalID uuid.UUID
	Dates          []time.Time
}
