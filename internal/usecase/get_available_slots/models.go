package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	Date           time.Time // Дата без времени, время и зона игнорируются
}

// Response модель ответа со списком слотов
type Response struct {
	Date           time.Time
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID
	Slots          []domain.SlotResult // Порядок: по правилам, внутри правила по времени
}

// Options настройки расчета слотов
type Options struct {
	// Location часовой пояс, в котором правила расписания привязываются к дате
	Location *time.Location
	// MergeOverlappingRules объединять пересекающиеся правила одного дня перед нарезкой
	MergeOverlappingRules bool
}
