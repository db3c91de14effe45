package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*domain.ScheduleRule, error)
	Upsert(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error)
	Delete(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) error
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	Create(ctx context.Context, block *domain.Block) (*domain.Block, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Block, error)
	ListInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Block, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfessionalRepository интерфейс чтения сотрудников, для проверки организации
type ProfessionalRepository interface {
	GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
