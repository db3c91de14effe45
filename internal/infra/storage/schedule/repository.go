package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableScheduleRules = "schedule_rules"

var ruleColumns = []string{
	"id",
	"professional_id",
	"day_of_week",
	"start_time",
	"end_time",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий еженедельных правил расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive получает активные правила сотрудника.
// Если dayOfWeek задан - только на этот день недели.
// Уникальность (professional_id, day_of_week) на уровне схемы не предполагается вызывающим кодом.
func (r *Repository) ListActive(ctx context.Context, professionalID uuid.UUID, dayOfWeek *int) ([]*domain.ScheduleRule, error) {
	return r.list(ctx, "ListActive", activeRulesQuery(professionalID, dayOfWeek))
}

func activeRulesQuery(professionalID uuid.UUID, dayOfWeek *int) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From(tableScheduleRules).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"active": true}).
		OrderBy("day_of_week ASC", "start_time ASC")

	if dayOfWeek != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"day_of_week": *dayOfWeek})
	}
	return selectBuilder
}

// ListByProfessional получает все правила сотрудника, включая неактивные
func (r *Repository) ListByProfessional(ctx context.Context, professionalID uuid.UUID) ([]*domain.ScheduleRule, error) {
	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From(tableScheduleRules).
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("day_of_week ASC", "start_time ASC")

	return r.list(ctx, "ListByProfessional", selectBuilder)
}

// Upsert создает или обновляет правило на (professional_id, day_of_week)
func (r *Repository) Upsert(ctx context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableScheduleRules).
		Columns("id", "professional_id", "day_of_week", "start_time", "end_time", "active").
		Values(rule.ID, rule.ProfessionalID, rule.DayOfWeek, rule.StartTime, rule.EndTime, rule.Active).
		Suffix(`ON CONFLICT (professional_id, day_of_week) DO UPDATE
			SET start_time = EXCLUDED.start_time,
				end_time = EXCLUDED.end_time,
				active = EXCLUDED.active,
				updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return rule, nil
}

// Delete удаляет правило сотрудника на день недели
func (r *Repository) Delete(ctx context.Context, professionalID uuid.UUID, dayOfWeek int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableScheduleRules).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.ScheduleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rules := make([]*domain.ScheduleRule, 0)
	for rows.Next() {
		var rule domain.ScheduleRule
		if err := rows.Scan(
			&rule.ID,
			&rule.ProfessionalID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.Active,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return rules, nil
}

// pq код foreign_key_violation: сотрудника с таким professional_id нет
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
