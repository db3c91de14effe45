package block

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const tableBlocks = "blocks"

var blockColumns = []string{
	"id",
	"professional_id",
	"start_time",
	"end_time",
	"reason",
	"created_at",
}

// Repository репозиторий блокировок времени сотрудников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую блокировку
func (r *Repository) Create(ctx context.Context, block *domain.Block) (*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableBlocks).
		Columns("id", "professional_id", "start_time", "end_time", "reason").
		Values(block.ID, block.ProfessionalID, block.StartTime, block.EndTime, block.Reason).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return block, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockColumns...).
		From(tableBlocks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var block domain.Block
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&block.ProfessionalID,
		&block.StartTime,
		&block.EndTime,
		&block.Reason,
		&block.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %v", ErrScanRow, err)
	}

	return &block, nil
}

// ListInRange получает блокировки сотрудника, пересекающиеся с [from, to).
// Нулевые from/to снимают соответствующее ограничение.
func (r *Repository) ListInRange(ctx context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := rangeQuery(professionalID, from, to).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.Block, 0)
	for rows.Next() {
		var block domain.Block
		if err := rows.Scan(
			&block.ID,
			&block.ProfessionalID,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
			&block.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListInRange - scan row: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListInRange - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableBlocks).
		Where(squirrel.Eq{"id": id}).
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
		return ErrBlockNotFound
	}

	return nil
}

func rangeQuery(professionalID uuid.UUID, from, to time.Time) squirrel.SelectBuilder {
	selectBuilder := psqlbuilder.Select(blockColumns...).
		From(tableBlocks).
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("start_time ASC")

	if !to.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": to})
	}
	if !from.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": from})
	}
	return selectBuilder
}

// pq код foreign_key_violation: сотрудника с таким professional_id нет
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
