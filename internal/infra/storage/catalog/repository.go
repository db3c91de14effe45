package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

const (
	tableServices             = "services"
	tableProfessionals        = "professionals"
	tableServiceProfessionals = "service_professionals"
)

var serviceColumns = []string{
	"id",
	"organization_id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"active",
	"created_at",
	"updated_at",
}

var professionalColumns = []string{
	"id",
	"organization_id",
	"name",
	"email",
	"phone",
	"active",
	"created_at",
	"updated_at",
}

// Repository услуги, сотрудники организации и связи между ними
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From(tableServices).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	service, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return service, nil
}

// ListServices получает все услуги организации, включая неактивные
func (r *Repository) ListServices(ctx context.Context, organizationID uuid.UUID) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := listServicesQuery(organizationID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// CreateService создает услугу
func (r *Repository) CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableServices).
		Columns("id", "organization_id", "name", "description", "duration_minutes", "price", "active").
		Values(
			service.ID,
			service.OrganizationID,
			service.Name,
			service.Description,
			service.DurationMinutes,
			service.Price,
			service.Active,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&service.CreatedAt, &service.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	return service, nil
}

// UpdateService перезаписывает изменяемые поля услуги организации
func (r *Repository) UpdateService(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableServices).
		Set("name", service.Name).
		Set("description", service.Description).
		Set("duration_minutes", service.DurationMinutes).
		Set("price", service.Price).
		Set("active", service.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": service.ID}).
		Where(squirrel.Eq{"organization_id": service.OrganizationID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.CreatedAt, &service.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - execute update: %v", ErrExecQuery, err)
	}

	return service, nil
}

// GetProfessional получает сотрудника по ID
func (r *Repository) GetProfessional(ctx context.Context, id uuid.UUID) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From(tableProfessionals).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - build select query: %v", ErrBuildQuery, err)
	}

	professional, err := scanProfessional(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessional - scan professional: %v", ErrScanRow, err)
	}

	return professional, nil
}

// ListProfessionals получает сотрудников организации вместе с их услугами
func (r *Repository) ListProfessionals(ctx context.Context, organizationID uuid.UUID) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From(tableProfessionals).
		Where(squirrel.Eq{"organization_id": organizationID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		professional, err := scanProfessional(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListProfessionals - scan row: %v", ErrScanRow, err)
		}
		professional.Services = []domain.ServiceRef{}
		professionals = append(professionals, professional)
		ids = append(ids, professional.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListProfessionals - rows error: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return professionals, nil
	}

	linked, err := r.listLinkedServices(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, professional := range professionals {
		if refs, ok := linked[professional.ID]; ok {
			professional.Services = refs
		}
	}

	return professionals, nil
}

// CreateProfessional создает сотрудника
func (r *Repository) CreateProfessional(ctx context.Context, professional *domain.Professional) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if professional.ID == uuid.Nil {
		professional.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableProfessionals).
		Columns("id", "organization_id", "name", "email", "phone", "active").
		Values(
			professional.ID,
			professional.OrganizationID,
			professional.Name,
			professional.Email,
			professional.Phone,
			professional.Active,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&professional.CreatedAt, &professional.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateProfessional - execute insert: %v", ErrExecQuery, err)
	}

	return professional, nil
}

// AddLinks связывает сотрудника с услугами. Уже существующие связи пропускаются.
func (r *Repository) AddLinks(ctx context.Context, professionalID uuid.UUID, serviceIDs []uuid.UUID) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := addLinksQuery(professionalID, serviceIDs).ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddLinks - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return ErrServiceNotFound
		}
		return fmt.Errorf("%w: AddLinks - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetLink проверяет, что сотрудник может оказывать услугу
func (r *Repository) GetLink(ctx context.Context, serviceID, professionalID uuid.UUID) (*domain.ServiceProfessionalLink, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id", "professional_id").
		From(tableServiceProfessionals).
		Where(squirrel.Eq{"service_id": serviceID}).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLink - build select query: %v", ErrBuildQuery, err)
	}

	var link domain.ServiceProfessionalLink
	err = executor.QueryRowContext(ctx, query, args...).Scan(&link.ServiceID, &link.ProfessionalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLink - scan link: %v", ErrScanRow, err)
	}

	return &link, nil
}

// CountActive считает активные услуги и активных сотрудников организации одним запросом
func (r *Repository) CountActive(ctx context.Context, organizationID uuid.UUID) (services, professionals int, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countActiveQuery(organizationID).ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&services, &professionals); err != nil {
		return 0, 0, fmt.Errorf("%w: CountActive - scan counts: %v", ErrScanRow, err)
	}

	return services, professionals, nil
}

func (r *Repository) listLinkedServices(ctx context.Context, professionalIDs []uuid.UUID) (map[uuid.UUID][]domain.ServiceRef, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := linkedServicesQuery(professionalIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listLinkedServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listLinkedServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	linked := make(map[uuid.UUID][]domain.ServiceRef)
	for rows.Next() {
		var (
			professionalID uuid.UUID
			ref            domain.ServiceRef
		)
		if err := rows.Scan(&professionalID, &ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("%w: listLinkedServices - scan row: %v", ErrScanRow, err)
		}
		linked[professionalID] = append(linked[professionalID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listLinkedServices - rows error: %v", ErrScanRow, err)
	}

	return linked, nil
}

func listServicesQuery(organizationID uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select(serviceColumns...).
		From(tableServices).
		Where(squirrel.Eq{"organization_id": organizationID}).
		OrderBy("name ASC")
}

func linkedServicesQuery(professionalIDs []uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select("sp.professional_id", "s.id", "s.name").
		From(tableServiceProfessionals + " sp").
		Join(tableServices + " s ON s.id = sp.service_id").
		Where(squirrel.Eq{"sp.professional_id": professionalIDs}).
		OrderBy("s.name ASC")
}

func addLinksQuery(professionalID uuid.UUID, serviceIDs []uuid.UUID) squirrel.InsertBuilder {
	insertBuilder := psqlbuilder.Insert(tableServiceProfessionals).
		Columns("service_id", "professional_id")
	for _, serviceID := range serviceIDs {
		insertBuilder = insertBuilder.Values(serviceID, professionalID)
	}
	return insertBuilder.Suffix("ON CONFLICT DO NOTHING")
}

func countActiveQuery(organizationID uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select().
		Column(squirrel.Expr("(SELECT COUNT(*) FROM services WHERE organization_id = ? AND active)", organizationID)).
		Column(squirrel.Expr("(SELECT COUNT(*) FROM professionals WHERE organization_id = ? AND active)", organizationID))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var service domain.Service
	err := row.Scan(
		&service.ID,
		&service.OrganizationID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.Price,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func scanProfessional(row rowScanner) (*domain.Professional, error) {
	var professional domain.Professional
	err := row.Scan(
		&professional.ID,
		&professional.OrganizationID,
		&professional.Name,
		&professional.Email,
		&professional.Phone,
		&professional.Active,
		&professional.CreatedAt,
		&professional.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &professional, nil
}

// pq код foreign_key_violation: одной из услуг нет
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
