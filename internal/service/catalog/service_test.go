package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type fakeRepo struct {
	services      map[uuid.UUID]*domain.Service
	professionals []*domain.Professional
	links         map[uuid.UUID][]uuid.UUID
	linkErr       error
	err           error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: make(map[uuid.UUID]*domain.Service),
		links:    make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeRepo) GetService(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeRepo) ListServices(_ context.Context, organizationID uuid.UUID) ([]*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Service, 0)
	for _, s := range f.services {
		if s.OrganizationID == organizationID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeRepo) CreateService(_ context.Context, service *domain.Service) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	service.ID = uuid.New()
	f.services[service.ID] = service
	return service, nil
}

func (f *fakeRepo) UpdateService(_ context.Context, service *domain.Service) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.services[service.ID]; !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	f.services[service.ID] = service
	return service, nil
}

func (f *fakeRepo) ListProfessionals(_ context.Context, organizationID uuid.UUID) ([]*domain.Professional, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Professional, 0)
	for _, p := range f.professionals {
		if p.OrganizationID == organizationID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeRepo) CreateProfessional(_ context.Context, professional *domain.Professional) (*domain.Professional, error) {
	if f.err != nil {
		return nil, f.err
	}
	professional.ID = uuid.New()
	f.professionals = append(f.professionals, professional)
	return professional, nil
}

func (f *fakeRepo) AddLinks(_ context.Context, professionalID uuid.UUID, serviceIDs []uuid.UUID) error {
	if f.linkErr != nil {
		return f.linkErr
	}
	f.links[professionalID] = append(f.links[professionalID], serviceIDs...)
	return nil
}

type fakeTx struct {
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func ptr[T any](v T) *T { return &v }

func newTestService() (*Service, *fakeRepo, *fakeTx) {
	repo := newFakeRepo()
	tx := &fakeTx{}
	return NewService(repo, tx, logger.NewNop()), repo, tx
}

func TestCreateService(t *testing.T) {
	svc, repo, _ := newTestService()
	orgID := uuid.New()

	resp, err := svc.CreateService(context.Background(), orgID, &models.CreateServiceRequest{
		Name:            "  Стрижка ",
		Description:     ptr("  "),
		DurationMinutes: 45,
		Price:           ptr(1500.0),
	})
	require.NoError(t, err)

	assert.Equal(t, "Стрижка", resp.Name)
	assert.Nil(t, resp.Description)
	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Equal(t, 1500.0, resp.Price)
	assert.True(t, resp.Active, "active by default")
	assert.Equal(t, orgID, resp.OrganizationID)
	assert.Contains(t, repo.services, resp.ID)
}

func TestCreateService_Validation(t *testing.T) {
	long := make([]rune, domain.MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name string
		req  *models.CreateServiceRequest
	}{
		{name: "empty name", req: &models.CreateServiceRequest{Name: " ", DurationMinutes: 30}},
		{name: "long name", req: &models.CreateServiceRequest{Name: string(long), DurationMinutes: 30}},
		{name: "zero duration", req: &models.CreateServiceRequest{Name: "Cut", DurationMinutes: 0}},
		{name: "duration too short", req: &models.CreateServiceRequest{Name: "Cut", DurationMinutes: domain.MinServiceDurationMinutes - 1}},
		{name: "duration over a day", req: &models.CreateServiceRequest{Name: "Cut", DurationMinutes: domain.MaxServiceDurationMinutes + 1}},
		{name: "negative price", req: &models.CreateServiceRequest{Name: "Cut", DurationMinutes: 30, Price: ptr(-1.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			_, err := svc.CreateService(context.Background(), uuid.New(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.services)
		})
	}
}

func TestUpdateService_PartialUpdate(t *testing.T) {
	svc, repo, _ := newTestService()
	orgID := uuid.New()
	existing := &domain.Service{
		ID: uuid.New(), OrganizationID: orgID, Name: "Cut",
		DurationMinutes: 30, Price: 100, Active: true,
	}
	repo.services[existing.ID] = existing

	resp, err := svc.UpdateService(context.Background(), orgID, existing.ID, &models.UpdateServiceRequest{
		DurationMinutes: ptr(60),
		Active:          ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Cut", resp.Name, "untouched fields stay")
	assert.Equal(t, 100.0, resp.Price)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.False(t, resp.Active)
}

func TestUpdateService_Errors(t *testing.T) {
	orgID := uuid.New()
	serviceID := uuid.New()

	tests := []struct {
		name      string
		serviceOf uuid.UUID
		req       *models.UpdateServiceRequest
		repoErr   error
		wantErr   error
	}{
		{name: "other organization", serviceOf: uuid.New(), req: &models.UpdateServiceRequest{Name: ptr("New")}, wantErr: ErrServiceNotFound},
		{name: "invalid duration", serviceOf: orgID, req: &models.UpdateServiceRequest{DurationMinutes: ptr(0)}, wantErr: ErrInvalidInput},
		{name: "blank name", serviceOf: orgID, req: &models.UpdateServiceRequest{Name: ptr("  ")}, wantErr: ErrInvalidInput},
		{name: "repository failure", serviceOf: orgID, req: &models.UpdateServiceRequest{}, repoErr: errors.New("db down"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			repo.services[serviceID] = &domain.Service{
				ID: serviceID, OrganizationID: tt.serviceOf, Name: "Cut", DurationMinutes: 30, Active: true,
			}
			repo.err = tt.repoErr

			_, err := svc.UpdateService(context.Background(), orgID, serviceID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateService_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateService(context.Background(), uuid.New(), uuid.New(), &models.UpdateServiceRequest{})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestListServices_ScopedToOrganization(t *testing.T) {
	svc, repo, _ := newTestService()
	orgID := uuid.New()
	own := &domain.Service{ID: uuid.New(), OrganizationID: orgID, Name: "Own", DurationMinutes: 30}
	foreign := &domain.Service{ID: uuid.New(), OrganizationID: uuid.New(), Name: "Foreign", DurationMinutes: 30}
	repo.services[own.ID] = own
	repo.services[foreign.ID] = foreign

	resp, err := svc.ListServices(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, own.ID, resp.Services[0].ID)
}

func TestCreateProfessional_LinksServices(t *testing.T) {
	svc, repo, tx := newTestService()
	orgID := uuid.New()
	cut := &domain.Service{ID: uuid.New(), OrganizationID: orgID, Name: "Cut", DurationMinutes: 30}
	color := &domain.Service{ID: uuid.New(), OrganizationID: orgID, Name: "Color", DurationMinutes: 90}
	repo.services[cut.ID] = cut
	repo.services[color.ID] = color

	resp, err := svc.CreateProfessional(context.Background(), orgID, &models.CreateProfessionalRequest{
		Name:       "Anna",
		Email:      ptr("anna@example.com"),
		ServiceIDs: []uuid.UUID{cut.ID, color.ID, cut.ID},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, "Anna", resp.Name)
	assert.True(t, resp.Active)
	assert.Equal(t, []uuid.UUID{cut.ID, color.ID}, repo.links[resp.ID], "duplicates are dropped")
	require.Len(t, resp.Services, 2)
	assert.Equal(t, "Cut", resp.Services[0].Name)
	assert.Equal(t, "Color", resp.Services[1].Name)
}

func TestCreateProfessional_WithoutServices(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.CreateProfessional(context.Background(), uuid.New(), &models.CreateProfessionalRequest{
		Name:   "Boris",
		Active: ptr(false),
	})
	require.NoError(t, err)

	assert.False(t, resp.Active)
	assert.Empty(t, resp.Services)
	assert.Len(t, repo.professionals, 1)
}

func TestCreateProfessional_Errors(t *testing.T) {
	orgID := uuid.New()
	ownService := &domain.Service{ID: uuid.New(), OrganizationID: orgID, Name: "Cut", DurationMinutes: 30}
	foreignService := &domain.Service{ID: uuid.New(), OrganizationID: uuid.New(), Name: "Cut", DurationMinutes: 30}

	tests := []struct {
		name              string
		req               *models.CreateProfessionalRequest
		linkErr           error
		wantErr           error
		wantProfessionals int
	}{
		{
			name:    "missing name",
			req:     &models.CreateProfessionalRequest{Name: " "},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad email",
			req:     &models.CreateProfessionalRequest{Name: "Anna", Email: ptr("not-an-email")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown service",
			req:     &models.CreateProfessionalRequest{Name: "Anna", ServiceIDs: []uuid.UUID{uuid.New()}},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "service of another organization",
			req:     &models.CreateProfessionalRequest{Name: "Anna", ServiceIDs: []uuid.UUID{foreignService.ID}},
			wantErr: ErrServiceNotFound,
		},
		{
			name:              "service removed concurrently",
			req:               &models.CreateProfessionalRequest{Name: "Anna", ServiceIDs: []uuid.UUID{ownService.ID}},
			linkErr:           catalogRepo.ErrServiceNotFound,
			wantErr:           ErrServiceNotFound,
			wantProfessionals: 1,
		},
		{
			name:              "link failure",
			req:               &models.CreateProfessionalRequest{Name: "Anna", ServiceIDs: []uuid.UUID{ownService.ID}},
			linkErr:           errors.New("db down"),
			wantErr:           ErrInternal,
			wantProfessionals: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService()
			repo.services[ownService.ID] = ownService
			repo.services[foreignService.ID] = foreignService
			repo.linkErr = tt.linkErr

			_, err := svc.CreateProfessional(context.Background(), orgID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			// откат делает txmanager, фейк только фиксирует вызовы
			assert.Len(t, repo.professionals, tt.wantProfessionals)
		})
	}
}

func TestListProfessionals(t *testing.T) {
	svc, repo, _ := newTestService()
	orgID := uuid.New()
	serviceID := uuid.New()
	repo.professionals = []*domain.Professional{
		{ID: uuid.New(), OrganizationID: orgID, Name: "Anna", Active: true,
			Services: []domain.ServiceRef{{ID: serviceID, Name: "Cut"}}},
		{ID: uuid.New(), OrganizationID: uuid.New(), Name: "Foreign"},
	}

	resp, err := svc.ListProfessionals(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, resp.Professionals, 1)
	assert.Equal(t, "Anna", resp.Professionals[0].Name)
	assert.Equal(t, []models.ServiceRefResponse{{ID: serviceID, Name: "Cut"}}, resp.Professionals[0].Services)
}

func TestListProfessionals_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.err = errors.New("db down")

	_, err := svc.ListProfessionals(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}
