package create_booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
)

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

type fakeCatalog struct {
	services      map[uuid.UUID]*domain.Service
	professionals map[uuid.UUID]*domain.Professional
	links         map[[2]uuid.UUID]bool
	err           error
}

func (f *fakeCatalog) GetService(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalog) GetProfessional(_ context.Context, id uuid.UUID) (*domain.Professional, error) {
	if p, ok := f.professionals[id]; ok {
		return p, nil
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

func (f *fakeCatalog) GetLink(_ context.Context, serviceID, professionalID uuid.UUID) (*domain.ServiceProfessionalLink, error) {
	if f.links[[2]uuid.UUID{serviceID, professionalID}] {
		return &domain.ServiceProfessionalLink{ServiceID: serviceID, ProfessionalID: professionalID}, nil
	}
	return nil, catalogRepo.ErrLinkNotFound
}

type fakeBookings struct {
	existing  []*domain.Booking
	created   []*domain.Booking
	createErr error
}

func (f *fakeBookings) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = uuid.New()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	f.created = append(f.created, booking)
	return booking, nil
}

func (f *fakeBookings) ListConfirmedInRange(_ context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	window := domain.Interval{Start: from, End: to}
	result := make([]*domain.Booking, 0)
	for _, b := range f.existing {
		if b.ProfessionalID == professionalID && b.IsActive() && b.Interval().Overlaps(window) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeBlocks struct {
	blocks []*domain.Block
}

func (f *fakeBlocks) ListInRange(_ context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Block, error) {
	window := domain.Interval{Start: from, End: to}
	result := make([]*domain.Block, 0)
	for _, b := range f.blocks {
		if b.ProfessionalID == professionalID && b.Interval().Overlaps(window) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

type fixture struct {
	orgID          uuid.UUID
	serviceID      uuid.UUID
	professionalID uuid.UUID
	catalog        *fakeCatalog
	bookings       *fakeBookings
	blocks         *fakeBlocks
	tx             *fakeTxManager
	uc             *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		orgID:          uuid.New(),
		serviceID:      uuid.New(),
		professionalID: uuid.New(),
		bookings:       &fakeBookings{},
		blocks:         &fakeBlocks{},
		tx:             &fakeTxManager{},
	}
	f.catalog = &fakeCatalog{
		services: map[uuid.UUID]*domain.Service{
			f.serviceID: {ID: f.serviceID, OrganizationID: f.orgID, Name: "Haircut", DurationMinutes: 30, Price: 25, Active: true},
		},
		professionals: map[uuid.UUID]*domain.Professional{
			f.professionalID: {ID: f.professionalID, OrganizationID: f.orgID, Name: "Anna", Active: true},
		},
		links: map[[2]uuid.UUID]bool{{f.serviceID, f.professionalID}: true},
	}
	f.uc = NewUseCase(f.catalog, f.bookings, f.blocks, f.tx, logger.NewNop())
	f.uc.timeProvider = fixedClock{}
	return f
}

func (f *fixture) request(start time.Time) *Request {
	return &Request{
		OrganizationID: f.orgID,
		ServiceID:      f.serviceID,
		ProfessionalID: f.professionalID,
		StartTime:      start,
		ClientName:     " John Doe ",
		ClientEmail:    "john@example.com",
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), f.request(at(9, 0)))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, at(9, 0), resp.StartTime)
	assert.Equal(t, at(9, 30), resp.EndTime)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, "Anna", resp.ProfessionalName)
	assert.Equal(t, "John Doe", resp.ClientName)
	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.bookings.created, 1)
	assert.Equal(t, f.orgID, f.bookings.created[0].OrganizationID)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{
		{ProfessionalID: f.professionalID, StartTime: at(8, 30), EndTime: at(9, 0), Status: domain.StatusConfirmed},
		{ProfessionalID: f.professionalID, StartTime: at(9, 30), EndTime: at(10, 0), Status: domain.StatusConfirmed},
	}

	_, err := f.uc.Execute(context.Background(), f.request(at(9, 0)))
	require.NoError(t, err)
}

func TestExecute_Conflicts(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "confirmed booking",
			setup: func(f *fixture) {
				f.bookings.existing = []*domain.Booking{
					{ProfessionalID: f.professionalID, StartTime: at(9, 15), EndTime: at(9, 45), Status: domain.StatusConfirmed},
				}
			},
		},
		{
			name: "block",
			setup: func(f *fixture) {
				f.blocks.blocks = []*domain.Block{
					{ProfessionalID: f.professionalID, StartTime: at(8, 0), EndTime: at(9, 1), Reason: "meeting"},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			_, err := f.uc.Execute(context.Background(), f.request(at(9, 0)))
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Empty(t, f.bookings.created)
		})
	}
}

func TestExecute_CancelledBookingDoesNotConflict(t *testing.T) {
	f := newFixture()
	f.bookings.existing = []*domain.Booking{
		{ProfessionalID: f.professionalID, StartTime: at(9, 0), EndTime: at(9, 30), Status: domain.StatusCancelled},
	}

	_, err := f.uc.Execute(context.Background(), f.request(at(9, 0)))
	require.NoError(t, err)
}

func TestExecute_SerializationConflict(t *testing.T) {
	f := newFixture()
	f.tx.err = fmt.Errorf("%w: pq: could not serialize access", txmanager.ErrSerialization)

	_, err := f.uc.Execute(context.Background(), f.request(at(9, 0)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_NotFound(t *testing.T) {
	otherOrg := uuid.New()

	tests := []struct {
		name    string
		setup   func(f *fixture, req *Request)
		wantErr error
	}{
		{
			name:    "service missing",
			setup:   func(f *fixture, req *Request) { req.ServiceID = uuid.New() },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "service of another organization",
			setup:   func(f *fixture, req *Request) { f.catalog.services[f.serviceID].OrganizationID = otherOrg },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "professional missing",
			setup:   func(f *fixture, req *Request) { req.ProfessionalID = uuid.New() },
			wantErr: ErrProfessionalNotFound,
		},
		{
			name:    "professional of another organization",
			setup:   func(f *fixture, req *Request) { f.catalog.professionals[f.professionalID].OrganizationID = otherOrg },
			wantErr: ErrProfessionalNotFound,
		},
		{
			name:    "no link",
			setup:   func(f *fixture, req *Request) { f.catalog.links = map[[2]uuid.UUID]bool{} },
			wantErr: ErrServiceNotProvided,
		},
		{
			name:    "inactive service",
			setup:   func(f *fixture, req *Request) { f.catalog.services[f.serviceID].Active = false },
			wantErr: ErrInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := f.request(at(9, 0))
			tt.setup(f, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.tx.calls)
		})
	}
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), f.request(now))
	assert.ErrorIs(t, err, ErrStartInPast)

	_, err = f.uc.Execute(context.Background(), f.request(at(7, 0)))
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_InvalidInput(t *testing.T) {
	long := make([]byte, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'a'
	}
	longNotes := string(long)

	tests := []struct {
		name   string
		modify func(req *Request)
	}{
		{name: "no organization", modify: func(req *Request) { req.OrganizationID = uuid.Nil }},
		{name: "no service", modify: func(req *Request) { req.ServiceID = uuid.Nil }},
		{name: "no professional", modify: func(req *Request) { req.ProfessionalID = uuid.Nil }},
		{name: "no start", modify: func(req *Request) { req.StartTime = time.Time{} }},
		{name: "blank name", modify: func(req *Request) { req.ClientName = "   " }},
		{name: "bad email", modify: func(req *Request) { req.ClientEmail = "not-an-email" }},
		{name: "long notes", modify: func(req *Request) { req.Notes = &longNotes }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := f.request(at(9, 0))
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	_, err := newFixture().uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryErrors(t *testing.T) {
	t.Run("catalog", func(t *testing.T) {
		f := newFixture()
		f.catalog.err = errors.New("db down")

		_, err := f.uc.Execute(context.Background(), f.request(at(9, 0)))
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("create", func(t *testing.T) {
		f := newFixture()
		f.bookings.createErr = errors.New("insert failed")

		_, err := f.uc.Execute(context.Background(), f.request(at(9, 0)))
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("commit", func(t *testing.T) {
		f := newFixture()
		f.tx.err = fmt.Errorf("%w: connection reset", txmanager.ErrCommitTx)

		_, err := f.uc.Execute(context.Background(), f.request(at(9, 0)))
		assert.ErrorIs(t, err, ErrInternal)
	})
}
