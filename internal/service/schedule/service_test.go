package schedule

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	blockRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SchedulingService/internal/service/schedule/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

type fakeRules struct {
	rules []*domain.ScheduleRule
	saved *domain.ScheduleRule
	err   error
}

func (f *fakeRules) ListByProfessional(_ context.Context, professionalID uuid.UUID) ([]*domain.ScheduleRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.ScheduleRule, 0)
	for _, r := range f.rules {
		if r.ProfessionalID == professionalID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeRules) Upsert(_ context.Context, rule *domain.ScheduleRule) (*domain.ScheduleRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	rule.ID = uuid.New()
	f.saved = rule
	return rule, nil
}

func (f *fakeRules) Delete(_ context.Context, professionalID uuid.UUID, dayOfWeek int) error {
	if f.err != nil {
		return f.err
	}
	for i, r := range f.rules {
		if r.ProfessionalID == professionalID && r.DayOfWeek == dayOfWeek {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			return nil
		}
	}
	return scheduleRepo.ErrRuleNotFound
}

type fakeBlocks struct {
	blocks   map[uuid.UUID]*domain.Block
	from, to time.Time
	err      error
}

func (f *fakeBlocks) Create(_ context.Context, block *domain.Block) (*domain.Block, error) {
	if f.err != nil {
		return nil, f.err
	}
	block.ID = uuid.New()
	f.blocks[block.ID] = block
	return block, nil
}

func (f *fakeBlocks) GetByID(_ context.Context, id uuid.UUID) (*domain.Block, error) {
	b, ok := f.blocks[id]
	if !ok {
		return nil, blockRepo.ErrBlockNotFound
	}
	return b, nil
}

func (f *fakeBlocks) ListInRange(_ context.Context, professionalID uuid.UUID, from, to time.Time) ([]*domain.Block, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Block, 0)
	for _, b := range f.blocks {
		if b.ProfessionalID == professionalID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBlocks) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.blocks[id]; !ok {
		return blockRepo.ErrBlockNotFound
	}
	delete(f.blocks, id)
	return nil
}

type fakeProfessionals map[uuid.UUID]*domain.Professional

func (f fakeProfessionals) GetProfessional(_ context.Context, id uuid.UUID) (*domain.Professional, error) {
	p, ok := f[id]
	if !ok {
		return nil, catalogRepo.ErrProfessionalNotFound
	}
	return p, nil
}

type fixture struct {
	svc          *Service
	rules        *fakeRules
	blocks       *fakeBlocks
	orgID        uuid.UUID
	professional *domain.Professional
}

func newFixture() *fixture {
	orgID := uuid.New()
	professional := &domain.Professional{ID: uuid.New(), OrganizationID: orgID, Name: "Anna", Active: true}
	rules := &fakeRules{}
	blocks := &fakeBlocks{blocks: make(map[uuid.UUID]*domain.Block)}
	professionals := fakeProfessionals{professional.ID: professional}

	return &fixture{
		svc:          NewService(rules, blocks, professionals, logger.NewNop()),
		rules:        rules,
		blocks:       blocks,
		orgID:        orgID,
		professional: professional,
	}
}

func TestUpsertRule(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.UpsertRule(context.Background(), f.orgID, f.professional.ID, 1,
		&models.UpsertRuleRequest{StartTime: "09:00", EndTime: "17:30"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.DayOfWeek)
	assert.Equal(t, "09:00", resp.StartTime.String())
	assert.Equal(t, "17:30", resp.EndTime.String())
	assert.True(t, resp.Active, "active by default")
	require.NotNil(t, f.rules.saved)
	assert.Equal(t, f.professional.ID, f.rules.saved.ProfessionalID)
}

func TestUpsertRule_UntilMidnight(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.UpsertRule(context.Background(), f.orgID, f.professional.ID, 5,
		&models.UpsertRuleRequest{StartTime: "18:00", EndTime: "24:00"})
	require.NoError(t, err)
	assert.Equal(t, "24:00", resp.EndTime.String())
}

func TestUpsertRule_Inactive(t *testing.T) {
	f := newFixture()
	active := false

	resp, err := f.svc.UpsertRule(context.Background(), f.orgID, f.professional.ID, 0,
		&models.UpsertRuleRequest{StartTime: "10:00", EndTime: "12:00", Active: &active})
	require.NoError(t, err)
	assert.False(t, resp.Active)
}

func TestUpsertRule_Validation(t *testing.T) {
	tests := []struct {
		name      string
		dayOfWeek int
		req       models.UpsertRuleRequest
		wantErr   error
	}{
		{"day below range", -1, models.UpsertRuleRequest{StartTime: "09:00", EndTime: "17:00"}, ErrInvalidInput},
		{"day above range", 7, models.UpsertRuleRequest{StartTime: "09:00", EndTime: "17:00"}, ErrInvalidInput},
		{"bad start", 1, models.UpsertRuleRequest{StartTime: "9am", EndTime: "17:00"}, ErrInvalidInput},
		{"bad end", 1, models.UpsertRuleRequest{StartTime: "09:00", EndTime: "25:00"}, ErrInvalidInput},
		{"end equals start", 1, models.UpsertRuleRequest{StartTime: "09:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"end before start", 1, models.UpsertRuleRequest{StartTime: "17:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"start at end of day", 1, models.UpsertRuleRequest{StartTime: "24:00", EndTime: "24:00"}, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := tt.req
			_, err := f.svc.UpsertRule(context.Background(), f.orgID, f.professional.ID, tt.dayOfWeek, &req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, f.rules.saved)
		})
	}
}

func TestUpsertRule_ForeignOrganization(t *testing.T) {
	f := newFixture()

	_, err := f.svc.UpsertRule(context.Background(), uuid.New(), f.professional.ID, 1,
		&models.UpsertRuleRequest{StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	_, err = f.svc.UpsertRule(context.Background(), f.orgID, uuid.New(), 1,
		&models.UpsertRuleRequest{StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestUpsertRule_RepositoryError(t *testing.T) {
	f := newFixture()
	f.rules.err = errors.New("db down")

	_, err := f.svc.UpsertRule(context.Background(), f.orgID, f.professional.ID, 1,
		&models.UpsertRuleRequest{StartTime: "09:00", EndTime: "17:00"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListRules(t *testing.T) {
	f := newFixture()
	f.rules.rules = []*domain.ScheduleRule{
		{ID: uuid.New(), ProfessionalID: f.professional.ID, DayOfWeek: 1,
			StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("17:00"), Active: true},
		{ID: uuid.New(), ProfessionalID: f.professional.ID, DayOfWeek: 2,
			StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("14:00"), Active: false},
		{ID: uuid.New(), ProfessionalID: uuid.New(), DayOfWeek: 1,
			StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("17:00"), Active: true},
	}

	resp, err := f.svc.ListRules(context.Background(), f.orgID, f.professional.ID)
	require.NoError(t, err)
	require.Len(t, resp.Rules, 2)
	assert.False(t, resp.Rules[1].Active)

	_, err = f.svc.ListRules(context.Background(), uuid.New(), f.professional.ID)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestDeleteRule(t *testing.T) {
	f := newFixture()
	f.rules.rules = []*domain.ScheduleRule{
		{ID: uuid.New(), ProfessionalID: f.professional.ID, DayOfWeek: 3,
			StartTime: types.MustTimeString("09:00"), EndTime: types.MustTimeString("17:00"), Active: true},
	}

	require.NoError(t, f.svc.DeleteRule(context.Background(), f.orgID, f.professional.ID, 3))
	assert.Empty(t, f.rules.rules)

	err := f.svc.DeleteRule(context.Background(), f.orgID, f.professional.ID, 3)
	assert.ErrorIs(t, err, ErrRuleNotFound)

	err = f.svc.DeleteRule(context.Background(), f.orgID, f.professional.ID, 9)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBlock(t *testing.T) {
	f := newFixture()
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	resp, err := f.svc.CreateBlock(context.Background(), f.orgID, f.professional.ID, &models.CreateBlockRequest{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Reason:    "  lunch ",
	})
	require.NoError(t, err)

	assert.Equal(t, "lunch", resp.Reason)
	assert.Equal(t, start, resp.StartTime)
	assert.Len(t, f.blocks.blocks, 1)
}

func TestCreateBlock_Validation(t *testing.T) {
	f := newFixture()
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	_, err := f.svc.CreateBlock(context.Background(), f.orgID, f.professional.ID,
		&models.CreateBlockRequest{StartTime: start, EndTime: start})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = f.svc.CreateBlock(context.Background(), f.orgID, f.professional.ID,
		&models.CreateBlockRequest{StartTime: start})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.CreateBlock(context.Background(), f.orgID, f.professional.ID, &models.CreateBlockRequest{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Reason:    strings.Repeat("x", domain.MaxBlockReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.CreateBlock(context.Background(), uuid.New(), f.professional.ID,
		&models.CreateBlockRequest{StartTime: start, EndTime: start.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)

	assert.Empty(t, f.blocks.blocks)
}

func TestListBlocks(t *testing.T) {
	f := newFixture()
	start := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	f.blocks.blocks[uuid.New()] = &domain.Block{ProfessionalID: f.professional.ID, StartTime: start, EndTime: start.Add(time.Hour)}

	from := start.AddDate(0, 0, -1)
	resp, err := f.svc.ListBlocks(context.Background(), &models.ListBlocksRequest{
		OrganizationID: f.orgID,
		ProfessionalID: f.professional.ID,
		From:           &from,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Blocks, 1)
	assert.Equal(t, from, f.blocks.from)
	assert.True(t, f.blocks.to.IsZero())

	to := from.Add(-time.Hour)
	_, err = f.svc.ListBlocks(context.Background(), &models.ListBlocksRequest{
		OrganizationID: f.orgID,
		ProfessionalID: f.professional.ID,
		From:           &from,
		To:             &to,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestDeleteBlock(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.blocks.blocks[id] = &domain.Block{ID: id, ProfessionalID: f.professional.ID}

	// чужая организация не видит блокировку
	err := f.svc.DeleteBlock(context.Background(), uuid.New(), id)
	assert.ErrorIs(t, err, ErrBlockNotFound)
	assert.Len(t, f.blocks.blocks, 1)

	require.NoError(t, f.svc.DeleteBlock(context.Background(), f.orgID, id))
	assert.Empty(t, f.blocks.blocks)

	err = f.svc.DeleteBlock(context.Background(), f.orgID, id)
	assert.ErrorIs(t, err, ErrBlockNotFound)
}
