package booking

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestRangeQuery_SelectsByOverlap(t *testing.T) {
	professionalID := uuid.New()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	status := domain.StatusConfirmed

	query, args, err := rangeQuery(domain.BookingsRangeFilter{
		ProfessionalID: professionalID,
		From:           from,
		To:             to,
		Status:         &status,
	}).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT "+strings.Join(bookingColumns, ", ")+" FROM bookings"+
			" WHERE professional_id = $1 AND start_time < $2 AND end_time > $3 AND status = $4"+
			" ORDER BY start_time ASC",
		query)
	require.Len(t, args, 4)
	assert.Equal(t, professionalID.String(), fmt.Sprint(args[0]))
	// начало записи сравнивается с концом окна, конец записи - с началом
	assert.Equal(t, to, args[1])
	assert.Equal(t, from, args[2])
	assert.Equal(t, domain.StatusConfirmed, args[3])
}

func TestRangeQuery_AnyStatus(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	query, args, err := rangeQuery(domain.BookingsRangeFilter{
		ProfessionalID: uuid.New(),
		From:           from,
		To:             from.Add(time.Hour),
	}).ToSql()

	require.NoError(t, err)
	assert.NotContains(t, query, "status")
	assert.Len(t, args, 3)
}

func TestOrganizationQuery(t *testing.T) {
	organizationID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	status := domain.StatusCancelled

	tests := []struct {
		name      string
		filter    domain.OrganizationBookingsFilter
		wantWhere string
		wantArgs  int
	}{
		{
			name:      "organization only",
			filter:    domain.OrganizationBookingsFilter{OrganizationID: organizationID},
			wantWhere: "WHERE organization_id = $1 ORDER BY",
			wantArgs:  1,
		},
		{
			name: "all filters",
			filter: domain.OrganizationBookingsFilter{
				OrganizationID: organizationID,
				Status:         &status,
				From:           &from,
				To:             &to,
			},
			wantWhere: "WHERE organization_id = $1 AND status = $2 AND start_time >= $3 AND start_time <= $4 ORDER BY",
			wantArgs:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := organizationQuery(tt.filter).ToSql()

			require.NoError(t, err)
			assert.Contains(t, query, tt.wantWhere)
			assert.Len(t, args, tt.wantArgs)
			assert.Equal(t, organizationID.String(), fmt.Sprint(args[0]))
		})
	}
}

func TestDashboardCountsQuery(t *testing.T) {
	organizationID := uuid.New()
	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query, args, err := dashboardCountsQuery(organizationID, dayStart, dayEnd).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE start_time >= $1 AND start_time < $2)"+
			" FROM bookings WHERE organization_id = $3",
		query)
	require.Len(t, args, 3)
	assert.Equal(t, dayStart, args[0])
	assert.Equal(t, dayEnd, args[1])
	assert.Equal(t, organizationID.String(), fmt.Sprint(args[2]))
}

func TestUpcomingQuery(t *testing.T) {
	organizationID := uuid.New()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	query, args, err := upcomingQuery(organizationID, now, domain.DashboardUpcomingLimit).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT b.id, b.client_name, b.start_time, s.name, p.name FROM bookings b"+
			" JOIN services s ON s.id = b.service_id"+
			" JOIN professionals p ON p.id = b.professional_id"+
			" WHERE b.organization_id = $1 AND b.status = $2 AND b.start_time > $3"+
			" ORDER BY b.start_time ASC LIMIT 5",
		query)
	require.Len(t, args, 3)
	assert.Equal(t, organizationID.String(), fmt.Sprint(args[0]))
	assert.Equal(t, domain.StatusConfirmed, args[1])
	assert.Equal(t, now, args[2])
}
