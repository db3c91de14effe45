package catalog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListServicesQuery(t *testing.T) {
	organizationID := uuid.New()

	query, args, err := listServicesQuery(organizationID).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT "+strings.Join(serviceColumns, ", ")+" FROM services WHERE organization_id = $1 ORDER BY name ASC",
		query)
	require.Len(t, args, 1)
	assert.Equal(t, organizationID.String(), fmt.Sprint(args[0]))
}

func TestLinkedServicesQuery(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	query, args, err := linkedServicesQuery(ids).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT sp.professional_id, s.id, s.name FROM service_professionals sp"+
			" JOIN services s ON s.id = sp.service_id"+
			" WHERE sp.professional_id IN ($1,$2) ORDER BY s.name ASC",
		query)
	assert.Len(t, args, 2)
}

func TestAddLinksQuery(t *testing.T) {
	professionalID := uuid.New()
	serviceIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	query, args, err := addLinksQuery(professionalID, serviceIDs).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO service_professionals (service_id,professional_id)"+
			" VALUES ($1,$2),($3,$4),($5,$6) ON CONFLICT DO NOTHING",
		query)
	require.Len(t, args, 6)
	for i, serviceID := range serviceIDs {
		assert.Equal(t, serviceID, args[2*i])
		assert.Equal(t, professionalID, args[2*i+1])
	}
}

func TestCountActiveQuery(t *testing.T) {
	organizationID := uuid.New()

	query, args, err := countActiveQuery(organizationID).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT (SELECT COUNT(*) FROM services WHERE organization_id = $1 AND active),"+
			" (SELECT COUNT(*) FROM professionals WHERE organization_id = $2 AND active)",
		query)
	assert.Equal(t, []interface{}{organizationID, organizationID}, args)
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(fmt.Errorf("wrap: %w", &pq.Error{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(&pq.Error{Code: "23505"}))
}
