package block

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeQuery(t *testing.T) {
	professionalID := uuid.New()
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	base := "SELECT " + strings.Join(blockColumns, ", ") + " FROM blocks WHERE professional_id = $1"

	tests := []struct {
		name      string
		from, to  time.Time
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			name:      "overlap with window",
			from:      from,
			to:        to,
			wantQuery: base + " AND start_time < $2 AND end_time > $3 ORDER BY start_time ASC",
			wantArgs:  []interface{}{to, from},
		},
		{
			name:      "open start",
			to:        to,
			wantQuery: base + " AND start_time < $2 ORDER BY start_time ASC",
			wantArgs:  []interface{}{to},
		},
		{
			name:      "open end",
			from:      from,
			wantQuery: base + " AND end_time > $2 ORDER BY start_time ASC",
			wantArgs:  []interface{}{from},
		},
		{
			name:      "no bounds",
			wantQuery: base + " ORDER BY start_time ASC",
			wantArgs:  []interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := rangeQuery(professionalID, tt.from, tt.to).ToSql()

			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			require.Len(t, args, 1+len(tt.wantArgs))
			assert.Equal(t, professionalID.String(), fmt.Sprint(args[0]))
			assert.Equal(t, tt.wantArgs, args[1:])
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "fk violation", err: &pq.Error{Code: "23503"}, want: true},
		{name: "wrapped fk violation", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23503"}), want: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isForeignKeyViolation(tt.err))
		})
	}
}
