package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestInterval_Overlaps(t *testing.T) {
	slot := Interval{Start: at(11, 30), End: at(12, 0)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "partial overlap at start", other: Interval{Start: at(11, 20), End: at(11, 40)}, want: true},
		{name: "contained", other: Interval{Start: at(11, 40), End: at(11, 50)}, want: true},
		{name: "covers slot", other: Interval{Start: at(11, 0), End: at(13, 0)}, want: true},
		{name: "ends where slot starts", other: Interval{Start: at(11, 0), End: at(11, 30)}, want: false},
		{name: "starts where slot ends", other: Interval{Start: at(12, 0), End: at(12, 30)}, want: false},
		{name: "disjoint", other: Interval{Start: at(9, 0), End: at(10, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slot.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(slot))
		})
	}
}

func TestMergeIntervals(t *testing.T) {
	input := []Interval{
		{Start: at(14, 0), End: at(16, 0)},
		{Start: at(9, 0), End: at(11, 0)},
		{Start: at(10, 0), End: at(12, 0)},
		{Start: at(16, 0), End: at(17, 0)},
		{Start: at(18, 0), End: at(19, 0)},
	}

	merged := MergeIntervals(input)

	assert.Equal(t, []Interval{
		{Start: at(9, 0), End: at(12, 0)},
		{Start: at(14, 0), End: at(17, 0)},
		{Start: at(18, 0), End: at(19, 0)},
	}, merged)
	assert.Equal(t, at(14, 0), input[0].Start, "input must stay untouched")
}

func TestMergeIntervals_Empty(t *testing.T) {
	assert.Nil(t, MergeIntervals(nil))
}

func TestScheduleRule_IsValid(t *testing.T) {
	rule := ScheduleRule{DayOfWeek: 1}
	assert.False(t, rule.IsValid())

	rule = ScheduleRule{DayOfWeek: 7}
	assert.False(t, rule.IsValid())
}
