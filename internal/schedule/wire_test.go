package schedule

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWireUsesHourBoundaries(t *testing.T) {
	got := ToWire([]Slot{{Day: 3, StartHour: 7, EndHour: 9, Mode: Motion}})
	assert.Equal(t, []WireSlot{{DayOfWeek: 3, StartTime: "07:00", EndTime: "09:59", Mode: "motion"}}, got)
}

func TestFromWireIgnoresMinutes(t *testing.T) {
	slots, err := FromWire([]WireSlot{
		{DayOfWeek: 0, StartTime: "08:30", EndTime: "10:00", Mode: "events"},
		{DayOfWeek: 1, StartTime: "00:00", EndTime: "23:59", Mode: "Continuous"},
	})
	require.NoError(t, err)
	assert.Equal(t, []Slot{
		{Day: 0, StartHour: 8, EndHour: 10, Mode: Events},
		{Day: 1, StartHour: 0, EndHour: 23, Mode: Continuous},
	}, slots)
}

func TestFromWireRejectsMalformed(t *testing.T) {
	cases := map[string]WireSlot{
		"short time":   {DayOfWeek: 0, StartTime: "8:00", EndTime: "09:59", Mode: "motion"},
		"letters":      {DayOfWeek: 0, StartTime: "ab:00", EndTime: "09:59", Mode: "motion"},
		"hour 24":      {DayOfWeek: 0, StartTime: "08:00", EndTime: "24:00", Mode: "motion"},
		"minute 60":    {DayOfWeek: 0, StartTime: "08:60", EndTime: "09:59", Mode: "motion"},
		"bad day":      {DayOfWeek: 7, StartTime: "08:00", EndTime: "09:59", Mode: "motion"},
		"cross night":  {DayOfWeek: 0, StartTime: "22:00", EndTime: "06:59", Mode: "motion"},
		"unknown mode": {DayOfWeek: 0, StartTime: "08:00", EndTime: "09:59", Mode: "timelapse"},
		"empty mode":   {DayOfWeek: 0, StartTime: "08:00", EndTime: "09:59", Mode: ""},
	}
	for name, w := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromWire([]WireSlot{w})
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "got %v", err)
		})
	}
}

func TestWireRoundTripPreservesOrder(t *testing.T) {
	in := []Slot{
		{Day: 5, StartHour: 0, EndHour: 3, Mode: Events},
		{Day: 1, StartHour: 12, EndHour: 12, Mode: Motion},
	}
	out, err := FromWire(ToWire(in))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestModeJSON(t *testing.T) {
	b, err := json.Marshal(Slot{Day: 1, StartHour: 2, EndHour: 3, Mode: Events})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":1,"start_hour":2,"end_hour":3,"mode":"events"}`, string(b))

	var s Slot
	require.NoError(t, json.Unmarshal([]byte(`{"day":0,"start_hour":0,"end_hour":0,"mode":"motion"}`), &s))
	assert.Equal(t, Motion, s.Mode)
	assert.Error(t, json.Unmarshal([]byte(`{"mode":"nope"}`), &s))
}

func TestWeekdayToDay(t *testing.T) {
	assert.Equal(t, 0, WeekdayToDay(time.Monday))
	assert.Equal(t, 5, WeekdayToDay(time.Saturday))
	assert.Equal(t, 6, WeekdayToDay(time.Sunday))
	assert.Equal(t, "Sun", DayName(WeekdayToDay(time.Sunday)))
}
