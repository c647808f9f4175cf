package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"17:00", 1020, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"nine", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestWindowOn(t *testing.T) {
	sched := &DentistSchedule{
		StartTime: "09:00",
		EndTime:   "12:30",
	}
	date := time.Date(2026, 9, 14, 15, 45, 0, 0, time.UTC)

	w, err := sched.WindowOn(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 9, 14, 12, 30, 0, 0, time.UTC), w.End)

	sched.EndTime = "08:00"
	_, err = sched.WindowOn(date)
	assert.Error(t, err, "window must end after it starts")
}
