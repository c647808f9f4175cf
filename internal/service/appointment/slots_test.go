package appointment

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentix/clinic-api/internal/model"
)

func day(hour, min int) time.Time {
	return time.Date(2026, 9, 14, hour, min, 0, 0, time.UTC)
}

func window(startHour, startMin, endHour, endMin int) model.Window {
	return model.Window{Start: day(startHour, startMin), End: day(endHour, endMin)}
}

func TestGenerateSlots(t *testing.T) {
	interval := 30 * time.Minute

	t.Run("slot must fit entirely within the window", func(t *testing.T) {
		// One hour window, 30 minute appointments: 11:00 and 11:30 fit,
		// a 12:00 start would run past closing.
		slots := GenerateSlots([]model.Window{window(11, 0, 12, 0)}, interval, 30*time.Minute)
		require.Len(t, slots, 2)
		assert.Equal(t, day(11, 0), slots[0])
		assert.Equal(t, day(11, 30), slots[1])
	})

	t.Run("longer duration shrinks the candidate set", func(t *testing.T) {
		slots := GenerateSlots([]model.Window{window(11, 0, 12, 0)}, interval, 60*time.Minute)
		require.Len(t, slots, 1)
		assert.Equal(t, day(11, 0), slots[0])
	})

	t.Run("duration longer than the window yields nothing", func(t *testing.T) {
		slots := GenerateSlots([]model.Window{window(11, 0, 12, 0)}, interval, 90*time.Minute)
		assert.Empty(t, slots)
	})

	t.Run("grid anchors at window start", func(t *testing.T) {
		slots := GenerateSlots([]model.Window{window(9, 15, 10, 45)}, interval, 30*time.Minute)
		require.Len(t, slots, 3)
		assert.Equal(t, day(9, 15), slots[0])
		assert.Equal(t, day(9, 45), slots[1])
		assert.Equal(t, day(10, 15), slots[2])
	})

	t.Run("split shifts produce a sorted union", func(t *testing.T) {
		slots := GenerateSlots([]model.Window{
			window(14, 0, 15, 0),
			window(9, 0, 10, 0),
		}, interval, 30*time.Minute)
		require.Len(t, slots, 4)
		assert.Equal(t, day(9, 0), slots[0])
		assert.Equal(t, day(9, 30), slots[1])
		assert.Equal(t, day(14, 0), slots[2])
		assert.Equal(t, day(14, 30), slots[3])
	})

	t.Run("overlapping windows do not duplicate starts", func(t *testing.T) {
		slots := GenerateSlots([]model.Window{
			window(9, 0, 11, 0),
			window(10, 0, 12, 0),
		}, interval, 30*time.Minute)
		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i-1].Before(slots[i]), "starts must be strictly increasing")
		}
	})

	t.Run("invalid inputs yield nothing", func(t *testing.T) {
		assert.Nil(t, GenerateSlots([]model.Window{window(9, 0, 17, 0)}, 0, 30*time.Minute))
		assert.Nil(t, GenerateSlots([]model.Window{window(9, 0, 17, 0)}, interval, 0))
		assert.Empty(t, GenerateSlots(nil, interval, 30*time.Minute))
	})
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical intervals", day(9, 0), day(10, 0), day(9, 0), day(10, 0), true},
		{"partial overlap", day(9, 0), day(10, 0), day(9, 30), day(10, 30), true},
		{"contained interval", day(9, 0), day(12, 0), day(10, 0), day(11, 0), true},
		{"back to back does not conflict", day(9, 0), day(10, 0), day(10, 0), day(11, 0), false},
		{"disjoint intervals", day(9, 0), day(10, 0), day(14, 0), day(15, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), "overlap must be symmetric")
		})
	}
}

func TestMarkAvailability(t *testing.T) {
	duration := 30 * time.Minute
	candidates := GenerateSlots([]model.Window{window(9, 0, 11, 0)}, 30*time.Minute, duration)
	require.Len(t, candidates, 4)

	booked := func(status model.AppointmentStatus, start, end time.Time) *model.Appointment {
		return &model.Appointment{
			Base:      model.Base{ID: uuid.New()},
			StartTime: start,
			EndTime:   end,
			Status:    status,
		}
	}

	t.Run("booked interval blocks overlapping slots only", func(t *testing.T) {
		apts := []*model.Appointment{
			booked(model.AppointmentStatusScheduled, day(9, 30), day(10, 0)),
		}
		slots := MarkAvailability(candidates, duration, apts, nil, 0, 0)
		require.Len(t, slots, 4)
		assert.True(t, slots[0].Available, "9:00 ends exactly when the booking starts")
		assert.False(t, slots[1].Available)
		assert.True(t, slots[2].Available, "10:00 starts exactly when the booking ends")
		assert.True(t, slots[3].Available)
	})

	t.Run("cancelled and no-show appointments do not block", func(t *testing.T) {
		apts := []*model.Appointment{
			booked(model.AppointmentStatusCancelled, day(9, 0), day(10, 0)),
			booked(model.AppointmentStatusNoShow, day(10, 0), day(11, 0)),
		}
		slots := MarkAvailability(candidates, duration, apts, nil, 0, 0)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("excluded appointment does not block its own slot", func(t *testing.T) {
		own := booked(model.AppointmentStatusScheduled, day(9, 0), day(9, 30))
		other := booked(model.AppointmentStatusScheduled, day(10, 0), day(10, 30))

		slots := MarkAvailability(candidates, duration, []*model.Appointment{own, other}, &own.ID, 0, 0)
		require.Len(t, slots, 4)
		assert.True(t, slots[0].Available, "own booking must not conflict during an edit")
		assert.False(t, slots[2].Available, "other bookings still conflict")
	})

	t.Run("peak hour flag follows configured window", func(t *testing.T) {
		evening := GenerateSlots([]model.Window{window(16, 0, 21, 0)}, time.Hour, time.Hour)
		slots := MarkAvailability(evening, time.Hour, nil, nil, 17*60, 20*60)
		for _, s := range slots {
			h := s.Time.Hour()
			assert.Equal(t, h >= 17 && h < 20, s.IsPeakHour, "slot at %02d:00", h)
		}
	})
}

func TestFitsSchedule(t *testing.T) {
	windows := []model.Window{window(9, 0, 12, 0), window(14, 0, 18, 0)}

	assert.True(t, fitsSchedule(windows, day(9, 0), day(10, 0)))
	assert.True(t, fitsSchedule(windows, day(11, 0), day(12, 0)), "booking may end at closing time")
	assert.True(t, fitsSchedule(windows, day(14, 0), day(18, 0)))
	assert.False(t, fitsSchedule(windows, day(11, 30), day(12, 30)), "booking may not straddle the break")
	assert.False(t, fitsSchedule(windows, day(8, 30), day(9, 30)))
	assert.False(t, fitsSchedule(windows, day(18, 0), day(19, 0)))
	assert.False(t, fitsSchedule(nil, day(9, 0), day(10, 0)))
}
