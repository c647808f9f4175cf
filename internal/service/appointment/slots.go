package appointment

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-api/internal/model"
)

// GenerateSlots builds the ordered sequence of candidate start times for the
// given working windows. Candidates are spaced at interval within each window,
// anchored at the window start, and only kept when the full duration fits
// before the window ends. Overlapping windows are merged so no start time is
// emitted twice.
func GenerateSlots(windows []model.Window, interval, duration time.Duration) []time.Time {
	if interval <= 0 || duration <= 0 {
		return nil
	}

	seen := make(map[int64]struct{})
	var starts []time.Time
	for _, w := range windows {
		for t := w.Start; !t.Add(duration).After(w.End); t = t.Add(interval) {
			key := t.Unix()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			starts = append(starts, t)
		}
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts
}

// overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not conflict.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// MarkAvailability turns candidate start times into slots, flagging each one
// booked when it overlaps a non-cancelled appointment. When excludeID is set,
// that appointment's own interval is ignored so an edit does not conflict
// with itself.
func MarkAvailability(candidates []time.Time, duration time.Duration, appointments []*model.Appointment, excludeID *uuid.UUID, peakStart, peakEnd int) []model.Slot {
	slots := make([]model.Slot, 0, len(candidates))
	for _, start := range candidates {
		end := start.Add(duration)
		available := true
		for _, apt := range appointments {
			if apt.Status == model.AppointmentStatusCancelled || apt.Status == model.AppointmentStatusNoShow {
				continue
			}
			if excludeID != nil && apt.ID == *excludeID {
				continue
			}
			if overlaps(start, end, apt.StartTime, apt.EndTime) {
				available = false
				break
			}
		}
		slots = append(slots, model.Slot{
			Time:       start,
			Available:  available,
			IsPeakHour: isPeakHour(start, peakStart, peakEnd),
		})
	}
	return slots
}

// isPeakHour checks the slot start against the configured peak window,
// expressed in minutes since midnight in the slot's own location.
func isPeakHour(t time.Time, peakStart, peakEnd int) bool {
	if peakEnd <= peakStart {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= peakStart && minutes < peakEnd
}

// fitsSchedule reports whether [start, end) lies entirely inside one of the
// dentist's working windows.
func fitsSchedule(windows []model.Window, start, end time.Time) bool {
	for _, w := range windows {
		if !start.Before(w.Start) && !end.After(w.End) {
			return true
		}
	}
	return false
}
