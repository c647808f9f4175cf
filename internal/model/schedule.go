package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DentistSchedule is one working window for a dentist at a clinic on a
// given weekday. A dentist may have several windows per day (split shifts).
type DentistSchedule struct {
	Base
	DentistID uuid.UUID    `db:"dentist_id" json:"dentist_id"`
	ClinicID  uuid.UUID    `db:"clinic_id" json:"clinic_id"`
	DayOfWeek time.Weekday `db:"day_of_week" json:"day_of_week"`
	StartTime string       `db:"start_time" json:"start_time"`
	EndTime   string       `db:"end_time" json:"end_time"`
	Active    bool         `db:"active" json:"active"`
}

type CreateScheduleRequest struct {
	DentistID uuid.UUID `json:"dentist_id" binding:"required"`
	ClinicID  uuid.UUID `json:"clinic_id" binding:"required"`
	DayOfWeek int       `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string    `json:"start_time" binding:"required,clocktime"`
	EndTime   string    `json:"end_time" binding:"required,clocktime"`
}

type UpdateScheduleRequest struct {
	StartTime *string `json:"start_time" binding:"omitempty,clocktime"`
	EndTime   *string `json:"end_time" binding:"omitempty,clocktime"`
	Active    *bool   `json:"active"`
}

// ParseClockTime parses a wire-format "HH:MM" value into minutes since
// midnight.
func ParseClockTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WindowOn resolves the schedule entry into a concrete window on the given
// date. The date's own timezone is preserved.
func (s *DentistSchedule) WindowOn(date time.Time) (Window, error) {
	start, err := ParseClockTime(s.StartTime)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClockTime(s.EndTime)
	if err != nil {
		return Window{}, err
	}
	if end <= start {
		return Window{}, fmt.Errorf("schedule window ends before it starts")
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return Window{
		Start: midnight.Add(time.Duration(start) * time.Minute),
		End:   midnight.Add(time.Duration(end) * time.Minute),
	}, nil
}
