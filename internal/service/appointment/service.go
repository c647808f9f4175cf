package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
	"github.com/dentix/clinic-api/internal/service/event"
	apperrors "github.com/dentix/clinic-api/pkg/errors"
	"github.com/dentix/clinic-api/pkg/metrics"
)

// Config holds the booking business rules.
type Config struct {
	SlotInterval time.Duration
	MinDuration  time.Duration
	MaxDuration  time.Duration
	MaxAdvance   time.Duration
	PeakStart    int // minutes since midnight
	PeakEnd      int
}

type Service struct {
	repo         repository.AppointmentRepository
	scheduleRepo repository.ScheduleRepository
	events       *event.Service
	metrics      *metrics.Metrics
	cfg          Config
}

func NewService(repo repository.AppointmentRepository, scheduleRepo repository.ScheduleRepository, events *event.Service, m *metrics.Metrics, cfg Config) *Service {
	return &Service{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		events:       events,
		metrics:      m,
		cfg:          cfg,
	}
}

// GetAvailableSlots computes the slot list for a dentist on a date. A dentist
// with no schedule for that weekday gets an empty list, not an error.
func (s *Service) GetAvailableSlots(ctx context.Context, dentistID uuid.UUID, date time.Time, duration time.Duration) ([]model.Slot, error) {
	return s.availableSlots(ctx, dentistID, date, duration, nil)
}

// GetAvailableSlotsForEdit is the same computation with the appointment being
// edited removed from the conflict set.
func (s *Service) GetAvailableSlotsForEdit(ctx context.Context, dentistID uuid.UUID, date time.Time, duration time.Duration, excludeID uuid.UUID) ([]model.Slot, error) {
	return s.availableSlots(ctx, dentistID, date, duration, &excludeID)
}

func (s *Service) availableSlots(ctx context.Context, dentistID uuid.UUID, date time.Time, duration time.Duration, excludeID *uuid.UUID) ([]model.Slot, error) {
	if duration <= 0 {
		return nil, apperrors.BadRequest("duration must be positive", nil)
	}

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.SlotComputeLatency.Observe(time.Since(start).Seconds())
		}
	}()

	windows, err := s.workingWindows(ctx, dentistID, date)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return []model.Slot{}, nil
	}

	candidates := GenerateSlots(windows, s.cfg.SlotInterval, duration)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	appointments, err := s.repo.GetDentistAppointments(ctx, dentistID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to get dentist appointments: %w", err)
	}

	return MarkAvailability(candidates, duration, appointments, excludeID, s.cfg.PeakStart, s.cfg.PeakEnd), nil
}

func (s *Service) workingWindows(ctx context.Context, dentistID uuid.UUID, date time.Time) ([]model.Window, error) {
	schedules, err := s.scheduleRepo.GetForDay(ctx, dentistID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("failed to get dentist schedule: %w", err)
	}

	windows := make([]model.Window, 0, len(schedules))
	for _, sched := range schedules {
		w, err := sched.WindowOn(date)
		if err != nil {
			log.Warn().Err(err).Str("schedule_id", sched.ID.String()).Msg("skipping malformed schedule window")
			continue
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	duration := time.Duration(req.DurationMinutes) * time.Minute
	if err := s.validateBookingTime(req.StartTime, duration); err != nil {
		return nil, err
	}

	endTime := req.StartTime.Add(duration)
	if err := s.ensureSlotFree(ctx, req.DentistID, req.StartTime, endTime, nil); err != nil {
		return nil, err
	}

	now := time.Now()
	apt := &model.Appointment{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClinicID:    req.ClinicID,
		DentistID:   req.DentistID,
		PatientID:   req.PatientID,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		ServiceType: req.ServiceType,
		Status:      model.AppointmentStatusScheduled,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.AppointmentsBooked.WithLabelValues(string(apt.ServiceType)).Inc()
	}
	s.recordEvent(ctx, model.EventAppointmentCreated, apt)

	return apt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if apt.Status == model.AppointmentStatusCancelled || apt.Status == model.AppointmentStatusCompleted {
		return nil, apperrors.BadRequest("cannot modify a finished appointment", nil)
	}

	rescheduled := false
	duration := apt.EndTime.Sub(apt.StartTime)

	if req.DurationMinutes != nil {
		duration = time.Duration(*req.DurationMinutes) * time.Minute
		rescheduled = true
	}
	if req.StartTime != nil {
		apt.StartTime = *req.StartTime
		rescheduled = true
	}
	if rescheduled {
		if err := s.validateBookingTime(apt.StartTime, duration); err != nil {
			return nil, err
		}
		apt.EndTime = apt.StartTime.Add(duration)
		if err := s.ensureSlotFree(ctx, apt.DentistID, apt.StartTime, apt.EndTime, &apt.ID); err != nil {
			return nil, err
		}
	}

	if req.ServiceType != nil {
		apt.ServiceType = *req.ServiceType
	}
	if req.Status != nil {
		apt.Status = *req.Status
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.recordEvent(ctx, model.EventAppointmentUpdated, apt)
	return apt, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID, reason string) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	if apt.Status == model.AppointmentStatusCancelled {
		return nil, apperrors.BadRequest("appointment is already cancelled", nil)
	}
	if apt.Status == model.AppointmentStatusCompleted {
		return nil, apperrors.BadRequest("cannot cancel a completed appointment", nil)
	}

	apt.Status = model.AppointmentStatusCancelled
	apt.CancelReason = &reason
	apt.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.recordEvent(ctx, model.EventAppointmentCancelled, apt)
	return apt, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return apperrors.NotFound("appointment", err)
	}

	if apt.Status != model.AppointmentStatusCancelled {
		return apperrors.BadRequest("can only delete cancelled appointments", nil)
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) validateBookingTime(startTime time.Time, duration time.Duration) error {
	if duration < s.cfg.MinDuration || duration > s.cfg.MaxDuration {
		return apperrors.BadRequest(
			fmt.Sprintf("appointment duration must be between %v and %v", s.cfg.MinDuration, s.cfg.MaxDuration), nil)
	}

	now := time.Now()
	if startTime.Before(now) {
		return apperrors.BadRequest("appointment cannot be scheduled in the past", nil)
	}
	if s.cfg.MaxAdvance > 0 && startTime.Sub(now) > s.cfg.MaxAdvance {
		return apperrors.BadRequest(
			fmt.Sprintf("appointment cannot be booked more than %v in advance", s.cfg.MaxAdvance), nil)
	}

	return nil
}

// ensureSlotFree re-checks the requested interval right before commit. Slots
// computed earlier may have been taken in the meantime; the booking loses the
// race and the caller must re-request availability.
func (s *Service) ensureSlotFree(ctx context.Context, dentistID uuid.UUID, startTime, endTime time.Time, excludeID *uuid.UUID) error {
	windows, err := s.workingWindows(ctx, dentistID, startTime)
	if err != nil {
		return err
	}
	if !fitsSchedule(windows, startTime, endTime) {
		return apperrors.BadRequest("requested time is outside the dentist's working hours", nil)
	}

	hasConflict, err := s.repo.CheckConflicts(ctx, dentistID, startTime, endTime, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check conflicts: %w", err)
	}
	if hasConflict {
		if s.metrics != nil {
			s.metrics.BookingConflicts.Inc()
		}
		return apperrors.Conflict("the requested slot is no longer available", nil)
	}
	return nil
}

func (s *Service) recordEvent(ctx context.Context, eventType string, apt *model.Appointment) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, eventType, apt); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Str("appointment_id", apt.ID.String()).Msg("failed to record outbox event")
	}
}
