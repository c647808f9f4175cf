package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
	apperrors "github.com/dentix/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.ScheduleRepository
}

func NewService(repo repository.ScheduleRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateSchedule(ctx context.Context, req *model.CreateScheduleRequest) (*model.DentistSchedule, error) {
	start, err := model.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	end, err := model.ParseClockTime(req.EndTime)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	if end <= start {
		return nil, apperrors.BadRequest("end time must be after start time", nil)
	}

	now := time.Now()
	schedule := &model.DentistSchedule{
		Base: model.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		DentistID: req.DentistID,
		ClinicID:  req.ClinicID,
		DayOfWeek: time.Weekday(req.DayOfWeek),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return schedule, nil
}

func (s *Service) GetSchedule(ctx context.Context, id uuid.UUID) (*model.DentistSchedule, error) {
	schedule, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("schedule", err)
	}
	return schedule, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, id uuid.UUID, req *model.UpdateScheduleRequest) (*model.DentistSchedule, error) {
	schedule, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("schedule", err)
	}

	if req.StartTime != nil {
		schedule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		schedule.EndTime = *req.EndTime
	}
	if req.Active != nil {
		schedule.Active = *req.Active
	}

	start, err := model.ParseClockTime(schedule.StartTime)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	end, err := model.ParseClockTime(schedule.EndTime)
	if err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}
	if end <= start {
		return nil, apperrors.BadRequest("end time must be after start time", nil)
	}

	if err := s.repo.Update(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	return schedule, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}

func (s *Service) ListSchedules(ctx context.Context, dentistID uuid.UUID) ([]*model.DentistSchedule, error) {
	schedules, err := s.repo.ListForDentist(ctx, dentistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}
