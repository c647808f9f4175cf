package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-api/internal/model"
	"github.com/dentix/clinic-api/internal/repository"
)

type scheduleRepository struct {
	BaseRepository
}

func NewScheduleRepository(base BaseRepository) repository.ScheduleRepository {
	return &scheduleRepository{base}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.DentistSchedule) error {
	query := `
		INSERT INTO dentist_schedules (
			id, dentist_id, clinic_id, day_of_week, start_time, end_time, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.DentistID,
		schedule.ClinicID,
		schedule.DayOfWeek,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Active,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Get(ctx context.Context, id uuid.UUID) (*model.DentistSchedule, error) {
	query := `
		SELECT id, dentist_id, clinic_id, day_of_week, start_time, end_time, active,
			   created_at, updated_at
		FROM dentist_schedules
		WHERE id = $1
	`
	var schedule model.DentistSchedule
	err := r.db.GetContext(ctx, &schedule, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return &schedule, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *model.DentistSchedule) error {
	query := `
		UPDATE dentist_schedules
		SET start_time = $1, end_time = $2, active = $3, updated_at = $4
		WHERE id = $5
	`
	schedule.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Active,
		schedule.UpdatedAt,
		schedule.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM dentist_schedules
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("schedule not found")
	}

	return nil
}

func (r *scheduleRepository) ListForDentist(ctx context.Context, dentistID uuid.UUID) ([]*model.DentistSchedule, error) {
	query := `
		SELECT id, dentist_id, clinic_id, day_of_week, start_time, end_time, active,
			   created_at, updated_at
		FROM dentist_schedules
		WHERE dentist_id = $1
		ORDER BY day_of_week ASC, start_time ASC
	`
	var schedules []*model.DentistSchedule
	err := r.db.SelectContext(ctx, &schedules, query, dentistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

func (r *scheduleRepository) GetForDay(ctx context.Context, dentistID uuid.UUID, day time.Weekday) ([]*model.DentistSchedule, error) {
	query := `
		SELECT id, dentist_id, clinic_id, day_of_week, start_time, end_time, active,
			   created_at, updated_at
		FROM dentist_schedules
		WHERE dentist_id = $1
		AND day_of_week = $2
		AND active = true
		ORDER BY start_time ASC
	`
	var schedules []*model.DentistSchedule
	err := r.db.SelectContext(ctx, &schedules, query, dentistID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get day schedules: %w", err)
	}
	return schedules, nil
}
