package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dentix/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		CheckConflicts(ctx context.Context, dentistID uuid.UUID, startTime, endTime time.Time, excludeID *uuid.UUID) (bool, error)
		GetDentistAppointments(ctx context.Context, dentistID uuid.UUID, startDate, endDate time.Time) ([]*model.Appointment, error)
	}

	ScheduleRepository interface {
		Create(ctx context.Context, schedule *model.DentistSchedule) error
		Get(ctx context.Context, id uuid.UUID) (*model.DentistSchedule, error)
		Update(ctx context.Context, schedule *model.DentistSchedule) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForDentist(ctx context.Context, dentistID uuid.UUID) ([]*model.DentistSchedule, error)
		GetForDay(ctx context.Context, dentistID uuid.UUID, day time.Weekday) ([]*model.DentistSchedule, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
		AddTreatment(ctx context.Context, record *model.TreatmentRecord) error
		ListTreatments(ctx context.Context, patientID uuid.UUID) ([]*model.TreatmentRecord, error)
	}

	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
		Update(ctx context.Context, clinic *model.Clinic) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Clinic, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
	}

	InventoryRepository interface {
		CreateItem(ctx context.Context, item *model.InventoryItem) error
		GetItem(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
		UpdateItem(ctx context.Context, item *model.InventoryItem) error
		DeleteItem(ctx context.Context, id uuid.UUID) error
		ListItems(ctx context.Context, filters *model.InventoryFilters) ([]*model.InventoryItem, error)
		ListLowStock(ctx context.Context, clinicID uuid.UUID) ([]*model.InventoryItem, error)
		// ApplyMovement records the movement and adjusts the item stock in one
		// transaction. Returns ErrInsufficientStock when the movement would
		// drive stock below zero.
		ApplyMovement(ctx context.Context, movement *model.StockMovement, delta int) (*model.InventoryItem, error)
		ListMovements(ctx context.Context, itemID uuid.UUID) ([]*model.StockMovement, error)
	}

	SupplierRepository interface {
		Create(ctx context.Context, supplier *model.Supplier) error
		Get(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
		Update(ctx context.Context, supplier *model.Supplier) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Supplier, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
