package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

type ServiceType string

const (
	ServiceTypeCheckup     ServiceType = "checkup"
	ServiceTypeCleaning    ServiceType = "cleaning"
	ServiceTypeFilling     ServiceType = "filling"
	ServiceTypeExtraction  ServiceType = "extraction"
	ServiceTypeRootCanal   ServiceType = "root_canal"
	ServiceTypeOrthodontic ServiceType = "orthodontic"
	ServiceTypeEmergency   ServiceType = "emergency"
)

type Appointment struct {
	Base
	ClinicID     uuid.UUID         `db:"clinic_id" json:"clinic_id"`
	DentistID    uuid.UUID         `db:"dentist_id" json:"dentist_id"`
	PatientID    uuid.UUID         `db:"patient_id" json:"patient_id"`
	StartTime    time.Time         `db:"start_time" json:"start_time"`
	EndTime      time.Time         `db:"end_time" json:"end_time"`
	ServiceType  ServiceType       `db:"service_type" json:"service_type"`
	Status       AppointmentStatus `db:"status" json:"status"`
	Notes        string            `db:"notes" json:"notes,omitempty"`
	CancelReason *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

type CreateAppointmentRequest struct {
	ClinicID        uuid.UUID   `json:"clinic_id" binding:"required"`
	DentistID       uuid.UUID   `json:"dentist_id" binding:"required"`
	PatientID       uuid.UUID   `json:"patient_id" binding:"required"`
	StartTime       time.Time   `json:"start_time" binding:"required"`
	DurationMinutes int         `json:"duration_minutes" binding:"required,min=1"`
	ServiceType     ServiceType `json:"service_type" binding:"required,oneof=checkup cleaning filling extraction root_canal orthodontic emergency"`
	Notes           string      `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	StartTime       *time.Time         `json:"start_time"`
	DurationMinutes *int               `json:"duration_minutes" binding:"omitempty,min=1"`
	ServiceType     *ServiceType       `json:"service_type" binding:"omitempty,oneof=checkup cleaning filling extraction root_canal orthodontic emergency"`
	Status          *AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled confirmed completed cancelled no_show"`
	Notes           *string            `json:"notes" binding:"omitempty,max=1000"`
}

type AppointmentFilters struct {
	ClinicID  uuid.UUID
	DentistID uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	StartDate time.Time
	EndDate   time.Time
}

// Slot is a candidate appointment start time for a dentist on a given day.
type Slot struct {
	Time       time.Time `json:"time"`
	Available  bool      `json:"available"`
	IsPeakHour bool      `json:"is_peak_hour"`
}

// Window is a contiguous working interval for a dentist on a given day.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
