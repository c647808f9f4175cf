package model

import (
	"time"

	"github.com/google/uuid"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	ClinicID    uuid.UUID     `db:"clinic_id" json:"clinic_id"`
	FirstName   string        `db:"first_name" json:"first_name"`
	LastName    string        `db:"last_name" json:"last_name"`
	Email       string        `db:"email" json:"email"`
	Phone       string        `db:"phone" json:"phone"`
	DateOfBirth *time.Time    `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender      string        `db:"gender" json:"gender,omitempty"`
	Address     string        `db:"address" json:"address,omitempty"`
	Allergies   string        `db:"allergies" json:"allergies,omitempty"`
	Notes       string        `db:"notes" json:"notes,omitempty"`
	Status      PatientStatus `db:"status" json:"status"`
}

// TreatmentRecord is one entry in a patient's dental history.
type TreatmentRecord struct {
	Base
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	DentistID   uuid.UUID `db:"dentist_id" json:"dentist_id"`
	Procedure   string    `db:"procedure" json:"procedure"`
	ToothNumber *int      `db:"tooth_number" json:"tooth_number,omitempty"`
	Diagnosis   string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
	PerformedAt time.Time `db:"performed_at" json:"performed_at"`
}

type CreatePatientRequest struct {
	ClinicID    uuid.UUID  `json:"clinic_id" binding:"required"`
	FirstName   string     `json:"first_name" binding:"required"`
	LastName    string     `json:"last_name" binding:"required"`
	Email       string     `json:"email" binding:"omitempty,email"`
	Phone       string     `json:"phone" binding:"required"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      string     `json:"gender" binding:"omitempty,oneof=male female other"`
	Address     string     `json:"address"`
	Allergies   string     `json:"allergies"`
	Notes       string     `json:"notes"`
}

type UpdatePatientRequest struct {
	FirstName   *string        `json:"first_name"`
	LastName    *string        `json:"last_name"`
	Email       *string        `json:"email" binding:"omitempty,email"`
	Phone       *string        `json:"phone"`
	DateOfBirth *time.Time     `json:"date_of_birth"`
	Gender      *string        `json:"gender" binding:"omitempty,oneof=male female other"`
	Address     *string        `json:"address"`
	Allergies   *string        `json:"allergies"`
	Notes       *string        `json:"notes"`
	Status      *PatientStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

type CreateTreatmentRequest struct {
	DentistID   uuid.UUID `json:"dentist_id" binding:"required"`
	Procedure   string    `json:"procedure" binding:"required"`
	ToothNumber *int      `json:"tooth_number" binding:"omitempty,min=1,max=32"`
	Diagnosis   string    `json:"diagnosis"`
	Notes       string    `json:"notes"`
	PerformedAt time.Time `json:"performed_at" binding:"required"`
}

type PatientFilters struct {
	ClinicID   uuid.UUID
	SearchTerm string
	Status     PatientStatus
}
