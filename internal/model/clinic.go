package model

type ClinicStatus string

const (
	ClinicStatusActive   ClinicStatus = "active"
	ClinicStatusInactive ClinicStatus = "inactive"
)

// Clinic is a single branch of the practice.
type Clinic struct {
	Base
	Name     string       `db:"name" json:"name"`
	Address  string       `db:"address" json:"address"`
	Phone    string       `db:"phone" json:"phone"`
	Timezone string       `db:"timezone" json:"timezone"`
	Status   ClinicStatus `db:"status" json:"status"`
}

type CreateClinicRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

type UpdateClinicRequest struct {
	Name    *string       `json:"name"`
	Address *string       `json:"address"`
	Phone   *string       `json:"phone"`
	Status  *ClinicStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}
