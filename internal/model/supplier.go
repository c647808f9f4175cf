package model

type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

type Supplier struct {
	Base
	Name          string         `db:"name" json:"name"`
	ContactPerson string         `db:"contact_person" json:"contact_person,omitempty"`
	Email         string         `db:"email" json:"email,omitempty"`
	Phone         string         `db:"phone" json:"phone,omitempty"`
	Address       string         `db:"address" json:"address,omitempty"`
	Status        SupplierStatus `db:"status" json:"status"`
}

type CreateSupplierRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type UpdateSupplierRequest struct {
	Name          *string         `json:"name"`
	ContactPerson *string         `json:"contact_person"`
	Email         *string         `json:"email" binding:"omitempty,email"`
	Phone         *string         `json:"phone"`
	Address       *string         `json:"address"`
	Status        *SupplierStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}
