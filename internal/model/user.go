package model

import (
	"time"
)

type UserRole string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRoleDentist      UserRole = "dentist"
	UserRoleReceptionist UserRole = "receptionist"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusLocked  UserStatus = "locked"
	UserStatusPending UserStatus = "pending"
)

type User struct {
	Base
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	Phone            string     `db:"phone" json:"phone,omitempty"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	Role             UserRole   `db:"role" json:"role"`
	Specialty        string     `db:"specialty" json:"specialty,omitempty"`
	Status           UserStatus `db:"status" json:"status"`
	LoginAttempts    int        `db:"login_attempts" json:"-"`
	LastLoginAttempt time.Time  `db:"last_login_attempt" json:"-"`
	LastLoginAt      *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
}

type RegisterRequest struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Phone    string   `json:"phone"`
	Password string   `json:"password" binding:"required,min=8"`
	Role     UserRole `json:"role" binding:"required,oneof=admin dentist receptionist"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
