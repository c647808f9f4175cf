package repository

import "errors"

// Sentinel errors shared by repository implementations.
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("not found")
)
