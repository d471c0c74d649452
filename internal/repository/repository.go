package repository

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
	ErrStatusConflict       = errors.New("order status changed concurrently")
	ErrEmailTaken           = errors.New("email already registered")
)
