package models

import "errors"

var (
	// ErrValidation is bad input, rejected before any write
	ErrValidation = errors.New("validation error")
	// ErrTransaction means a multi-row write was rolled back; safe to retry from scratch
	ErrTransaction = errors.New("transaction error")
	// ErrStorage means the database itself failed
	ErrStorage = errors.New("storage error")
	ErrNotFound = errors.New("not found")
)
