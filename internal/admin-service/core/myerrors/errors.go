package myerrors

import "errors"

var (
	ErrDriverNotFound    = errors.New("driver not found")
	ErrValidation        = errors.New("validation failed")
	ErrIllegalTransition = errors.New("illegal verification transition")
	ErrNotesRequired     = errors.New("rejection requires verification notes")
)
