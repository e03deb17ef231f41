package myerrors

import "errors"

var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrValidation     = errors.New("validation failed")

	// ErrNotVerified guards the availability toggle: a driver may only go
	// available after the documents have been verified.
	ErrNotVerified = errors.New("driver is not verified yet")

	// ErrNoUsableDocuments means every submitted payload was skipped because
	// none decoded as a supported image or PDF.
	ErrNoUsableDocuments = errors.New("no usable document payloads")
)
