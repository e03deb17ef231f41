package myerrors

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrValidation    = errors.New("validation failed")
	ErrNotOrderOwner = errors.New("driver does not own this order")

	// ErrOrderTaken means the pending-status compare-and-swap lost the race:
	// some other driver accepted the order first.
	ErrOrderTaken = errors.New("order already accepted by another driver")

	// ErrIllegalTransition means the requested status does not follow the
	// order's current status in the delivery sequence.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrOrderConflict means the order status changed between the read and
	// the conditional update. The caller may refresh and retry.
	ErrOrderConflict = errors.New("order was modified concurrently")
)
