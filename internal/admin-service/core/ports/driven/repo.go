package driven

import (
	"context"

	"dashdrop/internal/admin-service/core/domain/model"
)

type IVerificationRepo interface {
	GetDriver(ctx context.Context, driverID string) (model.DriverVerification, error)
	GetDriverEmail(ctx context.Context, driverID string) (string, error)
	ListPending(ctx context.Context) ([]model.DriverVerification, error)
	// Decide stores the verdict unconditionally and returns the updated row.
	Decide(ctx context.Context, driverID string, decision model.Decision) (model.DriverVerification, error)
	// Reconsider moves a rejected driver back into review. Any other current
	// status is an illegal transition.
	Reconsider(ctx context.Context, driverID string) (model.DriverVerification, error)
	// DeleteDriver removes the driver row and its identity row together.
	DeleteDriver(ctx context.Context, driverID string) error
}
