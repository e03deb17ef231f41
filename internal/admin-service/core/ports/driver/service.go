package driver

import (
	"context"

	"dashdrop/internal/admin-service/core/domain/model"
)

type IVerificationService interface {
	Decide(ctx context.Context, driverID string, decision model.Decision) (model.DriverVerification, error)
	Reconsider(ctx context.Context, driverID string) (model.DriverVerification, error)
	ListPending(ctx context.Context) ([]model.DriverVerification, error)
	GetDriver(ctx context.Context, driverID string) (model.DriverVerification, error)
	DeleteDriver(ctx context.Context, driverID string) error
}
