package driven

import (
	"context"

	"dashdrop/internal/auth-service/core/domain/model"
)

type IAuthRepo interface {
	// CreateDriverAccount inserts the identity and the driver profile in one
	// transaction and returns (userID, driverID).
	CreateDriverAccount(ctx context.Context, reg model.DriverRegistration) (string, string, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (model.User, error)
	// GetDriverID returns the driver row id for a DRIVER identity, or "" for
	// other roles.
	GetDriverID(ctx context.Context, userID string) (string, error)
	MarkPhoneVerified(ctx context.Context, userID string) error
}
