package driven

import (
	"context"

	"dashdrop/internal/driver-service/core/domain/model"
)

type IDriverRepository interface {
	GetDriver(ctx context.Context, driverID string) (model.Driver, error)
	GetDriverByUserID(ctx context.Context, userID string) (model.Driver, error)
	UpdateProfile(ctx context.Context, driverID string, fields model.ProfileUpdate) (model.Driver, error)

	// SetLocation is an unconditional overwrite; it succeeds in any
	// verification state.
	SetLocation(ctx context.Context, driverID string, longitude, latitude float64) error

	// SetAvailability overwrites the flag and returns the stored value.
	SetAvailability(ctx context.Context, driverID string, isAvailable bool) (bool, error)

	// MergeDocuments folds new slot URLs into the stored documents map
	// without clearing existing entries, returning the updated driver.
	MergeDocuments(ctx context.Context, driverID string, docs map[string]string) (model.Driver, error)

	SetVerificationStatus(ctx context.Context, driverID, status string) error

	// ResetTodayEarnings zeroes every driver's daily accumulator and returns
	// the number of rows touched.
	ResetTodayEarnings(ctx context.Context) (int64, error)
}
