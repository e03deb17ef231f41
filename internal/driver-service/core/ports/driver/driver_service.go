package driver

import (
	"context"

	"dashdrop/internal/driver-service/core/domain/dto"
)

type IDriverService interface {
	GetDriver(ctx context.Context, driverID string) (dto.DriverResponseDto, error)
	UpdateProfile(ctx context.Context, driverID string, req dto.ProfileUpdateRequestDto) (dto.DriverResponseDto, error)
	UpdateLocation(ctx context.Context, driverID string, longitude, latitude float64) error
	SetAvailability(ctx context.Context, driverID string, isAvailable bool) (dto.AvailabilityResponseDto, error)

	// ResolveDriverID maps an identity id onto the owned driver id; used by
	// the presence layer during the join handshake.
	ResolveDriverID(ctx context.Context, userID string) (string, error)

	// ForceOffline clears the availability flag when a realtime session drops.
	ForceOffline(ctx context.Context, driverID string) error
}

type IVerificationService interface {
	SubmitDocuments(ctx context.Context, driverID string, uploads []dto.DocumentUpload) (dto.DocumentsResponseDto, error)
}
