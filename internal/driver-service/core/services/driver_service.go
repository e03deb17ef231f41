package services

import (
	"context"
	"fmt"
	"time"

	"dashdrop/internal/driver-service/core/domain/dto"
	"dashdrop/internal/driver-service/core/domain/model"
	"dashdrop/internal/driver-service/core/myerrors"
	"dashdrop/internal/driver-service/core/ports/driven"
	"dashdrop/internal/mylogger"
)

type DriverService struct {
	repositories driven.IDriverRepository
	log          mylogger.Logger
}

func NewDriverService(repositories driven.IDriverRepository, log mylogger.Logger) *DriverService {
	return &DriverService{repositories: repositories, log: log}
}

func (ds *DriverService) GetDriver(ctx context.Context, driverID string) (dto.DriverResponseDto, error) {
	m, err := ds.repositories.GetDriver(ctx, driverID)
	if err != nil {
		return dto.DriverResponseDto{}, err
	}
	return dto.FromDriverModel(m), nil
}

func (ds *DriverService) UpdateProfile(ctx context.Context, driverID string, req dto.ProfileUpdateRequestDto) (dto.DriverResponseDto, error) {
	log := ds.log.Action("UpdateProfile")

	fields := model.ProfileUpdate{
		Name:          req.Name,
		Phone:         req.Phone,
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
		LicenseNumber: req.LicenseNumber,
	}

	if fields.VehicleType != nil && !model.ValidVehicleType(*fields.VehicleType) {
		return dto.DriverResponseDto{}, fmt.Errorf("%w: unknown vehicle type %q", myerrors.ErrValidation, *fields.VehicleType)
	}
	if fields.VehicleNumber != nil && !model.ValidVehicleNumber(*fields.VehicleNumber) {
		return dto.DriverResponseDto{}, fmt.Errorf("%w: vehicle number %q does not match the registration format", myerrors.ErrValidation, *fields.VehicleNumber)
	}
	if fields.LicenseNumber != nil && !model.ValidLicenseNumber(*fields.LicenseNumber) {
		return dto.DriverResponseDto{}, fmt.Errorf("%w: license number %q does not match the license format", myerrors.ErrValidation, *fields.LicenseNumber)
	}

	m, err := ds.repositories.UpdateProfile(ctx, driverID, fields)
	if err != nil {
		log.Error("cannot update driver profile", err, "driver_id", driverID)
		return dto.DriverResponseDto{}, err
	}

	log.Info("driver profile updated", "driver_id", driverID)
	return dto.FromDriverModel(m), nil
}

// UpdateLocation overwrites the stored location unconditionally; the call is
// not gated on verification state. Last write wins.
func (ds *DriverService) UpdateLocation(ctx context.Context, driverID string, longitude, latitude float64) error {
	return ds.repositories.SetLocation(ctx, driverID, longitude, latitude)
}

// SetAvailability flips the availability flag. Going available requires a
// verified profile; going unavailable is always allowed.
func (ds *DriverService) SetAvailability(ctx context.Context, driverID string, isAvailable bool) (dto.AvailabilityResponseDto, error) {
	log := ds.log.Action("SetAvailability")

	if isAvailable {
		m, err := ds.repositories.GetDriver(ctx, driverID)
		if err != nil {
			return dto.AvailabilityResponseDto{}, err
		}
		if m.VerificationStatus != model.VerificationVerified {
			log.Warn("unverified driver tried to go available", "driver_id", driverID, "verification_status", m.VerificationStatus)
			return dto.AvailabilityResponseDto{}, myerrors.ErrNotVerified
		}
	}

	stored, err := ds.repositories.SetAvailability(ctx, driverID, isAvailable)
	if err != nil {
		return dto.AvailabilityResponseDto{}, err
	}

	message := "You are now offline"
	if stored {
		message = "You are now online and ready to accept orders"
	}
	log.Info("driver availability changed", "driver_id", driverID, "is_available", stored)
	return dto.AvailabilityResponseDto{
		DriverId:    driverID,
		IsAvailable: stored,
		Message:     message,
	}, nil
}

func (ds *DriverService) ResolveDriverID(ctx context.Context, userID string) (string, error) {
	m, err := ds.repositories.GetDriverByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return m.ID, nil
}

// ForceOffline is called by the presence layer on disconnect. Failures are
// the caller's to log; the session teardown proceeds regardless.
func (ds *DriverService) ForceOffline(ctx context.Context, driverID string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	_, err := ds.repositories.SetAvailability(ctx, driverID, false)
	return err
}
