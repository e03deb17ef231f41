package services

import (
	"fmt"

	"dashdrop/internal/auth-service/core/domain/model"
	"dashdrop/internal/auth-service/core/myerrors"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinNameLen = 1
	MaxNameLen = 100

	MinPasswordLen = 6
	MaxPasswordLen = 72

	HashFactor = 10
)

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashFactor)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func validateRegistration(reg model.DriverRegistration, password string) error {
	if l := len(reg.Name); l < MinNameLen || l > MaxNameLen {
		return fmt.Errorf("%w: name must be in range [%d, %d]", myerrors.ErrValidation, MinNameLen, MaxNameLen)
	}
	if !model.ValidEmail(reg.Email) {
		return fmt.Errorf("%w: invalid email", myerrors.ErrValidation)
	}
	if !model.ValidPhone(reg.Phone) {
		return fmt.Errorf("%w: invalid phone", myerrors.ErrValidation)
	}
	if l := len(password); l < MinPasswordLen || l > MaxPasswordLen {
		return fmt.Errorf("%w: password must be in range [%d, %d]", myerrors.ErrValidation, MinPasswordLen, MaxPasswordLen)
	}
	if !model.ValidVehicleType(reg.VehicleType) {
		return fmt.Errorf("%w: unknown vehicle type %q", myerrors.ErrValidation, reg.VehicleType)
	}
	if !model.ValidVehicleNumber(reg.VehicleNumber) {
		return fmt.Errorf("%w: vehicle number does not match pattern", myerrors.ErrValidation)
	}
	if !model.ValidLicenseNumber(reg.LicenseNumber) {
		return fmt.Errorf("%w: license number does not match pattern", myerrors.ErrValidation)
	}
	return nil
}
