package model

import (
	"regexp"
	"time"
)

const (
	RoleDriver   = "DRIVER"
	RoleAdmin    = "ADMIN"
	RoleCustomer = "CUSTOMER"
)

var (
	vehicleNumberRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,2}[0-9]{4}$`)
	licenseNumberRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{13}$`)
	emailRe         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe         = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func ValidVehicleNumber(v string) bool { return vehicleNumberRe.MatchString(v) }

func ValidLicenseNumber(v string) bool { return licenseNumberRe.MatchString(v) }

func ValidEmail(v string) bool { return emailRe.MatchString(v) }

func ValidPhone(v string) bool { return phoneRe.MatchString(v) }

func ValidVehicleType(v string) bool {
	switch v {
	case "bike", "scooter", "car", "bicycle":
		return true
	}
	return false
}

type User struct {
	ID            string
	Email         string
	Phone         string
	PasswordHash  string
	Role          string
	PhoneVerified bool
	CreatedAt     time.Time
}

// DriverRegistration is the identity plus driver profile created together.
type DriverRegistration struct {
	Name          string
	Email         string
	Phone         string
	PasswordHash  string
	VehicleType   string
	VehicleNumber string
	LicenseNumber string
}
