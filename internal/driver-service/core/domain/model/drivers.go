package model

import (
	"regexp"
	"time"
)

const (
	VehicleBike    = "bike"
	VehicleScooter = "scooter"
	VehicleCar     = "car"
	VehicleBicycle = "bicycle"

	StatusIdle   = "idle"
	StatusActive = "active"
	StatusOnTrip = "onTrip"

	VerificationPendingDocuments    = "pending_documents"
	VerificationPendingVerification = "pending_verification"
	VerificationVerified            = "verified"
	VerificationRejected            = "rejected"
)

// DocumentSlots are the five named uploads a driver must provide before the
// profile enters review.
var DocumentSlots = []string{"aadhaarFront", "aadhaarBack", "dlFront", "dlBack", "panCard"}

var (
	vehicleNumberRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{1,2}[A-Z]{1,2}[0-9]{4}$`)
	licenseNumberRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{13}$`)
)

func ValidVehicleNumber(v string) bool {
	return vehicleNumberRe.MatchString(v)
}

func ValidLicenseNumber(v string) bool {
	return licenseNumberRe.MatchString(v)
}

func ValidVehicleType(v string) bool {
	switch v {
	case VehicleBike, VehicleScooter, VehicleCar, VehicleBicycle:
		return true
	}
	return false
}

func ValidDocumentSlot(slot string) bool {
	for _, s := range DocumentSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// HasAllDocuments reports whether every slot holds a stored file reference.
func HasAllDocuments(docs map[string]string) bool {
	for _, slot := range DocumentSlots {
		if docs[slot] == "" {
			return false
		}
	}
	return true
}

type Location struct {
	Longitude float64
	Latitude  float64
}

type Driver struct {
	ID              string
	UserID          string
	Name            string
	Phone           string
	VehicleType     string
	VehicleNumber   string
	LicenseNumber   string
	CurrentLocation Location
	IsAvailable     bool
	CurrentStatus   string
	Rating          float64
	TotalDeliveries int64
	TotalEarnings   float64
	TodayEarnings   float64

	Documents          map[string]string // slot -> stored file URL
	VerificationStatus string
	VerificationNotes  string
	VerifiedAt         *time.Time
	VerifiedBy         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileUpdate carries optional field changes; nil means "keep current".
type ProfileUpdate struct {
	Name          *string
	Phone         *string
	VehicleType   *string
	VehicleNumber *string
	LicenseNumber *string
}
