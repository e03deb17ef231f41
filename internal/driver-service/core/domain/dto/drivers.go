package dto

import (
	"time"

	"dashdrop/internal/driver-service/core/domain/model"
)

type LocationDto struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type ProfileUpdateRequestDto struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	VehicleType   *string `json:"vehicle_type"`
	VehicleNumber *string `json:"vehicle_number"`
	LicenseNumber *string `json:"license_number"`
}

type LocationUpdateRequestDto struct {
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`
}

type LocationUpdateResponseDto struct {
	DriverId  string      `json:"driver_id"`
	Location  LocationDto `json:"location"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type AvailabilityRequestDto struct {
	IsAvailable *bool `json:"is_available"`
}

type AvailabilityResponseDto struct {
	DriverId    string `json:"driver_id"`
	IsAvailable bool   `json:"is_available"`
	Message     string `json:"message"`
}

type DocumentsResponseDto struct {
	DriverId           string            `json:"driver_id"`
	Documents          map[string]string `json:"documents"`
	Skipped            []string          `json:"skipped,omitempty"`
	VerificationStatus string            `json:"verification_status"`
	Message            string            `json:"message"`
}

type DriverResponseDto struct {
	DriverId           string            `json:"driver_id"`
	Name               string            `json:"name"`
	Phone              string            `json:"phone"`
	VehicleType        string            `json:"vehicle_type"`
	VehicleNumber      string            `json:"vehicle_number"`
	LicenseNumber      string            `json:"license_number"`
	CurrentLocation    LocationDto       `json:"current_location"`
	IsAvailable        bool              `json:"is_available"`
	CurrentStatus      string            `json:"current_status"`
	Rating             float64           `json:"rating"`
	TotalDeliveries    int64             `json:"total_deliveries"`
	TotalEarnings      float64           `json:"total_earnings"`
	TodayEarnings      float64           `json:"today_earnings"`
	Documents          map[string]string `json:"documents"`
	VerificationStatus string            `json:"verification_status"`
	VerificationNotes  string            `json:"verification_notes,omitempty"`
}

func FromDriverModel(m model.Driver) DriverResponseDto {
	return DriverResponseDto{
		DriverId:           m.ID,
		Name:               m.Name,
		Phone:              m.Phone,
		VehicleType:        m.VehicleType,
		VehicleNumber:      m.VehicleNumber,
		LicenseNumber:      m.LicenseNumber,
		CurrentLocation:    LocationDto{Longitude: m.CurrentLocation.Longitude, Latitude: m.CurrentLocation.Latitude},
		IsAvailable:        m.IsAvailable,
		CurrentStatus:      m.CurrentStatus,
		Rating:             m.Rating,
		TotalDeliveries:    m.TotalDeliveries,
		TotalEarnings:      m.TotalEarnings,
		TodayEarnings:      m.TodayEarnings,
		Documents:          m.Documents,
		VerificationStatus: m.VerificationStatus,
		VerificationNotes:  m.VerificationNotes,
	}
}

// DocumentUpload is one submitted file payload for a named slot.
type DocumentUpload struct {
	Slot     string
	Filename string
	Data     []byte
}
