package dto

import (
	"time"

	"dashdrop/internal/admin-service/core/domain/model"
)

type DecideRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"verification_notes"`
}

type VerificationResponse struct {
	DriverID           string            `json:"driver_id"`
	Name               string            `json:"name"`
	Phone              string            `json:"phone"`
	VehicleType        string            `json:"vehicle_type"`
	Documents          map[string]string `json:"documents"`
	VerificationStatus string            `json:"verification_status"`
	VerificationNotes  string            `json:"verification_notes,omitempty"`
	VerifiedAt         *time.Time        `json:"verified_at,omitempty"`
	VerifiedBy         string            `json:"verified_by,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
}

type PendingListResponse struct {
	Total   int                    `json:"total"`
	Drivers []VerificationResponse `json:"drivers"`
}

func FromDriverVerification(m model.DriverVerification) VerificationResponse {
	return VerificationResponse{
		DriverID:           m.DriverID,
		Name:               m.Name,
		Phone:              m.Phone,
		VehicleType:        m.VehicleType,
		Documents:          m.Documents,
		VerificationStatus: m.VerificationStatus,
		VerificationNotes:  m.VerificationNotes,
		VerifiedAt:         m.VerifiedAt,
		VerifiedBy:         m.VerifiedBy,
		CreatedAt:          m.CreatedAt,
	}
}
