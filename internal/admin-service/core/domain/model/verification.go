package model

import "time"

const (
	VerificationPendingDocuments    = "pending_documents"
	VerificationPendingVerification = "pending_verification"
	VerificationVerified            = "verified"
	VerificationRejected            = "rejected"
)

// DefaultVerifiedNotes is stored when the admin approves without a remark.
const DefaultVerifiedNotes = "All documents verified successfully"

func ValidDecision(status string) bool {
	switch status {
	case VerificationVerified, VerificationRejected, VerificationPendingVerification:
		return true
	}
	return false
}

// Decision is an admin's verdict on a driver profile.
type Decision struct {
	Status  string
	Notes   string
	AdminID string
}

// DriverVerification is the verification view of a driver row.
type DriverVerification struct {
	DriverID           string
	UserID             string
	Name               string
	Phone              string
	VehicleType        string
	Documents          map[string]string
	VerificationStatus string
	VerificationNotes  string
	VerifiedAt         *time.Time
	VerifiedBy         string
	CreatedAt          time.Time
}
