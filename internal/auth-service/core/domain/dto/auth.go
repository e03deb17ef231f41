package dto

type DriverRegistrationRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Password      *string `json:"password"`
	VehicleType   *string `json:"vehicle_type"`
	VehicleNumber *string `json:"vehicle_number"`
	LicenseNumber *string `json:"license_number"`
}

type DriverRegistrationResponse struct {
	UserID             string `json:"user_id"`
	DriverID           string `json:"driver_id"`
	VerificationStatus string `json:"verification_status"`
	Token              string `json:"token"`
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	DriverID string `json:"driver_id,omitempty"`
}

type OtpRequest struct {
	Phone *string `json:"phone"`
}

type OtpConfirmRequest struct {
	Phone *string `json:"phone"`
	Code  *string `json:"code"`
}

type OtpResponse struct {
	Message string `json:"message"`
}
