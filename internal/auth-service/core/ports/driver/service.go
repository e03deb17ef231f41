package driver

import (
	"context"

	"dashdrop/internal/auth-service/core/domain/dto"
)

type IAuthService interface {
	RegisterDriver(ctx context.Context, req dto.DriverRegistrationRequest) (dto.DriverRegistrationResponse, error)
	Login(ctx context.Context, email, password string) (dto.LoginResponse, error)
}

type IOtpService interface {
	Issue(ctx context.Context, phone string) error
	Confirm(ctx context.Context, phone, code string) error
}
