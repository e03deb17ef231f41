package services

import (
	"context"
	"fmt"
	"time"

	"dashdrop/internal/auth-service/core/domain/dto"
	"dashdrop/internal/auth-service/core/domain/model"
	"dashdrop/internal/auth-service/core/myerrors"
	"dashdrop/internal/auth-service/core/ports/driven"
	"dashdrop/internal/mylogger"

	"github.com/golang-jwt/jwt"
)

const tokenTTL = 72 * time.Hour

type AuthService struct {
	repo      driven.IAuthRepo
	jwtSecret string
	log       mylogger.Logger
}

func NewAuthService(repo driven.IAuthRepo, jwtSecret string, log mylogger.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// RegisterDriver creates the identity and driver profile together. The new
// profile starts in pending_documents.
func (as *AuthService) RegisterDriver(ctx context.Context, req dto.DriverRegistrationRequest) (dto.DriverRegistrationResponse, error) {
	log := as.log.Action("registerDriver")

	reg, password, err := registrationFromRequest(req)
	if err != nil {
		return dto.DriverRegistrationResponse{}, err
	}
	if err := validateRegistration(reg, password); err != nil {
		return dto.DriverRegistrationResponse{}, err
	}

	reg.PasswordHash, err = hashPassword(password)
	if err != nil {
		return dto.DriverRegistrationResponse{}, fmt.Errorf("hash password: %w", err)
	}

	userID, driverID, err := as.repo.CreateDriverAccount(ctx, reg)
	if err != nil {
		log.Error("cannot create driver account", err)
		return dto.DriverRegistrationResponse{}, err
	}

	token, err := as.issueToken(userID, driverID, model.RoleDriver)
	if err != nil {
		log.Error("cannot issue jwt token", err)
		return dto.DriverRegistrationResponse{}, err
	}

	log.With("user_id", userID, "driver_id", driverID).Info("driver registered")
	return dto.DriverRegistrationResponse{
		UserID:             userID,
		DriverID:           driverID,
		VerificationStatus: "pending_documents",
		Token:              token,
	}, nil
}

func (as *AuthService) Login(ctx context.Context, email, password string) (dto.LoginResponse, error) {
	log := as.log.Action("login")

	user, err := as.repo.GetUserByEmail(ctx, email)
	if err != nil {
		log.Warn("login with unknown email")
		return dto.LoginResponse{}, err
	}

	if !checkPassword(user.PasswordHash, password) {
		log.Warn("login with wrong password", "user_id", user.ID)
		return dto.LoginResponse{}, myerrors.ErrWrongPassword
	}

	driverID := ""
	if user.Role == model.RoleDriver {
		driverID, err = as.repo.GetDriverID(ctx, user.ID)
		if err != nil {
			log.Error("cannot resolve driver id", err, "user_id", user.ID)
			return dto.LoginResponse{}, err
		}
	}

	token, err := as.issueToken(user.ID, driverID, user.Role)
	if err != nil {
		log.Error("cannot issue jwt token", err)
		return dto.LoginResponse{}, err
	}

	log.With("user_id", user.ID).Info("user logged in")
	return dto.LoginResponse{
		Token:    token,
		Role:     user.Role,
		DriverID: driverID,
	}, nil
}

func (as *AuthService) issueToken(userID, driverID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	}
	if driverID != "" {
		claims["driver_id"] = driverID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecret))
}

func registrationFromRequest(req dto.DriverRegistrationRequest) (model.DriverRegistration, string, error) {
	if req.Name == nil || req.Email == nil || req.Phone == nil || req.Password == nil ||
		req.VehicleType == nil || req.VehicleNumber == nil || req.LicenseNumber == nil {
		return model.DriverRegistration{}, "", fmt.Errorf("%w: missing required fields", myerrors.ErrValidation)
	}
	return model.DriverRegistration{
		Name:          *req.Name,
		Email:         *req.Email,
		Phone:         *req.Phone,
		VehicleType:   *req.VehicleType,
		VehicleNumber: *req.VehicleNumber,
		LicenseNumber: *req.LicenseNumber,
	}, *req.Password, nil
}
