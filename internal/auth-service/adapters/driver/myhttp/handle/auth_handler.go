package handle

import (
	"encoding/json"
	"fmt"
	"net/http"

	"dashdrop/internal/auth-service/core/domain/dto"
	"dashdrop/internal/auth-service/core/myerrors"
	"dashdrop/internal/auth-service/core/ports/driver"
	"dashdrop/internal/mylogger"
)

type AuthHandler struct {
	auth driver.IAuthService
	otp  driver.IOtpService
	log  mylogger.Logger
}

func NewAuthHandler(auth driver.IAuthService, otp driver.IOtpService, log mylogger.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		otp:  otp,
		log:  log,
	}
}

func (ah *AuthHandler) RegisterDriver() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := ah.log.Action("registerDriverHandler")

		var req dto.DriverRegistrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("invalid json body"))
			return
		}

		resp, err := ah.auth.RegisterDriver(r.Context(), req)
		if err != nil {
			log.Error("cannot register driver", err)
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, resp)
	}
}

func (ah *AuthHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := ah.log.Action("loginHandler")

		var req dto.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("invalid json body"))
			return
		}
		if req.Email == nil || req.Password == nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("%w: email and password are required", myerrors.ErrValidation))
			return
		}

		resp, err := ah.auth.Login(r.Context(), *req.Email, *req.Password)
		if err != nil {
			log.Warn("login failed", "error", err.Error())
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, resp)
	}
}

func (ah *AuthHandler) IssueOtp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := ah.log.Action("issueOtpHandler")

		var req dto.OtpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("invalid json body"))
			return
		}
		if req.Phone == nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("%w: phone is required", myerrors.ErrValidation))
			return
		}

		if err := ah.otp.Issue(r.Context(), *req.Phone); err != nil {
			log.Error("cannot issue otp", err)
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.OtpResponse{Message: "otp sent"})
	}
}

func (ah *AuthHandler) ConfirmOtp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := ah.log.Action("confirmOtpHandler")

		var req dto.OtpConfirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("invalid json body"))
			return
		}
		if req.Phone == nil || req.Code == nil {
			jsonError(w, http.StatusBadRequest, fmt.Errorf("%w: phone and code are required", myerrors.ErrValidation))
			return
		}

		if err := ah.otp.Confirm(r.Context(), *req.Phone, *req.Code); err != nil {
			log.Warn("otp confirmation failed", "error", err.Error())
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, dto.OtpResponse{Message: "phone verified"})
	}
}
