package handle

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dashdrop/internal/auth-service/core/domain/dto"
	"dashdrop/internal/auth-service/core/myerrors"
	"dashdrop/internal/auth-service/core/ports/driver"
	"dashdrop/internal/mylogger"

	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	loginErr error
}

var _ driver.IAuthService = (*fakeAuthService)(nil)

func (f *fakeAuthService) RegisterDriver(_ context.Context, req dto.DriverRegistrationRequest) (dto.DriverRegistrationResponse, error) {
	if req.Email == nil {
		return dto.DriverRegistrationResponse{}, myerrors.ErrValidation
	}
	return dto.DriverRegistrationResponse{
		UserID:             "user-1",
		DriverID:           "drv-1",
		VerificationStatus: "pending_documents",
		Token:              "token-1",
	}, nil
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (dto.LoginResponse, error) {
	if f.loginErr != nil {
		return dto.LoginResponse{}, f.loginErr
	}
	return dto.LoginResponse{Token: "token-1", Role: "DRIVER", DriverID: "drv-1"}, nil
}

type fakeOtpService struct {
	confirmErr error
}

var _ driver.IOtpService = (*fakeOtpService)(nil)

func (f *fakeOtpService) Issue(_ context.Context, _ string) error {
	return nil
}

func (f *fakeOtpService) Confirm(_ context.Context, _, _ string) error {
	return f.confirmErr
}

func newAuthMux(t *testing.T, auth driver.IAuthService, otp driver.IOtpService) *http.ServeMux {
	t.Helper()

	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	handler := NewAuthHandler(auth, otp, log)

	mux := http.NewServeMux()
	mux.Handle("POST /drivers", handler.RegisterDriver())
	mux.Handle("POST /auth/login", handler.Login())
	mux.Handle("POST /auth/otp/request", handler.IssueOtp())
	mux.Handle("POST /auth/otp/verify", handler.ConfirmOtp())
	return mux
}

func TestRegisterDriverHandler(t *testing.T) {
	mux := newAuthMux(t, &fakeAuthService{}, &fakeOtpService{})

	body := bytes.NewBufferString(`{"name":"Ravi","email":"ravi@example.com","phone":"+919876543210","password":"secret1","vehicle_type":"bike","vehicle_number":"MH01AB1234","license_number":"MH0120220001234"}`)
	req := httptest.NewRequest(http.MethodPost, "/drivers", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "drv-1")
	require.Contains(t, rec.Body.String(), "pending_documents")
}

func TestRegisterDriverHandlerBadJson(t *testing.T) {
	mux := newAuthMux(t, &fakeAuthService{}, &fakeOtpService{})

	req := httptest.NewRequest(http.MethodPost, "/drivers", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	mux := newAuthMux(t, &fakeAuthService{loginErr: myerrors.ErrWrongPassword}, &fakeOtpService{})

	body := bytes.NewBufferString(`{"email":"ravi@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginHandlerMissingFields(t *testing.T) {
	mux := newAuthMux(t, &fakeAuthService{}, &fakeOtpService{})

	body := bytes.NewBufferString(`{"email":"ravi@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfirmOtpHandlerTooManyAttempts(t *testing.T) {
	mux := newAuthMux(t, &fakeAuthService{}, &fakeOtpService{confirmErr: myerrors.ErrOtpTooManyAttempts})

	body := bytes.NewBufferString(`{"phone":"+919876543210","code":"123456"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/otp/verify", body)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}
