package handle

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dashdrop/internal/driver-service/adapters/driver/myhttp/middleware"
	"dashdrop/internal/driver-service/core/domain/dto"
	"dashdrop/internal/driver-service/core/myerrors"
	"dashdrop/internal/driver-service/core/ports/driver"
	"dashdrop/internal/mylogger"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type fakeDriverService struct {
	availabilityErr error
	lastAvailable   bool
}

var _ driver.IDriverService = (*fakeDriverService)(nil)

func (f *fakeDriverService) GetDriver(_ context.Context, driverID string) (dto.DriverResponseDto, error) {
	if driverID != "drv-1" {
		return dto.DriverResponseDto{}, myerrors.ErrDriverNotFound
	}
	return dto.DriverResponseDto{DriverId: driverID, Name: "Ravi"}, nil
}

func (f *fakeDriverService) UpdateProfile(_ context.Context, driverID string, _ dto.ProfileUpdateRequestDto) (dto.DriverResponseDto, error) {
	return dto.DriverResponseDto{DriverId: driverID}, nil
}

func (f *fakeDriverService) UpdateLocation(_ context.Context, _ string, _, _ float64) error {
	return nil
}

func (f *fakeDriverService) SetAvailability(_ context.Context, driverID string, isAvailable bool) (dto.AvailabilityResponseDto, error) {
	if f.availabilityErr != nil {
		return dto.AvailabilityResponseDto{}, f.availabilityErr
	}
	f.lastAvailable = isAvailable
	return dto.AvailabilityResponseDto{DriverId: driverID, IsAvailable: isAvailable}, nil
}

func (f *fakeDriverService) ResolveDriverID(_ context.Context, _ string) (string, error) {
	return "drv-1", nil
}

func (f *fakeDriverService) ForceOffline(_ context.Context, _ string) error {
	return nil
}

type fakeVerificationUploads struct{}

var _ driver.IVerificationService = (*fakeVerificationUploads)(nil)

func (f *fakeVerificationUploads) SubmitDocuments(_ context.Context, driverID string, _ []dto.DocumentUpload) (dto.DocumentsResponseDto, error) {
	return dto.DocumentsResponseDto{DriverId: driverID}, nil
}

func newDriverMux(t *testing.T, ds driver.IDriverService) *http.ServeMux {
	t.Helper()

	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	handler := NewDriverHandler(ds, &fakeVerificationUploads{}, log)
	am := middleware.NewAuthMiddleware(testSecret)

	mux := http.NewServeMux()
	mux.Handle("GET /drivers/{driver_id}", am.Wrap(handler.GetDriver()))
	mux.Handle("PUT /drivers/{driver_id}", am.Wrap(handler.UpdateProfile()))
	mux.Handle("PUT /drivers/{driver_id}/availability", am.Wrap(handler.UpdateAvailability()))
	mux.Handle("PUT /drivers/{driver_id}/location", am.Wrap(handler.UpdateLocation()))
	return mux
}

func driverToken(t *testing.T, driverID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   "user-1",
		"driver_id": driverID,
		"role":      "DRIVER",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestGetDriverHandler(t *testing.T) {
	mux := newDriverMux(t, &fakeDriverService{})

	req := httptest.NewRequest(http.MethodGet, "/drivers/drv-1", nil)
	req.Header.Set("Authorization", "Bearer "+driverToken(t, "drv-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Ravi")
}

func TestGetDriverHandlerNotFound(t *testing.T) {
	mux := newDriverMux(t, &fakeDriverService{})

	req := httptest.NewRequest(http.MethodGet, "/drivers/missing", nil)
	req.Header.Set("Authorization", "Bearer "+driverToken(t, "missing"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateAvailabilityHandler(t *testing.T) {
	svc := &fakeDriverService{}
	mux := newDriverMux(t, svc)

	body := bytes.NewBufferString(`{"is_available":true}`)
	req := httptest.NewRequest(http.MethodPut, "/drivers/drv-1/availability", body)
	req.Header.Set("Authorization", "Bearer "+driverToken(t, "drv-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, svc.lastAvailable)
}

func TestUpdateAvailabilityHandlerForeignDriver(t *testing.T) {
	mux := newDriverMux(t, &fakeDriverService{})

	body := bytes.NewBufferString(`{"is_available":true}`)
	req := httptest.NewRequest(http.MethodPut, "/drivers/drv-1/availability", body)
	req.Header.Set("Authorization", "Bearer "+driverToken(t, "drv-2"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateAvailabilityHandlerUnverified(t *testing.T) {
	mux := newDriverMux(t, &fakeDriverService{availabilityErr: myerrors.ErrNotVerified})

	body := bytes.NewBufferString(`{"is_available":true}`)
	req := httptest.NewRequest(http.MethodPut, "/drivers/drv-1/availability", body)
	req.Header.Set("Authorization", "Bearer "+driverToken(t, "drv-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateLocationHandlerMissingCoordinates(t *testing.T) {
	mux := newDriverMux(t, &fakeDriverService{})

	body := bytes.NewBufferString(`{"longitude":72.87}`)
	req := httptest.NewRequest(http.MethodPut, "/drivers/drv-1/location", body)
	req.Header.Set("Authorization", "Bearer "+driverToken(t, "drv-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
