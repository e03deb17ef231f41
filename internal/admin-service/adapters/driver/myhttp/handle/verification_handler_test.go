package handle

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dashdrop/internal/admin-service/adapters/driver/myhttp/middleware"
	"dashdrop/internal/admin-service/core/domain/model"
	"dashdrop/internal/admin-service/core/myerrors"
	"dashdrop/internal/admin-service/core/ports/driver"
	"dashdrop/internal/mylogger"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type fakeVerificationService struct {
	decideErr    error
	lastDecision model.Decision
}

var _ driver.IVerificationService = (*fakeVerificationService)(nil)

func (f *fakeVerificationService) Decide(_ context.Context, driverID string, decision model.Decision) (model.DriverVerification, error) {
	f.lastDecision = decision
	if f.decideErr != nil {
		return model.DriverVerification{}, f.decideErr
	}
	return model.DriverVerification{DriverID: driverID, VerificationStatus: decision.Status}, nil
}

func (f *fakeVerificationService) Reconsider(_ context.Context, driverID string) (model.DriverVerification, error) {
	return model.DriverVerification{DriverID: driverID, VerificationStatus: model.VerificationPendingVerification}, nil
}

func (f *fakeVerificationService) ListPending(_ context.Context) ([]model.DriverVerification, error) {
	return []model.DriverVerification{{DriverID: "drv-1"}}, nil
}

func (f *fakeVerificationService) GetDriver(_ context.Context, driverID string) (model.DriverVerification, error) {
	return model.DriverVerification{DriverID: driverID}, nil
}

func (f *fakeVerificationService) DeleteDriver(_ context.Context, _ string) error {
	return nil
}

func newAdminMux(t *testing.T, svc driver.IVerificationService) *http.ServeMux {
	t.Helper()

	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	handler := NewVerificationHandler(svc, log)
	am := middleware.NewAuthMiddleware(testSecret)

	mux := http.NewServeMux()
	mux.Handle("GET /admin/drivers/pending", am.WrapAdmin(handler.ListPending()))
	mux.Handle("PUT /admin/drivers/{driver_id}/verification", am.WrapAdmin(handler.Decide()))
	mux.Handle("POST /admin/drivers/{driver_id}/verification/reconsider", am.WrapAdmin(handler.Reconsider()))
	return mux
}

func roleToken(t *testing.T, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "admin-1",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestDecideHandler(t *testing.T) {
	svc := &fakeVerificationService{}
	mux := newAdminMux(t, svc)

	body := bytes.NewBufferString(`{"status":"verified"}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/drivers/drv-1/verification", body)
	req.Header.Set("Authorization", "Bearer "+roleToken(t, "ADMIN"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, model.VerificationVerified, svc.lastDecision.Status)
	require.Equal(t, "admin-1", svc.lastDecision.AdminID)
}

func TestDecideHandlerRejectsDriverRole(t *testing.T) {
	mux := newAdminMux(t, &fakeVerificationService{})

	body := bytes.NewBufferString(`{"status":"verified"}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/drivers/drv-1/verification", body)
	req.Header.Set("Authorization", "Bearer "+roleToken(t, "DRIVER"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDecideHandlerMissingStatus(t *testing.T) {
	mux := newAdminMux(t, &fakeVerificationService{})

	body := bytes.NewBufferString(`{"verification_notes":"blurry photo"}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/drivers/drv-1/verification", body)
	req.Header.Set("Authorization", "Bearer "+roleToken(t, "ADMIN"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDecideHandlerNotesRequired(t *testing.T) {
	mux := newAdminMux(t, &fakeVerificationService{decideErr: myerrors.ErrNotesRequired})

	body := bytes.NewBufferString(`{"status":"rejected"}`)
	req := httptest.NewRequest(http.MethodPut, "/admin/drivers/drv-1/verification", body)
	req.Header.Set("Authorization", "Bearer "+roleToken(t, "ADMIN"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListPendingHandler(t *testing.T) {
	mux := newAdminMux(t, &fakeVerificationService{})

	req := httptest.NewRequest(http.MethodGet, "/admin/drivers/pending", nil)
	req.Header.Set("Authorization", "Bearer "+roleToken(t, "ADMIN"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "drv-1")
}
