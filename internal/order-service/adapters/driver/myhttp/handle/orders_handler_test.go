package handle

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dashdrop/internal/mylogger"
	"dashdrop/internal/order-service/adapters/driver/myhttp/middleware"
	"dashdrop/internal/order-service/core/domain/dto"
	"dashdrop/internal/order-service/core/myerrors"
	"dashdrop/internal/order-service/core/ports"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type fakeOrdersService struct {
	acceptErr  error
	lastOrder  string
	lastDriver string
}

var _ ports.IOrdersService = (*fakeOrdersService)(nil)

func (f *fakeOrdersService) CreateOrder(_ context.Context, _ dto.OrderCreateRequestDto) (dto.OrderCreateResponseDto, error) {
	return dto.OrderCreateResponseDto{OrderId: "ord-1", Status: "pending"}, nil
}

func (f *fakeOrdersService) GetOrder(_ context.Context, orderID string) (dto.OrderResponseDto, error) {
	if orderID != "ord-1" {
		return dto.OrderResponseDto{}, myerrors.ErrOrderNotFound
	}
	return dto.OrderResponseDto{OrderId: orderID, Status: "pending"}, nil
}

func (f *fakeOrdersService) AcceptOrder(_ context.Context, orderID, driverID string) (dto.OrderAcceptResponseDto, error) {
	f.lastOrder = orderID
	f.lastDriver = driverID
	if f.acceptErr != nil {
		return dto.OrderAcceptResponseDto{}, f.acceptErr
	}
	return dto.OrderAcceptResponseDto{OrderId: orderID, DriverId: driverID, Status: "accepted"}, nil
}

func (f *fakeOrdersService) AdvanceStatus(_ context.Context, orderID, driverID, newStatus string) (dto.OrderStatusUpdateResponseDto, error) {
	return dto.OrderStatusUpdateResponseDto{OrderId: orderID, Status: newStatus}, nil
}

func newOrdersMux(t *testing.T, svc ports.IOrdersService) *http.ServeMux {
	t.Helper()

	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)

	handler := NewOrdersHandler(svc, log)
	am := middleware.NewAuthMiddleware(testSecret)

	mux := http.NewServeMux()
	mux.Handle("POST /orders", am.Wrap(handler.CreateOrder()))
	mux.Handle("GET /orders/{order_id}", am.Wrap(handler.GetOrder()))
	mux.Handle("POST /orders/{order_id}/accept", am.Wrap(handler.AcceptOrder()))
	mux.Handle("PATCH /orders/{order_id}/status", am.Wrap(handler.UpdateStatus()))
	return mux
}

func signedToken(t *testing.T, role, driverID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":   "user-1",
		"driver_id": driverID,
		"role":      role,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAcceptOrderHandler(t *testing.T) {
	svc := &fakeOrdersService{}
	mux := newOrdersMux(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/orders/ord-1/accept", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "DRIVER", "drv-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ord-1", svc.lastOrder)
	require.Equal(t, "drv-1", svc.lastDriver)
}

func TestAcceptOrderHandlerConflict(t *testing.T) {
	svc := &fakeOrdersService{acceptErr: myerrors.ErrOrderTaken}
	mux := newOrdersMux(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/orders/ord-1/accept", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "DRIVER", "drv-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestAcceptOrderHandlerRequiresDriverRole(t *testing.T) {
	mux := newOrdersMux(t, &fakeOrdersService{})

	req := httptest.NewRequest(http.MethodPost, "/orders/ord-1/accept", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "CUSTOMER", ""))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrdersHandlerRejectsMissingToken(t *testing.T) {
	mux := newOrdersMux(t, &fakeOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/orders/ord-1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	mux := newOrdersMux(t, &fakeOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/orders/missing", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "DRIVER", "drv-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusHandler(t *testing.T) {
	mux := newOrdersMux(t, &fakeOrdersService{})

	body := bytes.NewBufferString(`{"status":"pickedUp"}`)
	req := httptest.NewRequest(http.MethodPatch, "/orders/ord-1/status", body)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "DRIVER", "drv-1"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "pickedUp")
}
