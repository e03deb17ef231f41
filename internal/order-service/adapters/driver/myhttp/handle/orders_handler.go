package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"dashdrop/internal/mylogger"
	"dashdrop/internal/order-service/adapters/driver/myhttp/middleware"
	"dashdrop/internal/order-service/core/domain/dto"
	"dashdrop/internal/order-service/core/ports"
)

type OrdersHandler struct {
	ordersService ports.IOrdersService
	log           mylogger.Logger
}

func NewOrdersHandler(os ports.IOrdersService, log mylogger.Logger) *OrdersHandler {
	return &OrdersHandler{
		ordersService: os,
		log:           log,
	}
}

func (oh *OrdersHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := dto.OrderCreateRequestDto{}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := oh.ordersService.CreateOrder(r.Context(), req)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusCreated, res)
	}
}

func (oh *OrdersHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("order_id")

		res, err := oh.ordersService.GetOrder(r.Context(), orderID)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (oh *OrdersHandler) AcceptOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("order_id")

		actor, ok := middleware.ActorFrom(r.Context())
		if !ok || actor.Role != "DRIVER" || actor.DriverID == "" {
			jsonError(w, http.StatusForbidden, errors.New("driver role required"))
			return
		}

		res, err := oh.ordersService.AcceptOrder(r.Context(), orderID, actor.DriverID)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}

func (oh *OrdersHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := r.PathValue("order_id")

		actor, ok := middleware.ActorFrom(r.Context())
		if !ok || actor.Role != "DRIVER" || actor.DriverID == "" {
			jsonError(w, http.StatusForbidden, errors.New("driver role required"))
			return
		}

		req := dto.OrderStatusUpdateRequestDto{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, http.StatusBadRequest, err)
			return
		}

		res, err := oh.ordersService.AdvanceStatus(r.Context(), orderID, actor.DriverID, req.Status)
		if err != nil {
			serviceError(w, err)
			return
		}

		jsonResponse(w, http.StatusOK, res)
	}
}
