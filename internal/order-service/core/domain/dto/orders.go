package dto

import "dashdrop/internal/order-service/core/domain/model"

type OrderItemDto struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type LocationDto struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

type OrderCreateRequestDto struct {
	RestaurantId *string        `json:"restaurant_id"`
	CustomerId   *string        `json:"customer_id"`
	Items        []OrderItemDto `json:"items"`
	TotalAmount  *float64       `json:"total_amount"`
	DeliveryFee  *float64       `json:"delivery_fee"`
	Pickup       *LocationDto   `json:"pickup"`
	Dropoff      *LocationDto   `json:"dropoff"`
}

type OrderCreateResponseDto struct {
	OrderId string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type OrderAcceptResponseDto struct {
	OrderId  string `json:"order_id"`
	DriverId string `json:"driver_id"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

type OrderStatusUpdateRequestDto struct {
	Status string `json:"status"`
}

type OrderStatusUpdateResponseDto struct {
	OrderId string `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type OrderResponseDto struct {
	OrderId      string         `json:"order_id"`
	RestaurantId string         `json:"restaurant_id"`
	CustomerId   string         `json:"customer_id"`
	DriverId     *string        `json:"driver_id"`
	Items        []OrderItemDto `json:"items"`
	TotalAmount  float64        `json:"total_amount"`
	DeliveryFee  float64        `json:"delivery_fee"`
	Pickup       LocationDto    `json:"pickup"`
	Dropoff      LocationDto    `json:"dropoff"`
	Status       string         `json:"status"`
}

func FromOrderModel(m model.Order) OrderResponseDto {
	resp := OrderResponseDto{
		OrderId:      m.ID,
		RestaurantId: m.RestaurantId,
		CustomerId:   m.CustomerId,
		DriverId:     m.DriverId,
		TotalAmount:  m.TotalAmount,
		DeliveryFee:  m.DeliveryFee,
		Pickup:       LocationDto{Longitude: m.Pickup.Longitude, Latitude: m.Pickup.Latitude},
		Dropoff:      LocationDto{Longitude: m.Dropoff.Longitude, Latitude: m.Dropoff.Latitude},
		Status:       m.Status,
	}
	for _, it := range m.Items {
		resp.Items = append(resp.Items, OrderItemDto{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return resp
}
