package models

import (
	"fmt"
	"time"
)

// OrderType represents how an order is fulfilled.
type OrderType string

const (
	Delivery OrderType = "delivery"
	Pickup   OrderType = "pickup"
)

// Valid reports whether the order type is one of the defined values.
func (t OrderType) Valid() bool {
	return t == Delivery || t == Pickup
}

// OrderStatus represents the status of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the defined values.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CustomerInfo is the contact block attached to an order. Name and phone are
// required; the rest is optional.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// OrderItem is a persisted line item. Name and Price are snapshots of the
// menu item at order time, so later catalog edits or deletions never change
// what was sold.
type OrderItem struct {
	ID         int64   `json:"id,omitempty"`
	MenuItemID int64   `json:"pizza"`
	Name       string  `json:"name"`
	Image      string  `json:"image,omitempty"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Order is a persisted customer order.
type Order struct {
	ID           int64        `json:"id"`
	Number       string       `json:"orderNumber"`
	Items        []OrderItem  `json:"items"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
	OrderType    OrderType    `json:"orderType"`
	DeliveryFee  float64      `json:"deliveryFee"`
	TotalPrice   float64      `json:"totalPrice"`
	Status       OrderStatus  `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// OrderItemRequest is a single cart entry as submitted by the client. Price
// is the client's idea of the unit price; it is never used for computation.
type OrderItemRequest struct {
	Pizza    int64   `json:"pizza"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CreateOrderRequest is the cart submission payload. TotalPrice and
// DeliveryFee are client-submitted and only compared against the computed
// values; the catalog wins.
type CreateOrderRequest struct {
	Items        []OrderItemRequest `json:"items"`
	CustomerInfo CustomerInfo       `json:"customerInfo"`
	OrderType    OrderType          `json:"orderType"`
	TotalPrice   float64            `json:"totalPrice"`
	DeliveryFee  float64            `json:"deliveryFee"`
}

// Validate checks the cart submission before any catalog lookup.
func (req *CreateOrderRequest) Validate() error {
	if len(req.Items) == 0 {
		return ValidationError{Field: "items", Message: "items cannot be empty"}
	}
	if len(req.Items) > 20 {
		return ValidationError{Field: "items", Message: "a maximum of 20 items is allowed"}
	}
	for i, item := range req.Items {
		if item.Pizza <= 0 {
			return ValidationError{Field: fmt.Sprintf("items[%d].pizza", i), Message: "pizza id is required"}
		}
		if item.Quantity < 1 {
			return ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be at least 1"}
		}
	}
	if req.CustomerInfo.Name == "" {
		return ValidationError{Field: "customerInfo.name", Message: "name is required"}
	}
	if req.CustomerInfo.Phone == "" {
		return ValidationError{Field: "customerInfo.phone", Message: "phone is required"}
	}
	if !req.OrderType.Valid() {
		return ValidationError{Field: "orderType", Message: "order type must be one of: delivery, pickup"}
	}
	return nil
}

// UpdateStatusRequest is the admin payload for a status transition.
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// CreateOrderResponse is returned after a successful order submission.
type CreateOrderResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}

// FormatOrderNumber renders the customer-facing order number for the given
// UTC day and daily sequence, e.g. PF20250412003.
func FormatOrderNumber(day time.Time, sequence int) string {
	return fmt.Sprintf("PF%s%03d", day.UTC().Format("20060102"), sequence)
}
