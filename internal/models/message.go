package models

import "time"

// NotificationKind identifies which message the notification worker should
// render and deliver.
type NotificationKind string

const (
	NotificationOrderConfirmation       NotificationKind = "order_confirmation"
	NotificationOwnerAlert              NotificationKind = "owner_alert"
	NotificationStatusUpdate            NotificationKind = "status_update"
	NotificationReservationConfirmation NotificationKind = "reservation_confirmation"
)

// NotificationMessage is the event published to the notifications exchange.
// Only the fields relevant to the kind are populated.
type NotificationMessage struct {
	Kind         NotificationKind `json:"kind"`
	Recipient    string           `json:"recipient,omitempty"`
	CustomerName string           `json:"customer_name,omitempty"`

	OrderNumber string      `json:"order_number,omitempty"`
	OrderType   OrderType   `json:"order_type,omitempty"`
	TotalPrice  float64     `json:"total_price,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
	OldStatus   OrderStatus `json:"old_status,omitempty"`
	NewStatus   OrderStatus `json:"new_status,omitempty"`

	ReservationDate string `json:"reservation_date,omitempty"`
	ReservationTime string `json:"reservation_time,omitempty"`
	Guests          int    `json:"guests,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// NewOrderConfirmation builds the customer confirmation event for a freshly
// persisted order. Callers must only use it when the order carries an email.
func NewOrderConfirmation(o *Order) *NotificationMessage {
	return &NotificationMessage{
		Kind:         NotificationOrderConfirmation,
		Recipient:    o.CustomerInfo.Email,
		CustomerName: o.CustomerInfo.Name,
		OrderNumber:  o.Number,
		OrderType:    o.OrderType,
		TotalPrice:   o.TotalPrice,
		Items:        o.Items,
		Timestamp:    time.Now().UTC(),
	}
}

// NewOwnerAlert builds the staff notification for a new order.
func NewOwnerAlert(o *Order, ownerEmail string) *NotificationMessage {
	return &NotificationMessage{
		Kind:         NotificationOwnerAlert,
		Recipient:    ownerEmail,
		CustomerName: o.CustomerInfo.Name,
		OrderNumber:  o.Number,
		OrderType:    o.OrderType,
		TotalPrice:   o.TotalPrice,
		Items:        o.Items,
		Timestamp:    time.Now().UTC(),
	}
}

// NewStatusUpdate builds the customer notification for a status transition.
func NewStatusUpdate(o *Order, oldStatus, newStatus OrderStatus) *NotificationMessage {
	return &NotificationMessage{
		Kind:         NotificationStatusUpdate,
		Recipient:    o.CustomerInfo.Email,
		CustomerName: o.CustomerInfo.Name,
		OrderNumber:  o.Number,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		Timestamp:    time.Now().UTC(),
	}
}

// NewReservationConfirmation builds the reservation confirmation event.
func NewReservationConfirmation(r *Reservation) *NotificationMessage {
	return &NotificationMessage{
		Kind:            NotificationReservationConfirmation,
		Recipient:       r.Email,
		CustomerName:    r.Name,
		ReservationDate: r.Date.Format("2006-01-02"),
		ReservationTime: r.Time,
		Guests:          r.Guests,
		Timestamp:       time.Now().UTC(),
	}
}

// StatusMessage returns the customer-facing text for an order status.
func StatusMessage(status OrderStatus) string {
	switch status {
	case StatusConfirmed:
		return "Your order has been confirmed and we will start preparing it shortly."
	case StatusPreparing:
		return "Your pizza is being prepared in our stone oven right now!"
	case StatusReady:
		return "Your order is ready for pickup or delivery."
	case StatusDelivered:
		return "Your order has been delivered. Thank you!"
	case StatusCancelled:
		return "Unfortunately we had to cancel your order. Our apologies."
	default:
		return "Your order status has changed to " + string(status) + "."
	}
}
