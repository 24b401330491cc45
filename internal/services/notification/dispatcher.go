package notification

import (
	"context"
	"fmt"
	"time"

	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

// Publisher is the broker surface the dispatcher needs.
type Publisher interface {
	PublishNotification(ctx context.Context, message interface{}) error
}

// Dispatcher publishes notification events after orders and reservations are
// persisted. Every publish is best effort: failures are logged and swallowed
// so the broker being down never fails the customer's request.
type Dispatcher struct {
	publisher  Publisher
	ownerEmail string
	logger     *logger.Logger
}

// NewDispatcher creates a new notification dispatcher.
func NewDispatcher(publisher Publisher, ownerEmail string, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		publisher:  publisher,
		ownerEmail: ownerEmail,
		logger:     log,
	}
}

// OrderCreated publishes the customer confirmation (when the order carries an
// email) and the owner alert for a freshly committed order.
func (d *Dispatcher) OrderCreated(ctx context.Context, order *models.Order) {
	if order.CustomerInfo.Email != "" {
		d.publish(ctx, models.NewOrderConfirmation(order), order.Number)
	}
	if d.ownerEmail != "" {
		d.publish(ctx, models.NewOwnerAlert(order, d.ownerEmail), order.Number)
	}
}

// OrderStatusChanged publishes a status update for the customer. Orders
// placed without an email get no notification.
func (d *Dispatcher) OrderStatusChanged(ctx context.Context, order *models.Order, oldStatus, newStatus models.OrderStatus) {
	if order.CustomerInfo.Email == "" {
		return
	}
	d.publish(ctx, models.NewStatusUpdate(order, oldStatus, newStatus), order.Number)
}

// ReservationCreated publishes the reservation confirmation.
func (d *Dispatcher) ReservationCreated(ctx context.Context, res *models.Reservation) {
	if res.Email == "" {
		return
	}
	d.publish(ctx, models.NewReservationConfirmation(res), fmt.Sprintf("reservation-%d", res.ID))
}

func (d *Dispatcher) publish(ctx context.Context, msg *models.NotificationMessage, ref string) {
	// Detach from the request context so an already-finished request does
	// not cancel the publish mid-flight.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := d.publisher.PublishNotification(publishCtx, msg); err != nil {
		d.logger.Error("notification_dispatch_failed",
			fmt.Sprintf("Failed to dispatch %s notification for %s", msg.Kind, ref),
			"", err, map[string]interface{}{
				"kind":      string(msg.Kind),
				"reference": ref,
			})
		return
	}

	d.logger.Debug("notification_dispatched",
		fmt.Sprintf("Dispatched %s notification for %s", msg.Kind, ref),
		"", map[string]interface{}{
			"kind":      string(msg.Kind),
			"reference": ref,
		})
}
