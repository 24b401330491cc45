package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/messaging"
	"pizza-fresca/internal/models"
)

// Worker consumes notification events and delivers them. Delivery is rendered
// to the log; plugging in a real mail transport only needs a Sender.
type Worker struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewWorker creates a notification worker bound to the notifications queue.
func NewWorker(conn *messaging.Connection, log *logger.Logger) *Worker {
	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-worker", 10)
	return &Worker{
		consumer: consumer,
		logger:   log,
	}
}

// Run consumes messages until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Close stops the worker's consumer.
func (w *Worker) Close() error {
	return w.consumer.Close()
}

func (w *Worker) handleMessage(ctx context.Context, body []byte) error {
	var msg models.NotificationMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to parse notification message: %w", err)
	}

	subject, text, err := Render(&msg)
	if err != nil {
		return err
	}

	w.logger.Info("notification_sent",
		fmt.Sprintf("%s -> %s: %s", msg.Kind, msg.Recipient, subject),
		"", map[string]interface{}{
			"kind":      string(msg.Kind),
			"recipient": msg.Recipient,
			"body":      text,
		})
	return nil
}

// Render produces the subject and body text for a notification event.
func Render(msg *models.NotificationMessage) (subject, body string, err error) {
	switch msg.Kind {
	case models.NotificationOrderConfirmation:
		return renderOrderConfirmation(msg)
	case models.NotificationOwnerAlert:
		return renderOwnerAlert(msg)
	case models.NotificationStatusUpdate:
		return renderStatusUpdate(msg)
	case models.NotificationReservationConfirmation:
		return renderReservationConfirmation(msg)
	default:
		return "", "", fmt.Errorf("unknown notification kind: %s", msg.Kind)
	}
}

func renderOrderConfirmation(msg *models.NotificationMessage) (string, string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", msg.CustomerName)
	fmt.Fprintf(&b, "Thank you for your order %s!\n\n", msg.OrderNumber)
	writeItemLines(&b, msg.Items)
	fmt.Fprintf(&b, "\nTotal: %.2f\n", msg.TotalPrice)
	if msg.OrderType == models.Delivery {
		b.WriteString("We will deliver it to you as soon as it is ready.\n")
	} else {
		b.WriteString("We will let you know when it is ready for pickup.\n")
	}
	return fmt.Sprintf("Order %s confirmed", msg.OrderNumber), b.String(), nil
}

func renderOwnerAlert(msg *models.NotificationMessage) (string, string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s order %s from %s.\n\n", msg.OrderType, msg.OrderNumber, msg.CustomerName)
	writeItemLines(&b, msg.Items)
	fmt.Fprintf(&b, "\nTotal: %.2f\n", msg.TotalPrice)
	return fmt.Sprintf("New order %s", msg.OrderNumber), b.String(), nil
}

func renderStatusUpdate(msg *models.NotificationMessage) (string, string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", msg.CustomerName)
	fmt.Fprintf(&b, "Update on your order %s: %s\n", msg.OrderNumber, models.StatusMessage(msg.NewStatus))
	return fmt.Sprintf("Order %s is now %s", msg.OrderNumber, msg.NewStatus), b.String(), nil
}

func renderReservationConfirmation(msg *models.NotificationMessage) (string, string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", msg.CustomerName)
	fmt.Fprintf(&b, "We received your reservation for %d guests on %s at %s.\n",
		msg.Guests, msg.ReservationDate, msg.ReservationTime)
	b.WriteString("We will confirm it shortly.\n")
	return "Reservation received", b.String(), nil
}

func writeItemLines(b *strings.Builder, items []models.OrderItem) {
	for _, item := range items {
		fmt.Fprintf(b, "  %dx %s - %.2f\n", item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
}
