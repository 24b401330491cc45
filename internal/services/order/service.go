package order

import (
	"context"
	"fmt"
	"strconv"

	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

// Catalog resolves menu items for line-item validation and re-pricing.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
}

// Store is the persistence the order service needs. CreateOrder must assign
// the order number atomically with the insert: two concurrent creations on
// the same day must never receive the same number.
type Store interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	OrderByID(ctx context.Context, id int64) (*models.Order, error)
	OrdersByEmail(ctx context.Context, email string) ([]models.Order, error)
	AllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus, changedBy string) (*models.Order, error)
}

// Dispatcher sends best-effort notifications. Implementations must never
// return an error into the order flow.
type Dispatcher interface {
	OrderCreated(ctx context.Context, order *models.Order)
	OrderStatusChanged(ctx context.Context, order *models.Order, oldStatus, newStatus models.OrderStatus)
}

// Service validates carts against the catalog, computes authoritative
// pricing, persists orders and drives them through the status workflow.
type Service struct {
	catalog     Catalog
	store       Store
	dispatcher  Dispatcher
	deliveryFee float64
	logger      *logger.Logger
}

// NewService creates a new order service. deliveryFee is the flat fee
// charged for delivery orders; pickup orders are always free.
func NewService(catalog Catalog, store Store, dispatcher Dispatcher, deliveryFee float64, log *logger.Logger) *Service {
	return &Service{
		catalog:     catalog,
		store:       store,
		dispatcher:  dispatcher,
		deliveryFee: deliveryFee,
		logger:      log,
	}
}

// Create validates the cart, re-prices every line item from the catalog,
// persists the order with a generated number and fires notifications.
// Client-submitted prices are never used for computation; the catalog wins
// silently, with a warning logged on mismatch.
func (s *Service) Create(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var itemsTotal float64
	for _, entry := range req.Items {
		menuItem, err := s.catalog.GetByID(ctx, entry.Pizza)
		if err != nil {
			return nil, err
		}

		if entry.Price != 0 && entry.Price != menuItem.Price {
			s.logger.Warn("price_mismatch",
				fmt.Sprintf("Submitted price for %s differs from catalog", menuItem.Name),
				requestID, map[string]interface{}{
					"pizza":           menuItem.ID,
					"submitted_price": entry.Price,
					"catalog_price":   menuItem.Price,
				})
		}

		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Image:      menuItem.Image,
			Quantity:   entry.Quantity,
			Price:      menuItem.Price,
		})
		itemsTotal += menuItem.Price * float64(entry.Quantity)
	}

	deliveryFee := 0.0
	if req.OrderType == models.Delivery {
		deliveryFee = s.deliveryFee
	}
	totalPrice := itemsTotal + deliveryFee

	if req.TotalPrice != 0 && req.TotalPrice != totalPrice {
		s.logger.Warn("total_mismatch",
			"Submitted total differs from computed total",
			requestID, map[string]interface{}{
				"submitted_total": req.TotalPrice,
				"computed_total":  totalPrice,
			})
	}

	order := &models.Order{
		Items:        items,
		CustomerInfo: req.CustomerInfo,
		OrderType:    req.OrderType,
		DeliveryFee:  deliveryFee,
		TotalPrice:   totalPrice,
		Status:       models.StatusPending,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.logger.Info("order_created",
		fmt.Sprintf("Order %s created", order.Number),
		requestID, map[string]interface{}{
			"order_number": order.Number,
			"order_type":   order.OrderType,
			"total_price":  order.TotalPrice,
			"items":        len(order.Items),
		})

	// Notifications are best-effort and must never fail the order.
	s.dispatcher.OrderCreated(ctx, order)

	return order, nil
}

// ListForCustomer returns the identity's own orders, newest first. Orders
// are matched by the email stored in their customer info.
func (s *Service) ListForCustomer(ctx context.Context, identity *models.User) ([]models.Order, error) {
	if identity == nil {
		return nil, models.ErrUnauthorized
	}
	return s.store.OrdersByEmail(ctx, identity.Email)
}

// ListAll returns every order, newest first. Callers must be admins;
// enforcement happens at the route level.
func (s *Service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.store.AllOrders(ctx)
}

// UpdateStatus transitions an order to a new status and fires a status
// notification. Transitions out of terminal states are rejected.
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus models.OrderStatus, changedBy, requestID string) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, models.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, confirmed, preparing, ready, delivered, cancelled",
		}
	}

	current, err := s.store.OrderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status.Terminal() && current.Status != newStatus {
		return nil, models.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("order %s is %s and cannot change status", current.Number, current.Status),
		}
	}

	oldStatus := current.Status
	updated, err := s.store.UpdateOrderStatus(ctx, id, newStatus, changedBy)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated",
		fmt.Sprintf("Order %s status changed to %s", updated.Number, newStatus),
		requestID, map[string]interface{}{
			"order_number": updated.Number,
			"old_status":   oldStatus,
			"new_status":   newStatus,
			"changed_by":   changedBy,
		})

	if oldStatus != newStatus {
		s.dispatcher.OrderStatusChanged(ctx, updated, oldStatus, newStatus)
	}

	return updated, nil
}

// notFound builds the NotFoundError used when a referenced order id does not
// resolve.
func notFound(id int64) models.NotFoundError {
	return models.NotFoundError{Resource: "order", ID: strconv.FormatInt(id, 10)}
}
