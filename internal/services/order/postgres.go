package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"pizza-fresca/internal/database"
	"pizza-fresca/internal/models"
)

// PostgresStore persists orders with pgx.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a new order store.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

// CreateOrder persists the order, its line items and the initial status log
// entry in one transaction. The order number comes from an atomic per-day
// counter upsert inside the same transaction, so concurrent creations
// serialize on the counter row and either everything commits or nothing
// does.
func (s *PostgresStore) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	var sequence int
	if err := tx.QueryRow(ctx, database.NextOrderSequenceSQL, now.Format("2006-01-02")).Scan(&sequence); err != nil {
		return fmt.Errorf("failed to claim order sequence: %w", err)
	}
	order.Number = models.FormatOrderNumber(now, sequence)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.Number, order.CustomerInfo.Name, order.CustomerInfo.Phone,
		order.CustomerInfo.Email, order.CustomerInfo.Address, order.CustomerInfo.City,
		order.CustomerInfo.Notes, order.OrderType, order.DeliveryFee,
		order.TotalPrice, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		err = tx.QueryRow(ctx, database.InsertOrderItemSQL,
			order.ID, item.MenuItemID, item.Name, item.Image, item.Quantity, item.Price,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, database.InsertOrderStatusLogSQL, order.ID, order.Status, "order-service"); err != nil {
		return fmt.Errorf("failed to insert status log: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) OrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := scanOrder(s.db.QueryRow(ctx, database.GetOrderSQL, id), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, err
	}

	if err := s.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *PostgresStore) OrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return s.queryOrders(ctx, database.ListOrdersByEmailSQL, email)
}

func (s *PostgresStore) AllOrders(ctx context.Context) ([]models.Order, error) {
	return s.queryOrders(ctx, database.ListAllOrdersSQL)
}

// UpdateOrderStatus persists the new status and appends to the status log in
// one transaction.
func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus, changedBy string) (*models.Order, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var order models.Order
	err = scanOrder(tx.QueryRow(ctx, database.UpdateOrderStatusSQL, status, id), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if _, err := tx.Exec(ctx, database.InsertOrderStatusLogSQL, id, status, changedBy); err != nil {
		return nil, fmt.Errorf("failed to insert status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if err := s.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *PostgresStore) queryOrders(ctx context.Context, sql string, args ...interface{}) ([]models.Order, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := s.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *PostgresStore) loadItems(ctx context.Context, order *models.Order) error {
	rows, err := s.db.Query(ctx, database.ListOrderItemsSQL, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	order.Items = []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.MenuItemID, &item.Name, &item.Image, &item.Quantity, &item.Price); err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row, order *models.Order) error {
	return row.Scan(
		&order.ID, &order.Number, &order.CustomerInfo.Name, &order.CustomerInfo.Phone,
		&order.CustomerInfo.Email, &order.CustomerInfo.Address, &order.CustomerInfo.City,
		&order.CustomerInfo.Notes, &order.OrderType, &order.DeliveryFee,
		&order.TotalPrice, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
}
