package menu

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"pizza-fresca/internal/database"
	"pizza-fresca/internal/models"
)

// PostgresStore persists menu items with pgx.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a new menu store.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.Query(ctx, database.ListMenuItemsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Price, &item.Image,
			&item.Category, &item.Ingredients, &item.Available,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *PostgresStore) MenuItemByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.QueryRow(ctx, database.GetMenuItemSQL, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.Image,
		&item.Category, &item.Ingredients, &item.Available,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NotFoundError{Resource: "pizza", ID: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}
	return &item, nil
}

func (s *PostgresStore) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return s.db.QueryRow(ctx, database.InsertMenuItemSQL,
		item.Name, item.Description, item.Price, item.Image,
		item.Category, item.Ingredients, item.Available,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (s *PostgresStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	err := s.db.QueryRow(ctx, database.UpdateMenuItemSQL,
		item.Name, item.Description, item.Price, item.Image,
		item.Category, item.Ingredients, item.Available, item.ID,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.NotFoundError{Resource: "pizza", ID: strconv.FormatInt(item.ID, 10)}
	}
	return err
}

func (s *PostgresStore) DeleteMenuItem(ctx context.Context, id int64) error {
	tag, err := s.db.Pool.Exec(ctx, database.DeleteMenuItemSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NotFoundError{Resource: "pizza", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}
