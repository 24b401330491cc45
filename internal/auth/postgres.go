package auth

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"pizza-fresca/internal/database"
	"pizza-fresca/internal/models"
)

// PostgresStore persists users with pgx.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a new user store.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ UserStore = (*PostgresStore)(nil)

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.QueryRow(ctx, database.InsertUserSQL,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Phone,
	).Scan(&user.ID, &user.CreatedAt)
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(ctx, database.GetUserByEmailSQL, email, "user", email)
}

func (s *PostgresStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(ctx, database.GetUserByIDSQL, id, "user", strconv.FormatInt(id, 10))
}

func (s *PostgresStore) scanUser(ctx context.Context, sql string, arg interface{}, resource, id string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow(ctx, sql, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Phone, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NotFoundError{Resource: resource, ID: id}
		}
		return nil, err
	}
	return &user, nil
}
