package reservation

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"pizza-fresca/internal/database"
	"pizza-fresca/internal/models"
)

// PostgresStore persists reservations with pgx.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a new reservation store.
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) CreateReservation(ctx context.Context, res *models.Reservation) error {
	return s.db.QueryRow(ctx, database.InsertReservationSQL,
		res.Date, res.Time, res.Guests, res.Name, res.Phone, res.Email, res.Notes, res.Status,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
}

func (s *PostgresStore) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	rows, err := s.db.Query(ctx, database.ListReservationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []models.Reservation{}
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(
			&res.ID, &res.Date, &res.Time, &res.Guests, &res.Name, &res.Phone,
			&res.Email, &res.Notes, &res.Status, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (s *PostgresStore) UpdateReservationStatus(ctx context.Context, id int64, status models.ReservationStatus) (*models.Reservation, error) {
	var res models.Reservation
	err := s.db.QueryRow(ctx, database.UpdateReservationStatusSQL, status, id).Scan(
		&res.ID, &res.Date, &res.Time, &res.Guests, &res.Name, &res.Phone,
		&res.Email, &res.Notes, &res.Status, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NotFoundError{Resource: "reservation", ID: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}
	return &res, nil
}
