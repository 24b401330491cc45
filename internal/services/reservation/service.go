package reservation

import (
	"context"
	"fmt"
	"time"

	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

// Store is the persistence the reservation service needs.
type Store interface {
	CreateReservation(ctx context.Context, res *models.Reservation) error
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status models.ReservationStatus) (*models.Reservation, error)
}

// Dispatcher sends best-effort reservation notifications.
type Dispatcher interface {
	ReservationCreated(ctx context.Context, res *models.Reservation)
}

// Service manages table reservations.
type Service struct {
	store      Store
	dispatcher Dispatcher
	logger     *logger.Logger
}

// NewService creates a new reservation service.
func NewService(store Store, dispatcher Dispatcher, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		logger:     log,
	}
}

// Create validates and persists a reservation, then fires a confirmation
// notification when an email was supplied.
func (s *Service) Create(ctx context.Context, req *models.CreateReservationRequest, requestID string) (*models.Reservation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	res := &models.Reservation{
		Date:   date,
		Time:   req.Time,
		Guests: req.Guests,
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Notes:  req.Notes,
		Status: models.ReservationPending,
	}
	if err := s.store.CreateReservation(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to persist reservation: %w", err)
	}

	s.logger.Info("reservation_created",
		fmt.Sprintf("Reservation for %s on %s %s created", res.Name, req.Date, res.Time),
		requestID, map[string]interface{}{
			"reservation_id": res.ID,
			"guests":         res.Guests,
		})

	if res.Email != "" {
		s.dispatcher.ReservationCreated(ctx, res)
	}

	return res, nil
}

// List returns all reservations ordered by date and time. Admin only;
// enforcement happens at the route level.
func (s *Service) List(ctx context.Context) ([]models.Reservation, error) {
	return s.store.ListReservations(ctx)
}

// UpdateStatus transitions a reservation to a new status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status models.ReservationStatus, requestID string) (*models.Reservation, error) {
	if !status.Valid() {
		return nil, models.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, confirmed, completed, cancelled",
		}
	}

	res, err := s.store.UpdateReservationStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation_status_updated",
		fmt.Sprintf("Reservation %d status changed to %s", res.ID, status),
		requestID, map[string]interface{}{
			"reservation_id": res.ID,
			"new_status":     status,
		})

	return res, nil
}
