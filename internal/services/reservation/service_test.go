package reservation

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

type fakeStore struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]*models.Reservation
}

func newFakeStore() *fakeStore {
	return &fakeStore{reservations: make(map[int64]*models.Reservation)}
}

func (s *fakeStore) CreateReservation(ctx context.Context, res *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	res.ID = s.nextID
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	stored := *res
	s.reservations[res.ID] = &stored
	return nil
}

func (s *fakeStore) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := []models.Reservation{}
	for _, res := range s.reservations {
		all = append(all, *res)
	}
	return all, nil
}

func (s *fakeStore) UpdateReservationStatus(ctx context.Context, id int64, status models.ReservationStatus) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, models.NotFoundError{Resource: "reservation", ID: strconv.FormatInt(id, 10)}
	}
	res.Status = status
	copied := *res
	return &copied, nil
}

type fakeDispatcher struct {
	confirmations []int64
}

func (d *fakeDispatcher) ReservationCreated(ctx context.Context, res *models.Reservation) {
	d.confirmations = append(d.confirmations, res.ID)
}

func validRequest() *models.CreateReservationRequest {
	return &models.CreateReservationRequest{
		Date:   "2026-09-15",
		Time:   "19:30",
		Guests: 4,
		Name:   "Mario Rossi",
		Phone:  "+39 333 1234567",
		Email:  "mario@example.com",
	}
}

func newTestService() (*Service, *fakeStore, *fakeDispatcher) {
	store := newFakeStore()
	dispatcher := &fakeDispatcher{}
	return NewService(store, dispatcher, logger.New("reservation-test")), store, dispatcher
}

func TestCreateReservation(t *testing.T) {
	svc, _, dispatcher := newTestService()

	res, err := svc.Create(context.Background(), validRequest(), "test")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if res.Status != models.ReservationPending {
		t.Errorf("status = %v, want pending", res.Status)
	}
	if res.Date.Format("2006-01-02") != "2026-09-15" {
		t.Errorf("date = %v", res.Date)
	}
	if len(dispatcher.confirmations) != 1 {
		t.Errorf("expected one confirmation, got %d", len(dispatcher.confirmations))
	}
}

func TestCreateReservationWithoutEmailSkipsNotification(t *testing.T) {
	svc, _, dispatcher := newTestService()

	req := validRequest()
	req.Email = ""

	if _, err := svc.Create(context.Background(), req, "test"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(dispatcher.confirmations) != 0 {
		t.Errorf("expected no confirmation without email, got %d", len(dispatcher.confirmations))
	}
}

func TestCreateReservationValidation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name   string
		mutate func(*models.CreateReservationRequest)
	}{
		{"missing date", func(req *models.CreateReservationRequest) { req.Date = "" }},
		{"bad date format", func(req *models.CreateReservationRequest) { req.Date = "15/09/2026" }},
		{"missing time", func(req *models.CreateReservationRequest) { req.Time = "" }},
		{"zero guests", func(req *models.CreateReservationRequest) { req.Guests = 0 }},
		{"missing name", func(req *models.CreateReservationRequest) { req.Name = "" }},
		{"missing phone", func(req *models.CreateReservationRequest) { req.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), req, "test")
			var validationErr models.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Create() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestUpdateReservationStatus(t *testing.T) {
	svc, _, _ := newTestService()

	res, err := svc.Create(context.Background(), validRequest(), "test")
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateStatus(context.Background(), res.ID, models.ReservationConfirmed, "test")
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.Status != models.ReservationConfirmed {
		t.Errorf("status = %v, want confirmed", updated.Status)
	}
}

func TestUpdateReservationStatusInvalid(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), 1, "no-show", "test")
	var validationErr models.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("UpdateStatus() error = %v, want ValidationError", err)
	}
}

func TestUpdateReservationStatusUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), 404, models.ReservationConfirmed, "test")
	var notFoundErr models.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("UpdateStatus() error = %v, want NotFoundError", err)
	}
}
