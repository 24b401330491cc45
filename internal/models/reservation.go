package models

import "time"

// ReservationStatus represents the status of a table reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Valid reports whether the status is one of the defined values.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// Reservation is a persisted table reservation.
type Reservation struct {
	ID        int64             `json:"id"`
	Date      time.Time         `json:"date"`
	Time      string            `json:"time"`
	Guests    int               `json:"guests"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	Email     string            `json:"email,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	Status    ReservationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CreateReservationRequest is the public reservation payload.
type CreateReservationRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Notes  string `json:"notes"`
}

// Validate checks the reservation payload.
func (req *CreateReservationRequest) Validate() error {
	if req.Date == "" {
		return ValidationError{Field: "date", Message: "date is required"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"}
	}
	if req.Time == "" {
		return ValidationError{Field: "time", Message: "time is required"}
	}
	if req.Guests < 1 {
		return ValidationError{Field: "guests", Message: "guests must be at least 1"}
	}
	if req.Name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if req.Phone == "" {
		return ValidationError{Field: "phone", Message: "phone is required"}
	}
	return nil
}

// CreateReservationResponse is returned after a successful reservation.
type CreateReservationResponse struct {
	Message     string       `json:"message"`
	Reservation *Reservation `json:"reservation"`
}

// UpdateReservationStatusRequest is the admin payload for a status change.
type UpdateReservationStatusRequest struct {
	Status ReservationStatus `json:"status"`
}
