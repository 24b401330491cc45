package reservation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"pizza-fresca/internal/auth"
	"pizza-fresca/internal/httpx"
	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

// Handler handles HTTP requests for reservations.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new reservation handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the reservation routes on the router.
func (h *Handler) Register(r *mux.Router, mw *auth.Middleware) {
	r.HandleFunc("/api/reservations", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/reservations", mw.RequireAdmin(h.List)).Methods(http.MethodGet)
	r.HandleFunc("/api/reservations/{id}/status", mw.RequireAdmin(h.UpdateStatus)).Methods(http.MethodPut)
}

// Create handles POST /api/reservations. Public.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	var req models.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	res, err := h.service.Create(r.Context(), &req, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID, "reservation_creation_failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, models.CreateReservationResponse{
		Message:     "Reservation created successfully",
		Reservation: res,
	})
}

// List handles GET /api/reservations. Admin only.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	reservations, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err, requestID, "reservation_list_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, reservations)
}

// UpdateStatus handles PUT /api/reservations/{id}/status. Admin only.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid reservation id", requestID)
		return
	}

	var req models.UpdateReservationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	res, err := h.service.UpdateStatus(r.Context(), id, req.Status, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID, "reservation_status_update_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, requestID, action string) {
	var validationErr models.ValidationError
	var notFoundErr models.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		httpx.WriteError(w, http.StatusBadRequest, validationErr.Error(), requestID)
	case errors.As(err, &notFoundErr):
		httpx.WriteError(w, http.StatusNotFound, notFoundErr.Error(), requestID)
	default:
		h.logger.Error(action, "Reservation operation failed", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}
