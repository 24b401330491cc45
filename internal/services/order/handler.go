package order

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

// Handler handles HTTP requests for the order service.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the order routes on the router. Order creation is public;
// listing requires authentication and administration requires the admin role.
func (h *Handler) Register(r *mux.Router, mw *auth.Middleware) {
	r.HandleFunc("/api/orders", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/orders", mw.RequireUser(h.ListOwn)).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/all", mw.RequireAdmin(h.ListAll)).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/{id}/status", mw.RequireAdmin(h.UpdateStatus)).Methods(http.MethodPut)
}

// Create handles POST /api/orders. No credential is required to place an
// order.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	order, err := h.service.Create(r.Context(), &req, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID, "order_creation_failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, models.CreateOrderResponse{
		Message: "Order created successfully",
		Order:   order,
	})
}

// ListOwn handles GET /api/orders. Returns the caller's orders matched by
// email, newest first.
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", requestID)
		return
	}

	orders, err := h.service.ListForCustomer(r.Context(), identity)
	if err != nil {
		h.writeServiceError(w, err, requestID, "order_list_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

// ListAll handles GET /api/orders/all. Admin only.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		h.writeServiceError(w, err, requestID, "order_list_all_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/orders/{id}/status. Admin only.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid order id", requestID)
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	changedBy := "admin"
	if identity, ok := auth.IdentityFromContext(r.Context()); ok {
		changedBy = identity.Email
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.Status, changedBy, requestID)
	if err != nil {
		h.writeServiceError(w, err, requestID, "order_status_update_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, requestID, action string) {
	var validationErr models.ValidationError
	var notFoundErr models.NotFoundError
	switch {
	case errors.As(err, &validationErr):
		httpx.WriteError(w, http.StatusBadRequest, validationErr.Error(), requestID)
	case errors.As(err, &notFoundErr):
		httpx.WriteError(w, http.StatusNotFound, notFoundErr.Error(), requestID)
	case errors.Is(err, models.ErrUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", requestID)
	case errors.Is(err, models.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", requestID)
	default:
		h.logger.Error(action, "Order operation failed", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}
