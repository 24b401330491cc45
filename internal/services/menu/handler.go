package menu

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

// Handler handles HTTP requests for the menu catalog.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new menu handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the menu routes on the router. Reads are public,
// mutations require an admin identity.
func (h *Handler) Register(r *mux.Router, mw *auth.Middleware) {
	r.HandleFunc("/api/pizzas", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/pizzas/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/pizzas", mw.RequireAdmin(h.Create)).Methods(http.MethodPost)
	r.HandleFunc("/api/pizzas/{id}", mw.RequireAdmin(h.Update)).Methods(http.MethodPut)
	r.HandleFunc("/api/pizzas/{id}", mw.RequireAdmin(h.Delete)).Methods(http.MethodDelete)
}

// List handles GET /api/pizzas.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		requestID := httpx.RequestID(r.Context())
		h.logger.Error("menu_list_failed", "Failed to list menu items", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /api/pizzas/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, requestID, "menu_get_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

// Create handles POST /api/pizzas.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, requestID, "menu_create_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/pizzas/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	var req models.MenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.writeServiceError(w, err, requestID, "menu_update_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/pizzas/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, requestID, "menu_delete_failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Menu item deleted",
	})
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid pizza id", requestID)
		return 0, false
	}
	return id, true
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
		h.logger.Error(action, "Menu operation failed", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}
