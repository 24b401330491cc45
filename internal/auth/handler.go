package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"pizza-fresca/internal/httpx"
	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

// Handler handles HTTP requests for authentication.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the auth routes on the router.
func (h *Handler) Register(r *mux.Router, mw *Middleware) {
	r.HandleFunc("/api/auth/register", h.RegisterAccount).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", mw.RequireUser(h.Me)).Methods(http.MethodGet)
}

// RegisterAccount handles POST /api/auth/register.
func (h *Handler) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		var validationErr models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			httpx.WriteError(w, http.StatusBadRequest, validationErr.Error(), requestID)
		case errors.Is(err, ErrEmailTaken):
			httpx.WriteError(w, http.StatusBadRequest, "Email already registered", requestID)
		default:
			h.logger.Error("registration_failed", "Failed to register user", requestID, err, nil)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		}
		return
	}

	h.logger.Info("user_registered", "User registered", requestID, map[string]interface{}{
		"email": resp.User.Email,
	})
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials", requestID)
			return
		}
		h.logger.Error("login_failed", "Failed to log in user", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.logger.Info("user_logged_in", "User logged in", requestID, map[string]interface{}{
		"email": resp.User.Email,
	})
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", httpx.RequestID(r.Context()))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, user)
}
