package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"pizza-fresca/internal/auth"
	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

type fakeUserStore struct {
	users map[int64]*models.User
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = int64(len(s.users) + 1)
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.NotFoundError{Resource: "user", ID: email}
}

func (s *fakeUserStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, models.NotFoundError{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}
	return user, nil
}

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*mux.Router, string, string) {
	t.Helper()

	log := logger.New("order-handler-test")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	users := &fakeUserStore{users: map[int64]*models.User{
		1: {ID: 1, Name: "Mario", Email: "mario@example.com", PasswordHash: string(hash), Role: models.RoleCustomer},
		2: {ID: 2, Name: "Boss", Email: "boss@pizzafresca.it", PasswordHash: string(hash), Role: models.RoleAdmin},
	}}

	authService := auth.NewService(users, testSecret, time.Hour, log)
	mw := auth.NewMiddleware(authService)

	svc, _, _ := newTestService()
	handler := NewHandler(svc, log)

	router := mux.NewRouter()
	handler.Register(router, mw)

	customerToken, err := auth.IssueToken(testSecret, time.Hour, 1)
	if err != nil {
		t.Fatal(err)
	}
	adminToken, err := auth.IssueToken(testSecret, time.Hour, 2)
	if err != nil {
		t.Fatal(err)
	}

	return router, customerToken, adminToken
}

func postOrder(t *testing.T, router *mux.Router, req *models.CreateOrderRequest) *models.CreateOrderResponse {
	t.Helper()

	body, _ := json.Marshal(req)
	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/orders = %d, want 201: %s", w.Code, w.Body.String())
	}

	var resp models.CreateOrderResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return &resp
}

func TestCreateOrderEndpointIsPublic(t *testing.T) {
	router, _, _ := newTestRouter(t)

	resp := postOrder(t, router, validRequest())

	if resp.Message != "Order created successfully" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Order == nil || resp.Order.Number == "" {
		t.Fatalf("expected order with number, got %+v", resp.Order)
	}
	if resp.Order.TotalPrice != 280 {
		t.Errorf("total = %v, want 280", resp.Order.TotalPrice)
	}
}

func TestCreateOrderEndpointRejectsBadJSON(t *testing.T) {
	router, _, _ := newTestRouter(t)

	r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestListAllRequiresAdmin(t *testing.T) {
	router, customerToken, adminToken := newTestRouter(t)

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no credential", "", http.StatusUnauthorized},
		{"garbage token", "not-a-token", http.StatusUnauthorized},
		{"customer token", customerToken, http.StatusForbidden},
		{"admin token", adminToken, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/orders/all", nil)
			if tt.token != "" {
				r.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			if w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestListOwnOrders(t *testing.T) {
	router, customerToken, _ := newTestRouter(t)

	postOrder(t, router, validRequest())

	other := validRequest()
	other.CustomerInfo.Email = "someone-else@example.com"
	postOrder(t, router, other)

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.Header.Set("Authorization", "Bearer "+customerToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var orders []models.Order
	if err := json.NewDecoder(w.Body).Decode(&orders); err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	if orders[0].CustomerInfo.Email != "mario@example.com" {
		t.Errorf("got order for %s", orders[0].CustomerInfo.Email)
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	router, _, adminToken := newTestRouter(t)

	created := postOrder(t, router, validRequest())

	body, _ := json.Marshal(models.UpdateStatusRequest{Status: models.StatusConfirmed})
	r := httptest.NewRequest(http.MethodPut, "/api/orders/"+strconv.FormatInt(created.Order.ID, 10)+"/status", bytes.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var order models.Order
	if err := json.NewDecoder(w.Body).Decode(&order); err != nil {
		t.Fatal(err)
	}
	if order.Status != models.StatusConfirmed {
		t.Errorf("status = %v, want confirmed", order.Status)
	}
}

func TestUpdateStatusEndpointUnknownOrder(t *testing.T) {
	router, _, adminToken := newTestRouter(t)

	body, _ := json.Marshal(models.UpdateStatusRequest{Status: models.StatusConfirmed})
	r := httptest.NewRequest(http.MethodPut, "/api/orders/404/status", bytes.NewReader(body))
	r.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
}
