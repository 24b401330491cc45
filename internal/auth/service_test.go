package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

type memoryStore struct {
	users map[int64]*models.User
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[int64]*models.User)}
}

func (s *memoryStore) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = int64(len(s.users) + 1)
	s.users[user.ID] = user
	return nil
}

func (s *memoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, models.NotFoundError{Resource: "user", ID: email}
}

func (s *memoryStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, models.NotFoundError{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}
	return user, nil
}

func newAuthService() *Service {
	return NewService(newMemoryStore(), "test-secret", time.Hour, logger.New("auth-test"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("secret", time.Hour, 42)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", time.Hour, 42)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := IssueToken("secret", -time.Minute, 42)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name:     "Mario",
		Email:    "Mario@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User.Email != "mario@example.com" {
		t.Errorf("email = %q, want normalized lowercase", resp.User.Email)
	}
	if resp.User.Role != models.RoleCustomer {
		t.Errorf("role = %q, want customer", resp.User.Role)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}

	login, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "mario@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Errorf("logged in as user %d, registered as %d", login.User.ID, resp.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService()

	req := &models.RegisterRequest{Name: "Mario", Email: "mario@example.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Impostor", Email: "mario@example.com", Password: "secret456",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService()

	if _, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Mario", Email: "mario@example.com", Password: "secret123",
	}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "mario@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &models.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestIdentify(t *testing.T) {
	svc := newAuthService()

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Name: "Mario", Email: "mario@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatal(err)
	}

	user, err := svc.Identify(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("Identify() error = %v", err)
	}
	if user.Email != "mario@example.com" {
		t.Errorf("identified %q", user.Email)
	}

	if _, err := svc.Identify(context.Background(), "garbage"); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("Identify(garbage) error = %v, want ErrUnauthorized", err)
	}
}

func TestCreateAdmin(t *testing.T) {
	svc := newAuthService()

	user, err := svc.CreateAdmin(context.Background(), "Boss", "Boss@PizzaFresca.it", "secret123")
	if err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}

	if user.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin", user.Role)
	}
	if !user.IsAdmin() {
		t.Error("IsAdmin() = false")
	}
	if user.Email != "boss@pizzafresca.it" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}

	// The bootstrapped account must be able to log in like any other.
	login, err := svc.Login(context.Background(), &models.LoginRequest{
		Email:    "boss@pizzafresca.it",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !login.User.IsAdmin() {
		t.Error("logged-in user lost the admin role")
	}
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	svc := newAuthService()

	if _, err := svc.CreateAdmin(context.Background(), "Boss", "boss@pizzafresca.it", "secret123"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CreateAdmin(context.Background(), "Boss II", "boss@pizzafresca.it", "secret456")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("CreateAdmin() error = %v, want ErrEmailTaken", err)
	}
}

func TestCreateAdminValidation(t *testing.T) {
	svc := newAuthService()

	if _, err := svc.CreateAdmin(context.Background(), "Boss", "boss@pizzafresca.it", "12345"); err == nil {
		t.Error("expected validation error for short password")
	}
}

func TestCreateAdminPassesAdminGate(t *testing.T) {
	svc := newAuthService()
	mw := NewMiddleware(svc)

	admin, err := svc.CreateAdmin(context.Background(), "Boss", "boss@pizzafresca.it", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	token, err := IssueToken("test-secret", time.Hour, admin.ID)
	if err != nil {
		t.Fatal(err)
	}

	var reached bool
	handler := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/orders/all", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	if !reached || w.Code != http.StatusOK {
		t.Errorf("admin gate rejected bootstrapped admin: reached=%v status=%d", reached, w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService()

	tests := []struct {
		name string
		req  *models.RegisterRequest
	}{
		{"missing name", &models.RegisterRequest{Email: "a@b.c", Password: "secret123"}},
		{"bad email", &models.RegisterRequest{Name: "Mario", Email: "not-an-email", Password: "secret123"}},
		{"short password", &models.RegisterRequest{Name: "Mario", Email: "a@b.c", Password: "12345"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			var validationErr models.ValidationError
			if !errors.As(err, &validationErr) {
				t.Errorf("Register() error = %v, want ValidationError", err)
			}
		})
	}
}
