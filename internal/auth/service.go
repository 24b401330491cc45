package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

// ErrEmailTaken is returned when registering with an email that already has
// an account.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned for a failed login. It is deliberately
// the same for unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the persistence the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
}

// Service issues and verifies identities.
type Service struct {
	store  UserStore
	secret string
	ttl    time.Duration
	logger *logger.Logger
}

// NewService creates a new auth service.
func NewService(store UserStore, secret string, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		secret: secret,
		ttl:    ttl,
		logger: log,
	}
}

// Register creates a customer account and returns a signed token.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.store.UserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		Phone:        req.Phone,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := IssueToken(s.secret, s.ttl, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Message: "Account created",
		Token:   token,
		User:    user,
	}, nil
}

// CreateAdmin provisions an admin account. Registration only ever creates
// customers, so this is the bootstrap path for the first administrator,
// invoked from the create-admin mode.
func (s *Service) CreateAdmin(ctx context.Context, name, email, password string) (*models.User, error) {
	req := &models.RegisterRequest{Name: name, Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.store.UserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin_created", fmt.Sprintf("Admin account %s created", user.Email), "", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// Login verifies credentials and returns a signed token.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.store.UserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := IssueToken(s.secret, s.ttl, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	}, nil
}

// Identify resolves a bearer token to a user. It returns
// models.ErrUnauthorized for any invalid or unresolvable token.
func (s *Service) Identify(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := ParseToken(s.secret, tokenString)
	if err != nil {
		return nil, models.ErrUnauthorized
	}

	user, err := s.store.UserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil, models.ErrUnauthorized
	}
	return user, nil
}
