package menu

import (
	"context"
	"fmt"

	"pizza-fresca/internal/logger"
	"pizza-fresca/internal/models"
)

// Store is the persistence the catalog needs.
type Store interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	MenuItemByID(ctx context.Context, id int64) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error
}

// Service is the menu catalog. Reads are public; mutations are admin-only
// and enforced at the route level.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a new catalog service.
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		logger: log,
	}
}

// List returns every menu item, including unavailable ones. Filtering by
// availability is a presentation concern.
func (s *Service) List(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.ListMenuItems(ctx)
}

// GetByID returns a single menu item.
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.store.MenuItemByID(ctx, id)
}

// Create adds a new menu item.
func (s *Service) Create(ctx context.Context, req *models.MenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := itemFromRequest(req)
	if err := s.store.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info("menu_item_created", fmt.Sprintf("Menu item %s created", item.Name), "", map[string]interface{}{
		"id":    item.ID,
		"price": item.Price,
	})
	return item, nil
}

// Update replaces a menu item's attributes. Existing orders are unaffected;
// they carry their own price and name snapshots.
func (s *Service) Update(ctx context.Context, id int64, req *models.MenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := itemFromRequest(req)
	item.ID = id
	if err := s.store.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu_item_updated", fmt.Sprintf("Menu item %s updated", item.Name), "", map[string]interface{}{
		"id":    item.ID,
		"price": item.Price,
	})
	return item, nil
}

// Delete removes a menu item permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return err
	}

	s.logger.Info("menu_item_deleted", "Menu item deleted", "", map[string]interface{}{
		"id": id,
	})
	return nil
}

func itemFromRequest(req *models.MenuItemRequest) *models.MenuItem {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return &models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Ingredients: ingredients,
		Available:   available,
	}
}
