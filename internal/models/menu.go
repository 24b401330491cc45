package models

import "time"

// MenuCategory classifies a menu item.
type MenuCategory string

const (
	CategoryClassic    MenuCategory = "classic"
	CategoryMeat       MenuCategory = "meat"
	CategoryVegetarian MenuCategory = "vegetarian"
	CategoryVegan      MenuCategory = "vegan"
	CategorySpecial    MenuCategory = "special"
)

// Valid reports whether the category is one of the defined values.
func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryClassic, CategoryMeat, CategoryVegetarian, CategoryVegan, CategorySpecial:
		return true
	}
	return false
}

// MenuItem is a purchasable item. Price is the authoritative unit price used
// for all order computation; availability is a presentation hint and does not
// affect historical orders.
type MenuItem struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Image       string       `json:"image"`
	Category    MenuCategory `json:"category"`
	Ingredients []string     `json:"ingredients"`
	Available   bool         `json:"available"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// MenuItemRequest is the admin payload for creating or updating a menu item.
type MenuItemRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Image       string       `json:"image"`
	Category    MenuCategory `json:"category"`
	Ingredients []string     `json:"ingredients"`
	Available   *bool        `json:"available,omitempty"`
}

// Validate checks the menu item payload.
func (req *MenuItemRequest) Validate() error {
	if req.Name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if req.Price < 0 {
		return ValidationError{Field: "price", Message: "price must not be negative"}
	}
	if req.Category == "" {
		req.Category = CategoryClassic
	}
	if !req.Category.Valid() {
		return ValidationError{Field: "category", Message: "category must be one of: classic, meat, vegetarian, vegan, special"}
	}
	return nil
}
