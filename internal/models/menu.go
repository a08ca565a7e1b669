package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups menu items into the storefront tabs
type Category string

const (
	CategoryDaily     Category = "daily"
	CategoryCasserole Category = "casserole"
)

// Categories lists every category in display order
var Categories = []Category{CategoryDaily, CategoryCasserole}

// Label returns the tab title shown for the category
func (c Category) Label() string {
	switch c {
	case CategoryDaily:
		return "Dia a Dia"
	case CategoryCasserole:
		return "Escondidinhos"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	return c == CategoryDaily || c == CategoryCasserole
}

// ParseCategory maps a category tag to a Category. The legacy tags
// "dia_a_dia" and "escondidinhos" are accepted as aliases.
func ParseCategory(tag string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "daily", "dia_a_dia":
		return CategoryDaily, true
	case "casserole", "escondidinhos":
		return CategoryCasserole, true
	default:
		return Category(tag), false
	}
}

// MenuItem represents a purchasable lunch box. Name identifies the item
// within a catalog.
type MenuItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Weight      string          `json:"weight"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Category    Category        `json:"category"`
}
