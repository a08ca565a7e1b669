// Package catalog holds the read-only menu offered by the storefront.
package catalog

import (
	"strings"

	"github.com/yishak-cs/marmitas/internal/models"
)

// Catalog is an immutable, validated set of menu items
type Catalog struct {
	items  []models.MenuItem
	byName map[string]int
}

// New validates items and builds a catalog from them. Item order is kept
// within each category.
func New(items []models.MenuItem) (*Catalog, error) {
	if err := Validate(items); err != nil {
		return nil, err
	}
	c := &Catalog{
		items:  make([]models.MenuItem, len(items)),
		byName: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range c.items {
		c.byName[it.Name] = i
	}
	return c, nil
}

// Validate checks that every entry is well formed and that names are unique
func Validate(items []models.MenuItem) error {
	if len(items) == 0 {
		return &ValidationError{Index: -1, Reason: "catalog is empty"}
	}
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return &ValidationError{Index: i, Reason: "name is required"}
		}
		if _, dup := seen[it.Name]; dup {
			return &ValidationError{Index: i, Name: it.Name, Reason: "duplicate name"}
		}
		seen[it.Name] = struct{}{}
		if it.Price.IsNegative() {
			return &ValidationError{Index: i, Name: it.Name, Reason: "price must be >= 0"}
		}
		if !it.Price.Equal(it.Price.Round(2)) {
			return &ValidationError{Index: i, Name: it.Name, Reason: "price must have at most 2 decimal places"}
		}
		if !it.Category.Valid() {
			return &ValidationError{Index: i, Name: it.Name, Reason: "unknown category " + string(it.Category)}
		}
	}
	return nil
}

// Lookup returns the item with the given name
func (c *Catalog) Lookup(name string) (models.MenuItem, bool) {
	i, ok := c.byName[name]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[i], true
}

// Items returns every item, grouped by category in display order
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, 0, len(c.items))
	for _, cat := range models.Categories {
		out = append(out, c.ByCategory(cat)...)
	}
	return out
}

// ByCategory returns the items of one category in catalog order
func (c *Catalog) ByCategory(cat models.Category) []models.MenuItem {
	var out []models.MenuItem
	for _, it := range c.items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}
