package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yishak-cs/marmitas/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 13 {
		t.Fatalf("expected 13 items, got %d", c.Len())
	}
	if n := len(c.ByCategory(models.CategoryDaily)); n != 6 {
		t.Fatalf("expected 6 daily items, got %d", n)
	}
	if n := len(c.ByCategory(models.CategoryCasserole)); n != 7 {
		t.Fatalf("expected 7 casseroles, got %d", n)
	}
	it, ok := c.Lookup("Penne com carne moída e legumes")
	if !ok {
		t.Fatalf("lookup failed")
	}
	if it.Price.StringFixed(2) != "20.00" || it.Weight != "350g" {
		t.Fatalf("unexpected item %+v", it)
	}
	items := c.Items()
	if items[0].Category != models.CategoryDaily || items[len(items)-1].Category != models.CategoryCasserole {
		t.Fatalf("items not grouped by category")
	}
}

func TestValidateRejectsBadEntries(t *testing.T) {
	ok := models.MenuItem{Name: "A", Price: decimal.RequireFromString("1.00"), Category: models.CategoryDaily}
	tests := []struct {
		name  string
		items []models.MenuItem
	}{
		{"empty", nil},
		{"blank name", []models.MenuItem{{Name: " ", Category: models.CategoryDaily}}},
		{"duplicate", []models.MenuItem{ok, ok}},
		{"negative price", []models.MenuItem{{Name: "B", Price: decimal.RequireFromString("-1"), Category: models.CategoryDaily}}},
		{"fractional cents", []models.MenuItem{{Name: "B", Price: decimal.RequireFromString("1.005"), Category: models.CategoryDaily}}},
		{"unknown category", []models.MenuItem{{Name: "B", Category: "dessert"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.items)
			if !errors.Is(err, ErrInvalidCatalogData) {
				t.Fatalf("expected ErrInvalidCatalogData, got %v", err)
			}
		})
	}
}

func TestValidationErrorNamesEntry(t *testing.T) {
	a := models.MenuItem{Name: "A", Category: models.CategoryDaily}
	_, err := New([]models.MenuItem{a, a})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Index != 1 || ve.Name != "A" || ve.Reason != "duplicate name" {
		t.Fatalf("unexpected error %+v", ve)
	}
}

func TestLoadFileYAML(t *testing.T) {
	doc := `items:
  - name: Frango
    description: Arroz e frango
    weight: 430g
    price: 22.00
    image: images/frango.jpg
    category: dia_a_dia
  - name: Escondidinho
    weight: 350g
    price: "23.50"
    category: escondidinhos
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f, _ := c.Lookup("Frango")
	if f.Price.StringFixed(2) != "22.00" || f.Category != models.CategoryDaily || f.Image != "images/frango.jpg" {
		t.Fatalf("unexpected item %+v", f)
	}
	e, _ := c.Lookup("Escondidinho")
	if e.Price.StringFixed(2) != "23.50" || e.Category != models.CategoryCasserole {
		t.Fatalf("unexpected item %+v", e)
	}
}

func TestParseJSON(t *testing.T) {
	doc := `{"items":[{"name":"A","price":"20.00","category":"daily"},{"name":"A","price":"21.00","category":"daily"}]}`
	items, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := New(items); !errors.Is(err, ErrInvalidCatalogData) {
		t.Fatalf("duplicate names must be rejected, got %v", err)
	}
}

func TestParseBadPrice(t *testing.T) {
	_, err := Parse([]byte("items:\n  - name: A\n    price: abc\n    category: daily\n"))
	if !errors.Is(err, ErrInvalidCatalogData) {
		t.Fatalf("expected ErrInvalidCatalogData, got %v", err)
	}
}

func TestParseMissingCategory(t *testing.T) {
	_, err := Parse([]byte("items:\n  - name: X\n    price: \"10.00\"\n"))
	if !errors.Is(err, ErrInvalidCatalogData) {
		t.Fatalf("expected ErrInvalidCatalogData, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Name != "X" {
		t.Fatalf("expected validation error naming X, got %v", err)
	}
}

func TestParseCategoryRequiresTag(t *testing.T) {
	for _, tag := range []string{"", "  "} {
		if _, ok := models.ParseCategory(tag); ok {
			t.Fatalf("blank tag %q must not map to a category", tag)
		}
	}
	if c, ok := models.ParseCategory("Dia_a_Dia"); !ok || c != models.CategoryDaily {
		t.Fatalf("alias should map to daily, got %q %v", c, ok)
	}
}
