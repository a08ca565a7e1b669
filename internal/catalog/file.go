package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/yishak-cs/marmitas/internal/models"
)

// Record is the serialised form of a menu item, shared by the file loader
// and the graph store. Price is kept as text so "22.00" survives untouched.
type Record struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Weight      string `yaml:"weight" json:"weight"`
	Price       string `yaml:"price" json:"price"`
	Image       string `yaml:"image,omitempty" json:"image,omitempty"`
	Category    string `yaml:"category" json:"category"`
}

type fileDocument struct {
	Items []Record `yaml:"items"`
}

// RecordFromItem converts an item to its serialised form
func RecordFromItem(it models.MenuItem) Record {
	return Record{
		Name:        it.Name,
		Description: it.Description,
		Weight:      it.Weight,
		Price:       it.Price.StringFixed(2),
		Image:       it.Image,
		Category:    string(it.Category),
	}
}

// ToItem converts the record at position index into a menu item
func (r Record) ToItem(index int) (models.MenuItem, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return models.MenuItem{}, &ValidationError{Index: index, Name: r.Name, Reason: fmt.Sprintf("bad price %q", r.Price)}
	}
	if strings.TrimSpace(r.Category) == "" {
		return models.MenuItem{}, &ValidationError{Index: index, Name: r.Name, Reason: "missing category"}
	}
	cat, ok := models.ParseCategory(r.Category)
	if !ok {
		return models.MenuItem{}, &ValidationError{Index: index, Name: r.Name, Reason: "unknown category " + r.Category}
	}
	return models.MenuItem{
		Name:        r.Name,
		Description: r.Description,
		Weight:      r.Weight,
		Price:       price,
		Image:       r.Image,
		Category:    cat,
	}, nil
}

// ItemsFromRecords converts records in order, stopping at the first bad one
func ItemsFromRecords(records []Record) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0, len(records))
	for i, r := range records {
		it, err := r.ToItem(i)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// Parse decodes a YAML or JSON catalog document of the form {"items": [...]}
func Parse(data []byte) ([]models.MenuItem, error) {
	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalogData, err)
	}
	return ItemsFromRecords(doc.Items)
}

// LoadFile reads and validates a catalog file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}
	return New(items)
}
