// Package cart holds the per-session order state: an insertion-ordered
// cart store and the single-slot notification it reports to.
package cart

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/yishak-cs/marmitas/internal/models"
)

const (
	msgItemAdded   = "✓ %s adicionado!"
	msgCartCleared = "🗑️ Carrinho limpo!"
)

// Notifier receives user-facing messages emitted by cart mutations
type Notifier interface {
	Notify(message string)
}

type line struct {
	unitPrice decimal.Decimal
	quantity  int
}

// Store is an insertion-ordered mapping from item name to cart line.
// A Store is not safe for concurrent use; its owning session serialises
// access.
type Store struct {
	order    []string
	lines    map[string]*line
	notifier Notifier
}

// NewStore creates an empty cart. n may be nil.
func NewStore(n Notifier) *Store {
	return &Store{
		lines:    make(map[string]*line),
		notifier: n,
	}
}

// AddItem adds one unit of item. The unit price is captured the first time
// the item enters the cart and kept for as long as the line exists.
func (s *Store) AddItem(item models.MenuItem) {
	if l, ok := s.lines[item.Name]; ok {
		l.quantity = addQuantity(l.quantity, 1)
	} else {
		s.lines[item.Name] = &line{unitPrice: item.Price, quantity: 1}
		s.order = append(s.order, item.Name)
	}
	s.notify(fmt.Sprintf(msgItemAdded, item.Name))
}

// ChangeQuantity adds delta to the named line and removes the line once its
// quantity drops to zero or below. Unknown names are ignored. Quantities
// saturate at math.MaxInt.
func (s *Store) ChangeQuantity(name string, delta int) {
	l, ok := s.lines[name]
	if !ok {
		return
	}
	l.quantity = addQuantity(l.quantity, delta)
	if l.quantity <= 0 {
		s.remove(name)
	}
}

// Clear empties the cart
func (s *Store) Clear() {
	s.order = nil
	s.lines = make(map[string]*line)
	s.notify(msgCartCleared)
}

// TotalPrice returns the sum of unit price times quantity over all lines
func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity))))
	}
	return total
}

// ItemCount returns the sum of quantities, capped at math.MaxInt
func (s *Store) ItemCount() int {
	n := 0
	for _, l := range s.lines {
		n = addQuantity(n, l.quantity)
	}
	return n
}

// addQuantity returns q+delta clamped to the int range
func addQuantity(q, delta int) int {
	switch {
	case delta > 0 && q > math.MaxInt-delta:
		return math.MaxInt
	case delta < 0 && q < math.MinInt-delta:
		return math.MinInt
	}
	return q + delta
}

// Len returns the number of distinct lines
func (s *Store) Len() int {
	return len(s.order)
}

// Line returns the line for name
func (s *Store) Line(name string) (models.CartLine, bool) {
	l, ok := s.lines[name]
	if !ok {
		return models.CartLine{}, false
	}
	return models.CartLine{Name: name, UnitPrice: l.unitPrice, Quantity: l.quantity}, true
}

// Lines returns a copy of every line in the order items were first added
func (s *Store) Lines() []models.CartLine {
	out := make([]models.CartLine, 0, len(s.order))
	for _, name := range s.order {
		l := s.lines[name]
		out = append(out, models.CartLine{Name: name, UnitPrice: l.unitPrice, Quantity: l.quantity})
	}
	return out
}

func (s *Store) remove(name string) {
	delete(s.lines, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Store) notify(msg string) {
	if s.notifier != nil {
		s.notifier.Notify(msg)
	}
}
