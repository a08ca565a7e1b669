package cart

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yishak-cs/marmitas/internal/models"
)

func item(name, price string) models.MenuItem {
	return models.MenuItem{Name: name, Price: decimal.RequireFromString(price), Category: models.CategoryDaily}
}

func TestAddItemIncrementsAndKeepsFirstPrice(t *testing.T) {
	s := NewStore(nil)
	for i := 0; i < 5; i++ {
		s.AddItem(item("Frango", "22.00"))
	}
	// a catalog change mid-session must not reprice the line
	s.AddItem(item("Frango", "30.00"))

	l, ok := s.Line("Frango")
	if !ok {
		t.Fatalf("line missing")
	}
	if l.Quantity != 6 {
		t.Fatalf("expected quantity 6, got %d", l.Quantity)
	}
	if !l.UnitPrice.Equal(decimal.RequireFromString("22.00")) {
		t.Fatalf("expected unit price 22.00, got %s", l.UnitPrice)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", s.Len())
	}
}

func TestChangeQuantityUnknownNameIsNoop(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(item("A", "22.00"))
	before := s.Lines()

	s.ChangeQuantity("missing", 3)
	s.ChangeQuantity("missing", -3)

	after := s.Lines()
	if len(after) != len(before) || after[0].Quantity != before[0].Quantity || after[0].Name != before[0].Name {
		t.Fatalf("cart changed: before %+v after %+v", before, after)
	}
	if _, ok := s.Line("missing"); ok {
		t.Fatalf("unknown name must not create a line")
	}
}

func TestChangeQuantityRemovesLine(t *testing.T) {
	tests := []struct {
		name  string
		delta int
	}{
		{"exact", -3},
		{"below zero", -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil)
			s.AddItem(item("A", "22.00"))
			s.AddItem(item("A", "22.00"))
			s.AddItem(item("A", "22.00"))
			s.AddItem(item("B", "20.00"))

			s.ChangeQuantity("A", tt.delta)

			if s.Len() != 1 {
				t.Fatalf("expected 1 line, got %d", s.Len())
			}
			if _, ok := s.Line("A"); ok {
				t.Fatalf("line A should be gone")
			}
		})
	}
}

func TestChangeQuantityArbitraryDelta(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(item("A", "10.00"))
	s.ChangeQuantity("A", 4)
	s.ChangeQuantity("A", -2)
	s.ChangeQuantity("A", 0)
	l, _ := s.Line("A")
	if l.Quantity != 3 {
		t.Fatalf("expected 3, got %d", l.Quantity)
	}
}

func TestTotalsOverCompositions(t *testing.T) {
	s := NewStore(nil)
	if !s.TotalPrice().IsZero() || s.ItemCount() != 0 {
		t.Fatalf("empty cart should total 0")
	}
	s.AddItem(item("A", "22.00"))
	s.AddItem(item("A", "22.00"))
	s.AddItem(item("B", "20.00"))
	s.AddItem(item("C", "23.00"))
	s.ChangeQuantity("C", 2)

	want := decimal.RequireFromString("133.00")
	if !s.TotalPrice().Equal(want) {
		t.Fatalf("expected %s, got %s", want, s.TotalPrice())
	}
	if s.ItemCount() != 6 {
		t.Fatalf("expected 6 items, got %d", s.ItemCount())
	}
}

func TestClearEmptiesCart(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(item("A", "22.00"))
	s.AddItem(item("B", "20.00"))
	s.Clear()
	if s.ItemCount() != 0 || !s.TotalPrice().IsZero() || s.Len() != 0 {
		t.Fatalf("cart not cleared: %+v", s.Lines())
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("clearing an empty cart must keep it empty")
	}
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(item("A", "1.00"))
	s.AddItem(item("B", "1.00"))
	s.AddItem(item("C", "1.00"))
	s.AddItem(item("A", "1.00"))

	s.ChangeQuantity("A", -2)
	s.AddItem(item("A", "1.00"))

	got := s.Lines()
	want := []string{"B", "C", "A"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, got[i].Name)
		}
	}
}

func TestLinesReturnsCopies(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(item("A", "1.00"))
	lines := s.Lines()
	lines[0].Quantity = 99
	if l, _ := s.Line("A"); l.Quantity != 1 {
		t.Fatalf("store mutated through Lines copy")
	}
}

func TestNotifications(t *testing.T) {
	n := &Notification{}
	s := NewStore(n)

	s.AddItem(item("Frango", "22.00"))
	if !n.Pending() {
		t.Fatalf("expected pending notification after add")
	}
	msg, ok := n.Consume()
	if !ok || msg.Message != "✓ Frango adicionado!" {
		t.Fatalf("unexpected notification %q", msg.Message)
	}
	if _, ok := n.Consume(); ok {
		t.Fatalf("notification must clear on read")
	}

	s.ChangeQuantity("Frango", 1)
	if n.Pending() {
		t.Fatalf("quantity changes do not notify")
	}

	s.AddItem(item("Carne", "22.00"))
	s.Clear()
	msg, ok = n.Consume()
	if !ok || msg.Message != "🗑️ Carrinho limpo!" {
		t.Fatalf("latest notification should win, got %q", msg.Message)
	}
	if n.Pending() {
		t.Fatalf("only one slot expected")
	}
}

func TestChangeQuantitySaturates(t *testing.T) {
	s := NewStore(nil)
	s.AddItem(item("A", "10.00"))
	s.AddItem(item("A", "10.00"))
	s.AddItem(item("B", "5.00"))

	s.ChangeQuantity("A", math.MaxInt)
	l, ok := s.Line("A")
	if !ok {
		t.Fatalf("a positive delta must never remove the line")
	}
	if l.Quantity != math.MaxInt {
		t.Fatalf("expected quantity to saturate, got %d", l.Quantity)
	}

	s.AddItem(item("A", "10.00"))
	if l, _ := s.Line("A"); l.Quantity != math.MaxInt {
		t.Fatalf("add past the cap changed quantity to %d", l.Quantity)
	}
	if n := s.ItemCount(); n != math.MaxInt {
		t.Fatalf("expected item count capped at MaxInt, got %d", n)
	}

	s.ChangeQuantity("B", math.MinInt)
	if _, ok := s.Line("B"); ok {
		t.Fatalf("large negative delta should remove the line")
	}
}
