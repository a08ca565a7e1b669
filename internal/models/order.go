package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one item's price and quantity inside a cart
type CartLine struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns unit price times quantity
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderSummary holds the values derived from a cart
type OrderSummary struct {
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	Label     string          `json:"label"`
	Visible   bool            `json:"visible"`
}

// ItemCountLabel returns "1 item" or "N itens"
func ItemCountLabel(n int) string {
	if n == 1 {
		return "1 item"
	}
	return fmt.Sprintf("%d itens", n)
}

// Notification is a transient message addressed to the shopper
type Notification struct {
	Message string `json:"message"`
}
