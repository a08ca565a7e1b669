package services

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yishak-cs/marmitas/internal/models"
)

// OrderConfig holds the fixed pieces of the order hand-off
type OrderConfig struct {
	BaseURL        string
	Phone          string
	Greeting       string
	CurrencySymbol string
}

// DefaultOrderConfig matches the kitchen's WhatsApp channel
func DefaultOrderConfig() OrderConfig {
	return OrderConfig{
		BaseURL:        "https://wa.me",
		Phone:          "5551998870311",
		Greeting:       "Olá! Gostaria de fazer o pedido:",
		CurrencySymbol: "R$",
	}
}

// OrderService derives totals, the order message and the hand-off link
// from cart lines
type OrderService struct {
	cfg OrderConfig
}

// NewOrderService creates an order service. Empty fields fall back to the
// defaults.
func NewOrderService(cfg OrderConfig) *OrderService {
	def := DefaultOrderConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Phone == "" {
		cfg.Phone = def.Phone
	}
	if cfg.Greeting == "" {
		cfg.Greeting = def.Greeting
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = def.CurrencySymbol
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &OrderService{cfg: cfg}
}

// FormatPrice renders an amount as "R$ 44.00"
func (s *OrderService) FormatPrice(d decimal.Decimal) string {
	return s.cfg.CurrencySymbol + " " + d.StringFixed(2)
}

// Summarize computes the total, item count and its label
func (s *OrderService) Summarize(lines []models.CartLine) models.OrderSummary {
	total := decimal.Zero
	count := 0
	for _, l := range lines {
		total = total.Add(l.Subtotal())
		if count > math.MaxInt-l.Quantity {
			count = math.MaxInt
		} else {
			count += l.Quantity
		}
	}
	return models.OrderSummary{
		Total:     total,
		ItemCount: count,
		Label:     models.ItemCountLabel(count),
		Visible:   count > 0,
	}
}

// BuildMessage formats the order text sent to the kitchen, one line per
// cart entry in the given order. An empty cart yields "".
func (s *OrderService) BuildMessage(lines []models.CartLine) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.cfg.Greeting)
	b.WriteString("\n\n")
	total := decimal.Zero
	for _, l := range lines {
		sub := l.Subtotal()
		total = total.Add(sub)
		b.WriteString("• ")
		b.WriteString(strconv.Itoa(l.Quantity))
		b.WriteString("x ")
		b.WriteString(l.Name)
		b.WriteString(" - ")
		b.WriteString(s.FormatPrice(sub))
		b.WriteString("\n")
	}
	b.WriteString("\n*Total: ")
	b.WriteString(s.FormatPrice(total))
	b.WriteString("*")
	return b.String()
}

// BuildHandoffLink returns the deep link that opens the messaging channel
// with message pre-filled. An empty message yields "".
func (s *OrderService) BuildHandoffLink(message string) string {
	if message == "" {
		return ""
	}
	return s.cfg.BaseURL + "/" + s.cfg.Phone + "?text=" + escapeText(message)
}

// escapeText percent-encodes every byte outside the unreserved set, spaces
// included, so the link never depends on "+" decoding rules.
func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
