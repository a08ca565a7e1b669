package services

import (
	"errors"

	"go.uber.org/zap"

	"github.com/yishak-cs/marmitas/internal/cart"
	"github.com/yishak-cs/marmitas/internal/catalog"
	"github.com/yishak-cs/marmitas/internal/models"
	"github.com/yishak-cs/marmitas/internal/session"
)

// ErrItemNotFound is returned when a shopper asks for an item the catalog
// does not carry
var ErrItemNotFound = errors.New("item not found in catalog")

// LineView is a cart line prepared for display
type LineView struct {
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	UnitPriceText string `json:"unit_price"`
	SubtotalText  string `json:"subtotal"`
	SubtotalLabel string `json:"subtotal_label"`
}

// CartView is a consistent snapshot of one session's cart
type CartView struct {
	Lines      []LineView `json:"lines"`
	ItemCount  int        `json:"item_count"`
	Label      string     `json:"label"`
	Total      string     `json:"total"`
	TotalLabel string     `json:"total_label"`
	Visible    bool       `json:"visible"`
}

// OrderView carries the hand-off payload. Message and HandoffURL are empty
// while the cart is empty.
type OrderView struct {
	Visible    bool   `json:"visible"`
	Message    string `json:"message,omitempty"`
	HandoffURL string `json:"handoff_url,omitempty"`
	Total      string `json:"total,omitempty"`
	TotalLabel string `json:"total_label,omitempty"`
}

// StorefrontService runs shopper actions against session carts
type StorefrontService struct {
	catalog *catalog.Catalog
	orders  *OrderService
	logger  *zap.Logger
}

// NewStorefrontService creates a new storefront service
func NewStorefrontService(c *catalog.Catalog, orders *OrderService, logger *zap.Logger) *StorefrontService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StorefrontService{catalog: c, orders: orders, logger: logger}
}

// Catalog returns the menu
func (s *StorefrontService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Orders returns the order formatter
func (s *StorefrontService) Orders() *OrderService {
	return s.orders
}

// AddItem adds one unit of the named catalog item to the session cart
func (s *StorefrontService) AddItem(sess *session.Session, name string) (CartView, error) {
	item, ok := s.catalog.Lookup(name)
	if !ok {
		return CartView{}, ErrItemNotFound
	}
	var view CartView
	sess.Do(func(c *cart.Store, _ *cart.Notification) {
		c.AddItem(item)
		view = s.cartView(c)
	})
	s.logger.Info("item added",
		zap.String("session_id", sess.ID),
		zap.String("item", name),
		zap.Int("item_count", view.ItemCount))
	return view, nil
}

// ChangeQuantity adjusts a line by delta. Names not in the cart are ignored.
func (s *StorefrontService) ChangeQuantity(sess *session.Session, name string, delta int) CartView {
	var view CartView
	sess.Do(func(c *cart.Store, _ *cart.Notification) {
		c.ChangeQuantity(name, delta)
		view = s.cartView(c)
	})
	s.logger.Info("quantity changed",
		zap.String("session_id", sess.ID),
		zap.String("item", name),
		zap.Int("delta", delta),
		zap.Int("item_count", view.ItemCount))
	return view
}

// Clear empties the session cart
func (s *StorefrontService) Clear(sess *session.Session) CartView {
	var view CartView
	sess.Do(func(c *cart.Store, _ *cart.Notification) {
		c.Clear()
		view = s.cartView(c)
	})
	s.logger.Info("cart cleared", zap.String("session_id", sess.ID))
	return view
}

// Cart returns the current cart
func (s *StorefrontService) Cart(sess *session.Session) CartView {
	var view CartView
	sess.Do(func(c *cart.Store, _ *cart.Notification) {
		view = s.cartView(c)
	})
	return view
}

// Order builds the order message and hand-off link for the session cart
func (s *StorefrontService) Order(sess *session.Session) OrderView {
	var lines []models.CartLine
	sess.Do(func(c *cart.Store, _ *cart.Notification) {
		lines = c.Lines()
	})
	summary := s.orders.Summarize(lines)
	if !summary.Visible {
		return OrderView{}
	}
	msg := s.orders.BuildMessage(lines)
	return OrderView{
		Visible:    true,
		Message:    msg,
		HandoffURL: s.orders.BuildHandoffLink(msg),
		Total:      summary.Total.StringFixed(2),
		TotalLabel: s.orders.FormatPrice(summary.Total),
	}
}

// Notification consumes the session's pending notification
func (s *StorefrontService) Notification(sess *session.Session) (models.Notification, bool) {
	var (
		msg models.Notification
		ok  bool
	)
	sess.Do(func(_ *cart.Store, n *cart.Notification) {
		msg, ok = n.Consume()
	})
	return msg, ok
}

func (s *StorefrontService) cartView(c *cart.Store) CartView {
	lines := c.Lines()
	summary := s.orders.Summarize(lines)
	views := make([]LineView, 0, len(lines))
	for _, l := range lines {
		sub := l.Subtotal()
		views = append(views, LineView{
			Name:          l.Name,
			Quantity:      l.Quantity,
			UnitPriceText: l.UnitPrice.StringFixed(2),
			SubtotalText:  sub.StringFixed(2),
			SubtotalLabel: s.orders.FormatPrice(sub),
		})
	}
	return CartView{
		Lines:      views,
		ItemCount:  summary.ItemCount,
		Label:      summary.Label,
		Total:      summary.Total.StringFixed(2),
		TotalLabel: s.orders.FormatPrice(summary.Total),
		Visible:    summary.Visible,
	}
}
