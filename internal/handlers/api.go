package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yishak-cs/marmitas/internal/models"
	"github.com/yishak-cs/marmitas/internal/services"
	"github.com/yishak-cs/marmitas/internal/session"
)

// HealthChecker reports the state of an optional backing store
type HealthChecker interface {
	Health(ctx context.Context) error
}

// APIHandler handles all API requests
type APIHandler struct {
	storefront   *services.StorefrontService
	sessions     *session.Registry
	images       *ImageResolver
	toastDisplay time.Duration
	secureCookie bool
	health       HealthChecker
	logger       *zap.Logger
}

// Option configures an APIHandler
type Option func(*APIHandler)

// WithImagesDir enables the asset existence check for catalog images
func WithImagesDir(dir string) Option {
	return func(h *APIHandler) { h.images = NewImageResolver(dir) }
}

// WithToastDisplay sets the display hint returned with notifications
func WithToastDisplay(d time.Duration) Option {
	return func(h *APIHandler) { h.toastDisplay = d }
}

// WithSecureCookie marks the session cookie Secure
func WithSecureCookie(secure bool) Option {
	return func(h *APIHandler) { h.secureCookie = secure }
}

// WithHealthChecker adds a dependency to the health endpoint
func WithHealthChecker(hc HealthChecker) Option {
	return func(h *APIHandler) { h.health = hc }
}

// WithLogger sets the handler logger
func WithLogger(l *zap.Logger) Option {
	return func(h *APIHandler) { h.logger = l }
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(storefront *services.StorefrontService, sessions *session.Registry, opts ...Option) *APIHandler {
	h := &APIHandler{
		storefront:   storefront,
		sessions:     sessions,
		images:       NewImageResolver(""),
		toastDisplay: 2 * time.Second,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.GET("/catalog", h.GetCatalog)
		api.GET("/catalog/:category", h.GetCategory)
	}

	shop := api.Group("", h.sessionMiddleware())
	{
		shop.GET("/cart", h.GetCart)
		shop.POST("/cart/items", h.AddItem)
		shop.PATCH("/cart/items", h.ChangeQuantity)
		shop.DELETE("/cart", h.ClearCart)
		shop.GET("/order", h.GetOrder)
		shop.GET("/notification", h.GetNotification)
	}
}

type addItemRequest struct {
	Name string `json:"name" binding:"required"`
}

type changeQuantityRequest struct {
	Name  string `json:"name" binding:"required"`
	Delta *int   `json:"delta" binding:"required"`
}

// Health handles liveness checks
func (h *APIHandler) Health(c *gin.Context) {
	body := gin.H{
		"status":        "ok",
		"catalog_items": h.storefront.Catalog().Len(),
		"sessions":      h.sessions.Len(),
	}
	if h.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := h.health.Health(ctx); err != nil {
			h.logger.Warn("neo4j health check failed", zap.Error(err))
			body["status"] = "degraded"
			body["neo4j"] = "unavailable"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["neo4j"] = "ok"
	}
	c.JSON(http.StatusOK, body)
}

// GetCatalog handles requests for the full menu grouped by category
func (h *APIHandler) GetCatalog(c *gin.Context) {
	groups := make([]categoryView, 0, len(models.Categories))
	for _, cat := range models.Categories {
		groups = append(groups, h.categoryView(cat))
	}
	c.JSON(http.StatusOK, gin.H{"categories": groups})
}

// GetCategory handles requests for a single menu section
func (h *APIHandler) GetCategory(c *gin.Context) {
	cat, ok := models.ParseCategory(c.Param("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}
	c.JSON(http.StatusOK, h.categoryView(cat))
}

// GetCart handles requests for the shopper's cart
func (h *APIHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.storefront.Cart(currentSession(c)))
}

// AddItem handles adding one unit of a menu item to the cart
func (h *APIHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	view, err := h.storefront.AddItem(currentSession(c), req.Name)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.logger.Error("error adding item", zap.String("item", req.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
		return
	}
	c.JSON(http.StatusCreated, view)
}

// ChangeQuantity handles +/- adjustments on a cart line
func (h *APIHandler) ChangeQuantity(c *gin.Context) {
	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.storefront.ChangeQuantity(currentSession(c), req.Name, *req.Delta))
}

// ClearCart handles emptying the cart
func (h *APIHandler) ClearCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.storefront.Clear(currentSession(c)))
}

// GetOrder handles requests for the order message and WhatsApp link
func (h *APIHandler) GetOrder(c *gin.Context) {
	c.JSON(http.StatusOK, h.storefront.Order(currentSession(c)))
}

// GetNotification hands out the pending toast, at most once
func (h *APIHandler) GetNotification(c *gin.Context) {
	n, ok := h.storefront.Notification(currentSession(c))
	c.JSON(http.StatusOK, gin.H{
		"pending":    ok,
		"message":    n.Message,
		"display_ms": h.toastDisplay.Milliseconds(),
	})
}

type itemView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Weight      string `json:"weight"`
	Price       string `json:"price"`
	PriceLabel  string `json:"price_label"`
	Image       string `json:"image"`
	Placeholder string `json:"placeholder,omitempty"`
	Category    string `json:"category"`
}

type categoryView struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Items []itemView `json:"items"`
}

func (h *APIHandler) categoryView(cat models.Category) categoryView {
	orders := h.storefront.Orders()
	items := h.storefront.Catalog().ByCategory(cat)
	views := make([]itemView, 0, len(items))
	for _, it := range items {
		image, placeholder := h.images.Resolve(it.Image)
		views = append(views, itemView{
			Name:        it.Name,
			Description: it.Description,
			Weight:      it.Weight,
			Price:       it.Price.StringFixed(2),
			PriceLabel:  orders.FormatPrice(it.Price),
			Image:       image,
			Placeholder: placeholder,
			Category:    string(it.Category),
		})
	}
	return categoryView{Key: string(cat), Label: cat.Label(), Items: views}
}
