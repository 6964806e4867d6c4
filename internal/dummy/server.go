package dummy

import (
	"math/rand"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Line statuses reported back per order line.
const (
	StatusAdded        = "added"
	StatusNotAvailable = "not available"
	StatusNotFound     = "not found"
)

// Customer is a commerce system customer record.
type Customer struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// OrderItem is one incoming order line.
type OrderItem struct {
	Name     string `json:"name"`
	Barcode  string `json:"barcode" binding:"required"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the order endpoint payload.
type OrderRequest struct {
	MSCode     string      `json:"ms_code"`
	CustomerID string      `json:"cus_id" binding:"required"`
	Orders     []OrderItem `json:"orders" binding:"required,min=1"`
}

// OrderLine is one reconciled line in the order response.
type OrderLine struct {
	MaterialID string           `json:"material_id"`
	Barcode    string           `json:"barcode"`
	Name       string           `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Quantity   int              `json:"quantity"`
	Status     string           `json:"status"`
}

// OrderResponse is the order endpoint response.
type OrderResponse struct {
	OrderID    string          `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Orders     []OrderLine     `json:"orders"`
}

// VerifyRequest is the verify endpoint payload.
type VerifyRequest struct {
	MSCode  string `json:"ms_code"`
	OrderID string `json:"order_id" binding:"required"`
}

// VerifyResponse is the verify endpoint response.
type VerifyResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Config holds the simulator settings.
type Config struct {
	// UnavailableRate is the probability a matched line is reported
	// out of stock.
	UnavailableRate float64
	// Rand drives the availability roll. A nil value uses the global
	// source; tests pass a seeded one.
	Rand *rand.Rand
}

// Server simulates a third-party commerce system. It matches order
// lines against a product catalog and randomly reports a fraction of
// matched lines as out of stock.
type Server struct {
	catalog   *Catalog
	customers []Customer
	cfg       Config
	logger    *zap.Logger

	mu     sync.Mutex
	placed map[string]bool
}

// NewServer creates a commerce simulator.
func NewServer(catalog *Catalog, customers []Customer, cfg Config, logger *zap.Logger) *Server {
	if len(customers) == 0 {
		customers = DefaultCustomers()
	}
	return &Server{
		catalog:   catalog,
		customers: customers,
		cfg:       cfg,
		logger:    logger,
		placed:    make(map[string]bool),
	}
}

// DefaultCustomers returns the built-in customer list.
func DefaultCustomers() []Customer {
	return []Customer{
		{ID: "1001", Code: "C-1001", Name: "Central Market"},
		{ID: "1002", Code: "C-1002", Name: "Eastside Wholesale"},
		{ID: "1003", Code: "C-1003", Name: "Harbor Foods"},
	}
}

// RegisterRoutes mounts the simulator endpoints on a gin engine.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/", s.Health)
	engine.GET("/health", s.Health)
	engine.GET("/customers", s.ListCustomers)
	engine.POST("/order", s.PlaceOrder)
	engine.POST("/verify", s.VerifyOrder)
}

// Health reports simulator readiness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "products": s.catalog.Len()})
}

// ListCustomers returns the customer list.
func (s *Server) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, s.customers)
}

// PlaceOrder matches each line against the catalog and prices the
// accepted ones. Matched lines may randomly come back out of stock.
func (s *Server) PlaceOrder(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cus_id and at least one order line are required"})
		return
	}

	lines := make([]OrderLine, 0, len(req.Orders))
	total := decimal.Zero
	added := 0

	for _, item := range req.Orders {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		product, ok := s.catalog.Lookup(item.Barcode)
		if !ok {
			lines = append(lines, OrderLine{
				Barcode:  item.Barcode,
				Name:     item.Name,
				Quantity: quantity,
				Status:   StatusNotFound,
			})
			continue
		}

		price := product.Price
		line := OrderLine{
			MaterialID: product.MaterialID,
			Barcode:    product.Barcode,
			Name:       product.Name,
			Price:      &price,
			Quantity:   quantity,
			Status:     StatusAdded,
		}

		if s.roll() < s.cfg.UnavailableRate {
			line.Status = StatusNotAvailable
		} else {
			total = total.Add(price.Mul(decimal.NewFromInt(int64(quantity))))
			added++
		}
		lines = append(lines, line)
	}

	orderID := uuid.NewString()
	s.mu.Lock()
	s.placed[orderID] = true
	s.mu.Unlock()

	s.logger.Info("Order received",
		zap.String("order_id", orderID),
		zap.String("cus_id", req.CustomerID),
		zap.Int("lines", len(lines)),
		zap.Int("added", added),
		zap.String("total", total.String()),
	)

	c.JSON(http.StatusOK, OrderResponse{
		OrderID:    orderID,
		TotalPrice: total,
		Orders:     lines,
	})
}

// VerifyOrder confirms an order previously placed with the simulator.
func (s *Server) VerifyOrder(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order_id is required"})
		return
	}

	s.mu.Lock()
	known := s.placed[req.OrderID]
	s.mu.Unlock()

	if !known {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown order_id"})
		return
	}

	s.logger.Info("Order verified", zap.String("order_id", req.OrderID))

	c.JSON(http.StatusOK, VerifyResponse{
		OrderID: req.OrderID,
		Status:  "verified",
	})
}

func (s *Server) roll() float64 {
	if s.cfg.Rand != nil {
		return s.cfg.Rand.Float64()
	}
	return rand.Float64()
}
