package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/company"
	"github.com/orderdesk/backend/internal/domain/shared"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 5 << 20
)

// Client talks to a company's commerce system. Endpoint URLs and the
// API key come from the company record, so one client instance serves
// every tenant.
type Client struct {
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a commerce client with the given request timeout.
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// OrderItem is a single line sent to the commerce system.
type OrderItem struct {
	Name     string `json:"name"`
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

// PlaceOrderRequest is the payload for the order endpoint.
type PlaceOrderRequest struct {
	MSCode     string      `json:"ms_code"`
	CustomerID string      `json:"cus_id"`
	Orders     []OrderItem `json:"orders"`
}

// OrderLine is a reconciled line returned by the commerce system.
type OrderLine struct {
	MaterialID string           `json:"material_id"`
	Barcode    string           `json:"barcode"`
	Name       string           `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Quantity   int              `json:"quantity"`
	Status     string           `json:"status"`
}

// PlaceOrderResult is the parsed order endpoint response.
type PlaceOrderResult struct {
	OrderID    string          `json:"order_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Orders     []OrderLine     `json:"orders"`
	Raw        json.RawMessage `json:"-"`
}

// Customer is a customer record from the commerce system.
type Customer struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// VerifyRequest is the payload for the verify endpoint.
type VerifyRequest struct {
	MSCode  string `json:"ms_code"`
	OrderID string `json:"order_id"`
}

// VerifyResult is the parsed verify endpoint response.
type VerifyResult struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// PlaceOrder forwards extracted order lines to the company's order
// endpoint and returns the reconciled result.
func (c *Client) PlaceOrder(ctx context.Context, com *company.Company, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	endpoint, err := com.OrderEndpoint()
	if err != nil {
		return nil, err
	}

	data, err := c.postJSON(ctx, com, endpoint, req)
	if err != nil {
		return nil, err
	}

	var result PlaceOrderResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	result.Raw = data
	return &result, nil
}

// ListCustomers fetches the customer list from the company's
// customers endpoint.
func (c *Client) ListCustomers(ctx context.Context, com *company.Company) ([]Customer, error) {
	endpoint, err := com.CustomersEndpoint()
	if err != nil {
		return nil, err
	}

	data, err := c.getJSON(ctx, com, endpoint)
	if err != nil {
		return nil, err
	}

	var customers []Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers response: %w", err)
	}
	return customers, nil
}

// VerifyOrder asks the commerce system to confirm an order it
// previously accepted.
func (c *Client) VerifyOrder(ctx context.Context, com *company.Company, req VerifyRequest) (*VerifyResult, error) {
	endpoint, err := com.VerifyEndpoint()
	if err != nil {
		return nil, err
	}

	data, err := c.postJSON(ctx, com, endpoint, req)
	if err != nil {
		return nil, err
	}

	var result VerifyResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}
	return &result, nil
}

func (c *Client) postJSON(ctx context.Context, com *company.Company, url string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, com)
}

func (c *Client) getJSON(ctx context.Context, com *company.Company, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, com)
}

func (c *Client) do(req *http.Request, com *company.Company) (json.RawMessage, error) {
	req.Header.Set("Accept", "application/json")
	if com.APIKey != "" {
		req.Header.Set("X-API-Key", com.APIKey)
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("commerce request failed",
			zap.String("company", com.Code),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, shared.ErrUpstream
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read commerce response: %w", err)
	}

	c.logger.Debug("commerce response received",
		zap.String("company", com.Code),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("commerce system returned error",
			zap.String("company", com.Code),
			zap.Int("status", resp.StatusCode),
		)
		return nil, shared.NewDomainError("UPSTREAM_ERROR",
			fmt.Sprintf("commerce system returned status %d", resp.StatusCode))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != nil && env.Error.Message != "" {
			return nil, shared.NewDomainError("UPSTREAM_ERROR", env.Error.Message)
		}
		if env.Data != nil {
			return env.Data, nil
		}
	}
	// Plain payloads without the response envelope are passed
	// through as-is.
	return body, nil
}
