package company

import (
	"net/url"
	"strings"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// Endpoints holds the per-company commerce API endpoint URLs. A company may
// leave individual endpoints unset, in which case the corresponding operation
// is unavailable for that tenant.
type Endpoints struct {
	Customers string `json:"customers,omitempty"`
	Order     string `json:"order,omitempty"`
	Verify    string `json:"verify,omitempty"`
}

// Company represents a tenant: a customer organisation whose users upload
// order documents. Each company selects its own extraction prompt/schema and
// points at its own third-party commerce API.
type Company struct {
	shared.BaseEntity
	Name             string
	Code             string
	APIKey           string
	Endpoints        Endpoints
	ExtractionPrompt string
	// ExtractionSchema is the JSON schema the extraction service is asked to
	// conform to. Empty means the default order-items schema.
	ExtractionSchema string
	Active           bool
}

// Errors returned by endpoint accessors
var (
	ErrCustomersEndpointNotConfigured = shared.NewDomainError("ENDPOINT_NOT_CONFIGURED", "Customers endpoint not configured for this company")
	ErrOrderEndpointNotConfigured     = shared.NewDomainError("ENDPOINT_NOT_CONFIGURED", "Order endpoint not configured for this company")
	ErrVerifyEndpointNotConfigured    = shared.NewDomainError("ENDPOINT_NOT_CONFIGURED", "Verify endpoint not configured for this company")
)

// NewCompany creates a new active company
func NewCompany(name, code string) (*Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Company code cannot be empty")
	}

	return &Company{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Code:       code,
		Active:     true,
	}, nil
}

// SetEndpoints validates and sets the commerce endpoint URLs
func (c *Company) SetEndpoints(e Endpoints) error {
	for _, raw := range []string{e.Customers, e.Order, e.Verify} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return shared.NewDomainError("INVALID_ENDPOINT", "Endpoint must be an absolute URL")
		}
	}
	c.Endpoints = e
	c.Touch()
	return nil
}

// CustomersEndpoint returns the customers endpoint or a domain error when unset
func (c *Company) CustomersEndpoint() (string, error) {
	if c.Endpoints.Customers == "" {
		return "", ErrCustomersEndpointNotConfigured
	}
	return c.Endpoints.Customers, nil
}

// OrderEndpoint returns the order endpoint or a domain error when unset
func (c *Company) OrderEndpoint() (string, error) {
	if c.Endpoints.Order == "" {
		return "", ErrOrderEndpointNotConfigured
	}
	return c.Endpoints.Order, nil
}

// VerifyEndpoint returns the verify endpoint or a domain error when unset
func (c *Company) VerifyEndpoint() (string, error) {
	if c.Endpoints.Verify == "" {
		return "", ErrVerifyEndpointNotConfigured
	}
	return c.Endpoints.Verify, nil
}

// Deactivate marks the company inactive
func (c *Company) Deactivate() {
	c.Active = false
	c.Touch()
}
