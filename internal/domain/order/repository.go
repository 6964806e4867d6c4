package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save persists an order together with its lines
	Save(ctx context.Context, order *Order) error

	// Update updates an existing order (status, totals)
	Update(ctx context.Context, order *Order) error

	// FindByID finds an order by ID, lines included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByExternalID finds an order by the id the third party assigned,
	// scoped to a company
	FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*Order, error)

	// FindByCompany returns orders for a company, newest first
	FindByCompany(ctx context.Context, companyID uuid.UUID, filter Filter) ([]*Order, int64, error)
}

// Filter contains pagination options for order queries
type Filter struct {
	Status   *OrderStatus
	Page     int
	PageSize int
}

// NewFilter creates a Filter with default pagination
func NewFilter() Filter {
	return Filter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f Filter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f Filter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
