package company

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// Create creates a new company
	Create(ctx context.Context, company *Company) error

	// Update updates an existing company
	Update(ctx context.Context, company *Company) error

	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByCode finds a company by its code
	FindByCode(ctx context.Context, code string) (*Company, error)

	// FindAll returns all companies
	FindAll(ctx context.Context) ([]*Company, error)
}
