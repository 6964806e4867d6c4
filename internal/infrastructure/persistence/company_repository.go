package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/company"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
)

// GormCompanyRepository implements company.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create creates a new company
func (r *GormCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	var model models.CompanyModel
	if err := model.FromDomain(c); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update updates an existing company
func (r *GormCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	var model models.CompanyModel
	if err := model.FromDomain(c); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&models.CompanyModel{}).
		Where("id = ?", model.ID).
		Select("*").Omit("id", "created_at").
		Updates(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByCode finds a company by its code
func (r *GormCompanyRepository) FindByCode(ctx context.Context, code string) (*company.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAll returns all companies
func (r *GormCompanyRepository) FindAll(ctx context.Context) ([]*company.Company, error) {
	var modelList []models.CompanyModel
	if err := r.db.WithContext(ctx).Order("code asc").Find(&modelList).Error; err != nil {
		return nil, err
	}

	companies := make([]*company.Company, 0, len(modelList))
	for i := range modelList {
		c, err := modelList[i].ToDomain()
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, nil
}
