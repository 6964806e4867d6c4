package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements order.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save persists an order together with its lines in one transaction
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	var model models.OrderModel
	model.FromDomain(o)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines := model.Lines
		model.Lines = nil
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Update updates order-level fields (status, totals); lines are immutable
// once reconciled.
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":        o.Status,
			"total":         o.Total,
			"external_id":   o.ExternalID,
			"added_count":   o.AddedCount,
			"missing_count": o.MissingCount,
			"updated_at":    o.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an order by ID, lines included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Lines").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID finds an order by the third-party order id within a company
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, companyID uuid.UUID, externalID string) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Lines").
		Where("company_id = ? AND external_id = ?", companyID, externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany returns orders for a company with pagination, newest first
func (r *GormOrderRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter order.Filter) ([]*order.Order, int64, error) {
	where := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("company_id = ?", companyID)
		if filter.Status != nil {
			tx = tx.Where("status = ?", *filter.Status)
		}
		return tx
	}

	var total int64
	if err := where(r.db.WithContext(ctx).Model(&models.OrderModel{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var modelList []models.OrderModel
	if err := where(r.db.WithContext(ctx)).Preload("Lines").
		Order("created_at desc").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&modelList).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, 0, len(modelList))
	for i := range modelList {
		orders = append(orders, modelList[i].ToDomain())
	}
	return orders, total, nil
}
