package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/orderdesk/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order domain entity.
// RawResponse keeps the commerce API's reply verbatim for auditing.
type OrderModel struct {
	BaseModel
	CompanyID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	ExternalID   string            `gorm:"type:varchar(100);index"`
	CustomerCode string            `gorm:"type:varchar(50);not null"`
	MSCode       string            `gorm:"type:varchar(50);column:ms_code"`
	SourceFile   string            `gorm:"type:varchar(255)"`
	SourceType   string            `gorm:"type:varchar(50)"`
	Status       order.OrderStatus `gorm:"type:varchar(20);not null"`
	Total        decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	AddedCount   int               `gorm:"not null;default:0"`
	MissingCount int               `gorm:"not null;default:0"`
	RawResponse  datatypes.JSON    `gorm:"type:jsonb"`
	Lines        []OrderLineModel  `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel is the persistence model for one order line
type OrderLineModel struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Barcode    string           `gorm:"type:varchar(50);not null"`
	Name       string           `gorm:"type:varchar(255)"`
	MaterialID string           `gorm:"type:varchar(50)"`
	Quantity   int              `gorm:"not null"`
	Price      *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Status     order.LineStatus `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time        `gorm:"not null"`
	UpdatedAt  time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *order.Order {
	lines := make([]order.Line, 0, len(m.Lines))
	for i := range m.Lines {
		lines = append(lines, m.Lines[i].ToDomain())
	}

	return &order.Order{
		BaseEntity:   m.BaseModel.ToDomain(),
		CompanyID:    m.CompanyID,
		UserID:       m.UserID,
		ExternalID:   m.ExternalID,
		CustomerCode: m.CustomerCode,
		MSCode:       m.MSCode,
		SourceFile:   m.SourceFile,
		SourceType:   m.SourceType,
		Status:       m.Status,
		Total:        m.Total,
		AddedCount:   m.AddedCount,
		MissingCount: m.MissingCount,
		RawResponse:  []byte(m.RawResponse),
		Lines:        lines,
	}
}

// FromDomain populates the persistence model from a domain Order entity
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.CompanyID = o.CompanyID
	m.UserID = o.UserID
	m.ExternalID = o.ExternalID
	m.CustomerCode = o.CustomerCode
	m.MSCode = o.MSCode
	m.SourceFile = o.SourceFile
	m.SourceType = o.SourceType
	m.Status = o.Status
	m.Total = o.Total
	m.AddedCount = o.AddedCount
	m.MissingCount = o.MissingCount
	m.RawResponse = datatypes.JSON(o.RawResponse)

	m.Lines = make([]OrderLineModel, 0, len(o.Lines))
	for i := range o.Lines {
		var lm OrderLineModel
		lm.FromDomain(&o.Lines[i])
		m.Lines = append(m.Lines, lm)
	}
}

// ToDomain converts the persistence model to a domain Line
func (m *OrderLineModel) ToDomain() order.Line {
	return order.Line{
		ID:         m.ID,
		OrderID:    m.OrderID,
		Barcode:    m.Barcode,
		Name:       m.Name,
		MaterialID: m.MaterialID,
		Quantity:   m.Quantity,
		Price:      m.Price,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Line
func (m *OrderLineModel) FromDomain(l *order.Line) {
	m.ID = l.ID
	m.OrderID = l.OrderID
	m.Barcode = l.Barcode
	m.Name = l.Name
	m.MaterialID = l.MaterialID
	m.Quantity = l.Quantity
	m.Price = l.Price
	m.Status = l.Status
}
