package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/order"
)

// ExtractOrderInput carries an uploaded document and its target customer.
type ExtractOrderInput struct {
	UserID       uuid.UUID
	CustomerCode string
	FileName     string
	ContentType  string
	Data         []byte
}

// LineView is one order line as returned by the API.
type LineView struct {
	Barcode    string           `json:"barcode"`
	Name       string           `json:"name"`
	MaterialID string           `json:"material_id"`
	Quantity   int              `json:"quantity"`
	Price      *decimal.Decimal `json:"price"`
	Status     string           `json:"status"`
}

// OrderView is the API representation of a stored order.
type OrderView struct {
	ID           uuid.UUID       `json:"id"`
	ExternalID   string          `json:"external_id"`
	CustomerCode string          `json:"customer_code"`
	MSCode       string          `json:"ms_code"`
	SourceFile   string          `json:"source_file"`
	SourceType   string          `json:"source_type"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	AddedCount   int             `json:"added_count"`
	MissingCount int             `json:"missing_count"`
	Lines        []LineView      `json:"lines"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ListOrdersInput filters and paginates the order listing.
type ListOrdersInput struct {
	UserID   uuid.UUID
	Status   string
	Page     int
	PageSize int
}

// ListOrdersResult is a page of orders.
type ListOrdersResult struct {
	Orders []OrderView `json:"orders"`
	Total  int64       `json:"total"`
	Page   int         `json:"page"`
}

// VerifyOrderInput identifies the order to verify.
type VerifyOrderInput struct {
	UserID  uuid.UUID
	OrderID uuid.UUID
}

// CustomerView is a commerce system customer.
type CustomerView struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewOrderView maps a domain order to its API representation.
func NewOrderView(o *order.Order) OrderView {
	lines := make([]LineView, 0, len(o.Lines))
	for i := range o.Lines {
		l := &o.Lines[i]
		lines = append(lines, LineView{
			Barcode:    l.Barcode,
			Name:       l.Name,
			MaterialID: l.MaterialID,
			Quantity:   l.Quantity,
			Price:      l.Price,
			Status:     string(l.Status),
		})
	}

	return OrderView{
		ID:           o.ID,
		ExternalID:   o.ExternalID,
		CustomerCode: o.CustomerCode,
		MSCode:       o.MSCode,
		SourceFile:   o.SourceFile,
		SourceType:   o.SourceType,
		Status:       string(o.Status),
		Total:        o.Total,
		AddedCount:   o.AddedCount,
		MissingCount: o.MissingCount,
		Lines:        lines,
		CreatedAt:    o.CreatedAt,
	}
}
