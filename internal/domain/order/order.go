package order

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/backend/internal/domain/shared"
)

// OrderStatus represents the status of an intake order
type OrderStatus string

const (
	// OrderStatusPlaced means every line was accepted by the commerce API.
	OrderStatusPlaced OrderStatus = "PLACED"
	// OrderStatusPartial means some lines were accepted, others were
	// unavailable or unknown to the third-party catalog.
	OrderStatusPartial OrderStatus = "PARTIAL"
	// OrderStatusRejected means no line was accepted.
	OrderStatusRejected OrderStatus = "REJECTED"
	// OrderStatusVerified means the third party confirmed the order.
	OrderStatusVerified OrderStatus = "VERIFIED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPlaced, OrderStatusPartial, OrderStatusRejected, OrderStatusVerified:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// LineStatus is the per-line outcome reported by the commerce API
type LineStatus string

const (
	LineStatusAdded        LineStatus = "added"
	LineStatusNotAvailable LineStatus = "not available"
	LineStatusNotFound     LineStatus = "not found"
)

// Accepted reports whether the line counts toward the order total
func (s LineStatus) Accepted() bool {
	return s == LineStatusAdded
}

// Line is one reconciled order line. Barcode and quantity come from the
// extracted document; material id, name, price and status come from the
// commerce API response. Price is nil when the catalog did not know the
// barcode.
type Line struct {
	ID         uuid.UUID
	OrderID    uuid.UUID
	Barcode    string
	Name       string
	MaterialID string
	Quantity   int
	Price      *decimal.Decimal
	Status     LineStatus
}

// Amount returns price x quantity for the line, zero when the price is unset
func (l *Line) Amount() decimal.Decimal {
	if l.Price == nil {
		return decimal.Zero
	}
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the local record of a document-extracted order that was forwarded
// to the company's commerce API. ExternalID is the order id assigned by the
// third party; Total is computed locally from the accepted lines.
type Order struct {
	shared.BaseEntity
	CompanyID    uuid.UUID
	UserID       uuid.UUID
	ExternalID   string
	CustomerCode string
	MSCode       string
	SourceFile   string
	SourceType   string
	Status       OrderStatus
	Total        decimal.Decimal
	AddedCount   int
	MissingCount int
	// RawResponse keeps the commerce API order response verbatim for
	// auditing and troubleshooting.
	RawResponse []byte
	Lines       []Line
}

// NewOrder creates a new order shell; lines and totals are filled in by
// Reconcile once the commerce API has answered.
func NewOrder(companyID, userID uuid.UUID, customerCode, msCode string) (*Order, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY_ID", "Company ID cannot be empty")
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	customerCode = strings.TrimSpace(customerCode)
	if customerCode == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_CODE", "Customer code cannot be empty")
	}

	return &Order{
		BaseEntity:   shared.NewBaseEntity(),
		CompanyID:    companyID,
		UserID:       userID,
		CustomerCode: customerCode,
		MSCode:       strings.TrimSpace(msCode),
		Total:        decimal.Zero,
	}, nil
}

// ReconciledLine is one line as reported back by the commerce API
type ReconciledLine struct {
	Barcode    string
	Name       string
	MaterialID string
	Quantity   int
	Price      *decimal.Decimal
	Status     LineStatus
}

// Reconcile ingests the commerce API response: it attaches the reported
// lines, computes the order total over accepted lines only, counts the
// accepted and missing lines, and derives the order status.
func (o *Order) Reconcile(externalID string, lines []ReconciledLine) error {
	if len(lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Order has no lines to reconcile")
	}

	o.ExternalID = externalID
	o.Lines = make([]Line, 0, len(lines))
	o.AddedCount = 0
	o.MissingCount = 0

	total := decimal.Zero
	for _, rl := range lines {
		status := rl.Status
		if status == "" {
			status = LineStatusNotFound
		}

		line := Line{
			ID:         uuid.New(),
			OrderID:    o.ID,
			Barcode:    rl.Barcode,
			Name:       rl.Name,
			MaterialID: rl.MaterialID,
			Quantity:   rl.Quantity,
			Price:      rl.Price,
			Status:     status,
		}
		o.Lines = append(o.Lines, line)

		if status.Accepted() {
			o.AddedCount++
			total = total.Add(line.Amount())
		} else {
			o.MissingCount++
		}
	}

	o.Total = total
	switch {
	case o.AddedCount == 0:
		o.Status = OrderStatusRejected
	case o.MissingCount == 0:
		o.Status = OrderStatusPlaced
	default:
		o.Status = OrderStatusPartial
	}
	o.Touch()

	return nil
}

// MarkVerified records a successful third-party verification
func (o *Order) MarkVerified() error {
	if o.Status == OrderStatusRejected {
		return shared.NewDomainError("INVALID_STATE", "A rejected order cannot be verified")
	}
	o.Status = OrderStatusVerified
	o.Touch()
	return nil
}
