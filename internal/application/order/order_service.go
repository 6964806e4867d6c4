package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/domain/company"
	"github.com/orderdesk/backend/internal/domain/extraction"
	"github.com/orderdesk/backend/internal/domain/identity"
	"github.com/orderdesk/backend/internal/domain/order"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/commerce"
	extractor "github.com/orderdesk/backend/internal/infrastructure/extraction"
	"github.com/orderdesk/backend/internal/infrastructure/storage"
)

// Extractor pulls order items out of an uploaded document.
type Extractor interface {
	Extract(ctx context.Context, req extractor.Request) ([]extraction.Item, error)
}

// CommerceGateway talks to a company's commerce system.
type CommerceGateway interface {
	PlaceOrder(ctx context.Context, com *company.Company, req commerce.PlaceOrderRequest) (*commerce.PlaceOrderResult, error)
	ListCustomers(ctx context.Context, com *company.Company) ([]commerce.Customer, error)
	VerifyOrder(ctx context.Context, com *company.Company, req commerce.VerifyRequest) (*commerce.VerifyResult, error)
}

// Service runs the document-to-order pipeline: store the upload,
// extract items, forward them to the company's commerce system and
// persist the reconciled order.
type Service struct {
	orderRepo   order.OrderRepository
	userRepo    identity.UserRepository
	companyRepo company.CompanyRepository
	extractor   Extractor
	commerce    CommerceGateway
	uploads     storage.UploadStore
	logger      *zap.Logger
}

// NewService creates an order service.
func NewService(
	orderRepo order.OrderRepository,
	userRepo identity.UserRepository,
	companyRepo company.CompanyRepository,
	ext Extractor,
	gateway CommerceGateway,
	uploads storage.UploadStore,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		extractor:   ext,
		commerce:    gateway,
		uploads:     uploads,
		logger:      logger,
	}
}

// ExtractOrder ingests an uploaded document through the full pipeline.
// The uploaded file is kept on disk only for the duration of the call.
func (s *Service) ExtractOrder(ctx context.Context, input ExtractOrderInput) (*OrderView, error) {
	user, com, err := s.loadTenant(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	docType, err := extraction.ParseDocumentType(input.ContentType)
	if err != nil {
		return nil, err
	}

	path, err := s.uploads.Save(input.FileName, input.Data)
	if err != nil {
		s.logger.Error("Failed to store upload", zap.Error(err))
		return nil, shared.NewDomainError("UPLOAD_FAILED", "Failed to store uploaded file")
	}
	defer func() {
		if err := s.uploads.Remove(path); err != nil {
			s.logger.Warn("Failed to remove upload", zap.String("path", path), zap.Error(err))
		}
	}()

	items, err := s.extractor.Extract(ctx, extractor.Request{
		Document: input.Data,
		MimeType: string(docType),
		Prompt:   com.ExtractionPrompt,
		Schema:   com.ExtractionSchema,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS_EXTRACTED", "No order items were found in the document")
	}

	s.logger.Info("Document extracted",
		zap.String("user_id", user.ID.String()),
		zap.String("company", com.Code),
		zap.Int("items", len(items)),
	)

	result, err := s.commerce.PlaceOrder(ctx, com, commerce.PlaceOrderRequest{
		MSCode:     user.MSCode,
		CustomerID: input.CustomerCode,
		Orders:     toOrderItems(items),
	})
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(com.ID, user.ID, input.CustomerCode, user.MSCode)
	if err != nil {
		return nil, err
	}
	o.SourceFile = input.FileName
	o.SourceType = string(docType)
	o.RawResponse = result.Raw

	if err := o.Reconcile(result.OrderID, toReconciledLines(result.Orders)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Error("Failed to save order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save order")
	}

	s.logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("external_id", o.ExternalID),
		zap.String("status", string(o.Status)),
		zap.String("total", o.Total.String()),
	)

	view := NewOrderView(o)
	return &view, nil
}

// ListOrders returns a page of the company's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, input ListOrdersInput) (*ListOrdersResult, error) {
	_, com, err := s.loadTenant(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	filter := order.Filter{Page: input.Page, PageSize: input.PageSize}
	if input.Status != "" {
		status := order.OrderStatus(input.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status filter")
		}
		filter.Status = &status
	}

	orders, total, err := s.orderRepo.FindByCompany(ctx, com.ID, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	return &ListOrdersResult{Orders: views, Total: total, Page: page}, nil
}

// GetOrder returns one of the company's orders with its lines.
func (s *Service) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, error) {
	_, com, err := s.loadTenant(ctx, userID)
	if err != nil {
		return nil, err
	}

	o, err := s.findCompanyOrder(ctx, com.ID, orderID)
	if err != nil {
		return nil, err
	}

	view := NewOrderView(o)
	return &view, nil
}

// VerifyOrder asks the commerce system to confirm an order and records
// the confirmation locally.
func (s *Service) VerifyOrder(ctx context.Context, input VerifyOrderInput) (*OrderView, error) {
	_, com, err := s.loadTenant(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	o, err := s.findCompanyOrder(ctx, com.ID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if o.ExternalID == "" {
		return nil, shared.NewDomainError("INVALID_STATE", "Order has no external order id to verify")
	}

	if _, err := s.commerce.VerifyOrder(ctx, com, commerce.VerifyRequest{
		MSCode:  o.MSCode,
		OrderID: o.ExternalID,
	}); err != nil {
		return nil, err
	}

	if err := o.MarkVerified(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, o); err != nil {
		s.logger.Error("Failed to update verified order", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update order")
	}

	s.logger.Info("Order verified",
		zap.String("order_id", o.ID.String()),
		zap.String("external_id", o.ExternalID),
	)

	view := NewOrderView(o)
	return &view, nil
}

// ListCustomers fetches the customer list from the company's commerce
// system.
func (s *Service) ListCustomers(ctx context.Context, userID uuid.UUID) ([]CustomerView, error) {
	_, com, err := s.loadTenant(ctx, userID)
	if err != nil {
		return nil, err
	}

	customers, err := s.commerce.ListCustomers(ctx, com)
	if err != nil {
		return nil, err
	}

	views := make([]CustomerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, CustomerView{ID: c.ID, Code: c.Code, Name: c.Name})
	}
	return views, nil
}

// CleanupUploads removes files left behind in the upload directory.
func (s *Service) CleanupUploads(ctx context.Context) (int, error) {
	removed, err := s.uploads.Clear()
	if err != nil {
		s.logger.Error("Failed to clear uploads", zap.Error(err))
		return 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to clear uploads")
	}
	if removed > 0 {
		s.logger.Info("Stale uploads removed", zap.Int("count", removed))
	}
	return removed, nil
}

// loadTenant resolves the requesting user and their company. Every
// order operation goes through here so company lookup and the active
// check stay in one place.
func (s *Service) loadTenant(ctx context.Context, userID uuid.UUID) (*identity.User, *company.Company, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	com, err := s.companyRepo.FindByID(ctx, user.CompanyID)
	if err != nil {
		s.logger.Error("Company lookup failed",
			zap.String("user_id", user.ID.String()),
			zap.String("company_id", user.CompanyID.String()),
			zap.Error(err),
		)
		return nil, nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
	}
	if !com.Active {
		return nil, nil, shared.NewDomainError("COMPANY_INACTIVE", "Company is not active")
	}

	return user, com, nil
}

func (s *Service) findCompanyOrder(ctx context.Context, companyID, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	// Orders from other companies are indistinguishable from missing ones.
	if o.CompanyID != companyID {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func toOrderItems(items []extraction.Item) []commerce.OrderItem {
	out := make([]commerce.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, commerce.OrderItem{
			Name:     it.Name,
			Barcode:  it.Barcode,
			Quantity: it.Quantity,
		})
	}
	return out
}

func toReconciledLines(lines []commerce.OrderLine) []order.ReconciledLine {
	out := make([]order.ReconciledLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, order.ReconciledLine{
			Barcode:    l.Barcode,
			Name:       l.Name,
			MaterialID: l.MaterialID,
			Quantity:   l.Quantity,
			Price:      l.Price,
			Status:     order.LineStatus(l.Status),
		})
	}
	return out
}
