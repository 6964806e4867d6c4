package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/orderdesk/backend/internal/application/order"
	"github.com/orderdesk/backend/internal/interfaces/http/dto"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles the document-to-order endpoints
type OrderHandler struct {
	BaseHandler
	orderService  *orderapp.Service
	maxUploadSize int64
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *orderapp.Service, maxUploadSize int64) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		maxUploadSize: maxUploadSize,
	}
}

// Extract accepts a multipart document upload, runs extraction and
// forwards the result to the company's commerce system.
func (h *OrderHandler) Extract(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerCode := c.PostForm("cus_id")
	if customerCode == "" {
		h.BadRequest(c, "cus_id is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	if h.maxUploadSize > 0 && fileHeader.Size > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file exceeds maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	result, err := h.orderService.ExtractOrder(c.Request.Context(), orderapp.ExtractOrderInput{
		UserID:       userID,
		CustomerCode: customerCode,
		FileName:     fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Data:         data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns the company's orders, newest first.
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), orderapp.ListOrdersInput{
		UserID:   userID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Orders, result.Total, result.Page, req.PageSize)
}

// Get returns a single order with its lines.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	orderID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	result, err := h.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Verify asks the commerce system to confirm an order.
func (h *OrderHandler) Verify(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}
	orderID, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	result, err := h.orderService.VerifyOrder(c.Request.Context(), orderapp.VerifyOrderInput{
		UserID:  userID,
		OrderID: orderID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CleanupUploads sweeps stale files out of the upload directory.
func (h *OrderHandler) CleanupUploads(c *gin.Context) {
	removed, err := h.orderService.CleanupUploads(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"removed": removed})
}
