package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/orderdesk/backend/internal/application/order"
)

// CustomerHandler exposes the commerce system's customer list
type CustomerHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(orderService *orderapp.Service) *CustomerHandler {
	return &CustomerHandler{orderService: orderService}
}

// List proxies the customer list from the company's commerce system.
func (h *CustomerHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customers, err := h.orderService.ListCustomers(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customers)
}
