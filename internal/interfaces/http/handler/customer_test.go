package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	orderapp "github.com/orderdesk/backend/internal/application/order"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/commerce"
)

func TestCustomerHandlerList(t *testing.T) {
	t.Run("returns customers", func(t *testing.T) {
		h, m := newOrderTestHandler(0)
		user, com := newOrderTestTenant(t)
		m.expectTenant(user, com)
		m.commerce.On("ListCustomers", mock.Anything, com).Return([]commerce.Customer{
			{ID: "1", Code: "CUST-1", Name: "Corner Shop"},
			{ID: "2", Code: "CUST-2", Name: "Main Street Market"},
		}, nil)

		customerHandler := NewCustomerHandler(h.orderService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		setAuthenticatedUser(c, user.ID.String())

		customerHandler.List(c)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data []orderapp.CustomerView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "CUST-1", resp.Data[0].Code)
		assert.Equal(t, "Main Street Market", resp.Data[1].Name)
	})

	t.Run("upstream failure", func(t *testing.T) {
		h, m := newOrderTestHandler(0)
		user, com := newOrderTestTenant(t)
		m.expectTenant(user, com)
		m.commerce.On("ListCustomers", mock.Anything, com).
			Return(nil, shared.ErrUpstream)

		customerHandler := NewCustomerHandler(h.orderService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		setAuthenticatedUser(c, user.ID.String())

		customerHandler.List(c)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h, _ := newOrderTestHandler(0)
		customerHandler := NewCustomerHandler(h.orderService)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)

		customerHandler.List(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
