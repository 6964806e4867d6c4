package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	assert.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type loginForm struct {
		Username string `json:"username" binding:"required,min=3"`
		Password string `json:"password" binding:"required,min=8"`
	}

	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req loginForm
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("reports each invalid field by its json name", func(t *testing.T) {
		body := strings.NewReader(`{"username": "ab", "password": "short"}`)
		req := httptest.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Equal(t, "Request validation failed", resp.Error.Message)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "username", resp.Error.Details[0].Field)
		assert.Equal(t, "Must be at least 3 characters", resp.Error.Details[0].Message)
		assert.Equal(t, "password", resp.Error.Details[1].Field)
	})

	t.Run("passes valid input through", func(t *testing.T) {
		body := strings.NewReader(`{"username": "operator1", "password": "s3cret-pass!"}`)
		req := httptest.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-validation errors get an empty detail list", func(t *testing.T) {
		body := strings.NewReader(`{not json`)
		req := httptest.NewRequest(http.MethodPost, "/test", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})
}

func TestValidationMessage(t *testing.T) {
	type ruleSet struct {
		Required string `json:"required_field" binding:"required"`
		Oneof    string `json:"oneof_field" binding:"omitempty,oneof=PLACED PARTIAL"`
		Max      string `json:"max_field" binding:"omitempty,max=4"`
		MinInt   int    `json:"min_int" binding:"omitempty,min=2"`
	}

	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(ruleSet{Oneof: "BOGUS", Max: "too long", MinInt: 1})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-1", resp.Error.RequestID)

	messages := make(map[string]string)
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", messages["required_field"])
	assert.Equal(t, "Must be one of: PLACED PARTIAL", messages["oneof_field"])
	assert.Equal(t, "Must be at most 4 characters", messages["max_field"])
	assert.Equal(t, "Must be at least 2", messages["min_int"])
}
