package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/orderdesk/backend/internal/infrastructure/persistence"
)

func newMockDatabase(t *testing.T) (*persistence.Database, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	return &persistence.Database{DB: db}, mock
}

func healthRequest(t *testing.T, h *SystemHandler) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/system/health", nil)
	h.Health(c)
	return w
}

func TestSystemHandlerRoot(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	NewSystemHandler(nil).Root(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w.Body.Bytes())
	assert.True(t, resp.Success)
}

func TestSystemHandlerHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectPing()

		w := healthRequest(t, NewSystemHandler(db))

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data HealthResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Data.Status)
		assert.Equal(t, "ok", resp.Data.Database)
		assert.NotEmpty(t, resp.Data.GoVersion)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database unreachable", func(t *testing.T) {
		db, mock := newMockDatabase(t)
		mock.ExpectPing().WillReturnError(assert.AnError)

		w := healthRequest(t, NewSystemHandler(db))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp struct {
			Data HealthResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Data.Status)
		assert.Equal(t, "unreachable", resp.Data.Database)
	})

	t.Run("no database configured", func(t *testing.T) {
		w := healthRequest(t, NewSystemHandler(nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
