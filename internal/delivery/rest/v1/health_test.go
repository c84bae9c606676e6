package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"kairopay/internal/config"
	"kairopay/internal/infra/postgres"
	"kairopay/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs a local postgres matching postgres.TEST_CONFIG.
func TestHealth(t *testing.T) {
	if os.Getenv("TEST_POSTGRES") == "" {
		t.Skip("set TEST_POSTGRES to run health tests")
	}
	db := postgres.InitTest(postgres.TEST_CONFIG)
	t.Cleanup(func() { postgres.DropTables(db) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil, db, &config.Config{}, logger.Init(&config.Config{Prod_env: false}))
	h.initHealthRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Status    string `json:"status"`
			Database  string `json:"database"`
			Timestamp string `json:"timestamp"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", resp.Data.Status)
	assert.Equal(t, "connected", resp.Data.Database)
	assert.NotEmpty(t, resp.Data.Timestamp)
}
