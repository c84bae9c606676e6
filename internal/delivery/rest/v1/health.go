package v1

import (
	"net/http"
	"time"

	"kairopay/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		respondCode(c, domain.CodeDatabaseUnavailable, domain.ErrMsgDatabaseUnavailable)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) initHealthRoutes(g *gin.RouterGroup) {
	g.GET("/health", h.health)
}
