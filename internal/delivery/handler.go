package delivery

import (
	"kairopay/internal/config"
	v1 "kairopay/internal/delivery/rest/v1"
	"kairopay/internal/logger"
	"kairopay/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	Services *service.Services
	Db       *gorm.DB
	Config   *config.Config
	Log      logger.Logger
}

func (h *Handler) InitAPI(r *gin.Engine) {
	apiGroup := r.Group("/api")

	apiHandler := v1.NewHandler(h.Services, h.Db, h.Config, h.Log)

	{
		apiHandler.InitRoutes(apiGroup)
	}
}

func InitHandler(services *service.Services, db *gorm.DB, config *config.Config, log logger.Logger) *Handler {
	return &Handler{
		Config:   config,
		Log:      log,
		Services: services,
		Db:       db,
	}
}
