package v1

import (
	"net/http"
	"time"

	"kairopay/internal/domain"
	"kairopay/internal/logger"
	"kairopay/internal/service"

	"github.com/gin-gonic/gin"
)

// POST /merchant/register
func (h *Handler) merchantRegister(c *gin.Context) {
	var data struct {
		PrivyDID  string `json:"privy_did" validate:"required,min=1,max=255"`
		EvmWallet string `json:"evm_wallet" validate:"omitempty,max=128"`
		SolWallet string `json:"sol_wallet" validate:"omitempty,max=128"`
	}

	errid := logger.GenErrorId()

	if ok := bindAndValidate(c, &data); !ok {
		return
	}

	merchant, err := h.services.Merchants.Register(h.db, service.RegisterParams{
		PrivyDID:  data.PrivyDID,
		EvmWallet: data.EvmWallet,
		SolWallet: data.SolWallet,
	})
	if err != nil {
		if domain.CodeForErr(err) == domain.CodeInternalError {
			h.log.Error("register merchant error: "+err.Error(), logger.LS_MERCHANTS, false, "errid", errid, "ip", c.ClientIP())
		}
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"merchant_id": merchant.MerchantID,
		"privy_did":   merchant.PrivyDID,
		"evm_wallet":  merchant.EvmWallet,
		"sol_wallet":  merchant.SolWallet,
		"created_at":  merchant.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// POST /merchant/register/app
func (h *Handler) merchantRegisterApp(c *gin.Context) {
	var data struct {
		PrivyDID   string `json:"privy_did" validate:"required,min=1,max=255"`
		Name       string `json:"name" validate:"required,min=1,max=128"`
		WebhookURL string `json:"webhook_url" validate:"webhook,max=2048"`
	}

	errid := logger.GenErrorId()

	if ok := bindAndValidate(c, &data); !ok {
		return
	}

	app, apiKey, err := h.services.Merchants.CreateApp(h.db, service.CreateAppParams{
		PrivyDID:   data.PrivyDID,
		Name:       data.Name,
		WebhookURL: data.WebhookURL,
	})
	if err != nil {
		if domain.CodeForErr(err) == domain.CodeInternalError {
			h.log.Error("create app error: "+err.Error(), logger.LS_MERCHANTS, false, "errid", errid, "ip", c.ClientIP())
		}
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusCreated, responseAppCreated{
		AppID:      app.AppID,
		ApiKey:     apiKey,
		Name:       app.Name,
		WebhookURL: app.WebhookURL,
		CreatedAt:  app.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// GET /merchant/:privy_did
func (h *Handler) merchantInfo(c *gin.Context) {
	merchant, err := h.services.Merchants.FindByPrivyDID(h.db, c.Param("privy_did"))
	if err != nil {
		respondErr(c, err)
		return
	}

	// api key hashes are tagged out of the app json
	respondData(c, http.StatusOK, merchant)
}

// GET /merchant/:privy_did/balances
func (h *Handler) merchantBalances(c *gin.Context) {
	merchant, err := h.services.Merchants.FindByPrivyDID(h.db, c.Param("privy_did"))
	if err != nil {
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusOK, h.services.Stats.MerchantBalances(merchant))
}

func (h *Handler) initMerchantRoutes(g *gin.RouterGroup) {
	g.POST("/merchant/register", h.merchantRegister)
	g.POST("/merchant/register/app", h.merchantRegisterApp)
	g.GET("/merchant/:privy_did", h.merchantInfo)
	g.GET("/merchant/:privy_did/balances", h.merchantBalances)
}
