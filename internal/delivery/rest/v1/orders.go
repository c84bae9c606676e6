package v1

import (
	"encoding/base64"
	"net/http"
	"time"

	"kairopay/internal/domain"
	"kairopay/internal/logger"
	"kairopay/internal/repository"
	"kairopay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// POST /apps/:app_id/orders
func (h *Handler) orderCreate(c *gin.Context) {
	var data struct {
		AmountFloat float64        `json:"amount_usd" validate:"required,gt=0"`
		Currency    string         `json:"currency" validate:"omitempty,max=16"`
		Metadata    map[string]any `json:"metadata"`
		WebhookURL  string         `json:"webhook_url" validate:"webhook,max=2048"`
		OrderID     string         `json:"order_id" validate:"omitempty,max=36"`
		CustomerDID string         `json:"customer_did" validate:"omitempty,max=255"`
	}

	errid := logger.GenErrorId()
	auth := authContext(c)

	if ok := bindAndValidate(c, &data); !ok {
		return
	}

	amount := decimal.NewFromFloat(data.AmountFloat)
	if !amount.IsPositive() {
		respondBadRequest(c, domain.ErrMsgAmountMustBePositive)
		return
	}

	if orderRateLimit(auth.AppID, DEFAULT_RATE_LIMIT) {
		respondCode(c, domain.CodeRateLimitExceeded, domain.ErrMsgRateLimitExceeded)
		return
	}

	order, err := h.services.Orders.Create(h.db, service.CreateOrderParams{
		MerchantID:  auth.MerchantID,
		AppID:       auth.AppID,
		OrderID:     data.OrderID,
		CustomerDID: data.CustomerDID,
		AmountUSD:   amount,
		Currency:    data.Currency,
		Metadata:    data.Metadata,
		WebhookURL:  data.WebhookURL,
	})
	if err != nil {
		if domain.CodeForErr(err) == domain.CodeInternalError {
			h.log.TemplOrderErr("create order error: "+err.Error(), errid, data.OrderID, amount, auth.AppID, c.Request.RequestURI, auth.MerchantID, c.ClientIP())
		}
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusCreated, responseOrderCreated{
		OrderID:     order.OrderID,
		CheckoutURL: order.CheckoutURL,
		ExpiresAt:   order.ExpiresAt.UTC().Format(time.RFC3339),
	})

	h.log.TemplOrderInfo("new order created", errid, order.OrderID, amount, auth.AppID, c.Request.RequestURI, auth.MerchantID, c.ClientIP())
}

// GET /apps/:app_id/orders
func (h *Handler) orderList(c *gin.Context) {
	auth := authContext(c)
	limit, offset := parsePagination(c)

	filter := repository.OrderFilter{AppID: auth.AppID, Limit: limit, Offset: offset}
	if raw := c.Query("status"); raw != "" {
		status, ok := domain.StrToOrderStatus(raw)
		if !ok {
			respondBadRequest(c, "unknown status filter")
			return
		}
		filter.Status = &status
	}

	orders, total, err := h.services.Orders.List(h.db, filter)
	if err != nil {
		respondErr(c, err)
		return
	}

	orderIDs := make([]string, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.OrderID)
	}

	// one grouped count for the whole page, not a query per order
	counts, err := h.services.Orders.CountTransactions(h.db, orderIDs)
	if err != nil {
		respondErr(c, err)
		return
	}

	items := make([]responseOrderListItem, 0, len(orders))
	for _, order := range orders {
		items = append(items, responseOrderListItem{Orders: order, TransactionCount: counts[order.OrderID]})
	}

	respondData(c, http.StatusOK, responseOrderList{
		Orders:  items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	})
}

// GET /apps/:app_id/orders/:order_id
func (h *Handler) orderInfo(c *gin.Context) {
	auth := authContext(c)

	order, transactions, err := h.services.Orders.Find(h.db, c.Param("order_id"), auth.AppID)
	if err != nil {
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusOK, responseOrderInfo{Orders: *order, Transactions: transactions})
}

// POST /apps/:app_id/orders/:order_id/complete
func (h *Handler) orderComplete(c *gin.Context) {
	errid := logger.GenErrorId()
	auth := authContext(c)

	order, err := h.services.Orders.Complete(h.db, c.Param("order_id"), auth.AppID)
	if err != nil {
		if domain.CodeForErr(err) == domain.CodeInternalError {
			h.log.TemplOrderErr("complete order error: "+err.Error(), errid, c.Param("order_id"), decimal.Zero, auth.AppID, c.Request.RequestURI, auth.MerchantID, c.ClientIP())
		}
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusOK, order)

	h.log.TemplOrderInfo("order verified", errid, order.OrderID, order.AmountUSD, auth.AppID, c.Request.RequestURI, auth.MerchantID, c.ClientIP())
}

// the checkout page submits amount as a decimal string, not a number
type submitTxRequest struct {
	TxHash   string `json:"tx_hash" validate:"required,min=1,max=128"`
	Chain    string `json:"chain" validate:"required,min=1,max=64"`
	Asset    string `json:"asset" validate:"required,min=1,max=64"`
	FromAddr string `json:"from" validate:"required,max=128"`
	ToAddr   string `json:"to" validate:"required,max=128"`
	Amount   string `json:"amount" validate:"required,max=64"`
}

// POST /orders/:order_id/tx — public, called by the hosted checkout page
func (h *Handler) orderSubmitTx(c *gin.Context) {
	var data submitTxRequest

	errid := logger.GenErrorId()
	orderID := c.Param("order_id")

	if ok := bindAndValidate(c, &data); !ok {
		return
	}

	if err := h.validateChainFields(data.Chain, data.TxHash, data.FromAddr, data.ToAddr); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(data.Amount)
	if err != nil || !amount.IsPositive() {
		respondBadRequest(c, domain.ErrMsgAmountInvalid)
		return
	}

	transaction, err := h.services.Orders.SubmitTransaction(h.db, service.SubmitTxParams{
		OrderID:  orderID,
		TxHash:   data.TxHash,
		Chain:    data.Chain,
		Asset:    data.Asset,
		FromAddr: data.FromAddr,
		ToAddr:   data.ToAddr,
		Amount:   amount,
	})
	if err != nil {
		if domain.CodeForErr(err) == domain.CodeInternalError {
			h.log.TemplOrderErr("submit transaction error: "+err.Error(), errid, orderID, amount, logger.NA, c.Request.RequestURI, logger.NA, c.ClientIP())
		}
		respondErr(c, err)
		return
	}

	respondData(c, http.StatusCreated, transaction)

	h.log.TemplOrderInfo("transaction submitted", errid, orderID, amount, transaction.AppID, c.Request.RequestURI, transaction.MerchantID, c.ClientIP())
}

// GET /orders/:order_id/qr-code — public png of the checkout url
func (h *Handler) orderQrCode(c *gin.Context) {
	errid := logger.GenErrorId()

	order, err := h.services.Orders.FindPublic(h.db, c.Param("order_id"))
	if err != nil {
		respondErr(c, err)
		return
	}

	qrCode, err := h.services.QrCodes.FindOrNew(order.CheckoutURL)
	if err != nil {
		h.log.TemplOrderErr("qr code error: "+err.Error(), errid, order.OrderID, order.AmountUSD, order.AppID, c.Request.RequestURI, order.MerchantID, c.ClientIP())
		respondErr(c, domain.ErrInternalServerError)
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(qrCode)
	if err != nil {
		h.log.TemplOrderErr("qr code decode error: "+err.Error(), errid, order.OrderID, order.AmountUSD, order.AppID, c.Request.RequestURI, order.MerchantID, c.ClientIP())
		respondErr(c, domain.ErrInternalServerError)
		return
	}

	c.Data(http.StatusOK, "image/png", imageData)
}

func (h *Handler) initOrderRoutes(g *gin.RouterGroup) {
	g.POST("/apps/:app_id/orders", h.authMiddleware(), h.orderCreate)
	g.GET("/apps/:app_id/orders", h.authMiddleware(), h.orderList)
	g.GET("/apps/:app_id/orders/:order_id", h.authMiddleware(), h.orderInfo)
	g.POST("/apps/:app_id/orders/:order_id/complete", h.authMiddleware(), h.orderComplete)

	// public checkout-facing routes
	g.POST("/orders/:order_id/tx", h.orderSubmitTx)
	g.GET("/orders/:order_id/qr-code", h.orderQrCode)
}
