package v1

import (
	"kairopay/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type envelopeError struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

type envelope struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *envelopeError `json:"error,omitempty"`
}

// POST /merchant/register/app
type responseAppCreated struct {
	AppID      string `json:"app_id"`
	ApiKey     string `json:"api_key"` // shown once, never retrievable again
	Name       string `json:"name"`
	WebhookURL string `json:"webhook_url,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// POST /apps/:app_id/orders
type responseOrderCreated struct {
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
	ExpiresAt   string `json:"expires_at"`
}

type responseOrderListItem struct {
	domain.Orders
	TransactionCount int64 `json:"transaction_count"`
}

type responseOrderList struct {
	Orders  []responseOrderListItem `json:"orders"`
	Total   int64                   `json:"total"`
	Limit   int                     `json:"limit"`
	Offset  int                     `json:"offset"`
	HasMore bool                    `json:"has_more"`
}

type responseOrderInfo struct {
	domain.Orders
	Transactions []domain.Transactions `json:"transactions"`
}

type responseTxList struct {
	Transactions      []domain.Transactions `json:"transactions"`
	TotalTransactions int64                 `json:"total_transactions"`
	TotalVolumeUSD    decimal.Decimal       `json:"total_volume_usd"`
	Limit             int                   `json:"limit"`
	Offset            int                   `json:"offset"`
	HasMore           bool                  `json:"has_more"`
}

func respondData(c *gin.Context, statusCode int, data any) {
	c.AbortWithStatusJSON(statusCode, envelope{Success: true, Data: data})
}

func respondCode(c *gin.Context, code domain.ErrorCode, message string) {
	c.AbortWithStatusJSON(code.HTTPStatus(), envelope{
		Success: false,
		Error:   &envelopeError{Code: code, Message: message},
	})
}

// respondErr maps a service error onto the envelope. Unrecognized errors
// come out as INTERNAL_ERROR with a generic message; the caller is expected
// to have logged the detail with an error id.
func respondErr(c *gin.Context, err error) {
	code := domain.CodeForErr(err)
	if code == domain.CodeInternalError {
		respondCode(c, code, domain.ErrMsgInternalServerError)
		return
	}
	respondCode(c, code, err.Error())
}

func respondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = domain.ErrMsgBadRequest
	}
	respondCode(c, domain.CodeInvalidRequest, message)
}
