package logger

import (
	"github.com/shopspring/decimal"
)

func (l Logger) TemplOrderErr(message string, errorId string, orderId string, amount decimal.Decimal, appId string, uri string, merchantId string, ip string) string {
	l.Error(message, LS_ORDERS, true, "order_id", orderId, "amount_usd", amount.String(), "app_id", appId, "uri", uri, "error_id", errorId, "ip", ip, "merchant_id", merchantId)
	return errorId
}

func (l Logger) TemplOrderInfo(message string, errorId string, orderId string, amount decimal.Decimal, appId string, uri string, merchantId string, ip string) string {
	l.Info(message, LS_ORDERS, true, "order_id", orderId, "amount_usd", amount.String(), "app_id", appId, "uri", uri, "error_id", errorId, "ip", ip, "merchant_id", merchantId)
	return errorId
}

func (l Logger) TemplAuthErr(message string, errorId string, uri string, ip string) string {
	l.Error(message, LS_AUTH, true, "uri", uri, "error_id", errorId, "ip", ip)
	return errorId
}

func (l Logger) TemplWebhookErr(message, url string, event string, orderId string, payload []byte) {
	l.Error(message, LS_WEBHOOKS, true, "url", url, "event", event, "order_id", orderId, "payload", string(payload))
}

func (l Logger) TemplWebhookInfo(message, url string, event string, orderId string) {
	l.Info(message, LS_WEBHOOKS, true, "url", url, "event", event, "order_id", orderId)
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, LS_FATAL, true, "error", err.Error(), "ipv4", ipv4)
}
