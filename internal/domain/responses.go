package domain

import (
	"errors"
	"net/http"
)

// ErrorCode is the machine-readable code carried in error envelopes.
type ErrorCode string

const (
	CodeInvalidRequest         ErrorCode = "INVALID_REQUEST"
	CodeUnauthorized           ErrorCode = "UNAUTHORIZED"
	CodeForbidden              ErrorCode = "FORBIDDEN"
	CodeMerchantExists         ErrorCode = "MERCHANT_EXISTS"
	CodeMerchantNotFound       ErrorCode = "MERCHANT_NOT_FOUND"
	CodeAppNotFound            ErrorCode = "APP_NOT_FOUND"
	CodeOrderNotFound          ErrorCode = "ORDER_NOT_FOUND"
	CodeOrderExpired           ErrorCode = "ORDER_EXPIRED"
	CodeTransactionExists      ErrorCode = "TRANSACTION_EXISTS"
	CodeNoConfirmedTransaction ErrorCode = "NO_CONFIRMED_TRANSACTION"
	CodeRateLimitExceeded      ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeDatabaseUnavailable    ErrorCode = "DATABASE_CONNECTION_FAILED"
	CodeInternalError          ErrorCode = "INTERNAL_ERROR"
)

var errorCodeStatuses = map[ErrorCode]int{
	CodeInvalidRequest:         http.StatusBadRequest,
	CodeUnauthorized:           http.StatusUnauthorized,
	CodeForbidden:              http.StatusForbidden,
	CodeMerchantExists:         http.StatusConflict,
	CodeMerchantNotFound:       http.StatusNotFound,
	CodeAppNotFound:            http.StatusNotFound,
	CodeOrderNotFound:          http.StatusNotFound,
	CodeOrderExpired:           http.StatusBadRequest,
	CodeTransactionExists:      http.StatusConflict,
	CodeNoConfirmedTransaction: http.StatusBadRequest,
	CodeRateLimitExceeded:      http.StatusTooManyRequests,
	CodeDatabaseUnavailable:    http.StatusServiceUnavailable,
	CodeInternalError:          http.StatusInternalServerError,
}

func (c ErrorCode) HTTPStatus() int {
	if status, ok := errorCodeStatuses[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// user-facing messages; none of them leak internals
const (
	ErrMsgBadRequest           = "bad request"
	ErrMsgInternalServerError  = "internal server error"
	ErrMsgRateLimitExceeded    = "rate limit exceeded"
	ErrMsgDatabaseUnavailable  = "database unreachable"
	ErrMsgMerchantExists       = "merchant with this privy did already exists"
	ErrMsgMerchantNotFound     = "merchant not found"
	ErrMsgAppNotFound          = "app not found"
	ErrMsgOrderNotFound        = "order not found"
	ErrMsgOrderExists          = "order with this id already exists"
	ErrMsgOrderExpired         = "order has expired"
	ErrMsgTransactionExists    = "transaction already recorded"
	ErrMsgNoConfirmedTx        = "order has no confirmed transactions"
	ErrMsgMissingAuthHeader    = "missing Authorization header"
	ErrMsgInvalidApiKey        = "invalid api key"
	ErrMsgInvalidApiKeyFormat  = "invalid api key format"
	ErrMsgInvalidSessionToken  = "invalid or expired session token"
	ErrMsgApiKeyWrongApp       = "api key does not belong to this app"
	ErrMsgAmountMustBePositive = "amount_usd must be a positive number"
	ErrMsgAmountInvalid        = "amount must be a positive decimal string"
)

// sentinel errors returned by the service layer; the delivery layer maps
// them onto codes instead of inspecting error strings
var (
	ErrMerchantExists         = errors.New(ErrMsgMerchantExists)
	ErrMerchantNotFound       = errors.New(ErrMsgMerchantNotFound)
	ErrAppNotFound            = errors.New(ErrMsgAppNotFound)
	ErrOrderNotFound          = errors.New(ErrMsgOrderNotFound)
	ErrOrderExists            = errors.New(ErrMsgOrderExists)
	ErrOrderExpired           = errors.New(ErrMsgOrderExpired)
	ErrTransactionExists      = errors.New(ErrMsgTransactionExists)
	ErrNoConfirmedTransaction = errors.New(ErrMsgNoConfirmedTx)

	ErrMissingAuthHeader   = errors.New(ErrMsgMissingAuthHeader)
	ErrInvalidApiKey       = errors.New(ErrMsgInvalidApiKey)
	ErrInvalidApiKeyFormat = errors.New(ErrMsgInvalidApiKeyFormat)
	ErrInvalidSessionToken = errors.New(ErrMsgInvalidSessionToken)
	ErrApiKeyWrongApp      = errors.New(ErrMsgApiKeyWrongApp)

	ErrInternalServerError = errors.New(ErrMsgInternalServerError)
)

// CodeForErr maps a service error onto its envelope code. Anything
// unrecognized is downgraded to INTERNAL_ERROR.
func CodeForErr(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrMerchantExists):
		return CodeMerchantExists
	case errors.Is(err, ErrMerchantNotFound):
		return CodeMerchantNotFound
	case errors.Is(err, ErrAppNotFound):
		return CodeAppNotFound
	case errors.Is(err, ErrOrderNotFound):
		return CodeOrderNotFound
	case errors.Is(err, ErrOrderExists):
		return CodeInvalidRequest
	case errors.Is(err, ErrOrderExpired):
		return CodeOrderExpired
	case errors.Is(err, ErrTransactionExists):
		return CodeTransactionExists
	case errors.Is(err, ErrNoConfirmedTransaction):
		return CodeNoConfirmedTransaction
	case errors.Is(err, ErrMissingAuthHeader),
		errors.Is(err, ErrInvalidApiKey),
		errors.Is(err, ErrInvalidApiKeyFormat),
		errors.Is(err, ErrInvalidSessionToken):
		return CodeUnauthorized
	case errors.Is(err, ErrApiKeyWrongApp):
		return CodeForbidden
	default:
		return CodeInternalError
	}
}
