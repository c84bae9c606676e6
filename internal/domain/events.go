package domain

import (
	"time"
)

// webhook event types
const (
	EVENT_ORDER_CREATED  = "order.created"
	EVENT_ORDER_PENDING  = "order.pending"
	EVENT_ORDER_COMPLETE = "order.complete"
)

// WebhookEvent is the payload POSTed to a merchant webhook url. The
// signature field is filled in by the sender right before dispatch.
type WebhookEvent struct {
	Event   string `json:"event"`
	OrderID string `json:"order_id"`
	TxHash  string `json:"tx_hash,omitempty"`
	Chain   string `json:"chain,omitempty"`
	Asset   string `json:"asset,omitempty"`
	// decimal string so omitempty drops it on events without a transaction
	Amount     string `json:"amount,omitempty"`
	MerchantID string `json:"merchant_id"`
	AppID      string `json:"app_id"`
	Timestamp  string `json:"timestamp"`
	Signature  string `json:"signature,omitempty"`
}

func NewWebhookEvent(eventType string, fields WebhookEvent) WebhookEvent {
	fields.Event = eventType
	fields.Timestamp = time.Now().UTC().Format(time.RFC3339)
	fields.Signature = ""
	return fields
}

// dispatch outcomes recorded in the events table
const (
	EVENT_STATUS_SENT    = "sent"
	EVENT_STATUS_FAILED  = "failed"
	EVENT_STATUS_DROPPED = "dropped"
)

// Events is an audit log of webhook dispatch attempts. Rows are written
// after the fact and never drive retries.
type Events struct {
	ID         uint   `gorm:"primaryKey"`
	RelationID string `gorm:"size:36;index;not null"` // order id
	Type       string `gorm:"type:varchar(255)"`
	Payload    string
	Status     string
	CreatedAt  time.Time
}
