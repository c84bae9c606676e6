package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// lifetime of a fresh order; no transaction may attach after it passes
const OrderTTL = 15 * time.Minute

type Orders struct {
	Model
	ID          uint            `gorm:"primaryKey" json:"-"`
	OrderID     string          `gorm:"uniqueIndex;size:36;not null" json:"order_id"`
	MerchantID  string          `gorm:"size:36;index;not null" json:"merchant_id"`
	AppID       string          `gorm:"size:36;index;not null" json:"app_id"`
	CustomerDID string          `gorm:"type:text" json:"customer_did,omitempty"`
	AmountUSD   decimal.Decimal `gorm:"type:numeric;not null" json:"amount_usd"`
	Currency    string          `gorm:"size:16;not null" json:"currency"`
	Metadata    map[string]any  `gorm:"serializer:json" json:"metadata,omitempty"`
	// resolved at creation: explicit request value, else the app default
	WebhookURL  string      `gorm:"type:text" json:"webhook_url,omitempty"`
	Status      OrderStatus `gorm:"type:int2;not null" json:"status"`
	CheckoutURL string      `gorm:"type:text" json:"checkout_url"`
	ExpiresAt   time.Time   `gorm:"not null" json:"expires_at"`
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.ToString() + `"`), nil
}

func (o *Orders) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

type OrderStatus uint8

const (
	ORDER_CREATED OrderStatus = iota
	ORDER_PENDING
	ORDER_COMPLETED
	ORDER_VERIFIED
	ORDER_FAILED
)

var OrderStatuses = [...]string{"created", "pending", "completed", "verified", "failed"}

func StrToOrderStatus(s string) (OrderStatus, bool) {
	for i, statusName := range OrderStatuses {
		if s == statusName {
			return OrderStatus(i), true
		}
	}
	return ORDER_CREATED, false
}

func (s OrderStatus) ToString() string {
	return OrderStatuses[s]
}

func (s OrderStatus) IsTerminal() bool {
	return s == ORDER_VERIFIED || s == ORDER_FAILED
}

// CanTransition reports whether the status may move to the target.
// Status only moves forward; failed is reachable from any non-terminal state.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == ORDER_FAILED {
		return true
	}
	return to > s
}
