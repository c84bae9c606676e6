package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transactions struct {
	Model
	ID uint `gorm:"primaryKey" json:"-"`
	// caller-supplied; the unique index is what rejects double submission
	TxHash      string          `gorm:"uniqueIndex;not null" json:"tx_hash"`
	OrderID     string          `gorm:"size:36;index;not null" json:"order_id"`
	MerchantID  string          `gorm:"size:36;not null" json:"merchant_id"`
	AppID       string          `gorm:"size:36;index;not null" json:"app_id"`
	Chain       string          `gorm:"size:64;not null" json:"chain"`
	Asset       string          `gorm:"size:64;not null" json:"asset"`
	Amount      decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	UsdValue    decimal.Decimal `gorm:"type:numeric;not null" json:"usd_value"`
	FromAddr    string          `gorm:"type:text" json:"from"`
	ToAddr      string          `gorm:"type:text" json:"to"`
	Status      TxStatus        `gorm:"type:int2;not null" json:"status"`
	ConfirmedAt *time.Time      `json:"confirmed_at,omitempty"`
}

func (s TxStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.ToString() + `"`), nil
}

type TxStatus uint8

const (
	TX_PENDING TxStatus = iota
	TX_CONFIRMED
	TX_FAILED
)

var TxStatuses = [...]string{"pending", "confirmed", "failed"}

func StrToTxStatus(s string) (TxStatus, bool) {
	for i, statusName := range TxStatuses {
		if s == statusName {
			return TxStatus(i), true
		}
	}
	return TX_PENDING, false
}

func (s TxStatus) ToString() string {
	return TxStatuses[s]
}

func (s TxStatus) IsConfirmed() bool {
	return s == TX_CONFIRMED
}
