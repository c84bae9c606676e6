package domain

type Merchants struct {
	Model
	ID         uint   `gorm:"primaryKey" json:"-"`
	MerchantID string `gorm:"uniqueIndex;size:36;not null" json:"merchant_id"`
	// external identity subject (Privy DID); one merchant per subject
	PrivyDID  string `gorm:"uniqueIndex;not null" json:"privy_did"`
	EvmWallet string `gorm:"type:text" json:"evm_wallet,omitempty"`
	SolWallet string `gorm:"type:text" json:"sol_wallet,omitempty"`

	Apps []Apps `gorm:"foreignKey:MerchantID;references:MerchantID" json:"apps"`
}

// Apps is owned by its merchant; rows are only ever appended through the
// merchants repository so app_id uniqueness stays checkable at one boundary.
type Apps struct {
	Model
	ID         uint   `gorm:"primaryKey" json:"-"`
	MerchantID string `gorm:"size:36;index;not null" json:"-"`
	AppID      string `gorm:"uniqueIndex;size:36;not null" json:"app_id"`
	// bcrypt hash; the plaintext key is shown once at creation and never stored
	ApiKeyHash string `gorm:"size:64;not null" json:"-"`
	Name       string `gorm:"size:128;not null" json:"name"`
	WebhookURL string `gorm:"type:text" json:"webhook_url,omitempty"`
}

// FindApp returns the app with the given id, or nil.
func (m *Merchants) FindApp(appID string) *Apps {
	for i := range m.Apps {
		if m.Apps[i].AppID == appID {
			return &m.Apps[i]
		}
	}
	return nil
}

// FirstApp returns the merchant's oldest app, or nil if none exist.
// Session-token auth falls back to it when no app id is supplied.
func (m *Merchants) FirstApp() *Apps {
	if len(m.Apps) == 0 {
		return nil
	}
	return &m.Apps[0]
}
