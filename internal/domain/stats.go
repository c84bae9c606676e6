package domain

import "github.com/shopspring/decimal"

// AppBalances aggregates an app's order and transaction activity for the
// dashboard. Revenue totals are rounded to 2 decimal places here since this
// is a presentation boundary.
type AppBalances struct {
	AppID              string                     `json:"app_id"`
	TotalOrders        int64                      `json:"total_orders"`
	OrdersByStatus     map[string]int64           `json:"orders_by_status"`
	RevenueUSD         decimal.Decimal            `json:"revenue_usd"`
	VolumeByAsset      map[string]decimal.Decimal `json:"volume_by_asset"`
	VolumeByChain      map[string]decimal.Decimal `json:"volume_by_chain"`
	RecentTransactions []Transactions             `json:"recent_transactions"`
}

// MerchantBalances is the wallet-level placeholder view. Live balance
// fetching needs an on-chain integration this service does not do, so
// amounts are always zero.
type MerchantBalances struct {
	Wallets   map[string]string `json:"wallets"`
	Balances  map[string]string `json:"balances"`
	UpdatedAt string            `json:"updated_at"`
}
