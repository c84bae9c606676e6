package service

import (
	"time"

	"kairopay/internal/domain"
	"kairopay/internal/repository"

	"gorm.io/gorm"
)

const recentTxLimit = 10

type StatsService struct {
	db     *gorm.DB
	orders repository.Orders
	txs    repository.Transactions
}

func NewStatsService(db *gorm.DB, orders repository.Orders, txs repository.Transactions) *StatsService {
	return &StatsService{db: db, orders: orders, txs: txs}
}

func (s *StatsService) AppBalances(tx *gorm.DB, appID string) (*domain.AppBalances, error) {
	counts, err := s.orders.CountByStatus(tx, appID)
	if err != nil {
		return nil, err
	}

	revenue, err := s.orders.SumRevenue(tx, appID)
	if err != nil {
		return nil, err
	}

	byAsset, err := s.txs.SumUsdByAsset(tx, appID)
	if err != nil {
		return nil, err
	}

	byChain, err := s.txs.SumUsdByChain(tx, appID)
	if err != nil {
		return nil, err
	}

	recent, err := s.txs.Recent(tx, appID, recentTxLimit)
	if err != nil {
		return nil, err
	}

	balances := &domain.AppBalances{
		AppID:              appID,
		OrdersByStatus:     make(map[string]int64, len(counts)),
		RevenueUSD:         revenue.Round(2),
		VolumeByAsset:      byAsset,
		VolumeByChain:      byChain,
		RecentTransactions: recent,
	}
	for status, count := range counts {
		balances.OrdersByStatus[status.ToString()] = count
		balances.TotalOrders += count
	}
	for asset, volume := range byAsset {
		balances.VolumeByAsset[asset] = volume.Round(2)
	}
	for chain, volume := range byChain {
		balances.VolumeByChain[chain] = volume.Round(2)
	}
	return balances, nil
}

// MerchantBalances returns the wallet placeholder view. No on-chain
// integration exists, so every amount reads "0".
func (s *StatsService) MerchantBalances(merchant *domain.Merchants) *domain.MerchantBalances {
	wallets := make(map[string]string)
	balances := make(map[string]string)

	if merchant.EvmWallet != "" {
		wallets["evm"] = merchant.EvmWallet
		balances["ETH"] = "0"
		balances["USDC"] = "0"
	}
	if merchant.SolWallet != "" {
		wallets["sol"] = merchant.SolWallet
		balances["SOL"] = "0"
	}

	return &domain.MerchantBalances{
		Wallets:   wallets,
		Balances:  balances,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
