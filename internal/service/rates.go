package service

import (
	"time"

	"kairopay/internal/infra/cache"

	"github.com/shopspring/decimal"
)

// RatesService is the pass-through PriceOracle: every submitted asset is
// treated as a dollar stable, so usd value equals the raw amount. The cache
// and interface are in place for when a real price feed lands.
type RatesService struct {
	cache *cache.Cache
}

func NewRatesService(cache *cache.Cache) *RatesService {
	return &RatesService{cache: cache}
}

func (s *RatesService) Convert(asset string, amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := s.rate(asset)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func (s *RatesService) rate(asset string) (decimal.Decimal, error) {
	cached, ok := s.cache.Load(asset).(decimal.Decimal)
	if ok {
		return cached, nil
	}

	rate := decimal.NewFromInt(1)

	s.cache.Set(asset, rate, time.Minute*5)
	return rate, nil
}
