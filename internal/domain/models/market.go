package models

import "time"

// PricePoint is one marketplace reading: rental price and rented hashrate.
type PricePoint struct {
	Price    float64
	Hashrate float64
}

// MarketSample holds the inputs of one market-risk scoring call.
type MarketSample struct {
	CurrentPrice    float64 `json:"current_price"`
	AveragePrice    float64 `json:"average_price"`
	CurrentHashrate float64 `json:"current_hashrate"`
	AverageHashrate float64 `json:"average_hashrate"`
	NetworkHashrate float64 `json:"network_hashrate"`
	ExchangeRatio   float64 `json:"exchange_ratio"`
}

// MarketRatios are the derived ratios the market rules are evaluated on.
type MarketRatios struct {
	EarningPerUnit float64 `json:"earning_per_unit"`
	Profitability  float64 `json:"profitability"`
	Price          float64 `json:"price"`
	Speed          float64 `json:"speed"`
	Network        float64 `json:"network"`
}

// MarketResult is the outcome of the market-risk scorer.
type MarketResult struct {
	Score  int          `json:"score"`
	Ratios MarketRatios `json:"ratios"`
	Fired  []string     `json:"fired_rules"`
}

// MarketReport is the audit record kept on a HealthScore.
type MarketReport struct {
	MarketResult
	Sample      MarketSample `json:"sample"`
	LastChecked time.Time    `json:"last_checked"`
}
