// Package scoring holds the pure scoring rules behind the health score.
//
// Every scorer is an ordered rule table applied strictly in sequence against
// the running score. Several rules share thresholds or are gated on the score
// left by earlier rules, so the order is part of the contract.
package scoring

import (
	"math"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/internal/domain/models"
)

const (
	// MaxScore is the healthiest possible score.
	MaxScore = 5
	// MinScore is the critical score.
	MinScore = 0

	// blocksPerDay is reward per block times blocks per day (60 * 60 * 24).
	blocksPerDay = 86400.0
	// priceUnitScale aligns earnings with marketplace price/speed decimals.
	priceUnitScale = 1e8
)

type marketRule struct {
	name    string
	applies func(r models.MarketRatios, score int) bool
}

var marketRules = []marketRule{
	{"profitability>=1.5", func(r models.MarketRatios, _ int) bool { return r.Profitability >= 1.5 }},
	{"price>=1.5", func(r models.MarketRatios, _ int) bool { return r.Price >= 1.5 }},
	{"price>=2.0", func(r models.MarketRatios, _ int) bool { return r.Price >= 2.0 }},
	{"network>=0.5", func(r models.MarketRatios, _ int) bool { return r.Network >= 0.5 }},
	{"network>=0.75", func(r models.MarketRatios, _ int) bool { return r.Network >= 0.75 }},
	{"network>=0.9", func(r models.MarketRatios, score int) bool { return score > 1 && r.Network >= 0.9 }},
	{"speed>=1.5", func(r models.MarketRatios, score int) bool { return score > 1 && r.Speed >= 1.5 }},
	// Holding half the network is unhealthy even without price or speed moves.
	{"network>=0.5@4", func(r models.MarketRatios, score int) bool { return score == 4 && r.Network >= 0.5 }},
}

// MarketRatios derives the ratios the market rules evaluate.
// Zero denominators and negative or non-finite inputs are rejected.
func MarketRatios(s models.MarketSample) (models.MarketRatios, error) {
	inputs := []struct {
		name string
		v    float64
	}{
		{"current_price", s.CurrentPrice},
		{"average_price", s.AveragePrice},
		{"current_hashrate", s.CurrentHashrate},
		{"average_hashrate", s.AverageHashrate},
		{"network_hashrate", s.NetworkHashrate},
		{"exchange_ratio", s.ExchangeRatio},
	}
	for _, in := range inputs {
		if math.IsNaN(in.v) || math.IsInf(in.v, 0) || in.v < 0 {
			return models.MarketRatios{}, faults.InvalidInput("%s must be a non-negative finite number, got %v", in.name, in.v)
		}
	}
	if s.NetworkHashrate == 0 {
		return models.MarketRatios{}, faults.InvalidInput("network_hashrate is zero")
	}
	if s.AveragePrice == 0 {
		return models.MarketRatios{}, faults.InvalidInput("average_price is zero")
	}
	if s.AverageHashrate == 0 {
		return models.MarketRatios{}, faults.InvalidInput("average_hashrate is zero")
	}

	earning := (s.ExchangeRatio * blocksPerDay / s.NetworkHashrate) * priceUnitScale
	if earning == 0 || math.IsInf(earning, 0) {
		return models.MarketRatios{}, faults.InvalidInput("earning per unit is %v", earning)
	}

	return models.MarketRatios{
		EarningPerUnit: earning,
		Profitability:  s.CurrentPrice / earning,
		Price:          s.CurrentPrice / s.AveragePrice,
		Speed:          s.CurrentHashrate / s.AverageHashrate,
		Network:        s.CurrentHashrate / s.NetworkHashrate,
	}, nil
}

// MarketScore scores marketplace exposure from 5 (healthy) down to 0.
func MarketScore(s models.MarketSample) (models.MarketResult, error) {
	ratios, err := MarketRatios(s)
	if err != nil {
		return models.MarketResult{}, err
	}

	score := MaxScore
	fired := make([]string, 0, len(marketRules))
	for _, rule := range marketRules {
		if rule.applies(ratios, score) {
			score--
			fired = append(fired, rule.name)
		}
	}

	return models.MarketResult{Score: score, Ratios: ratios, Fired: fired}, nil
}
