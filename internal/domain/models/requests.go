package models

import "time"

// Requests for the scoring HTTP endpoints.

type MarketScoreRequest struct {
	CurrentPrice    float64 `json:"current_price" validate:"gte=0"`
	AveragePrice    float64 `json:"average_price" validate:"gt=0"`
	CurrentHashrate float64 `json:"current_hashrate" validate:"gte=0"`
	AverageHashrate float64 `json:"average_hashrate" validate:"gt=0"`
	NetworkHashrate float64 `json:"network_hashrate" validate:"gt=0"`
	ExchangeRatio   float64 `json:"exchange_ratio" validate:"gt=0"`
}

// Sample converts the request into scorer input.
func (r *MarketScoreRequest) Sample() MarketSample {
	return MarketSample{
		CurrentPrice:    r.CurrentPrice,
		AveragePrice:    r.AveragePrice,
		CurrentHashrate: r.CurrentHashrate,
		AverageHashrate: r.AverageHashrate,
		NetworkHashrate: r.NetworkHashrate,
		ExchangeRatio:   r.ExchangeRatio,
	}
}

type ReorgScoreRequest struct {
	Count   uint `json:"count" validate:"gte=0"`
	Deepest uint `json:"deepest" validate:"gte=0"`
}

type CompositeScoreRequest struct {
	Market int `json:"market" validate:"gte=0,lte=5"`
	Reorg  int `json:"reorg" validate:"gte=0,lte=5"`
}

type ExtractRequest struct {
	Lines []string   `json:"lines" validate:"required,max=100000"`
	Now   *time.Time `json:"now,omitempty"`
}

// ScoreResponse is returned by the composite endpoint.
type ScoreResponse struct {
	Score int `json:"score"`
}
