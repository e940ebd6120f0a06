package providers

import (
	"context"

	"ChainHealth/internal/domain/models"
)

// Collector assembles a MarketSample from the three sources.
// Calls run one after another and the first failure aborts the sample.
type Collector struct {
	market   *MarketplaceProvider
	network  *NetworkProvider
	exchange *ExchangeProvider
}

func NewCollector(market *MarketplaceProvider, network *NetworkProvider, exchange *ExchangeProvider) *Collector {
	return &Collector{market: market, network: network, exchange: exchange}
}

// Collect implements repository.SampleCollector.
func (c *Collector) Collect(ctx context.Context) (models.MarketSample, error) {
	current, err := c.market.Current(ctx)
	if err != nil {
		return models.MarketSample{}, err
	}
	average, err := c.market.Average(ctx)
	if err != nil {
		return models.MarketSample{}, err
	}
	network, err := c.network.NetworkHashrate(ctx)
	if err != nil {
		return models.MarketSample{}, err
	}
	ratio, err := c.exchange.ExchangeRatio(ctx)
	if err != nil {
		return models.MarketSample{}, err
	}

	return models.MarketSample{
		CurrentPrice:    current.Price,
		AveragePrice:    average.Price,
		CurrentHashrate: current.Hashrate,
		AverageHashrate: average.Hashrate,
		NetworkHashrate: network,
		ExchangeRatio:   ratio,
	}, nil
}
