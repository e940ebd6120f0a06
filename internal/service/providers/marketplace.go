package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/internal/domain/models"
	"ChainHealth/internal/domain/repository"
)

// DefaultAlgorithmID identifies the chain's proof-of-work algorithm on the marketplace.
const DefaultAlgorithmID = 50

type marketplaceStats struct {
	Algos []map[string]json.RawMessage `json:"algos"`
}

// MarketplaceProvider reads rental price and hashrate for one algorithm.
type MarketplaceProvider struct {
	docs       repository.DocumentFetcher
	currentURL string
	averageURL string
	algorithm  int
}

func NewMarketplaceProvider(docs repository.DocumentFetcher, currentURL, averageURL string, algorithm int) *MarketplaceProvider {
	return &MarketplaceProvider{docs: docs, currentURL: currentURL, averageURL: averageURL, algorithm: algorithm}
}

// Current returns the live price and hashrate.
func (p *MarketplaceProvider) Current(ctx context.Context) (models.PricePoint, error) {
	return p.point(ctx, p.currentURL)
}

// Average returns the trailing 24-hour price and hashrate.
func (p *MarketplaceProvider) Average(ctx context.Context) (models.PricePoint, error) {
	return p.point(ctx, p.averageURL)
}

func (p *MarketplaceProvider) point(ctx context.Context, url string) (models.PricePoint, error) {
	var doc marketplaceStats
	if err := p.docs.GetJSON(ctx, url, &doc); err != nil {
		return models.PricePoint{}, err
	}
	return selectAlgorithm(doc, p.algorithm, url)
}

func selectAlgorithm(doc marketplaceStats, algorithm int, source string) (models.PricePoint, error) {
	if doc.Algos == nil {
		return models.PricePoint{}, faults.Unavailable(source, fmt.Errorf("missing algos array"))
	}
	for _, entry := range doc.Algos {
		id, ok := number(entry["a"])
		if !ok || id != float64(algorithm) {
			continue
		}
		price, ok := number(entry["p"])
		if !ok {
			return models.PricePoint{}, faults.Unavailable(source, fmt.Errorf("algorithm %d: missing price", algorithm))
		}
		speed, ok := number(entry["s"])
		if !ok {
			return models.PricePoint{}, faults.Unavailable(source, fmt.Errorf("algorithm %d: missing speed", algorithm))
		}
		return models.PricePoint{Price: price, Hashrate: speed}, nil
	}
	return models.PricePoint{}, faults.Unavailable(source, fmt.Errorf("algorithm %d not listed", algorithm))
}
