package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/internal/domain/repository"
)

// ExchangeProvider reads the asset price quoted in the marketplace currency.
type ExchangeProvider struct {
	docs  repository.DocumentFetcher
	url   string
	asset string
	quote string
}

func NewExchangeProvider(docs repository.DocumentFetcher, url, asset, quote string) *ExchangeProvider {
	return &ExchangeProvider{docs: docs, url: url, asset: asset, quote: quote}
}

// ExchangeRatio returns doc[asset][quote].
func (p *ExchangeProvider) ExchangeRatio(ctx context.Context) (float64, error) {
	var doc map[string]map[string]json.RawMessage
	if err := p.docs.GetJSON(ctx, p.url, &doc); err != nil {
		return 0, err
	}
	v, ok := number(doc[p.asset][p.quote])
	if !ok {
		return 0, faults.Unavailable(p.url, fmt.Errorf("missing %s.%s", p.asset, p.quote))
	}
	return v, nil
}
