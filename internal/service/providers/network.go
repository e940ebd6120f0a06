package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/internal/domain/repository"
)

// DefaultNetworkKey selects the graph-rate entry the marketplace algorithm mines.
const DefaultNetworkKey = "32"

type networkStats struct {
	Hashrates map[string]json.RawMessage `json:"hashrates"`
}

// NetworkProvider reads the total network hashrate.
type NetworkProvider struct {
	docs repository.DocumentFetcher
	url  string
	key  string
}

func NewNetworkProvider(docs repository.DocumentFetcher, url, key string) *NetworkProvider {
	return &NetworkProvider{docs: docs, url: url, key: key}
}

// NetworkHashrate returns hashrates[key] from the network stats document.
func (p *NetworkProvider) NetworkHashrate(ctx context.Context) (float64, error) {
	var doc networkStats
	if err := p.docs.GetJSON(ctx, p.url, &doc); err != nil {
		return 0, err
	}
	v, ok := number(doc.Hashrates[p.key])
	if !ok {
		return 0, faults.Unavailable(p.url, fmt.Errorf("missing hashrates[%q]", p.key))
	}
	return v, nil
}
