// Package providers fetches the market inputs of the health score from the
// hashrate marketplace, the network stats service and the exchange.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/pkg/cache"
	xhttp "ChainHealth/pkg/http"
	applogger "ChainHealth/pkg/logger"
)

const docKeyPrefix = "doc"

// DocumentProvider fetches JSON documents with a single attempt per call.
// Raw bodies are optionally kept in a cache for ttl.
type DocumentProvider struct {
	client *xhttp.Client
	cache  cache.Service
	ttl    time.Duration
	log    *applogger.Logger
}

// NewDocumentProvider builds a provider. c may be nil; a non-positive ttl disables caching.
func NewDocumentProvider(client *xhttp.Client, c cache.Service, ttl time.Duration, l *applogger.Logger) *DocumentProvider {
	if l == nil {
		l = applogger.Nop()
	}
	return &DocumentProvider{client: client, cache: c, ttl: ttl, log: l.Component("providers")}
}

// GetJSON decodes the document at url into dest.
// Transport, status and decode failures are reported as faults.ErrDataUnavailable.
func (p *DocumentProvider) GetJSON(ctx context.Context, url string, dest interface{}) error {
	body, err := p.body(ctx, url)
	if err != nil {
		p.log.Warn("document fetch failed", applogger.String("url", url), applogger.Error(err))
		return faults.Unavailable(url, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return faults.Unavailable(url, fmt.Errorf("decode json: %w", err))
	}
	return nil
}

func (p *DocumentProvider) body(ctx context.Context, url string) ([]byte, error) {
	caching := p.cache != nil && p.ttl > 0
	key := cache.Key(docKeyPrefix, cache.Digest(url))

	if caching {
		var body []byte
		err := p.cache.Get(ctx, key, &body)
		if err == nil {
			p.log.Debug("document cache hit", applogger.String("url", url))
			return body, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			p.log.Warn("document cache read failed", applogger.String("url", url), applogger.Error(err))
		}
	}

	start := time.Now()
	body, err := p.client.GetBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	p.log.Debug("document fetched",
		applogger.String("url", url),
		applogger.Int("bytes", len(body)),
		applogger.Duration("duration_ms", time.Since(start)),
	)

	if caching {
		if err := p.cache.Set(ctx, key, body, p.ttl); err != nil {
			p.log.Warn("document cache write failed", applogger.String("url", url), applogger.Error(err))
		}
	}
	return body, nil
}

// number reads a JSON number. Strings, nulls and absent fields are rejected.
func number(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f, true
}
