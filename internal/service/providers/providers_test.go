package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"ChainHealth/internal/domain/faults"
	"ChainHealth/pkg/cache"
	xhttp "ChainHealth/pkg/http"
	applogger "ChainHealth/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	currentDoc = `{"algos":[{"a":20,"p":0.1,"s":7},{"a":50,"p":2.5,"s":30.0}]}`
	averageDoc = `{"algos":[{"a":50,"p":1.25,"s":20}]}`
	networkDoc = `{"hashrates":{"31":1,"32":120.5}}`
	priceDoc   = `{"grin":{"btc":0.00001,"usd":0.05}}`
)

type upstream struct {
	srv  *httptest.Server
	hits atomic.Int64
	docs map[string]string
}

func newUpstream(t *testing.T, docs map[string]string) *upstream {
	t.Helper()
	u := &upstream{docs: docs}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		body, ok := u.docs[r.URL.Path]
		if !ok {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) url(path string) string { return u.srv.URL + path }

func newDocs(c cache.Service, ttl time.Duration) *DocumentProvider {
	return NewDocumentProvider(xhttp.NewClient(xhttp.WithTimeout(2*time.Second)), c, ttl, applogger.Nop())
}

func TestCollectorAssemblesSample(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"/current": currentDoc,
		"/24h":     averageDoc,
		"/network": networkDoc,
		"/price":   priceDoc,
	})
	docs := newDocs(nil, 0)
	c := NewCollector(
		NewMarketplaceProvider(docs, u.url("/current"), u.url("/24h"), DefaultAlgorithmID),
		NewNetworkProvider(docs, u.url("/network"), DefaultNetworkKey),
		NewExchangeProvider(docs, u.url("/price"), "grin", "btc"),
	)

	s, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2.5, s.CurrentPrice)
	assert.Equal(t, 30.0, s.CurrentHashrate)
	assert.Equal(t, 1.25, s.AveragePrice)
	assert.Equal(t, 20.0, s.AverageHashrate)
	assert.Equal(t, 120.5, s.NetworkHashrate)
	assert.Equal(t, 0.00001, s.ExchangeRatio)
}

func TestCollectorStopsAtFirstFailure(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"/current": currentDoc,
		"/24h":     averageDoc,
		"/price":   priceDoc,
	})
	docs := newDocs(nil, 0)
	c := NewCollector(
		NewMarketplaceProvider(docs, u.url("/current"), u.url("/24h"), DefaultAlgorithmID),
		NewNetworkProvider(docs, u.url("/network"), DefaultNetworkKey),
		NewExchangeProvider(docs, u.url("/price"), "grin", "btc"),
	)

	_, err := c.Collect(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrDataUnavailable)
	assert.EqualValues(t, 3, u.hits.Load(), "exchange is not queried after the network call fails")
}

func TestMarketplaceMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"missing algos":      `{"other":[]}`,
		"algorithm absent":   `{"algos":[{"a":20,"p":1,"s":1}]}`,
		"price not a number": `{"algos":[{"a":50,"p":"1.0","s":1}]}`,
		"speed missing":      `{"algos":[{"a":50,"p":1}]}`,
		"speed null":         `{"algos":[{"a":50,"p":1,"s":null}]}`,
		"not json":           `<html>`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			u := newUpstream(t, map[string]string{"/current": body})
			p := NewMarketplaceProvider(newDocs(nil, 0), u.url("/current"), u.url("/24h"), DefaultAlgorithmID)
			_, err := p.Current(context.Background())
			assert.ErrorIs(t, err, faults.ErrDataUnavailable)
		})
	}
}

func TestMarketplaceTakesFirstMatchingEntry(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"/current": `{"algos":[{"a":50,"p":1,"s":2},{"a":50,"p":9,"s":9}]}`,
	})
	p := NewMarketplaceProvider(newDocs(nil, 0), u.url("/current"), "", DefaultAlgorithmID)
	got, err := p.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Price)
	assert.Equal(t, 2.0, got.Hashrate)
}

func TestNetworkAndExchangeMissingFields(t *testing.T) {
	u := newUpstream(t, map[string]string{
		"/network": `{"hashrates":{"31":5}}`,
		"/price":   `{"grin":{"usd":0.05}}`,
	})
	docs := newDocs(nil, 0)

	_, err := NewNetworkProvider(docs, u.url("/network"), DefaultNetworkKey).NetworkHashrate(context.Background())
	assert.ErrorIs(t, err, faults.ErrDataUnavailable)

	_, err = NewExchangeProvider(docs, u.url("/price"), "grin", "btc").ExchangeRatio(context.Background())
	assert.ErrorIs(t, err, faults.ErrDataUnavailable)
}

func TestDocumentProviderStatusError(t *testing.T) {
	u := newUpstream(t, nil)
	var dest map[string]interface{}
	err := newDocs(nil, 0).GetJSON(context.Background(), u.url("/missing"), &dest)
	assert.ErrorIs(t, err, faults.ErrDataUnavailable)
	assert.Equal(t, faults.KindDataUnavailable, faults.Kind(err))
}

func TestDocumentProviderCachesBodies(t *testing.T) {
	u := newUpstream(t, map[string]string{"/network": networkDoc})
	mem := cache.NewMemoryCache()
	defer mem.Close()
	docs := newDocs(mem, time.Minute)
	p := NewNetworkProvider(docs, u.url("/network"), DefaultNetworkKey)

	for i := 0; i < 3; i++ {
		v, err := p.NetworkHashrate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 120.5, v)
	}
	assert.EqualValues(t, 1, u.hits.Load())
}

func TestDocumentProviderWithoutTTLAlwaysFetches(t *testing.T) {
	u := newUpstream(t, map[string]string{"/network": networkDoc})
	mem := cache.NewMemoryCache()
	defer mem.Close()
	p := NewNetworkProvider(newDocs(mem, 0), u.url("/network"), DefaultNetworkKey)

	for i := 0; i < 2; i++ {
		_, err := p.NetworkHashrate(context.Background())
		require.NoError(t, err)
	}
	assert.EqualValues(t, 2, u.hits.Load())
}
