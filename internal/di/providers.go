package di

import (
	"fmt"
	"io"

	"ChainHealth/internal/domain/repository"
	"ChainHealth/internal/domain/service"
	"ChainHealth/internal/handler/api"
	internalrepo "ChainHealth/internal/repository"
	"ChainHealth/internal/service/logsource"
	"ChainHealth/internal/service/providers"
	"ChainHealth/internal/usecase"
	"ChainHealth/pkg/cache"
	"ChainHealth/pkg/config"
	xhttp "ChainHealth/pkg/http"
	"ChainHealth/pkg/http/middleware"
	pkgkafka "ChainHealth/pkg/kafka"
	applogger "ChainHealth/pkg/logger"
	"ChainHealth/pkg/metrics"
	"ChainHealth/pkg/server"

	"github.com/prometheus/client_golang/prometheus"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("env", cfg.Environment)), nil
}

// ProvideRegistry creates the Prometheus registry shared by every collector.
func ProvideRegistry() *prometheus.Registry {
	return metrics.NewRegistry()
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.New(reg)
}

// ProvideCache creates the cache backend selected by cache.type.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Type == "memory" {
		return cache.NewMemoryCache(cache.WithMemoryMaxSize(cfg.Cache.MemorySize)), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
		cache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
		cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	if cfg.Cache.Type == "layered" {
		return cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(cfg.Cache.MemorySize)), nil
	}
	return rc, nil
}

// ProvideDocumentFetcher creates the upstream JSON fetcher.
func ProvideDocumentFetcher(cfg *config.Config, c cache.Service, l *applogger.Logger) repository.DocumentFetcher {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Providers.Timeout))
	return providers.NewDocumentProvider(client, c, cfg.Providers.CacheTTL, l)
}

// ProvideSampleCollector creates the market sample collector.
func ProvideSampleCollector(cfg *config.Config, docs repository.DocumentFetcher) repository.SampleCollector {
	p := cfg.Providers
	return providers.NewCollector(
		providers.NewMarketplaceProvider(docs, p.CurrentURL, p.AverageURL, p.AlgorithmID),
		providers.NewNetworkProvider(docs, p.NetworkURL, p.NetworkKey),
		providers.NewExchangeProvider(docs, p.ExchangeURL, p.Asset, p.Quote),
	)
}

// ProvideLogSource creates the node log reader.
func ProvideLogSource(cfg *config.Config, l *applogger.Logger) repository.LogSource {
	return logsource.NewFileSource(cfg.Reorg.LogFile, l)
}

// ProvideMarketAssessor creates the market assessor use case.
func ProvideMarketAssessor(collector repository.SampleCollector, l *applogger.Logger) service.MarketAssessor {
	return usecase.NewMarketAssessor(collector, nil, l)
}

// ProvideReorgAssessor creates the reorg assessor use case.
func ProvideReorgAssessor(source repository.LogSource, l *applogger.Logger) service.ReorgAssessor {
	return usecase.NewReorgAssessor(source, l)
}

// ProvideSnapshotStore creates the latest-snapshot store.
func ProvideSnapshotStore(cfg *config.Config, c cache.Service) repository.SnapshotStore {
	return internalrepo.NewCacheSnapshotStore(c, cfg.Cache.SnapshotTTL)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config, reg *prometheus.Registry) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithTopic(cfg.Kafka.Topic),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithRegisterer(reg),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideHub creates the websocket snapshot hub.
func ProvideHub(l *applogger.Logger) *api.Hub {
	return api.NewHub(l)
}

// ProvidePublisher fans snapshots out to websocket subscribers and Kafka.
func ProvidePublisher(cfg *config.Config, producer *pkgkafka.Producer, hub *api.Hub) repository.Publisher {
	targets := []repository.Publisher{hub}
	if producer != nil {
		targets = append(targets, internalrepo.NewKafkaPublisher(producer, cfg.Environment))
	}
	return internalrepo.NewFanout(targets...)
}

// ProvideHealthMonitor creates the health monitor use case.
func ProvideHealthMonitor(
	cfg *config.Config,
	market service.MarketAssessor,
	reorg service.ReorgAssessor,
	store repository.SnapshotStore,
	pub repository.Publisher,
	recorder *metrics.Recorder,
	l *applogger.Logger,
) *usecase.HealthMonitor {
	return usecase.NewHealthMonitor(market, reorg, store, pub, recorder, nil, usecase.MonitorConfig{
		Interval:     cfg.Monitor.Interval,
		CycleTimeout: cfg.Monitor.CycleTimeout,
	}, l)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(cfg *config.Config, monitor *usecase.HealthMonitor, hub *api.Hub, l *applogger.Logger) xhttp.Handler {
	limiter := middleware.NewLimiter(cfg.Server.RateLimit.Burst, cfg.Server.RateLimit.PerSecond)
	return api.NewHealthHandler(l, monitor, hub, limiter)
}

// ProvideHTTPServer creates the echo server.
func ProvideHTTPServer(
	cfg *config.Config,
	handler xhttp.Handler,
	reg *prometheus.Registry,
	recorder *metrics.Recorder,
	l *applogger.Logger,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(l.Component("http")),
		xhttp.WithCORS(cfg.Server.CORSOrigins...),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(reg, cfg.Metrics.Path, recorder.Handler()))
	}
	return xhttp.NewServer(handler, opts...)
}

// ProvideClosers lists resources released at shutdown, websocket clients first.
func ProvideClosers(hub *api.Hub, producer *pkgkafka.Producer, c cache.Service) server.Closers {
	closers := server.Closers{hub}
	if producer != nil {
		closers = append(closers, producer)
	}
	return append(closers, io.Closer(c))
}

// ProvideApp creates the application server.
func ProvideApp(l *applogger.Logger, monitor *usecase.HealthMonitor, srv *xhttp.Server, closers server.Closers) *server.App {
	return server.New(l, monitor, srv, closers)
}
