//go:build wireinject
// +build wireinject

package di

import (
	"ChainHealth/pkg/config"
	"ChainHealth/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideCache,
		ProvideKafkaProducer,

		// Data sources
		ProvideDocumentFetcher,
		ProvideSampleCollector,
		ProvideLogSource,

		// Repositories
		ProvideSnapshotStore,
		ProvideHub,
		ProvidePublisher,

		// Use cases
		ProvideMarketAssessor,
		ProvideReorgAssessor,
		ProvideHealthMonitor,

		// HTTP
		ProvideHandler,
		ProvideHTTPServer,

		// Application server
		ProvideClosers,
		ProvideApp,
	)
	return &server.App{}, nil
}
