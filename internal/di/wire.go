//go:build wireinject
// +build wireinject

package di

import (
	"marketcycle/pkg/config"
	"marketcycle/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideHTTPClient,
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Sources and repositories
		ProvideSnapshotSource,
		ProvideSeriesSources,
		ProvideHistoryArchive,
		ProvideHub,
		ProvidePublishers,

		// Use cases
		ProvideIngestor,
		ProvideEngine,
		ProvideRefresher,

		// HTTP surface and application
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
