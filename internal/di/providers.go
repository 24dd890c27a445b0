package di

import (
	"context"
	"fmt"
	"time"

	"marketcycle/internal/classify"
	"marketcycle/internal/domain/repository"
	"marketcycle/internal/handler/api"
	internalrepo "marketcycle/internal/repository"
	"marketcycle/internal/series"
	"marketcycle/internal/sources"
	"marketcycle/internal/usecase"
	"marketcycle/pkg/cache"
	pkgch "marketcycle/pkg/clickhouse"
	"marketcycle/pkg/config"
	xhttp "marketcycle/pkg/http"
	pkgkafka "marketcycle/pkg/kafka"
	applogger "marketcycle/pkg/logger"
	"marketcycle/pkg/metrics"
	"marketcycle/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideHTTPClient creates the shared outbound HTTP client.
func ProvideHTTPClient(cfg *config.Config) *xhttp.Client {
	timeout := cfg.Engine.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return xhttp.NewClient(xhttp.WithTimeout(timeout))
}

// ProvideSnapshotSource builds the snapshot source from config.
func ProvideSnapshotSource(cfg *config.Config, client *xhttp.Client) (repository.SnapshotSource, error) {
	spec := cfg.Sources.Snapshot
	switch spec.Kind {
	case "file":
		return sources.NewFileSnapshotSource(spec.Path), nil
	case "http":
		return sources.NewHTTPSnapshotSource(spec.Path, client), nil
	default:
		return nil, fmt.Errorf("unknown snapshot source kind %q", spec.Kind)
	}
}

// ProvideSeriesSources builds the prioritized historical source list.
func ProvideSeriesSources(cfg *config.Config, client *xhttp.Client) ([]repository.SeriesSource, error) {
	out := make([]repository.SeriesSource, 0, len(cfg.Sources.History))
	for _, spec := range cfg.Sources.History {
		format := series.Format(spec.Format)
		switch spec.Kind {
		case "file":
			out = append(out, sources.NewFileSeriesSource(spec.Path, format))
		case "http":
			out = append(out, sources.NewHTTPSeriesSource(spec.Path, format, client))
		default:
			return nil, fmt.Errorf("unknown series source kind %q", spec.Kind)
		}
	}
	return out, nil
}

// ProvideIngestor creates the ingestion use case.
func ProvideIngestor(
	snapshot repository.SnapshotSource,
	history []repository.SeriesSource,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Ingestor {
	return usecase.NewIngestor(snapshot, history, cfg.Engine.FetchTimeout, m, log)
}

// ProvideEngine creates the valuation engine bound to the configured table.
func ProvideEngine(
	ing *usecase.Ingestor,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) (*usecase.Engine, error) {
	table := classify.TableByName(cfg.Engine.Metric)
	return usecase.NewEngine(ing, table, cfg.Engine.DefaultAverage, m, log)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideHistoryArchive creates the archive over the ClickHouse pool and
// ensures its schema. Returns nil when ClickHouse is disabled.
func ProvideHistoryArchive(chClient *pkgch.Client, cfg *config.Config) (repository.HistoryArchive, error) {
	if chClient == nil {
		return nil, nil
	}
	archive := internalrepo.NewClickHouseHistoryArchive(chClient.DB(), cfg.ClickHouse.Table)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := archive.Init(ctx); err != nil {
		return nil, fmt.Errorf("archive schema: %w", err)
	}
	return archive, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideHub creates the WebSocket broadcast hub.
func ProvideHub(log *applogger.Logger) *api.Hub {
	return api.NewHub(log)
}

// ProvidePublishers assembles the fan-out list for the refresher. The hub is
// always present; Kafka joins it when enabled.
func ProvidePublishers(producer *pkgkafka.Producer, hub *api.Hub, cfg *config.Config) []repository.ResultPublisher {
	publishers := []repository.ResultPublisher{hub}
	if producer != nil {
		publishers = append(publishers, internalrepo.NewKafkaResultPublisher(producer, cfg.Kafka.Topic, ""))
	}
	return publishers
}

// ProvideCache creates the cache backend from config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Backend == "redis" {
		prefix := cfg.Cache.Prefix
		if prefix == "" {
			prefix = "marketcycle"
		}
		return cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Host),
			cache.WithRedisPort(cfg.Cache.Port),
			cache.WithRedisPassword(cfg.Cache.Password),
			cache.WithRedisDB(cfg.Cache.DB),
			cache.WithRedisPrefix(prefix),
		)
	}
	return cache.NewMemoryCache(), nil
}

// ProvideRefresher creates the scheduled refresh loop.
func ProvideRefresher(
	engine *usecase.Engine,
	archive repository.HistoryArchive,
	publishers []repository.ResultPublisher,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Refresher {
	return usecase.NewRefresher(engine, cfg.Engine.RefreshEvery, archive, publishers, log)
}

// ProvideHandler creates the HTTP handler surface.
func ProvideHandler(
	log *applogger.Logger,
	engine *usecase.Engine,
	archive repository.HistoryArchive,
	c cache.Service,
	hub *api.Hub,
	cfg *config.Config,
) xhttp.Handler {
	rl := cfg.Server.RateLimit
	return api.NewValuationHandler(log, engine, archive, c, rl.Capacity, rl.RefillPerSec, hub)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	refresher *usecase.Refresher,
	handler xhttp.Handler,
	publishers []repository.ResultPublisher,
	archive repository.HistoryArchive,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, log, refresher, handler, publishers, archive, chClient)
}
