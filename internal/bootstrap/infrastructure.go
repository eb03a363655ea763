// Package bootstrap assembles LegalLens components from a Config. The
// binaries and the CLI share it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/turtacn/LegalLens/internal/application/casebuild"
	"github.com/turtacn/LegalLens/internal/application/statute_search"
	"github.com/turtacn/LegalLens/internal/config"
	"github.com/turtacn/LegalLens/internal/infrastructure/corpus"
	"github.com/turtacn/LegalLens/internal/infrastructure/database/redis"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/LegalLens/internal/infrastructure/storage/minio"
	"github.com/turtacn/LegalLens/internal/intelligence/crime_summarizer"
	"github.com/turtacn/LegalLens/internal/intelligence/relevance_ranker"
	"github.com/turtacn/LegalLens/internal/interfaces/http/handlers"
)

// Infrastructure holds the shared clients. Disabled backends stay nil.
type Infrastructure struct {
	Config    *config.Config
	Logger    logging.Logger
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics

	Redis *redis.Client
	Cache redis.Cache

	MinIO   *minio.Client
	Objects minio.Repository
}

// NewInfrastructure connects every enabled backend. On error the backends
// already opened are closed.
func NewInfrastructure(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Infrastructure, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	infra := &Infrastructure{Config: cfg, Logger: logger}

	if cfg.Metrics.Enabled {
		collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: true,
			EnableGoMetrics:      true,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		infra.Collector = collector
	} else {
		infra.Collector = prometheus.NewNopCollector()
	}
	infra.Metrics = prometheus.NewAppMetrics(infra.Collector)

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(cfg.Redis, logger)
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		infra.Redis = client
		infra.Cache = redis.NewRedisCache(client, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
		)
	}

	if cfg.MinIO.Enabled {
		client, err := minio.NewClient(ctx, cfg.MinIO, logger)
		if err != nil {
			infra.Close()
			return nil, fmt.Errorf("minio: %w", err)
		}
		infra.MinIO = client
		infra.Objects = minio.NewRepository(client, logger)
	}

	logger.Info("infrastructure initialized",
		logging.Bool("redis", infra.Redis != nil),
		logging.Bool("minio", infra.MinIO != nil),
		logging.Bool("metrics", cfg.Metrics.Enabled),
	)
	return infra, nil
}

// Close releases the open clients.
func (i *Infrastructure) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.Logger.Warn("redis close failed", logging.Err(err))
		}
	}
	_ = i.Logger.Sync()
}

// NewCorpusStore builds the configured corpus source and loads it once. A
// failed load still returns the (empty) store together with the error.
func (i *Infrastructure) NewCorpusStore(ctx context.Context) (*corpus.Store, error) {
	var objects corpus.ObjectStore
	if i.Objects != nil {
		objects = i.Objects
	}
	source, err := corpus.NewSource(i.Config.Corpus, i.Config.MinIO, objects)
	if err != nil {
		return nil, err
	}
	store := corpus.NewStore(source, i.Logger, i.Metrics)
	if _, err := store.Reload(ctx); err != nil {
		return store, err
	}
	return store, nil
}

// NewCaseService wires the extraction service from the extraction section.
func (i *Infrastructure) NewCaseService() casebuild.Service {
	return casebuild.NewService(nil, casebuild.Config{
		Workers:    i.Config.Extraction.Workers,
		Summarizer: crime_summarizer.DefaultOptions(),
	}, i.Metrics, i.Logger)
}

// NewSearchService wires the ranker over corpora, caching through Redis
// when it is enabled.
func (i *Infrastructure) NewSearchService(corpora statute_search.SnapshotProvider) statute_search.Service {
	r := i.Config.Ranker
	opts := statute_search.Options{
		Weights: relevance_ranker.Weights{
			Title:       r.TitleWeight,
			Description: r.DescriptionWeight,
			Phrase:      r.PhraseWeight,
			Citation:    r.CitationWeight,
			Act:         r.ActWeight,
		},
		MaxLimit:         r.MaxLimit,
		DescriptionLimit: r.DescriptionLimit,
		CacheTTL:         i.Config.Redis.DefaultTTL,
	}
	return statute_search.NewService(corpora, i.Cache, opts, i.Metrics, i.Logger)
}

// HealthCheckers reports corpus state plus every enabled backend.
func (i *Infrastructure) HealthCheckers(store *corpus.Store) []handlers.HealthChecker {
	var checkers []handlers.HealthChecker
	if store != nil {
		checkers = append(checkers, handlers.NewChecker("corpus", func(context.Context) error {
			_, err := store.Current()
			return err
		}))
	}
	if i.Redis != nil {
		checkers = append(checkers, handlers.NewChecker("redis", i.Redis.Ping))
	}
	if i.MinIO != nil {
		checkers = append(checkers, handlers.NewChecker("minio", i.MinIO.HealthCheck))
	}
	return checkers
}
