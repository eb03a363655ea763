package bootstrap

import (
	"context"
	"fmt"

	"github.com/turtacn/LegalLens/internal/config"
	"github.com/turtacn/LegalLens/internal/infrastructure/corpus"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/LegalLens/internal/interfaces/http"
	"github.com/turtacn/LegalLens/internal/interfaces/http/handlers"
	"github.com/turtacn/LegalLens/internal/interfaces/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewAPIRouter builds the full API route tree over infra and store.
func NewAPIRouter(infra *Infrastructure, store *corpus.Store, version string) *gin.Engine {
	cfg := infra.Config
	gin.SetMode(cfg.Server.Mode)

	logCfg := middleware.DefaultLoggingConfig()
	logCfg.SlowThreshold = cfg.Server.SlowThreshold

	var cors *middleware.CORSConfig
	if len(cfg.Server.CORSOrigins) > 0 {
		c := middleware.DefaultCORSConfig()
		c.AllowedOrigins = cfg.Server.CORSOrigins
		c.AllowWildcard = true
		cors = &c
	}

	rc := httpserver.RouterConfig{
		CaseHandler:   handlers.NewCaseHandler(infra.NewCaseService(), handlers.DefaultMaxBatch, infra.Logger),
		SearchHandler: handlers.NewSearchHandler(infra.NewSearchService(store), cfg.Ranker.DefaultLimit),
		HealthHandler: handlers.NewHealthHandler(version, infra.HealthCheckers(store)...),
		CORS:          cors,
		Logging:       logCfg,
		MaxBodySize:   cfg.Server.MaxBodySize,
		Logger:        infra.Logger,
		Metrics:       infra.Metrics,
	}
	if cfg.Metrics.Enabled {
		rc.MetricsCollector = infra.Collector
		rc.MetricsPath = cfg.Metrics.Path
	}
	return httpserver.NewRouter(rc)
}

// RunServer serves the HTTP API until ctx is cancelled. A corpus that fails
// to load leaves the server up and not ready.
func RunServer(ctx context.Context, cfg *config.Config, logger logging.Logger, version string) error {
	infra, err := NewInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	store, err := infra.NewCorpusStore(ctx)
	if store == nil {
		return fmt.Errorf("corpus: %w", err)
	}
	if err != nil {
		logger.Warn("initial corpus load failed; readiness will report not ready", logging.Err(err))
	}

	if cfg.Corpus.Watch && cfg.Corpus.Source == "dir" {
		w, err := corpus.NewWatcher(cfg.Corpus.LawsDir, store, logger)
		if err != nil {
			logger.Warn("corpus watcher disabled", logging.Err(err))
		} else {
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Error("corpus watcher stopped", logging.Err(err))
				}
			}()
		}
	}

	srv := httpserver.NewServer(cfg.Server, NewAPIRouter(infra, store, version), logger)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := srv.Stop(context.Background()); err != nil {
		return err
	}
	return <-errCh
}
