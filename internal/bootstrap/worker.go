package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/turtacn/LegalLens/internal/application/casebuild"
	"github.com/turtacn/LegalLens/internal/config"
	"github.com/turtacn/LegalLens/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/LegalLens/internal/interfaces/http"
	"github.com/turtacn/LegalLens/internal/interfaces/http/handlers"
	"github.com/turtacn/LegalLens/internal/interfaces/http/middleware"
)

const fullCheckInterval = time.Second

// WorkerOptions controls what the worker does with the records it builds
// besides publishing them.
type WorkerOptions struct {
	// DatasetFile, when set, receives the bucketed dataset on shutdown.
	DatasetFile string
	// Upload also stores the dataset under the configured MinIO prefix.
	Upload bool
	// StopWhenFull ends the run once every dataset bucket reached its cap.
	StopWhenFull bool
	// HealthPort serves /healthz, /readyz and /metrics; 0 disables it.
	HealthPort int
}

// RunWorker consumes judgment events until ctx is cancelled, publishing a
// CaseRecord for each one and dead-lettering the ones that fail.
func RunWorker(ctx context.Context, cfg *config.Config, logger logging.Logger, opts WorkerOptions) error {
	if !cfg.Kafka.Enabled {
		return fmt.Errorf("worker: kafka.enabled is false")
	}
	infra, err := NewInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	if tm, err := kafka.NewTopicManager(cfg.Kafka.Brokers, logger); err != nil {
		logger.Warn("topic manager unavailable; assuming topics exist", logging.Err(err))
	} else {
		if err := tm.EnsureTopics(ctx, kafka.PipelineTopics(cfg.Kafka.JudgmentTopic, cfg.Kafka.ExtractedTopic, cfg.Kafka.DLQTopic)); err != nil {
			logger.Warn("ensure topics failed", logging.Err(err))
		}
		_ = tm.Close()
	}

	producer, err := kafka.NewProducer(kafka.ProducerConfigFrom(cfg.Kafka), logger)
	if err != nil {
		return err
	}
	defer producer.Close()

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfigFrom(cfg.Kafka), producer, logger)
	if err != nil {
		return err
	}

	bucketer := casebuild.NewBucketer(cfg.Extraction.BucketCap, "kafka:"+cfg.Kafka.JudgmentTopic, infra.Metrics)
	pipeline := casebuild.NewPipeline(infra.NewCaseService(), producer, cfg.Kafka.ExtractedTopic, logger,
		casebuild.WithBucketer(bucketer),
		casebuild.WithPipelineMetrics(infra.Metrics),
	)
	consumer.Subscribe(cfg.Kafka.JudgmentTopic, pipeline.Handle)

	var srv *httpserver.Server
	if opts.HealthPort > 0 {
		srv = startHealthServer(infra, opts.HealthPort)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := consumer.Start(runCtx); err != nil {
		return err
	}
	logger.Info("worker started",
		logging.String("judgment_topic", cfg.Kafka.JudgmentTopic),
		logging.String("extracted_topic", cfg.Kafka.ExtractedTopic),
		logging.Int("bucket_cap", cfg.Extraction.BucketCap),
	)

	waitForStop(runCtx, bucketer, opts.StopWhenFull, logger)

	if err := consumer.Close(); err != nil {
		logger.Warn("consumer close failed", logging.Err(err))
	}
	if srv != nil {
		if err := srv.Stop(context.Background()); err != nil {
			logger.Warn("health server stop failed", logging.Err(err))
		}
	}
	stats := consumer.Stats()
	logger.Info("worker stopped",
		logging.Int64("consumed", stats.Consumed),
		logging.Int64("processed", stats.Processed),
		logging.Int64("dead_lettered", stats.DeadLettered),
	)

	return flushDataset(infra, bucketer, opts)
}

func waitForStop(ctx context.Context, b *casebuild.Bucketer, stopWhenFull bool, logger logging.Logger) {
	if !stopWhenFull {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(fullCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if b.Full() {
				logger.Info("all dataset buckets reached their cap")
				return
			}
		}
	}
}

func flushDataset(infra *Infrastructure, b *casebuild.Bucketer, opts WorkerOptions) error {
	if opts.DatasetFile == "" && !opts.Upload {
		return nil
	}
	ds := b.Dataset()
	if opts.DatasetFile != "" {
		if err := casebuild.WriteDatasetFile(opts.DatasetFile, ds); err != nil {
			return err
		}
		infra.Logger.Info("dataset written",
			logging.String("file", opts.DatasetFile),
			logging.Int("total_cases", ds.Metadata.TotalCases),
		)
	}
	if opts.Upload {
		if infra.Objects == nil {
			return fmt.Errorf("worker: dataset upload needs minio.enabled")
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		key, err := casebuild.UploadDataset(ctx, infra.Objects, infra.Config.MinIO.DatasetPrefix, ds)
		if err != nil {
			return err
		}
		infra.Logger.Info("dataset uploaded", logging.String("key", key))
	}
	return nil
}

// startHealthServer exposes probes and metrics for the worker process.
func startHealthServer(infra *Infrastructure, port int) *httpserver.Server {
	rc := httpserver.RouterConfig{
		HealthHandler: handlers.NewHealthHandler("worker", infra.HealthCheckers(nil)...),
		Logging:       middleware.DefaultLoggingConfig(),
		Logger:        infra.Logger,
	}
	if infra.Config.Metrics.Enabled {
		rc.MetricsCollector = infra.Collector
		rc.MetricsPath = infra.Config.Metrics.Path
	}
	sc := infra.Config.Server
	sc.Port = port
	srv := httpserver.NewServer(sc, httpserver.NewRouter(rc), infra.Logger)
	go func() {
		if err := srv.Start(); err != nil {
			infra.Logger.Error("health server failed", logging.Err(err))
		}
	}()
	return srv
}
