// Command worker runs the LegalLens judgment extraction pipeline: it
// consumes judgment events from Kafka, publishes one case record per
// judgment and dead-letters judgments that keep failing.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/turtacn/LegalLens/internal/bootstrap"
	"github.com/turtacn/LegalLens/internal/config"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
)

const defaultHealthPort = 8081

func main() {
	configPath := flag.String("config", "", "path to configuration file (default: environment only)")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before the configuration")
	workers := flag.Int("workers", 0, "extraction concurrency (overrides extraction.workers)")
	healthPort := flag.Int("health-port", defaultHealthPort, "probe and metrics port, 0 to disable")
	datasetFile := flag.String("dataset-file", "", "write the bucketed dataset here on shutdown")
	upload := flag.Bool("upload", false, "upload the dataset to MinIO on shutdown")
	stopWhenFull := flag.Bool("stop-when-full", false, "stop once every bucket reached its cap")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Extraction.Workers = *workers
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = bootstrap.RunWorker(ctx, cfg, logger, bootstrap.WorkerOptions{
		DatasetFile:  *datasetFile,
		Upload:       *upload,
		StopWhenFull: *stopWhenFull,
		HealthPort:   *healthPort,
	})
	if err != nil {
		logger.Error("worker stopped with error", logging.Err(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
