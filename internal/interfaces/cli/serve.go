package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/LegalLens/internal/bootstrap"
	"github.com/turtacn/LegalLens/internal/infrastructure/monitoring/logging"
)

// NewServeCmd builds `serve`, which runs the HTTP API until interrupted.
func NewServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if port > 0 {
				cfg.Server.Port = port
			}
			logger := serviceLogger(cliCtx)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return bootstrap.RunServer(ctx, cfg, logger, Version)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

// NewWorkerCmd builds `worker`, which runs the Kafka extraction pipeline.
func NewWorkerCmd() *cobra.Command {
	opts := bootstrap.WorkerOptions{}
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume judgment events and publish case records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return bootstrap.RunWorker(ctx, cliCtx.Config, serviceLogger(cliCtx), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.DatasetFile, "dataset-file", "", "write the bucketed dataset here on shutdown")
	f.BoolVar(&opts.Upload, "upload", false, "upload the dataset to MinIO on shutdown")
	f.BoolVar(&opts.StopWhenFull, "stop-when-full", false, "stop once every bucket reached its cap")
	f.IntVar(&opts.HealthPort, "health-port", 8081, "probe and metrics port, 0 to disable")
	return cmd
}

// serviceLogger uses the configured log section for long-running commands,
// falling back to the CLI logger.
func serviceLogger(cliCtx *CLIContext) logging.Logger {
	l, err := logging.NewLogger(cliCtx.Config.Log)
	if err != nil {
		cliCtx.Logger.Warn("log config rejected; using console logger", logging.Err(err))
		return cliCtx.Logger
	}
	logging.SetDefault(l)
	return l
}
