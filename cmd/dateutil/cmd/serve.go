package cmd

import (
	"context"
	"errors"
	"os"
	"time"

	mdwerror "github.com/msto63/mdw-dateutil/foundation/core/error"
	"github.com/msto63/mdw-dateutil/internal/dateutil/server"
	coreGrpc "github.com/msto63/mdw-dateutil/pkg/core/grpc"
	"github.com/msto63/mdw-dateutil/pkg/core/logging"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *options) *cobra.Command {
	var (
		host string
		port int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the DateUtil gRPC server",
		Long: `Run the DateUtil gRPC server with health checks, reflection and,
when enabled in the configuration, a Prometheus metrics endpoint.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.remote != "" {
				return mdwerror.New("--remote cannot be combined with serve").WithCode(mdwerror.CodeInvalidInput)
			}
			if cmd.Flags().Changed("host") {
				opts.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				opts.cfg.Server.Port = port
			}
			return runServe(cmd.Context(), opts)
		},
	}

	serveCmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")

	return serveCmd
}

func runServe(ctx context.Context, opts *options) error {
	cfg := opts.cfg
	logger := logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		Output:      os.Stdout,
	}), cfg.General.Name)

	svcCfg, err := opts.serviceConfig(logger)
	if err != nil {
		return err
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.Server.Host
	srvCfg.Port = cfg.Server.Port
	srvCfg.EnableReflection = cfg.Server.EnableReflection
	srvCfg.Service = svcCfg

	var metricsSrv *coreGrpc.MetricsServer
	if cfg.Metrics.Enabled {
		srvCfg.Metrics = coreGrpc.NewMetrics("dateutil")
		metricsSrv = coreGrpc.NewMetricsServer(cfg.MetricsAddress(), cfg.Metrics.Path, srvCfg.Metrics)
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	if metricsSrv != nil {
		metricsSrv.StartAsync()
	}

	logger.Info("dateutil server started",
		"address", cfg.ServerAddress(),
		"environment", cfg.General.Environment,
		"config", cfg.Source(),
		"metrics", cfg.Metrics.Enabled,
	)

	select {
	case err := <-errCh:
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		srv.Stop(stopCtx)
		cancel()
		shutdownMetrics(metricsSrv, cfg.Server.ShutdownTimeout.Duration, logger)
		if err != nil {
			return mdwerror.Wrap(err, "server failed").
				WithCode(mdwerror.CodeServiceUnavailable).
				WithOperation("serve")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received", "timeout", cfg.Server.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
	defer cancel()

	srv.Stop(shutdownCtx)
	shutdownMetrics(metricsSrv, cfg.Server.ShutdownTimeout.Duration, logger)

	// drain Start's result; GracefulStop makes Serve return nil
	select {
	case <-errCh:
	case <-time.After(time.Second):
	}
	logger.Info("dateutil server stopped")
	return nil
}

// shutdownMetrics stops the metrics endpoint if one was started
func shutdownMetrics(metricsSrv *coreGrpc.MetricsServer, timeout time.Duration, logger *logging.Logger) {
	if metricsSrv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("metrics shutdown failed", "error", err)
	}
}
