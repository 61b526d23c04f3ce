package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/contact-scheduler/internal/api"
	"github.com/signalsfoundry/contact-scheduler/internal/config"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/internal/observability"
	"github.com/signalsfoundry/contact-scheduler/internal/publish"
	"github.com/signalsfoundry/contact-scheduler/internal/runstore"
	"github.com/signalsfoundry/contact-scheduler/internal/solver"
	"github.com/signalsfoundry/contact-scheduler/kb"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file (defaults apply when empty)")
	grpcAddr := flag.String("grpc-addr", "", "override the gRPC listen address")
	httpAddr := flag.String("http-addr", "", "override the HTTP listen address")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error(ctx, "failed to load configuration", logging.Err(err))
		os.Exit(1)
	}
	if *grpcAddr != "" {
		cfg.Server.GRPCAddr = *grpcAddr
	}
	if *httpAddr != "" {
		cfg.Server.HTTPAddr = *httpAddr
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv("scheduler-server"), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdownTracing, log)

	grpcLis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Error(ctx, "failed to listen for gRPC", logging.String("addr", cfg.Server.GRPCAddr), logging.Err(err))
		os.Exit(1)
	}
	httpLis, err := net.Listen("tcp", cfg.Server.HTTPAddr)
	if err != nil {
		log.Error(ctx, "failed to listen for HTTP", logging.String("addr", cfg.Server.HTTPAddr), logging.Err(err))
		os.Exit(1)
	}

	stopCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(stopCtx, cfg, log, prometheus.DefaultRegisterer, grpcLis, httpLis); err != nil {
		log.Error(ctx, "scheduler server exited", logging.Err(err))
		stop()
		observability.ShutdownWithTimeout(ctx, shutdownTracing, log)
		os.Exit(1)
	}
}

// run serves gRPC on grpcLis and HTTP on httpLis until ctx is cancelled or
// one of the servers fails, then drains both.
func run(ctx context.Context, cfg config.Config, log logging.Logger, reg prometheus.Registerer, grpcLis, httpLis net.Listener) error {
	apiMetrics, err := observability.NewAPICollector(reg)
	if err != nil {
		return err
	}
	solverMetrics, err := observability.NewSolverCollector(reg)
	if err != nil {
		return err
	}

	store := kb.NewKnowledgeBase()
	store.SetMetricsRecorder(apiMetrics)

	svcOpts := []api.Option{
		api.WithLogger(log),
		api.WithSolverOptions(solver.WithRecorder(solverMetrics)),
	}

	sinks, err := publish.FromOptions(ctx, cfg.SinkOptions())
	if err != nil {
		return err
	}
	defer sinks.Close()
	if sinks.Len() > 0 {
		log.Info(ctx, "publishing reports", logging.Int("sinks", sinks.Len()))
		svcOpts = append(svcOpts, api.WithSink(sinks))
	}

	if cfg.Database.URL != "" {
		runs, err := runstore.Open(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer runs.Close()
		if err := runs.EnsureSchema(ctx); err != nil {
			return err
		}
		svcOpts = append(svcOpts, api.WithRunRecorder(runs))
	}

	svcOpts = append(svcOpts, api.WithMaxTimeLimit(time.Duration(cfg.Server.MaxTimeLimit)))
	svc, err := api.NewService(cfg.SolverConfig(), store, svcOpts...)
	if err != nil {
		return err
	}

	grpcServer := api.NewGRPCServer(svc, log, apiMetrics)
	httpServer := &http.Server{
		Handler:           api.NewHTTPServer(svc, log, apiMetrics).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info(ctx, "starting gRPC server", logging.String("addr", grpcLis.Addr().String()))
		errCh <- grpcServer.Serve(grpcLis)
	}()
	go func() {
		log.Info(ctx, "starting HTTP server", logging.String("addr", httpLis.Addr().String()))
		if err := httpServer.Serve(httpLis); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	log.Info(context.Background(), "shutting down scheduler server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout))
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "HTTP shutdown incomplete", logging.Err(err))
	}
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}
	return serveErr
}
