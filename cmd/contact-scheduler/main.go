package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/signalsfoundry/contact-scheduler/internal/api"
	"github.com/signalsfoundry/contact-scheduler/internal/config"
	"github.com/signalsfoundry/contact-scheduler/internal/instance"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/internal/observability"
	"github.com/signalsfoundry/contact-scheduler/internal/publish"
	"github.com/signalsfoundry/contact-scheduler/internal/runstore"
	"github.com/signalsfoundry/contact-scheduler/kb"
	"github.com/signalsfoundry/contact-scheduler/model"
)

// Options are the command line settings of one invocation.
type Options struct {
	ConfigPath        string
	InstancePath      string
	InstanceIndex     int
	OutPath           string
	IncludeUnselected bool
	TimeLimit         time.Duration
}

func main() {
	var opts Options
	flag.StringVar(&opts.ConfigPath, "config", "", "YAML solver configuration (defaults apply when empty)")
	flag.StringVar(&opts.InstancePath, "instance", "-", "instance JSON file, or - for stdin")
	flag.IntVar(&opts.InstanceIndex, "instance-index", 0, "index of the instance to solve; -1 solves every instance in the file")
	flag.StringVar(&opts.OutPath, "out", "", "write the report here instead of stdout")
	flag.BoolVar(&opts.IncludeUnselected, "all", false, "include non-selected candidate contacts in the report")
	flag.DurationVar(&opts.TimeLimit, "time-limit", 0, "override the configured time limit")
	flag.Parse()

	log := logging.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv("contact-scheduler"), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	if err := run(ctx, opts, log, os.Stdin, os.Stdout); err != nil {
		log.Error(ctx, "contact scheduling failed", logging.Err(err))
		stop()
		observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
		os.Exit(1)
	}
}

// run solves the selected instances and writes their reports. An interrupt
// stops the search early; the best schedule found so far is still written.
func run(ctx context.Context, opts Options, log logging.Logger, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	instances, err := readInstances(opts.InstancePath, stdin)
	if err != nil {
		return err
	}
	selected, err := selectInstances(instances, opts.InstanceIndex)
	if err != nil {
		return err
	}

	svcOpts := []api.Option{api.WithLogger(log)}

	sinks, err := publish.FromOptions(ctx, cfg.SinkOptions())
	if err != nil {
		return err
	}
	defer sinks.Close()
	if sinks.Len() > 0 {
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

	svc, err := api.NewService(cfg.SolverConfig(), kb.NewKnowledgeBase(), svcOpts...)
	if err != nil {
		return err
	}

	reports := make([]*instance.Report, 0, len(selected))
	for _, in := range selected {
		log.Info(ctx, "solving instance",
			logging.String("instance_id", in.ID),
			logging.Int("passes", len(in.SatellitePasses)),
			logging.Int("targets", len(in.ServiceTargets)),
		)
		report, err := svc.Solve(ctx, api.SolveRequest{
			Instance:          in,
			TimeLimit:         opts.TimeLimit,
			IncludeUnselected: opts.IncludeUnselected,
		})
		if err != nil {
			return fmt.Errorf("instance %s: %w", in.ID, err)
		}
		log.Info(ctx, "schedule ready",
			logging.String("instance_id", in.ID),
			logging.String("status", report.Status),
			logging.String("score", report.ScoreText),
			logging.Int("quality", report.Quality),
			logging.Int("selected", report.SelectedContacts),
			logging.Float64("runtime_seconds", report.RuntimeSeconds),
		)
		reports = append(reports, report)
	}

	return writeOutput(opts.OutPath, stdout, reports)
}

func readInstances(path string, stdin io.Reader) ([]model.Instance, error) {
	if path == "" || path == "-" {
		return instance.DecodeReader(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open instances: %w", err)
	}
	defer f.Close()
	return instance.DecodeReader(f)
}

func selectInstances(all []model.Instance, index int) ([]model.Instance, error) {
	if index < 0 {
		return all, nil
	}
	if index >= len(all) {
		return nil, fmt.Errorf("instance index %d out of range: file holds %d instances", index, len(all))
	}
	return all[index : index+1], nil
}

func writeOutput(path string, stdout io.Writer, reports []*instance.Report) error {
	if path == "" {
		return instance.WriteReports(stdout, reports)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := instance.WriteReports(f, reports); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
