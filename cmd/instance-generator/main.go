package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/internal/passgen"
	"github.com/signalsfoundry/contact-scheduler/model"
)

// Options describe a generation run.
type Options struct {
	TLE1, TLE2         string
	Catalogue          string
	NumTerminals       int
	AppContexts        int
	Start              string
	Hours              float64
	Step               time.Duration
	MinElevationDeg    float64
	QKDMinElevationDeg float64
	Seed               uint64
	Count              int
	OutPath            string
}

func main() {
	var opts Options
	flag.StringVar(&opts.TLE1, "tle1", passgen.ISSLine1, "first TLE line")
	flag.StringVar(&opts.TLE2, "tle2", passgen.ISSLine2, "second TLE line")
	flag.StringVar(&opts.Catalogue, "terminals", passgen.CatalogueEurope, "ground terminal catalogue: europe or world")
	flag.IntVar(&opts.NumTerminals, "num-terminals", 10, "number of terminals taken from the catalogue (0 = all)")
	flag.IntVar(&opts.AppContexts, "app-contexts", 2, "application contexts per terminal")
	flag.StringVar(&opts.Start, "start", "2021-10-02T00:00:00", "coverage start (UTC when no zone is given)")
	flag.Float64Var(&opts.Hours, "hours", 24, "coverage length in hours")
	flag.DurationVar(&opts.Step, "step", passgen.DefaultStep, "propagation step")
	flag.Float64Var(&opts.MinElevationDeg, "min-elevation", passgen.DefaultMinElevationDeg, "minimum elevation of a pass in degrees")
	flag.Float64Var(&opts.QKDMinElevationDeg, "qkd-min-elevation", passgen.DefaultQKDMinElevationDeg, "peak elevation below which a pass carries no key volume")
	flag.Uint64Var(&opts.Seed, "seed", 1, "seed of the first instance; instance i uses seed+i")
	flag.IntVar(&opts.Count, "count", 1, "number of instances to generate")
	flag.StringVar(&opts.OutPath, "out", "", "output file (stdout when empty)")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, log, os.Stdout); err != nil {
		log.Error(ctx, "instance generation failed", logging.Err(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts Options, log logging.Logger, stdout io.Writer) error {
	if opts.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", opts.Count)
	}
	if opts.Hours <= 0 {
		return fmt.Errorf("hours must be positive, got %g", opts.Hours)
	}
	start, err := instance.ParseTime(opts.Start)
	if err != nil {
		return err
	}
	prop, err := passgen.NewPropagator(opts.TLE1, opts.TLE2)
	if err != nil {
		return err
	}
	terminals, err := passgen.Terminals(opts.Catalogue, opts.NumTerminals)
	if err != nil {
		return err
	}

	passOpts := passgen.PassOptions{
		Start:              start,
		End:                start.Add(time.Duration(opts.Hours * float64(time.Hour))),
		Step:               opts.Step,
		MinElevationDeg:    opts.MinElevationDeg,
		QKDMinElevationDeg: opts.QKDMinElevationDeg,
	}

	instances := make([]model.Instance, 0, opts.Count)
	for i := range opts.Count {
		in, err := passgen.GenerateInstance(ctx, prop, passgen.GeneratorConfig{
			Passes:             passOpts,
			Terminals:          terminals,
			AppContextsPerNode: opts.AppContexts,
			Seed:               opts.Seed + uint64(i),
		})
		if err != nil {
			return fmt.Errorf("instance %d: %w", i, err)
		}
		log.Info(ctx, "generated instance",
			logging.String("instance_id", in.ID),
			logging.Int("passes", len(in.SatellitePasses)),
			logging.Int("targets", len(in.ServiceTargets)),
		)
		instances = append(instances, in)
	}

	if opts.OutPath == "" {
		return instance.EncodeInstances(stdout, instances)
	}
	f, err := os.Create(opts.OutPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := instance.EncodeInstances(f, instances); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
