// Package config loads the scheduler's run configuration from a YAML file
// and SCHED_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/contact-scheduler/internal/publish"
	"github.com/signalsfoundry/contact-scheduler/internal/solver"
)

// Duration is a time.Duration that reads from YAML either as a Go duration
// string ("90s", "2m") or as a bare number of seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	parsed, err := parseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

// SolverSection mirrors solver.Config.
type SolverSection struct {
	TimeLimit           Duration `yaml:"time_limit"`
	UnimprovedStepLimit int      `yaml:"unimproved_step_limit"`
	StepLimit           int      `yaml:"step_limit"`
	MovesPerStep        int      `yaml:"moves_per_step"`
	TabuTenure          int      `yaml:"tabu_tenure"`
	HardTolerance       int      `yaml:"hard_tolerance"`
	SoftTolerance       float64  `yaml:"soft_tolerance"`
	ToleranceDecay      float64  `yaml:"tolerance_decay"`
	Workers             int      `yaml:"workers"`
	Seed                uint64   `yaml:"seed"`
	MinGap              Duration `yaml:"min_gap"`
}

// ServerSection configures cmd/scheduler-server.
type ServerSection struct {
	GRPCAddr        string   `yaml:"grpc_addr"`
	HTTPAddr        string   `yaml:"http_addr"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	// MaxTimeLimit caps the solve budget a request may ask for; zero
	// disables the cap.
	MaxTimeLimit Duration `yaml:"max_time_limit"`
}

// SinkSection selects where reports are published. Empty values disable the
// matching sink.
type SinkSection struct {
	Dir          string   `yaml:"dir"`
	S3Bucket     string   `yaml:"s3_bucket"`
	S3Prefix     string   `yaml:"s3_prefix"`
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
}

// DatabaseSection points at the Postgres run history. An empty URL disables it.
type DatabaseSection struct {
	URL string `yaml:"url"`
}

// Config is the top-level configuration document.
type Config struct {
	Solver   SolverSection   `yaml:"solver"`
	Server   ServerSection   `yaml:"server"`
	Sinks    SinkSection     `yaml:"sinks"`
	Database DatabaseSection `yaml:"database"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	sc := solver.DefaultConfig()
	return Config{
		Solver: SolverSection{
			TimeLimit:           Duration(sc.TimeLimit),
			UnimprovedStepLimit: sc.UnimprovedStepLimit,
			StepLimit:           sc.StepLimit,
			MovesPerStep:        sc.MovesPerStep,
			TabuTenure:          sc.TabuTenure,
			HardTolerance:       sc.HardTolerance,
			SoftTolerance:       sc.SoftTolerance,
			ToleranceDecay:      sc.ToleranceDecay,
			Workers:             sc.Workers,
			Seed:                sc.Seed,
			MinGap:              Duration(sc.MinGap),
		},
		Server: ServerSection{
			GRPCAddr:        ":50061",
			HTTPAddr:        ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
			MaxTimeLimit:    Duration(10 * time.Minute),
		},
		Sinks: SinkSection{
			KafkaTopic: "contact-schedules",
		},
	}
}

// Load reads path (when non-empty) on top of Default and then applies
// SCHED_* environment overrides. Keys missing from the file keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.SolverConfig().Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid solver config: %w", err)
	}
	return cfg, nil
}

// SolverConfig converts the solver section.
func (c Config) SolverConfig() solver.Config {
	s := c.Solver
	return solver.Config{
		TimeLimit:           time.Duration(s.TimeLimit),
		UnimprovedStepLimit: s.UnimprovedStepLimit,
		StepLimit:           s.StepLimit,
		MovesPerStep:        s.MovesPerStep,
		TabuTenure:          s.TabuTenure,
		HardTolerance:       s.HardTolerance,
		SoftTolerance:       s.SoftTolerance,
		ToleranceDecay:      s.ToleranceDecay,
		Workers:             s.Workers,
		Seed:                s.Seed,
		MinGap:              time.Duration(s.MinGap),
	}
}

// SinkOptions converts the sinks section.
func (c Config) SinkOptions() publish.Options {
	return publish.Options{
		Dir:          c.Sinks.Dir,
		S3Bucket:     c.Sinks.S3Bucket,
		S3Prefix:     c.Sinks.S3Prefix,
		KafkaBrokers: c.Sinks.KafkaBrokers,
		KafkaTopic:   c.Sinks.KafkaTopic,
	}
}

func (c *Config) applyEnv() error {
	durations := map[string]*Duration{
		"SCHED_TIME_LIMIT":       &c.Solver.TimeLimit,
		"SCHED_MIN_GAP":          &c.Solver.MinGap,
		"SCHED_SHUTDOWN_TIMEOUT": &c.Server.ShutdownTimeout,
		"SCHED_MAX_TIME_LIMIT":   &c.Server.MaxTimeLimit,
	}
	for key, dst := range durations {
		if raw, ok := os.LookupEnv(key); ok && raw != "" {
			d, err := parseDuration(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = Duration(d)
		}
	}

	ints := map[string]*int{
		"SCHED_UNIMPROVED_STEP_LIMIT": &c.Solver.UnimprovedStepLimit,
		"SCHED_STEP_LIMIT":            &c.Solver.StepLimit,
		"SCHED_MOVES_PER_STEP":        &c.Solver.MovesPerStep,
		"SCHED_WORKERS":               &c.Solver.Workers,
	}
	for key, dst := range ints {
		if raw, ok := os.LookupEnv(key); ok && raw != "" {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("%s: invalid integer %q", key, raw)
			}
			*dst = n
		}
	}

	if raw, ok := os.LookupEnv("SCHED_SEED"); ok && raw != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("SCHED_SEED: invalid seed %q", raw)
		}
		c.Solver.Seed = seed
	}

	strs := map[string]*string{
		"SCHED_GRPC_ADDR":    &c.Server.GRPCAddr,
		"SCHED_HTTP_ADDR":    &c.Server.HTTPAddr,
		"SCHED_DATABASE_URL": &c.Database.URL,
		"SCHED_RESULTS_DIR":  &c.Sinks.Dir,
		"SCHED_S3_BUCKET":    &c.Sinks.S3Bucket,
		"SCHED_S3_PREFIX":    &c.Sinks.S3Prefix,
		"SCHED_KAFKA_TOPIC":  &c.Sinks.KafkaTopic,
	}
	for key, dst := range strs {
		if raw, ok := os.LookupEnv(key); ok && raw != "" {
			*dst = raw
		}
	}

	if raw, ok := os.LookupEnv("SCHED_KAFKA_BROKERS"); ok && raw != "" {
		var brokers []string
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Sinks.KafkaBrokers = brokers
	}
	return nil
}
