// Package api exposes the scheduler over gRPC and HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/internal/publish"
	"github.com/signalsfoundry/contact-scheduler/internal/runstore"
	"github.com/signalsfoundry/contact-scheduler/internal/solver"
	"github.com/signalsfoundry/contact-scheduler/kb"
	"github.com/signalsfoundry/contact-scheduler/model"
	"github.com/signalsfoundry/contact-scheduler/timectrl"
)

// ErrNoRunHistory is returned by Runs when no run store is configured.
var ErrNoRunHistory = errors.New("run history not configured")

// RunRecorder persists run history. runstore.PGStore satisfies it.
type RunRecorder interface {
	RecordRun(ctx context.Context, run runstore.Run) error
}

// RunLister is implemented by run recorders that can also read history back.
type RunLister interface {
	ListRuns(ctx context.Context, instanceID string, limit int) ([]runstore.Run, error)
}

// SolveRequest is one solve invocation.
type SolveRequest struct {
	Instance model.Instance
	// TimeLimit overrides the configured budget when positive.
	TimeLimit         time.Duration
	IncludeUnselected bool
}

// Service runs solves for both transports and keeps stored instances in a
// knowledge base.
type Service struct {
	cfg        solver.Config
	solverOpts []solver.Option
	store      *kb.KnowledgeBase
	sink       publish.Sink
	runs       RunRecorder
	maxLimit   time.Duration
	log        logging.Logger
	newID      func() string
}

// Option customises a Service.
type Option func(*Service)

// WithSink publishes every report to sink.
func WithSink(sink publish.Sink) Option {
	return func(s *Service) { s.sink = sink }
}

// WithRunRecorder records every run.
func WithRunRecorder(r RunRecorder) Option {
	return func(s *Service) { s.runs = r }
}

// WithMaxTimeLimit caps the solve budget of every request, the configured
// default included. Zero leaves requests uncapped.
func WithMaxTimeLimit(d time.Duration) Option {
	return func(s *Service) { s.maxLimit = max(d, 0) }
}

// WithLogger sets the service logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSolverOptions passes options to every solver the service builds.
func WithSolverOptions(opts ...solver.Option) Option {
	return func(s *Service) { s.solverOpts = append(s.solverOpts, opts...) }
}

// WithIDGenerator replaces the uuid run and instance id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService validates cfg and builds a Service. A nil store gets a fresh
// knowledge base.
func NewService(cfg solver.Config, store *kb.KnowledgeBase, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("solver config: %w", err)
	}
	if store == nil {
		store = kb.NewKnowledgeBase()
	}
	s := &Service{
		cfg:   cfg,
		store: store,
		log:   logging.Noop(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Store returns the knowledge base backing stored instances.
func (s *Service) Store() *kb.KnowledgeBase { return s.store }

// Solve runs the solver on req.Instance and returns its report. Sink and
// run-store failures are logged, not returned.
func (s *Service) Solve(ctx context.Context, req SolveRequest) (*instance.Report, error) {
	in := req.Instance
	if err := in.Validate(); err != nil {
		return nil, err
	}

	slv, err := solver.New(s.solverConfig(req.TimeLimit), append([]solver.Option{solver.WithLogger(s.log)}, s.solverOpts...)...)
	if err != nil {
		return nil, err
	}

	runID := s.newID()
	ctx = logging.ContextWithRunID(ctx, runID)
	base := logging.LoggerFromContext(ctx)
	if base == nil {
		base = s.log
	}
	log := logging.WithRunLogger(ctx, base)

	sol, stats, err := slv.Solve(ctx, in.SatellitePasses, in.ServiceTargets)
	if err != nil {
		return nil, err
	}
	report := instance.NewReport(in.ID, sol, stats, instance.ReportOptions{
		RunID:             runID,
		IncludeUnselected: req.IncludeUnselected,
	})
	log.Info(ctx, "solve finished",
		logging.String("instance_id", in.ID),
		logging.String("score", report.ScoreText),
		logging.Int("selected", report.SelectedContacts),
		logging.String("termination", report.Termination),
	)

	if s.sink != nil {
		if err := s.sink.Publish(ctx, report); err != nil {
			log.Warn(ctx, "failed to publish report", logging.Err(err))
		}
	}
	if s.runs != nil && in.ID != "" {
		if err := s.runs.RecordRun(ctx, runstore.RunFromReport(report)); err != nil {
			log.Warn(ctx, "failed to record run", logging.Err(err))
		}
	}
	return report, nil
}

// solverConfig applies a requested time limit to the configured solver
// settings and clamps the result to the service maximum.
func (s *Service) solverConfig(limit time.Duration) solver.Config {
	cfg := s.cfg
	if limit > 0 {
		cfg.TimeLimit = limit
	}
	if s.maxLimit <= 0 {
		return cfg
	}
	effective := cfg.TimeLimit
	if effective == 0 {
		effective = timectrl.DefaultTimeLimit
	}
	if effective < 0 || effective > s.maxLimit {
		cfg.TimeLimit = s.maxLimit
	}
	return cfg
}

// AddInstance stores in, assigning a uuid when it has no id, and returns the
// id it is stored under.
func (s *Service) AddInstance(in model.Instance) (string, error) {
	if in.ID == "" {
		in.ID = s.newID()
	}
	if err := s.store.AddInstance(&in); err != nil {
		return "", err
	}
	return in.ID, nil
}

// SolveStored solves the stored instance id and keeps the report as its
// latest.
func (s *Service) SolveStored(ctx context.Context, id string, timeLimit time.Duration, includeUnselected bool) (*instance.Report, error) {
	in, err := s.store.GetInstance(id)
	if err != nil {
		return nil, err
	}
	report, err := s.Solve(ctx, SolveRequest{Instance: *in, TimeLimit: timeLimit, IncludeUnselected: includeUnselected})
	if err != nil {
		return nil, err
	}
	if err := s.store.SetReport(id, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Report returns the latest report of a stored instance.
func (s *Service) Report(id string) (*instance.Report, error) {
	return s.store.GetReport(id)
}

// Runs lists recorded runs of an instance, newest first.
func (s *Service) Runs(ctx context.Context, instanceID string, limit int) ([]runstore.Run, error) {
	lister, ok := s.runs.(RunLister)
	if !ok {
		return nil, ErrNoRunHistory
	}
	return lister.ListRuns(ctx, instanceID, limit)
}
