// Package solver searches for a contact selection with the best
// lexicographic (hard, soft) score: a greedy construction pass followed by
// tabu local search with a decaying acceptance tolerance.
package solver

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/contact-scheduler/core"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/model"
	"github.com/signalsfoundry/contact-scheduler/timectrl"
)

const tracerName = "github.com/signalsfoundry/contact-scheduler/internal/solver"

// Stats summarises one solve.
type Stats struct {
	Candidates        int
	Steps             int
	MovesEvaluated    int
	MovesAccepted     int
	ConstructionScore model.Score
	BestScore         model.Score
	Breakdown         core.Impact
	Elapsed           time.Duration
	Termination       timectrl.Reason
}

// Recorder receives the outcome of every solve. The Prometheus collector in
// internal/observability satisfies it.
type Recorder interface {
	ObserveSolve(stats Stats)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSolve(Stats) {}

// Solver runs searches with a fixed configuration. It holds no per-run
// state and may be shared between goroutines.
type Solver struct {
	cfg      Config
	clock    timectrl.Clock
	log      logging.Logger
	recorder Recorder
}

// Option customises a Solver.
type Option func(*Solver)

// WithClock overrides the time source used for the time budget.
func WithClock(c timectrl.Clock) Option {
	return func(s *Solver) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.log = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Solver) {
		if r != nil {
			s.recorder = r
		}
	}
}

// New validates cfg and builds a Solver.
func New(cfg Config, opts ...Option) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	s := &Solver{
		cfg:      cfg,
		clock:    timectrl.RealClock{},
		log:      logging.Noop(),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the configuration the solver runs with.
func (s *Solver) Config() Config { return s.cfg }

// Solve generates the candidate contacts for passes and targets and searches
// for the best selection. The returned solution holds every candidate with
// the best selection applied, and its score; it is returned even when hard
// constraints remain violated. Only invalid input is an error.
func (s *Solver) Solve(ctx context.Context, passes []model.SatellitePass, targets []model.ServiceTarget) (*model.Solution, Stats, error) {
	sol, err := core.NewSolution(passes, targets)
	if err != nil {
		return nil, Stats{}, err
	}
	sol, stats := s.SolveSolution(ctx, sol)
	return sol, stats, nil
}

// SolveSolution improves sol in place, starting from its current selection.
func (s *Solver) SolveSolution(ctx context.Context, sol *model.Solution) (*model.Solution, Stats) {
	log := logging.WithRunLogger(ctx, s.log)
	term := timectrl.NewTermination(s.cfg.limits(), s.clock)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "solver.solve",
		trace.WithAttributes(
			attribute.Int("solver.passes", len(sol.Passes)),
			attribute.Int("solver.targets", len(sol.Targets)),
			attribute.Int("solver.candidates", len(sol.Contacts)),
		),
	)
	defer span.End()

	stats := Stats{Candidates: len(sol.Contacts)}
	if len(sol.Contacts) == 0 {
		sol.Score = model.Score{}
		stats.Termination = timectrl.ReasonEmptyInstance
		s.finish(ctx, log, span, term, &stats)
		return sol, stats
	}

	d := core.NewScoreDirector(sol, core.Options{MinGap: s.cfg.MinGap})

	stats.ConstructionScore = s.construct(ctx, d, term)
	log.Debug(ctx, "construction finished",
		logging.String("score", stats.ConstructionScore.String()),
		logging.Int("selected", d.SelectedCount()),
	)

	best := s.localSearch(ctx, d, term, log, &stats)
	d.Restore(best)
	d.Commit()
	stats.BestScore = d.Score()
	stats.Breakdown = d.Impact()

	s.finish(ctx, log, span, term, &stats)
	return sol, stats
}

func (s *Solver) finish(ctx context.Context, log logging.Logger, span trace.Span, term *timectrl.Termination, stats *Stats) {
	stats.Elapsed = term.Elapsed()
	span.SetAttributes(
		attribute.String("solver.termination", string(stats.Termination)),
		attribute.Int("solver.steps", stats.Steps),
		attribute.Int("solver.best_hard", stats.BestScore.Hard),
		attribute.Float64("solver.best_soft", stats.BestScore.Soft),
	)
	s.recorder.ObserveSolve(*stats)
	log.Info(ctx, "solve finished",
		logging.String("score", stats.BestScore.String()),
		logging.Bool("feasible", stats.BestScore.Feasible()),
		logging.Int("candidates", stats.Candidates),
		logging.Int("steps", stats.Steps),
		logging.Int("moves_accepted", stats.MovesAccepted),
		logging.String("termination", string(stats.Termination)),
		logging.Duration("elapsed", stats.Elapsed),
	)
}
