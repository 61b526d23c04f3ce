package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/contact-scheduler/internal/solver"
)

// SolverCollector exposes solver Prometheus metrics. It satisfies
// solver.Recorder.
type SolverCollector struct {
	gatherer prometheus.Gatherer

	SolvesTotal       *prometheus.CounterVec
	SolveDuration     prometheus.Histogram
	MovesEvaluated    prometheus.Counter
	MovesAccepted     prometheus.Counter
	CandidateContacts prometheus.Gauge
	BestHard          prometheus.Gauge
	BestSoft          prometheus.Gauge
}

// NewSolverCollector registers solver metrics against the provided registerer.
func NewSolverCollector(reg prometheus.Registerer) (*SolverCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	solves, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_solves_total",
		Help: "Completed solver runs, labeled by termination reason.",
	}, []string{"termination"}), "scheduler_solves_total")
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scheduler_solve_duration_seconds",
		Help:    "Wall-clock duration of solver runs.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	}), "scheduler_solve_duration_seconds")
	if err != nil {
		return nil, err
	}

	evaluated, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_moves_evaluated_total",
		Help: "Cumulative number of local search moves scored.",
	}), "scheduler_moves_evaluated_total")
	if err != nil {
		return nil, err
	}

	accepted, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_moves_accepted_total",
		Help: "Cumulative number of local search moves committed.",
	}), "scheduler_moves_accepted_total")
	if err != nil {
		return nil, err
	}

	candidates, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_candidate_contacts",
		Help: "Candidate contacts generated for the most recent solve.",
	}), "scheduler_candidate_contacts")
	if err != nil {
		return nil, err
	}

	bestHard, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_best_hard_violations",
		Help: "Hard constraint violations of the most recent best solution.",
	}), "scheduler_best_hard_violations")
	if err != nil {
		return nil, err
	}

	bestSoft, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_best_soft_score",
		Help: "Soft score of the most recent best solution.",
	}), "scheduler_best_soft_score")
	if err != nil {
		return nil, err
	}

	return &SolverCollector{
		gatherer:          gatherer,
		SolvesTotal:       solves,
		SolveDuration:     duration,
		MovesEvaluated:    evaluated,
		MovesAccepted:     accepted,
		CandidateContacts: candidates,
		BestHard:          bestHard,
		BestSoft:          bestSoft,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *SolverCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveSolve records the outcome of one solver run.
func (c *SolverCollector) ObserveSolve(stats solver.Stats) {
	if c == nil {
		return
	}
	reason := string(stats.Termination)
	if reason == "" {
		reason = "unknown"
	}
	if c.SolvesTotal != nil {
		c.SolvesTotal.WithLabelValues(reason).Inc()
	}
	if c.SolveDuration != nil {
		c.SolveDuration.Observe(stats.Elapsed.Seconds())
	}
	if c.MovesEvaluated != nil {
		c.MovesEvaluated.Add(float64(stats.MovesEvaluated))
	}
	if c.MovesAccepted != nil {
		c.MovesAccepted.Add(float64(stats.MovesAccepted))
	}
	if c.CandidateContacts != nil {
		c.CandidateContacts.Set(float64(stats.Candidates))
	}
	if c.BestHard != nil {
		c.BestHard.Set(float64(stats.BestScore.Hard))
	}
	if c.BestSoft != nil {
		c.BestSoft.Set(stats.BestScore.Soft)
	}
}
