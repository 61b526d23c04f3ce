package solver

import (
	"fmt"
	"time"

	"github.com/signalsfoundry/contact-scheduler/core"
	"github.com/signalsfoundry/contact-scheduler/timectrl"
)

// Config holds the search tuning knobs.
type Config struct {
	// TimeLimit bounds the wall-clock time of a solve. Zero means
	// timectrl.DefaultTimeLimit; negative disables the budget.
	TimeLimit time.Duration
	// UnimprovedStepLimit stops local search after this many consecutive
	// steps without a new best score. Zero disables it.
	UnimprovedStepLimit int
	// StepLimit caps the number of local search steps. Zero disables it.
	StepLimit int

	// MovesPerStep is the neighbourhood sample size scored every step.
	MovesPerStep int
	// TabuTenure is the number of steps a touched contact stays tabu.
	TabuTenure int
	// HardTolerance is the initial number of extra hard violations a
	// non-improving move may introduce and still be accepted.
	HardTolerance int
	// SoftTolerance is the initial soft loss accepted, as a fraction of the
	// current soft score.
	SoftTolerance float64
	// ToleranceDecay multiplies both tolerances once per step.
	ToleranceDecay float64

	// Workers fans move scoring out over this many goroutines.
	Workers int
	// Seed makes the move sampling reproducible.
	Seed uint64

	// MinGap pads contact windows for the overlap constraint.
	MinGap time.Duration
}

// DefaultConfig returns the defaults used by the CLI and the server.
func DefaultConfig() Config {
	return Config{
		TimeLimit:           timectrl.DefaultTimeLimit,
		UnimprovedStepLimit: 50000,
		MovesPerStep:        48,
		TabuTenure:          7,
		HardTolerance:       1,
		SoftTolerance:       0.005,
		ToleranceDecay:      0.999,
		Workers:             1,
		Seed:                42,
		MinGap:              core.DefaultMinGap,
	}
}

// Validate rejects knob values the search cannot run with.
func (c Config) Validate() error {
	switch {
	case c.UnimprovedStepLimit < 0:
		return fmt.Errorf("unimproved step limit must be >= 0, got %d", c.UnimprovedStepLimit)
	case c.StepLimit < 0:
		return fmt.Errorf("step limit must be >= 0, got %d", c.StepLimit)
	case c.MovesPerStep <= 0:
		return fmt.Errorf("moves per step must be > 0, got %d", c.MovesPerStep)
	case c.TabuTenure < 0:
		return fmt.Errorf("tabu tenure must be >= 0, got %d", c.TabuTenure)
	case c.HardTolerance < 0:
		return fmt.Errorf("hard tolerance must be >= 0, got %d", c.HardTolerance)
	case c.SoftTolerance < 0:
		return fmt.Errorf("soft tolerance must be >= 0, got %g", c.SoftTolerance)
	case c.ToleranceDecay <= 0 || c.ToleranceDecay > 1:
		return fmt.Errorf("tolerance decay must be in (0, 1], got %g", c.ToleranceDecay)
	case c.Workers < 0:
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	case c.MinGap < 0:
		return fmt.Errorf("min gap must be >= 0, got %s", c.MinGap)
	}
	return nil
}

func (c Config) limits() timectrl.Limits {
	return timectrl.Limits{
		TimeLimit:           c.TimeLimit,
		UnimprovedStepLimit: c.UnimprovedStepLimit,
		StepLimit:           c.StepLimit,
	}
}
