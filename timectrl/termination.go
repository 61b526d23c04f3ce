package timectrl

import (
	"context"
	"time"
)

// DefaultTimeLimit is the wall-clock budget of a solve when none is given.
const DefaultTimeLimit = 60 * time.Second

// Reason explains why a search stopped.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonTimeLimit     Reason = "time_limit"
	ReasonUnimproved    Reason = "unimproved_step_limit"
	ReasonStepLimit     Reason = "step_limit"
	ReasonCancelled     Reason = "cancelled"
	ReasonExhausted     Reason = "neighbourhood_exhausted"
	ReasonEmptyInstance Reason = "empty_instance"
)

// Limits configures when a search ends. Zero values disable a limit, except
// that a zero TimeLimit falls back to DefaultTimeLimit; use a negative
// TimeLimit to run without a wall-clock budget.
type Limits struct {
	TimeLimit           time.Duration
	UnimprovedStepLimit int
	StepLimit           int
}

// Termination decides between search steps whether to stop. It never
// interrupts a step: the deadline is only observed when Check is polled.
type Termination struct {
	limits   Limits
	clock    Clock
	started  time.Time
	deadline time.Time
}

// NewTermination starts the budget clock now.
func NewTermination(limits Limits, clock Clock) *Termination {
	if clock == nil {
		clock = RealClock{}
	}
	if limits.TimeLimit == 0 {
		limits.TimeLimit = DefaultTimeLimit
	}
	t := &Termination{limits: limits, clock: clock, started: clock.Now()}
	if limits.TimeLimit > 0 {
		t.deadline = t.started.Add(limits.TimeLimit)
	}
	return t
}

// Check reports whether the search should stop before taking another step.
// step counts completed local search steps; unimproved counts consecutive
// steps since the best score last improved.
func (t *Termination) Check(ctx context.Context, step, unimproved int) (Reason, bool) {
	if ctx != nil && ctx.Err() != nil {
		return ReasonCancelled, true
	}
	if t.limits.StepLimit > 0 && step >= t.limits.StepLimit {
		return ReasonStepLimit, true
	}
	if t.limits.UnimprovedStepLimit > 0 && unimproved >= t.limits.UnimprovedStepLimit {
		return ReasonUnimproved, true
	}
	if !t.deadline.IsZero() && !t.clock.Now().Before(t.deadline) {
		return ReasonTimeLimit, true
	}
	return ReasonNone, false
}

// Elapsed returns the time spent since the termination was created.
func (t *Termination) Elapsed() time.Duration {
	return t.clock.Now().Sub(t.started)
}

// Remaining returns the budget left, or a negative duration when there is no
// wall-clock limit.
func (t *Termination) Remaining() time.Duration {
	if t.deadline.IsZero() {
		return -1
	}
	if r := t.deadline.Sub(t.clock.Now()); r > 0 {
		return r
	}
	return 0
}
