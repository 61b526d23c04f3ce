package core

import (
	"time"

	"github.com/signalsfoundry/contact-scheduler/model"
)

// DefaultMinGap is the padding applied on both sides of a pass window when
// checking whether two selected contacts overlap.
const DefaultMinGap = 60 * time.Second

// Options parameterise the score model.
type Options struct {
	// MinGap pads each contact interval before the overlap test. Zero means
	// plain interval intersection.
	MinGap time.Duration
}

// DefaultOptions returns the score model defaults.
func DefaultOptions() Options {
	return Options{MinGap: DefaultMinGap}
}

// Constraint identifies one of the hard constraints of the score model.
type Constraint int

const (
	NonOverlappingContacts Constraint = iota
	SingleAssignmentPerPass
	SingleAssignmentPerTarget
	ValidServiceTarget
	QKDBeforePostProcessing
	QKDRequiresPostProcessing

	hardConstraintCount
)

var constraintNames = [hardConstraintCount]string{
	NonOverlappingContacts:    "Overlapping contacts conflict",
	SingleAssignmentPerPass:   "Single assignment per pass",
	SingleAssignmentPerTarget: "Single assignment per service target",
	ValidServiceTarget:        "Invalid service target",
	QKDBeforePostProcessing:   "QKD before post-processing for the same application",
	QKDRequiresPostProcessing: "QKD and its post-processing in the same schedule",
}

// HardConstraints lists every hard constraint in evaluation order.
func HardConstraints() []Constraint {
	out := make([]Constraint, hardConstraintCount)
	for i := range out {
		out[i] = Constraint(i)
	}
	return out
}

func (c Constraint) String() string {
	if c < 0 || c >= hardConstraintCount {
		return "unknown constraint"
	}
	return constraintNames[c]
}

// Impact is a score broken down per hard constraint. It is the unit both
// full evaluation and incremental deltas are expressed in.
type Impact struct {
	Hard [hardConstraintCount]int
	Soft float64
}

// Score collapses the breakdown into a lexicographic score.
func (im Impact) Score() model.Score {
	hard := 0
	for _, v := range im.Hard {
		hard += v
	}
	return model.Score{Hard: hard, Soft: im.Soft}
}

// Violations returns the hard count recorded for c.
func (im Impact) Violations(c Constraint) int {
	if c < 0 || c >= hardConstraintCount {
		return 0
	}
	return im.Hard[c]
}

func (im *Impact) add(o Impact) {
	for i := range im.Hard {
		im.Hard[i] += o.Hard[i]
	}
	im.Soft += o.Soft
}

func (im Impact) negate() Impact {
	for i := range im.Hard {
		im.Hard[i] = -im.Hard[i]
	}
	im.Soft = -im.Soft
	return im
}

// groupViolation is the per-group penalty of the single-assignment rules:
// one violation for any group holding more than one contact.
func groupViolation(count int) int {
	if count > 1 {
		return 1
	}
	return 0
}

// intervalsConflict reports whether two pass windows intersect once padded
// by gap on both sides.
func intervalsConflict(a, b model.SatellitePass, gap time.Duration) bool {
	return a.StartTime.Before(b.EndTime.Add(gap)) && a.EndTime.After(b.StartTime.Add(-gap))
}
