package model

import (
	"fmt"
	"math"
)

// Score is a lexicographic (hard, soft) score. Hard counts constraint
// violations and is minimised; Soft is the reward and is maximised.
type Score struct {
	Hard int     `json:"hard"`
	Soft float64 `json:"soft"`
}

// Feasible reports whether no hard constraint is violated.
func (s Score) Feasible() bool { return s.Hard == 0 }

// Compare returns 1 if s is better than o, -1 if worse and 0 if equal.
// Fewer hard violations always win; soft breaks ties.
func (s Score) Compare(o Score) int {
	switch {
	case s.Hard < o.Hard:
		return 1
	case s.Hard > o.Hard:
		return -1
	case s.Soft > o.Soft:
		return 1
	case s.Soft < o.Soft:
		return -1
	default:
		return 0
	}
}

// Better reports whether s is strictly better than o.
func (s Score) Better(o Score) bool { return s.Compare(o) > 0 }

// Add returns the component-wise sum of s and o.
func (s Score) Add(o Score) Score {
	return Score{Hard: s.Hard + o.Hard, Soft: s.Soft + o.Soft}
}

// Sub returns the component-wise difference s - o.
func (s Score) Sub(o Score) Score {
	return Score{Hard: s.Hard - o.Hard, Soft: s.Soft - o.Soft}
}

// ApproxEqual compares two scores allowing a relative error on the soft part.
// Soft sums accumulate floating point error under incremental updates.
func (s Score) ApproxEqual(o Score, tol float64) bool {
	if s.Hard != o.Hard {
		return false
	}
	diff := math.Abs(s.Soft - o.Soft)
	scale := math.Max(1, math.Max(math.Abs(s.Soft), math.Abs(o.Soft)))
	return diff <= tol*scale
}

// ImprovesOn reports whether s beats o by more than the relative soft
// tolerance tol. Soft differences within tol count as a tie.
func (s Score) ImprovesOn(o Score, tol float64) bool {
	if s.Hard != o.Hard {
		return s.Hard < o.Hard
	}
	scale := math.Max(1, math.Max(math.Abs(s.Soft), math.Abs(o.Soft)))
	return s.Soft-o.Soft > tol*scale
}

// String renders the score the way constraint solvers usually print it,
// with hard violations negated: "-2hard/13.5soft".
func (s Score) String() string {
	return fmt.Sprintf("%dhard/%gsoft", -s.Hard, s.Soft)
}
