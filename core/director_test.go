package core

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/signalsfoundry/contact-scheduler/model"
)

// randomInstance builds passes spread over a few hours on the given nodes,
// with two application contexts (QKD + post-processing) per node.
func randomInstance(seed uint64, numPasses, nodes, orbits int) ([]model.SatellitePass, []model.ServiceTarget) {
	rng := rand.New(rand.NewPCG(seed, seed*31+1))
	passes := make([]model.SatellitePass, numPasses)
	for i := range passes {
		offset := time.Duration(rng.IntN(6*3600)) * time.Second
		length := time.Duration(60+rng.IntN(600)) * time.Second
		volume := 0.0
		if rng.IntN(3) > 0 {
			volume = float64(rng.IntN(50))
		}
		passes[i] = passAt(100+i, rng.IntN(nodes), rng.IntN(orbits), offset, length, volume)
	}

	var targets []model.ServiceTarget
	id, app := 0, 0
	for node := 0; node < nodes; node++ {
		for k := 0; k < 2; k++ {
			priority := 0.5 + float64(rng.IntN(51))/100
			targets = append(targets,
				model.ServiceTarget{ID: id, ApplicationID: app, Priority: priority, NodeID: node, RequestedOperation: model.OperationQKD},
				model.ServiceTarget{ID: id + 1, ApplicationID: app, Priority: priority, NodeID: node, RequestedOperation: model.OperationOpticalOnly},
			)
			id += 2
			app++
		}
	}
	return passes, targets
}

func newTestSolution(t *testing.T, passes []model.SatellitePass, targets []model.ServiceTarget) *model.Solution {
	t.Helper()
	sol, err := NewSolution(passes, targets)
	if err != nil {
		t.Fatalf("NewSolution: %v", err)
	}
	return sol
}

func TestSingleQKDContactScore(t *testing.T) {
	passes := []model.SatellitePass{passAt(1, 7, 0, 0, 10*time.Minute, 5)}
	targets := []model.ServiceTarget{{ID: 1, ApplicationID: 1, Priority: 2, NodeID: 7, RequestedOperation: model.OperationQKD}}
	sol := newTestSolution(t, passes, targets)
	if len(sol.Contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(sol.Contacts))
	}

	d := NewScoreDirector(sol, DefaultOptions())
	d.Toggle(0)
	if got := d.Score(); got != (model.Score{Hard: 0, Soft: 12}) {
		t.Fatalf("Score() = %v, want 0hard/12soft", got)
	}
	if got := Evaluate(d.Commit(), DefaultOptions()).Score(); got != (model.Score{Hard: 0, Soft: 12}) {
		t.Fatalf("Evaluate() = %v, want 0hard/12soft", got)
	}
}

func TestOverlapUsesMinGap(t *testing.T) {
	passes := []model.SatellitePass{
		passAt(1, 1, 0, 0, 5*time.Minute, 0),
		passAt(2, 2, 0, 5*time.Minute+30*time.Second, 5*time.Minute, 0),
	}
	targets := []model.ServiceTarget{
		{ID: 1, ApplicationID: 1, Priority: 1, NodeID: 1, RequestedOperation: model.OperationOpticalOnly},
		{ID: 2, ApplicationID: 2, Priority: 1, NodeID: 2, RequestedOperation: model.OperationOpticalOnly},
	}

	tests := []struct {
		name string
		gap  time.Duration
		want int
	}{
		{"no padding", 0, 0},
		{"padding bridges the gap", time.Minute, 1},
		{"padding shorter than the gap", 10 * time.Second, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := newTestSolution(t, passes, targets)
			d := NewScoreDirector(sol, Options{MinGap: tt.gap})
			d.Apply(PairMove(0, 1))
			if got := d.Impact().Violations(NonOverlappingContacts); got != tt.want {
				t.Fatalf("overlap violations = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGroupPenaltyCountsGroupsNotMembers(t *testing.T) {
	passes := []model.SatellitePass{passAt(1, 1, 0, 0, 5*time.Minute, 0)}
	targets := []model.ServiceTarget{
		{ID: 1, ApplicationID: 1, Priority: 1, NodeID: 1, RequestedOperation: model.OperationOpticalOnly},
		{ID: 2, ApplicationID: 2, Priority: 1, NodeID: 1, RequestedOperation: model.OperationOpticalOnly},
		{ID: 3, ApplicationID: 3, Priority: 1, NodeID: 1, RequestedOperation: model.OperationOpticalOnly},
	}
	sol := newTestSolution(t, passes, targets)
	d := NewScoreDirector(sol, DefaultOptions())
	for i := 0; i < 3; i++ {
		d.Toggle(i)
	}
	if got := d.Impact().Violations(SingleAssignmentPerPass); got != 1 {
		t.Fatalf("pass group violations = %d, want 1", got)
	}
	// Three contacts on one pass also overlap pairwise.
	if got := d.Impact().Violations(NonOverlappingContacts); got != 3 {
		t.Fatalf("overlap violations = %d, want 3", got)
	}
}

func TestInvalidServiceTargetPenalty(t *testing.T) {
	sol := &model.Solution{
		Passes:  []model.SatellitePass{passAt(1, 1, 0, 0, time.Minute, 0)},
		Targets: []model.ServiceTarget{{ID: 1, Priority: 1, NodeID: 1, RequestedOperation: model.OperationQKD}},
		Contacts: []model.Contact{
			{ID: 0, PassIndex: 0, TargetIndex: 0, Selected: true},
		},
	}
	d := NewScoreDirector(sol, DefaultOptions())
	if got := d.Impact().Violations(ValidServiceTarget); got != 1 {
		t.Fatalf("invalid target violations = %d, want 1", got)
	}
	if got := Evaluate(sol, DefaultOptions()).Violations(ValidServiceTarget); got != 1 {
		t.Fatalf("Evaluate invalid target violations = %d, want 1", got)
	}
}

// orderingFixture has one application with a QKD and a post-processing
// target on node 1, and two passes two hours apart.
//
//	contact 0: early pass, QKD
//	contact 1: early pass, OPTICAL_ONLY
//	contact 2: late pass,  QKD
//	contact 3: late pass,  OPTICAL_ONLY
func orderingFixture(t *testing.T) *model.Solution {
	passes := []model.SatellitePass{
		passAt(1, 1, 0, 0, 5*time.Minute, 5),
		passAt(2, 1, 1, 2*time.Hour, 5*time.Minute, 5),
	}
	targets := []model.ServiceTarget{
		{ID: 1, ApplicationID: 9, Priority: 1, NodeID: 1, RequestedOperation: model.OperationQKD},
		{ID: 2, ApplicationID: 9, Priority: 1, NodeID: 1, RequestedOperation: model.OperationOpticalOnly},
	}
	return newTestSolution(t, passes, targets)
}

func TestQKDAfterPostProcessingViolatesOrdering(t *testing.T) {
	sol := orderingFixture(t)
	d := NewScoreDirector(sol, DefaultOptions())
	d.Apply(PairMove(2, 1))

	im := d.Impact()
	if got := im.Violations(QKDBeforePostProcessing); got != 1 {
		t.Fatalf("ordering violations = %d, want 1", got)
	}
	if got := im.Violations(QKDRequiresPostProcessing); got != 0 {
		t.Fatalf("pairing violations = %d, want 0", got)
	}
	if got := d.Score().Hard; got != 1 {
		t.Fatalf("hard = %d, want 1", got)
	}
}

func TestQKDWithoutLaterPostProcessingViolatesPairing(t *testing.T) {
	sol := orderingFixture(t)
	d := NewScoreDirector(sol, DefaultOptions())
	d.Toggle(0)

	if got := d.Impact().Violations(QKDRequiresPostProcessing); got != 1 {
		t.Fatalf("pairing violations = %d, want 1", got)
	}

	d.Toggle(3)
	if got := d.Score(); got.Hard != 0 || got.Soft != 7 {
		t.Fatalf("Score() = %v, want 0hard/7soft", got)
	}
}

// Rule 6 only charges a QKD contact that starts before its post-processing
// partner, so a lone QKD contact on the later pass carries no violation.
func TestLateQKDAloneIsNotPenalised(t *testing.T) {
	sol := orderingFixture(t)
	d := NewScoreDirector(sol, DefaultOptions())
	d.Toggle(2)

	for _, c := range HardConstraints() {
		if got := d.Impact().Violations(c); got != 0 {
			t.Fatalf("%v violations = %d, want 0", c, got)
		}
	}
	if got := d.Score(); got != (model.Score{Hard: 0, Soft: 6}) {
		t.Fatalf("Score() = %v, want 0hard/6soft", got)
	}
	if want := Evaluate(d.Commit(), DefaultOptions()); want.Violations(QKDRequiresPostProcessing) != 0 {
		t.Fatalf("Evaluate counts %d pairing violations", want.Violations(QKDRequiresPostProcessing))
	}
}

func TestResyncRemovesAccumulatedDrift(t *testing.T) {
	passes, targets := randomInstance(5, 60, 3, 6)
	for i := range targets {
		targets[i].Priority = 0.1 + float64(i%7)/10
	}
	sol := newTestSolution(t, passes, targets)
	d := NewScoreDirector(sol, DefaultOptions())
	rng := rand.New(rand.NewPCG(8, 13))

	for step := 0; step < 20000; step++ {
		d.Toggle(rng.IntN(d.Len()))
	}
	d.Resync()
	want := Evaluate(d.Commit(), DefaultOptions()).Score()
	if got := d.Score(); got != want {
		t.Fatalf("resynced score %v, want exactly %v", got, want)
	}

	snapshot := d.Selection()
	for step := 0; step < 5000; step++ {
		d.Toggle(rng.IntN(d.Len()))
	}
	d.Restore(snapshot)
	if got := d.Score(); got != want {
		t.Fatalf("restored score %v, want exactly %v", got, want)
	}
}

func TestMoveDeltaMatchesApply(t *testing.T) {
	passes, targets := randomInstance(11, 40, 3, 4)
	sol := newTestSolution(t, passes, targets)
	d := NewScoreDirector(sol, DefaultOptions())
	rng := rand.New(rand.NewPCG(3, 5))

	for step := 0; step < 500; step++ {
		m := ToggleMove(rng.IntN(d.Len()))
		if rng.IntN(2) == 0 {
			if related := d.Related(m.First); len(related) > 0 {
				m.Second = related[rng.IntN(len(related))]
			}
		}

		before := d.Score()
		predicted := d.MoveDelta(m).Score()
		applied := d.Apply(m).Score()
		after := d.Score()

		if !predicted.ApproxEqual(applied, 1e-9) {
			t.Fatalf("step %d: MoveDelta %v != applied delta %v", step, predicted, applied)
		}
		if !after.Sub(before).ApproxEqual(predicted, 1e-9) {
			t.Fatalf("step %d: score moved by %v, predicted %v", step, after.Sub(before), predicted)
		}
	}
}

func TestIncrementalScoreMatchesFullEvaluation(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 4} {
		passes, targets := randomInstance(seed, 35, 3, 5)
		sol := newTestSolution(t, passes, targets)
		d := NewScoreDirector(sol, DefaultOptions())
		rng := rand.New(rand.NewPCG(seed, 99))

		for step := 0; step < 300 && d.Len() > 0; step++ {
			d.Toggle(rng.IntN(d.Len()))
			if step%25 != 0 {
				continue
			}
			want := Evaluate(d.Commit(), DefaultOptions())
			got := d.Impact()
			if got.Hard != want.Hard {
				t.Fatalf("seed %d step %d: hard breakdown %v, want %v", seed, step, got.Hard, want.Hard)
			}
			if got.Score() != want.Score() {
				t.Fatalf("seed %d step %d: score %v, want %v", seed, step, got.Score(), want.Score())
			}
		}

		// Undoing every selection must return to the empty score.
		d.Restore(nil)
		if got := d.Score(); got != (model.Score{}) {
			t.Fatalf("seed %d: empty selection scores %v", seed, got)
		}
	}
}

func TestNewScoreDirectorLoadsExistingSelection(t *testing.T) {
	passes, targets := randomInstance(21, 20, 2, 3)
	sol := newTestSolution(t, passes, targets)
	for i := range sol.Contacts {
		sol.Contacts[i].Selected = i%3 == 0
	}
	want := Evaluate(sol, DefaultOptions())
	d := NewScoreDirector(sol, DefaultOptions())
	if d.Impact().Hard != want.Hard || !d.Score().ApproxEqual(want.Score(), 1e-9) {
		t.Fatalf("loaded impact %+v, want %+v", d.Impact(), want)
	}
}

func TestExplainListsEveryHardConstraint(t *testing.T) {
	d := NewScoreDirector(orderingFixture(t), DefaultOptions())
	d.Toggle(0)
	lines := d.Explain()
	if len(lines) != len(HardConstraints()) {
		t.Fatalf("Explain() returned %d lines, want %d", len(lines), len(HardConstraints()))
	}
	total := 0
	for _, l := range lines {
		if l.Constraint.String() == "unknown constraint" {
			t.Fatalf("constraint %d has no name", l.Constraint)
		}
		total += l.Violations
	}
	if total != d.Score().Hard {
		t.Fatalf("explained violations %d != hard score %d", total, d.Score().Hard)
	}
}
