package core

import (
	"sort"

	"github.com/signalsfoundry/contact-scheduler/model"
)

// NoContact marks the unused slot of a single-contact Move.
const NoContact = -1

// Move flips the selection of one or two contacts. Second is NoContact for a
// plain toggle. A swap deselects one contact and selects another; a pair
// insertion selects two at once.
type Move struct {
	First  int
	Second int
}

// ToggleMove flips a single contact.
func ToggleMove(i int) Move { return Move{First: i, Second: NoContact} }

// PairMove flips two distinct contacts as one step.
func PairMove(a, b int) Move { return Move{First: a, Second: b} }

// Contacts returns the contact positions touched by the move.
func (m Move) Contacts() []int {
	if m.Second == NoContact || m.Second == m.First {
		return []int{m.First}
	}
	return []int{m.First, m.Second}
}

type contactInfo struct {
	pass    int
	target  int
	orbit   int
	qkd     bool
	invalid bool
	reward  float64
}

// partner links a contact to a contact of the opposite operation for the
// same application. ordered is true when the QKD side starts strictly
// before the post-processing side.
type partner struct {
	idx     int
	ordered bool
}

// ScoreDirector holds the working selection of a solution and keeps its
// score current under single-contact toggles. Everything a toggle can
// affect is indexed up front: overlap neighbours, pass and target group
// sizes, and QKD / post-processing partners.
//
// ToggleDelta and MoveDelta only read state and may be called from many
// goroutines at once, provided no Apply or Toggle runs concurrently.
type ScoreDirector struct {
	sol  *model.Solution
	opts Options

	info     []contactInfo
	overlap  [][]int
	partners [][]partner
	related  [][]int

	selected    []bool
	passCount   []int
	targetCount []int
	impact      Impact
}

// NewScoreDirector indexes sol and loads its current selection.
func NewScoreDirector(sol *model.Solution, opts Options) *ScoreDirector {
	n := len(sol.Contacts)
	d := &ScoreDirector{
		sol:         sol,
		opts:        opts,
		info:        make([]contactInfo, n),
		overlap:     make([][]int, n),
		partners:    make([][]partner, n),
		related:     make([][]int, n),
		selected:    make([]bool, n),
		passCount:   make([]int, len(sol.Passes)),
		targetCount: make([]int, len(sol.Targets)),
	}

	for i, c := range sol.Contacts {
		pass, target := sol.PassOf(c), sol.TargetOf(c)
		d.info[i] = contactInfo{
			pass:    c.PassIndex,
			target:  c.TargetIndex,
			orbit:   pass.OrbitID,
			qkd:     target.RequestedOperation == model.OperationQKD,
			invalid: !model.IsValidServiceTarget(pass, target),
			reward:  model.Reward(pass, target),
		}
	}
	d.indexOverlaps()
	d.indexPartners()
	d.indexRelated()

	for i, c := range sol.Contacts {
		if c.Selected {
			d.Toggle(i)
		}
	}
	return d
}

func (d *ScoreDirector) indexOverlaps() {
	n := len(d.info)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	start := func(i int) int64 { return d.sol.Passes[d.info[i].pass].StartTime.UnixNano() }
	sort.SliceStable(order, func(a, b int) bool { return start(order[a]) < start(order[b]) })

	gap := d.opts.MinGap
	for a, i := range order {
		pi := d.sol.Passes[d.info[i].pass]
		horizon := pi.EndTime.Add(gap)
		for _, j := range order[a+1:] {
			pj := d.sol.Passes[d.info[j].pass]
			if !pj.StartTime.Before(horizon) {
				break
			}
			if intervalsConflict(pi, pj, gap) {
				d.overlap[i] = append(d.overlap[i], j)
				d.overlap[j] = append(d.overlap[j], i)
			}
		}
	}
}

func (d *ScoreDirector) indexPartners() {
	type appGroup struct{ qkd, optical []int }
	apps := make(map[int]*appGroup)
	var appOrder []int
	for i, c := range d.sol.Contacts {
		t := d.sol.TargetOf(c)
		g, ok := apps[t.ApplicationID]
		if !ok {
			g = &appGroup{}
			apps[t.ApplicationID] = g
			appOrder = append(appOrder, t.ApplicationID)
		}
		switch t.RequestedOperation {
		case model.OperationQKD:
			g.qkd = append(g.qkd, i)
		case model.OperationOpticalOnly:
			g.optical = append(g.optical, i)
		}
	}

	for _, app := range appOrder {
		g := apps[app]
		for _, q := range g.qkd {
			qStart := d.sol.Passes[d.info[q].pass].StartTime
			for _, o := range g.optical {
				ordered := qStart.Before(d.sol.Passes[d.info[o].pass].StartTime)
				d.partners[q] = append(d.partners[q], partner{idx: o, ordered: ordered})
				d.partners[o] = append(d.partners[o], partner{idx: q, ordered: ordered})
			}
		}
	}
}

// indexRelated collects, per contact, every other contact whose selection
// interacts with it through some constraint.
func (d *ScoreDirector) indexRelated() {
	byTarget := make([][]int, len(d.sol.Targets))
	for i, ci := range d.info {
		byTarget[ci.target] = append(byTarget[ci.target], i)
	}

	stamp := make([]int, len(d.info))
	for i := range stamp {
		stamp[i] = -1
	}
	for i := range d.info {
		add := func(j int) {
			if j == i || stamp[j] == i {
				return
			}
			stamp[j] = i
			d.related[i] = append(d.related[i], j)
		}
		for _, j := range d.overlap[i] {
			add(j)
		}
		for _, j := range byTarget[d.info[i].target] {
			add(j)
		}
		for _, p := range d.partners[i] {
			add(p.idx)
		}
	}
}

// Len returns the number of candidate contacts.
func (d *ScoreDirector) Len() int { return len(d.info) }

// Score returns the score of the working selection.
func (d *ScoreDirector) Score() model.Score { return d.impact.Score() }

// Impact returns the per-constraint breakdown of the working selection.
func (d *ScoreDirector) Impact() Impact { return d.impact }

// Selected reports whether contact i is in the working selection.
func (d *ScoreDirector) Selected(i int) bool { return d.selected[i] }

// Selection returns a copy of the working selection.
func (d *ScoreDirector) Selection() []bool {
	out := make([]bool, len(d.selected))
	copy(out, d.selected)
	return out
}

// SelectedCount returns the number of selected contacts.
func (d *ScoreDirector) SelectedCount() int {
	n := 0
	for _, s := range d.selected {
		if s {
			n++
		}
	}
	return n
}

// Related returns the contacts sharing an overlap, a target or an
// application ordering with contact i. The slice must not be modified.
func (d *ScoreDirector) Related(i int) []int { return d.related[i] }

// Partners returns the contacts of the opposite operation for the same
// application as contact i.
func (d *ScoreDirector) Partners(i int) []int {
	out := make([]int, len(d.partners[i]))
	for k, p := range d.partners[i] {
		out[k] = p.idx
	}
	return out
}

// Reward returns the soft contribution contact i makes when selected.
func (d *ScoreDirector) Reward(i int) float64 { return d.info[i].reward }

// OrbitID returns the orbit of the pass behind contact i.
func (d *ScoreDirector) OrbitID(i int) int { return d.info[i].orbit }

// IsQKD reports whether contact i serves a QKD target.
func (d *ScoreDirector) IsQKD(i int) bool { return d.info[i].qkd }

// ToggleDelta returns the score change of flipping contact i.
func (d *ScoreDirector) ToggleDelta(i int) Impact {
	return d.toggleDelta(i, NoContact)
}

// MoveDelta returns the score change of applying m, without applying it.
func (d *ScoreDirector) MoveDelta(m Move) Impact {
	delta := d.toggleDelta(m.First, NoContact)
	if m.Second == NoContact {
		return delta
	}
	if m.Second == m.First {
		return Impact{}
	}
	delta.add(d.toggleDelta(m.Second, m.First))
	return delta
}

// Apply commits m to the working selection and returns the applied delta.
func (d *ScoreDirector) Apply(m Move) Impact {
	delta := d.Toggle(m.First)
	if m.Second != NoContact {
		delta.add(d.Toggle(m.Second))
	}
	return delta
}

// Toggle flips contact i and returns the applied delta.
func (d *ScoreDirector) Toggle(i int) Impact {
	delta := d.toggleDelta(i, NoContact)
	ci := d.info[i]
	step := 1
	if d.selected[i] {
		step = -1
	}
	d.selected[i] = !d.selected[i]
	d.passCount[ci.pass] += step
	d.targetCount[ci.target] += step
	d.impact.add(delta)
	return delta
}

// Restore moves the working selection to sel by toggling every position
// that differs.
func (d *ScoreDirector) Restore(sel []bool) {
	for i := range d.selected {
		want := i < len(sel) && sel[i]
		if d.selected[i] != want {
			d.Toggle(i)
		}
	}
	d.Resync()
}

// Resync recomputes the soft score from the selected rewards in candidate
// order, the same summation Evaluate uses, dropping the rounding error that
// incremental updates accumulate.
func (d *ScoreDirector) Resync() {
	soft := 0.0
	for i, sel := range d.selected {
		if sel {
			soft += d.info[i].reward
		}
	}
	d.impact.Soft = soft
}

// Commit writes the working selection and its score back into the solution.
func (d *ScoreDirector) Commit() *model.Solution {
	d.Resync()
	d.sol.ApplySelection(d.selected)
	d.sol.Score = d.Score()
	return d.sol
}

// toggleDelta computes the effect of flipping contact i while contact
// flipped (or NoContact) is treated as already flipped. Only constraints
// that reference contact i are visited.
func (d *ScoreDirector) toggleDelta(i, flipped int) Impact {
	isSel := func(j int) bool {
		if j == flipped {
			return !d.selected[j]
		}
		return d.selected[j]
	}

	ci := d.info[i]
	selecting := !isSel(i)
	sign := 1
	if !selecting {
		sign = -1
	}

	var im Impact
	for _, j := range d.overlap[i] {
		if isSel(j) {
			im.Hard[NonOverlappingContacts] += sign
		}
	}

	passCount, targetCount := d.passCount[ci.pass], d.targetCount[ci.target]
	if flipped != NoContact && flipped != i {
		fi := d.info[flipped]
		adj := 1
		if d.selected[flipped] {
			adj = -1
		}
		if fi.pass == ci.pass {
			passCount += adj
		}
		if fi.target == ci.target {
			targetCount += adj
		}
	}
	im.Hard[SingleAssignmentPerPass] = groupDelta(passCount, selecting)
	im.Hard[SingleAssignmentPerTarget] = groupDelta(targetCount, selecting)

	if ci.invalid {
		im.Hard[ValidServiceTarget] = sign
	}

	for _, p := range d.partners[i] {
		other := isSel(p.idx)
		if other && !p.ordered {
			im.Hard[QKDBeforePostProcessing] += sign
		}
		if !p.ordered {
			continue
		}
		switch {
		case ci.qkd && !other:
			// QKD selected before its post-processing partner is chosen.
			im.Hard[QKDRequiresPostProcessing] += sign
		case !ci.qkd && other:
			// Selecting the post-processing side clears the QKD side's debt.
			im.Hard[QKDRequiresPostProcessing] -= sign
		}
	}

	im.Soft = float64(sign) * ci.reward
	return im
}

func groupDelta(count int, selecting bool) int {
	if selecting {
		return groupViolation(count+1) - groupViolation(count)
	}
	return groupViolation(count-1) - groupViolation(count)
}

// ConstraintTotal is one line of a score explanation.
type ConstraintTotal struct {
	Constraint Constraint
	Violations int
}

// Explain lists the violation count of every hard constraint for the
// working selection.
func (d *ScoreDirector) Explain() []ConstraintTotal {
	out := make([]ConstraintTotal, 0, hardConstraintCount)
	for _, c := range HardConstraints() {
		out = append(out, ConstraintTotal{Constraint: c, Violations: d.impact.Hard[c]})
	}
	return out
}
