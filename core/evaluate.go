package core

import "github.com/signalsfoundry/contact-scheduler/model"

// Evaluate recomputes the full score breakdown of sol from the constraint
// definitions, pair by pair. It is quadratic in the number of contacts and
// is meant for verification and one-off scoring; the search uses
// ScoreDirector instead.
func Evaluate(sol *model.Solution, opts Options) Impact {
	var im Impact
	contacts := sol.Contacts

	passCount := make(map[int]int)
	targetCount := make(map[int]int)
	for _, c := range contacts {
		if !c.Selected {
			continue
		}
		pass, target := sol.PassOf(c), sol.TargetOf(c)
		passCount[c.PassIndex]++
		targetCount[c.TargetIndex]++
		if !model.IsValidServiceTarget(pass, target) {
			im.Hard[ValidServiceTarget]++
		}
		im.Soft += model.Reward(pass, target)
	}
	for _, n := range passCount {
		im.Hard[SingleAssignmentPerPass] += groupViolation(n)
	}
	for _, n := range targetCount {
		im.Hard[SingleAssignmentPerTarget] += groupViolation(n)
	}

	for i := range contacts {
		for j := i + 1; j < len(contacts); j++ {
			a, b := contacts[i], contacts[j]
			if a.Selected && b.Selected && intervalsConflict(sol.PassOf(a), sol.PassOf(b), opts.MinGap) {
				im.Hard[NonOverlappingContacts]++
			}

			qkd, opt, ok := orderingRoles(sol, a, b)
			if !ok {
				continue
			}
			ordered := sol.PassOf(qkd).StartTime.Before(sol.PassOf(opt).StartTime)
			if qkd.Selected && opt.Selected && !ordered {
				im.Hard[QKDBeforePostProcessing]++
			}
			if ordered && qkd.Selected && !opt.Selected {
				im.Hard[QKDRequiresPostProcessing]++
			}
		}
	}
	return im
}

// orderingRoles reports whether a and b form a QKD / post-processing pair
// for the same application, returning them as (qkd, optical).
func orderingRoles(sol *model.Solution, a, b model.Contact) (model.Contact, model.Contact, bool) {
	ta, tb := sol.TargetOf(a), sol.TargetOf(b)
	if ta.ApplicationID != tb.ApplicationID {
		return model.Contact{}, model.Contact{}, false
	}
	switch {
	case ta.RequestedOperation == model.OperationQKD && tb.RequestedOperation == model.OperationOpticalOnly:
		return a, b, true
	case ta.RequestedOperation == model.OperationOpticalOnly && tb.RequestedOperation == model.OperationQKD:
		return b, a, true
	default:
		return model.Contact{}, model.Contact{}, false
	}
}
