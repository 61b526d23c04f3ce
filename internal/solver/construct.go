package solver

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel"

	"github.com/signalsfoundry/contact-scheduler/core"
	"github.com/signalsfoundry/contact-scheduler/model"
	"github.com/signalsfoundry/contact-scheduler/timectrl"
)

// constructionCheckEvery is how many contacts the construction pass visits
// between termination polls.
const constructionCheckEvery = 256

// construct visits contacts from the hardest to place (lowest orbit id)
// and keeps each one whose selection strictly improves the score, so it
// never adds a hard violation for the sake of reward.
func (s *Solver) construct(ctx context.Context, d *core.ScoreDirector, term *timectrl.Termination) model.Score {
	_, span := otel.Tracer(tracerName).Start(ctx, "solver.construct")
	defer span.End()

	order := constructionOrder(d)
	for k, i := range order {
		if k%constructionCheckEvery == 0 && k > 0 {
			if _, stop := term.Check(ctx, 0, 0); stop {
				break
			}
		}
		if d.Selected(i) {
			continue
		}
		if d.ToggleDelta(i).Score().Better(model.Score{}) {
			d.Toggle(i)
		}
	}
	d.Resync()
	return d.Score()
}

// constructionOrder sorts contacts by orbit id, then by descending reward,
// then by candidate position.
func constructionOrder(d *core.ScoreDirector) []int {
	order := make([]int, d.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if oa, ob := d.OrbitID(ia), d.OrbitID(ib); oa != ob {
			return oa < ob
		}
		if ra, rb := d.Reward(ia), d.Reward(ib); ra != rb {
			return ra > rb
		}
		return ia < ib
	})
	return order
}
