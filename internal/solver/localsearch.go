package solver

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/contact-scheduler/core"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/model"
	"github.com/signalsfoundry/contact-scheduler/timectrl"
)

const (
	// softEpsilon is the relative soft margin a move must clear to count as
	// a new best.
	softEpsilon = 1e-9
	// resyncEvery is how many accepted moves pass between exact soft
	// recomputations of the working score.
	resyncEvery = 512
)

// localSearch improves the working selection until the termination fires
// and returns the best selection seen, construction result included.
func (s *Solver) localSearch(ctx context.Context, d *core.ScoreDirector, term *timectrl.Termination, log logging.Logger, stats *Stats) []bool {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "solver.local_search")
	defer span.End()

	rng := rand.New(rand.NewPCG(s.cfg.Seed, s.cfg.Seed^0x9e3779b97f4a7c15))
	tabuUntil := make([]int, d.Len())
	moves := make([]core.Move, 0, s.cfg.MovesPerStep)
	deltas := make([]model.Score, s.cfg.MovesPerStep)

	d.Resync()
	current := d.Score()
	bestScore := current
	best := d.Selection()
	unimproved := 0

	for {
		reason, stop := term.Check(ctx, stats.Steps, unimproved)
		if stop {
			stats.Termination = reason
			break
		}

		moves = sampleMoves(d, rng, moves[:0], s.cfg.MovesPerStep)
		if len(moves) == 0 {
			stats.Termination = timectrl.ReasonExhausted
			break
		}
		scoreMoves(d, moves, deltas[:len(moves)], s.cfg.Workers)
		stats.MovesEvaluated += len(moves)
		stats.Steps++
		step := stats.Steps

		pick := -1
		var pickScore model.Score
		for k, m := range moves {
			cand := current.Add(deltas[k])
			if isTabu(tabuUntil, m, step) && !cand.ImprovesOn(bestScore, softEpsilon) {
				continue
			}
			if pick < 0 || cand.Better(pickScore) {
				pick, pickScore = k, cand
			}
		}

		if pick >= 0 && s.accept(current, pickScore, step) {
			m := moves[pick]
			d.Apply(m)
			stats.MovesAccepted++
			if stats.MovesAccepted%resyncEvery == 0 {
				d.Resync()
			}
			current = d.Score()
			for _, c := range m.Contacts() {
				tabuUntil[c] = step + s.cfg.TabuTenure
			}
			if current.ImprovesOn(bestScore, softEpsilon) {
				d.Resync()
				current = d.Score()
				bestScore = current
				best = d.Selection()
				unimproved = 0
				log.Debug(ctx, "new best score",
					logging.Int("step", step),
					logging.String("score", bestScore.String()),
				)
				continue
			}
		}
		unimproved++
	}

	stats.BestScore = bestScore
	span.SetAttributes(
		attribute.Int("solver.steps", stats.Steps),
		attribute.Int("solver.moves_accepted", stats.MovesAccepted),
	)
	return best
}

// accept decides whether the working selection may move from current to
// cand. Improvements and sideways moves are always taken; worsening moves
// pass while they stay within tolerances that shrink every step.
func (s *Solver) accept(current, cand model.Score, step int) bool {
	if cand.Compare(current) >= 0 {
		return true
	}
	decay := math.Pow(s.cfg.ToleranceDecay, float64(step))
	hardTol := int(math.Round(float64(s.cfg.HardTolerance) * decay))
	if cand.Hard-current.Hard > hardTol {
		return false
	}
	softTol := s.cfg.SoftTolerance * decay * math.Max(1, math.Abs(current.Soft))
	return cand.Soft >= current.Soft-softTol
}

func isTabu(tabuUntil []int, m core.Move, step int) bool {
	for _, c := range m.Contacts() {
		if tabuUntil[c] >= step {
			return true
		}
	}
	return false
}

// sampleMoves appends up to n moves drawn from the neighbourhood of the
// working selection: half single toggles, half two-contact moves over
// related contacts (swaps when exactly one side is selected).
func sampleMoves(d *core.ScoreDirector, rng *rand.Rand, moves []core.Move, n int) []core.Move {
	size := d.Len()
	if size == 0 {
		return moves
	}
	for len(moves) < n {
		i := rng.IntN(size)
		if rng.IntN(2) == 0 {
			moves = append(moves, core.ToggleMove(i))
			continue
		}
		related := d.Related(i)
		if len(related) == 0 {
			moves = append(moves, core.ToggleMove(i))
			continue
		}
		j := related[rng.IntN(len(related))]
		if d.Selected(j) && !d.Selected(i) {
			i, j = j, i
		}
		moves = append(moves, core.PairMove(i, j))
	}
	return moves
}

// scoreMoves fills out[k] with the score delta of moves[k]. With more than
// one worker the moves are split into contiguous chunks scored against the
// read-only director; the caller commits afterwards.
func scoreMoves(d *core.ScoreDirector, moves []core.Move, out []model.Score, workers int) {
	if workers <= 1 || len(moves) < 2*workers {
		for k, m := range moves {
			out[k] = d.MoveDelta(m).Score()
		}
		return
	}

	chunk := (len(moves) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(moves); lo += chunk {
		hi := min(lo+chunk, len(moves))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for k := lo; k < hi; k++ {
				out[k] = d.MoveDelta(moves[k]).Score()
			}
		}(lo, hi)
	}
	wg.Wait()
}
