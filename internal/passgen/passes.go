package passgen

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/signalsfoundry/contact-scheduler/model"
)

// Defaults used by the instance generator.
const (
	DefaultStep               = 5 * time.Second
	DefaultMinElevationDeg    = 15.0
	DefaultQKDMinElevationDeg = 30.0
)

// PassOptions bounds pass prediction.
type PassOptions struct {
	Start time.Time
	End   time.Time
	// Step is the sampling interval.
	Step time.Duration
	// MinElevationDeg is the visibility threshold for a pass.
	MinElevationDeg float64
	// QKDMinElevationDeg zeroes the key volume of passes whose peak
	// elevation stays below it.
	QKDMinElevationDeg float64
}

func (o PassOptions) validate() error {
	switch {
	case !o.Start.Before(o.End):
		return fmt.Errorf("coverage start %s must be before end %s", o.Start, o.End)
	case o.Step <= 0:
		return fmt.Errorf("step must be positive, got %s", o.Step)
	case o.MinElevationDeg < 0 || o.MinElevationDeg >= 90:
		return fmt.Errorf("min elevation must be in [0, 90), got %g", o.MinElevationDeg)
	}
	return nil
}

// QUARCKeyRate approximates the secret key rate of a QUARC downlink at the
// given elevation in degrees. Negative values of the fit are clamped to 0.
func QUARCKeyRate(elevationDeg float64) float64 {
	e := elevationDeg
	rate := -0.0145*e*e*e + 2.04*e*e - 20.65*e + 88.42
	return math.Max(0, rate)
}

type openPass struct {
	start     time.Time
	last      time.Time
	peak      float64
	keyVolume float64
}

// PredictPasses samples the satellite track over opts' window and returns
// one pass per contiguous run of samples in which a terminal sees the
// satellite at or above the minimum elevation. Node ids are terminal
// indexes. Passes are ordered by start time and node and numbered from 0.
func PredictPasses(ctx context.Context, prop *Propagator, terminals []GroundTerminal, opts PassOptions) ([]model.SatellitePass, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	stations := make([]Vec3, len(terminals))
	for i, g := range terminals {
		stations[i] = g.Position()
	}
	open := make([]*openPass, len(terminals))
	stepSeconds := opts.Step.Seconds()

	var passes []model.SatellitePass
	closePass := func(node int, end time.Time) {
		op := open[node]
		open[node] = nil
		vol := op.keyVolume
		if op.peak < opts.QKDMinElevationDeg {
			vol = 0
		}
		passes = append(passes, model.SatellitePass{
			NodeID:              node,
			OrbitID:             prop.OrbitIndex(opts.Start, op.start),
			StartTime:           op.start,
			EndTime:             end,
			AchievableKeyVolume: math.Round(vol*100) / 100,
		})
	}

	for t, n := opts.Start, 0; !t.After(opts.End); t, n = t.Add(opts.Step), n+1 {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		sat := prop.PositionECEF(t)
		for node, obs := range stations {
			elev := ElevationDegrees(obs, sat)
			op := open[node]
			if elev < opts.MinElevationDeg {
				if op != nil {
					closePass(node, t)
				}
				continue
			}
			if op == nil {
				op = &openPass{start: t}
				open[node] = op
			}
			op.last = t
			op.peak = math.Max(op.peak, elev)
			op.keyVolume += QUARCKeyRate(elev) * stepSeconds
		}
	}
	for node, op := range open {
		if op == nil {
			continue
		}
		end := op.last.Add(opts.Step)
		if end.After(opts.End) {
			end = opts.End
		}
		if !end.After(op.start) {
			open[node] = nil
			continue
		}
		closePass(node, end)
	}

	sort.SliceStable(passes, func(i, j int) bool {
		if !passes[i].StartTime.Equal(passes[j].StartTime) {
			return passes[i].StartTime.Before(passes[j].StartTime)
		}
		return passes[i].NodeID < passes[j].NodeID
	})
	for i := range passes {
		passes[i].ID = i
	}
	return passes, nil
}
