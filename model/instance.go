package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInstance marks problem instances that cannot be scheduled as
// given: duplicate ids, inverted pass windows, negative volumes or
// priorities, or targets without an operation.
var ErrInvalidInstance = errors.New("invalid problem instance")

// Instance is one problem instance together with the metadata recorded by
// the generator that produced it.
type Instance struct {
	ID                  string
	CoverageStart       time.Time
	CoverageEnd         time.Time
	MinElevationDeg     float64
	StepDuration        time.Duration
	GroundTerminals     int
	ApplicationContexts int
	SatellitePasses     []SatellitePass
	ServiceTargets      []ServiceTarget
}

// Validate checks the structural invariants of the instance. Errors wrap
// ErrInvalidInstance.
func (in *Instance) Validate() error {
	passIDs := make(map[int]struct{}, len(in.SatellitePasses))
	for i, p := range in.SatellitePasses {
		if _, dup := passIDs[p.ID]; dup {
			return fmt.Errorf("%w: duplicate satellite pass id %d", ErrInvalidInstance, p.ID)
		}
		passIDs[p.ID] = struct{}{}
		if !p.StartTime.Before(p.EndTime) {
			return fmt.Errorf("%w: satellite pass %d (index %d) starts at or after its end", ErrInvalidInstance, p.ID, i)
		}
		if p.AchievableKeyVolume < 0 {
			return fmt.Errorf("%w: satellite pass %d has negative key volume %g", ErrInvalidInstance, p.ID, p.AchievableKeyVolume)
		}
	}

	targetIDs := make(map[int]struct{}, len(in.ServiceTargets))
	for _, t := range in.ServiceTargets {
		if _, dup := targetIDs[t.ID]; dup {
			return fmt.Errorf("%w: duplicate service target id %d", ErrInvalidInstance, t.ID)
		}
		targetIDs[t.ID] = struct{}{}
		if t.Priority < 0 {
			return fmt.Errorf("%w: service target %d has negative priority %g", ErrInvalidInstance, t.ID, t.Priority)
		}
		if t.RequestedOperation == "" {
			return fmt.Errorf("%w: service target %d has no requested operation", ErrInvalidInstance, t.ID)
		}
	}
	return nil
}
