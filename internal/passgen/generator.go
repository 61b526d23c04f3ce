package passgen

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/signalsfoundry/contact-scheduler/model"
)

// GeneratorConfig describes one generated problem instance.
type GeneratorConfig struct {
	Passes PassOptions
	// Terminals are the ground nodes; node ids are their indexes.
	Terminals []GroundTerminal
	// AppContextsPerNode is the number of application contexts per node.
	// Each context yields a QKD and an OPTICAL_ONLY target.
	AppContextsPerNode int
	Seed               uint64
}

// GenerateTargets creates, for every node and application context, a QKD
// target followed by an OPTICAL_ONLY target sharing one application id and
// one priority drawn uniformly from [0.5, 1] with two decimals.
func GenerateTargets(nodes, appContextsPerNode int, rng *rand.Rand) []model.ServiceTarget {
	targets := make([]model.ServiceTarget, 0, 2*nodes*appContextsPerNode)
	app := 0
	for node := 0; node < nodes; node++ {
		for range appContextsPerNode {
			priority := math.Round((0.5+0.5*rng.Float64())*100) / 100
			for _, op := range []model.Operation{model.OperationQKD, model.OperationOpticalOnly} {
				targets = append(targets, model.ServiceTarget{
					ID:                 len(targets),
					ApplicationID:      app,
					Priority:           priority,
					NodeID:             node,
					RequestedOperation: op,
				})
			}
			app++
		}
	}
	return targets
}

// GenerateInstance predicts the passes of prop over cfg.Terminals and pairs
// them with seeded service targets. The same seed yields the same instance,
// id included.
func GenerateInstance(ctx context.Context, prop *Propagator, cfg GeneratorConfig) (model.Instance, error) {
	if len(cfg.Terminals) == 0 {
		return model.Instance{}, fmt.Errorf("at least one ground terminal is required")
	}
	if cfg.AppContextsPerNode < 0 {
		return model.Instance{}, fmt.Errorf("application contexts per node must be >= 0, got %d", cfg.AppContextsPerNode)
	}

	passes, err := PredictPasses(ctx, prop, cfg.Terminals, cfg.Passes)
	if err != nil {
		return model.Instance{}, fmt.Errorf("predict passes: %w", err)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5deece66d))
	targets := GenerateTargets(len(cfg.Terminals), cfg.AppContextsPerNode, rng)

	var seed [32]byte
	for i := range 4 {
		v := rng.Uint64()
		for b := range 8 {
			seed[i*8+b] = byte(v >> (8 * b))
		}
	}
	id, err := uuid.NewRandomFromReader(rand.NewChaCha8(seed))
	if err != nil {
		return model.Instance{}, fmt.Errorf("instance id: %w", err)
	}

	in := model.Instance{
		ID:                  id.String(),
		CoverageStart:       cfg.Passes.Start,
		CoverageEnd:         cfg.Passes.End,
		MinElevationDeg:     cfg.Passes.MinElevationDeg,
		StepDuration:        cfg.Passes.Step,
		GroundTerminals:     len(cfg.Terminals),
		ApplicationContexts: cfg.AppContextsPerNode,
		SatellitePasses:     passes,
		ServiceTargets:      targets,
	}
	if err := in.Validate(); err != nil {
		return model.Instance{}, err
	}
	return in, nil
}
