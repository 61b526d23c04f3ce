package instance

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/signalsfoundry/contact-scheduler/model"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

type passJSON struct {
	ID                  int     `json:"id"`
	NodeID              int     `json:"nodeId"`
	OrbitID             int     `json:"orbitId"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	AchievableKeyVolume float64 `json:"achievableKeyVolume"`
}

type instanceJSON struct {
	ID                    string                `json:"problem_instance_id"`
	CoverageStart         string                `json:"coverage_start,omitempty"`
	CoverageEnd           string                `json:"coverage_end,omitempty"`
	MinElevationDeg       float64               `json:"min_elevation_angle"`
	StepDurationSeconds   float64               `json:"step_duration"`
	GroundTerminals       int                   `json:"number_ground_terminals"`
	ApplicationContexts   int                   `json:"number_application_contexts_per_node"`
	NumberSatellitePasses int                   `json:"number_satellite_passes"`
	NumberServiceTargets  int                   `json:"number_service_targets"`
	SatellitePasses       []passJSON            `json:"satellite_passes"`
	ServiceTargets        []model.ServiceTarget `json:"service_targets"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeFormat)
}

func toPassJSON(p model.SatellitePass) passJSON {
	return passJSON{
		ID:                  p.ID,
		NodeID:              p.NodeID,
		OrbitID:             p.OrbitID,
		StartTime:           formatTime(p.StartTime),
		EndTime:             formatTime(p.EndTime),
		AchievableKeyVolume: p.AchievableKeyVolume,
	}
}

// EncodeInstances writes instances as an indented JSON array that Decode
// reads back.
func EncodeInstances(w io.Writer, instances []model.Instance) error {
	out := make([]instanceJSON, 0, len(instances))
	for _, in := range instances {
		doc := instanceJSON{
			ID:                    in.ID,
			CoverageStart:         formatTime(in.CoverageStart),
			CoverageEnd:           formatTime(in.CoverageEnd),
			MinElevationDeg:       in.MinElevationDeg,
			StepDurationSeconds:   in.StepDuration.Seconds(),
			GroundTerminals:       in.GroundTerminals,
			ApplicationContexts:   in.ApplicationContexts,
			NumberSatellitePasses: len(in.SatellitePasses),
			NumberServiceTargets:  len(in.ServiceTargets),
			SatellitePasses:       make([]passJSON, 0, len(in.SatellitePasses)),
			ServiceTargets:        in.ServiceTargets,
		}
		if doc.ServiceTargets == nil {
			doc.ServiceTargets = []model.ServiceTarget{}
		}
		for _, p := range in.SatellitePasses {
			doc.SatellitePasses = append(doc.SatellitePasses, toPassJSON(p))
		}
		out = append(out, doc)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode instances: %w", err)
	}
	return nil
}
