// Package instance reads and writes problem instances and solver reports
// in the JSON layout produced by the instance generator.
package instance

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/signalsfoundry/contact-scheduler/model"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseTime accepts RFC 3339 timestamps as well as the zone-less forms
// written by the generator ("2024-01-05T00:00:00", "2024-01-05 00:12:30.5").
// Zone-less values are read as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// DecodeReader reads all of r and decodes it with Decode.
func DecodeReader(r io.Reader) ([]model.Instance, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read instances: %w", err)
	}
	return Decode(data)
}

// Decode parses either a JSON array of instances or a single instance
// object. Every decoded instance is validated; failures wrap
// model.ErrInvalidInstance.
func Decode(data []byte) ([]model.Instance, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", model.ErrInvalidInstance)
	}
	root := gjson.ParseBytes(data)

	var items []gjson.Result
	switch {
	case root.IsArray():
		items = root.Array()
	case root.IsObject():
		items = []gjson.Result{root}
	default:
		return nil, fmt.Errorf("%w: expected an instance object or an array of instances", model.ErrInvalidInstance)
	}

	out := make([]model.Instance, 0, len(items))
	for i, item := range items {
		in, err := decodeInstance(item)
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", i, err)
		}
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("instance %d (%s): %w", i, in.ID, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func decodeInstance(r gjson.Result) (model.Instance, error) {
	in := model.Instance{
		ID:                  r.Get("problem_instance_id").String(),
		MinElevationDeg:     r.Get("min_elevation_angle").Float(),
		StepDuration:        time.Duration(r.Get("step_duration").Float() * float64(time.Second)),
		GroundTerminals:     int(r.Get("number_ground_terminals").Int()),
		ApplicationContexts: int(r.Get("number_application_contexts_per_node").Int()),
	}

	var err error
	if v := r.Get("coverage_start"); v.Exists() {
		if in.CoverageStart, err = ParseTime(v.String()); err != nil {
			return in, fmt.Errorf("%w: coverage_start: %v", model.ErrInvalidInstance, err)
		}
	}
	if v := r.Get("coverage_end"); v.Exists() {
		if in.CoverageEnd, err = ParseTime(v.String()); err != nil {
			return in, fmt.Errorf("%w: coverage_end: %v", model.ErrInvalidInstance, err)
		}
	}

	passes := firstOf(r, "satellite_passes", "satellitePasses")
	if passes.Exists() && !passes.IsArray() {
		return in, fmt.Errorf("%w: satellite_passes is not an array", model.ErrInvalidInstance)
	}
	for i, p := range passes.Array() {
		pass, err := decodePass(p)
		if err != nil {
			return in, fmt.Errorf("%w: satellite pass %d: %v", model.ErrInvalidInstance, i, err)
		}
		in.SatellitePasses = append(in.SatellitePasses, pass)
	}

	targets := firstOf(r, "service_targets", "serviceTargets")
	if targets.Exists() && !targets.IsArray() {
		return in, fmt.Errorf("%w: service_targets is not an array", model.ErrInvalidInstance)
	}
	for i, t := range targets.Array() {
		target, err := decodeTarget(t)
		if err != nil {
			return in, fmt.Errorf("%w: service target %d: %v", model.ErrInvalidInstance, i, err)
		}
		in.ServiceTargets = append(in.ServiceTargets, target)
	}
	return in, nil
}

func decodePass(r gjson.Result) (model.SatellitePass, error) {
	if err := requireFields(r, "id", "nodeId", "startTime", "endTime"); err != nil {
		return model.SatellitePass{}, err
	}
	start, err := ParseTime(r.Get("startTime").String())
	if err != nil {
		return model.SatellitePass{}, err
	}
	end, err := ParseTime(r.Get("endTime").String())
	if err != nil {
		return model.SatellitePass{}, err
	}
	return model.SatellitePass{
		ID:                  int(r.Get("id").Int()),
		NodeID:              int(r.Get("nodeId").Int()),
		OrbitID:             int(r.Get("orbitId").Int()),
		StartTime:           start,
		EndTime:             end,
		AchievableKeyVolume: r.Get("achievableKeyVolume").Float(),
	}, nil
}

func decodeTarget(r gjson.Result) (model.ServiceTarget, error) {
	if err := requireFields(r, "id", "nodeId", "requestedOperation"); err != nil {
		return model.ServiceTarget{}, err
	}
	return model.ServiceTarget{
		ID:                 int(r.Get("id").Int()),
		ApplicationID:      int(r.Get("applicationId").Int()),
		Priority:           r.Get("priority").Float(),
		NodeID:             int(r.Get("nodeId").Int()),
		RequestedOperation: model.Operation(r.Get("requestedOperation").String()),
	}, nil
}

func requireFields(r gjson.Result, keys ...string) error {
	for _, k := range keys {
		if !r.Get(k).Exists() {
			return fmt.Errorf("missing field %q", k)
		}
	}
	return nil
}

func firstOf(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}
