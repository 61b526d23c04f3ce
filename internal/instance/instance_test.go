package instance

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalsfoundry/contact-scheduler/core"
	"github.com/signalsfoundry/contact-scheduler/internal/solver"
	"github.com/signalsfoundry/contact-scheduler/model"
	"github.com/signalsfoundry/contact-scheduler/timectrl"
)

const generatorOutput = `[
    {
        "problem_instance_id": "6f1c0d6e-4f3a-4a55-9d0b-7b1f3c1f2a10",
        "coverage_start": "2024-01-05T00:00:00",
        "coverage_end": "2024-01-06T00:00:00",
        "min_elevation_angle": 15,
        "step_duration": 5,
        "number_ground_terminals": 1,
        "number_application_contexts_per_node": 1,
        "number_satellite_passes": 2,
        "number_service_targets": 2,
        "satellite_passes": [
            {"id": 0, "nodeId": 0, "orbitId": 3, "startTime": "2024-01-05 00:12:30", "endTime": "2024-01-05 00:18:05.500000", "achievableKeyVolume": 1520.5},
            {"id": 1, "nodeId": 0, "orbitId": 4, "startTime": "2024-01-05T01:47:10Z", "endTime": "2024-01-05T01:51:40Z", "achievableKeyVolume": 0.0}
        ],
        "service_targets": [
            {"id": 0, "applicationId": 0, "priority": 0.73, "nodeId": 0, "requestedOperation": "QKD"},
            {"id": 1, "applicationId": 0, "priority": 0.73, "nodeId": 0, "requestedOperation": "OPTICAL_ONLY"}
        ]
    }
]`

func TestDecodeGeneratorOutput(t *testing.T) {
	instances, err := Decode([]byte(generatorOutput))
	require.NoError(t, err)
	require.Len(t, instances, 1)

	in := instances[0]
	assert.Equal(t, "6f1c0d6e-4f3a-4a55-9d0b-7b1f3c1f2a10", in.ID)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), in.CoverageStart)
	assert.Equal(t, 5*time.Second, in.StepDuration)
	assert.Equal(t, 15.0, in.MinElevationDeg)
	require.Len(t, in.SatellitePasses, 2)
	require.Len(t, in.ServiceTargets, 2)

	p := in.SatellitePasses[0]
	assert.Equal(t, 3, p.OrbitID)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 12, 30, 0, time.UTC), p.StartTime)
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 18, 5, 500000000, time.UTC), p.EndTime)
	assert.Equal(t, 1520.5, p.AchievableKeyVolume)

	assert.Equal(t, model.OperationOpticalOnly, in.ServiceTargets[1].RequestedOperation)
	assert.Equal(t, 0.73, in.ServiceTargets[1].Priority)
}

func TestDecodeSingleObject(t *testing.T) {
	doc := `{"problem_instance_id": "x", "satellite_passes": [], "service_targets": []}`
	instances, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Empty(t, instances[0].SatellitePasses)
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	tests := map[string]string{
		"malformed":     `[{"problem_instance_id": `,
		"scalar":        `42`,
		"missing field": `[{"satellite_passes": [{"id": 1, "nodeId": 0, "startTime": "2024-01-05T00:00:00"}]}]`,
		"bad timestamp": `[{"satellite_passes": [{"id": 1, "nodeId": 0, "startTime": "yesterday", "endTime": "2024-01-05T00:00:00"}]}]`,
		"inverted pass": `[{"satellite_passes": [{"id": 1, "nodeId": 0, "startTime": "2024-01-05T00:10:00", "endTime": "2024-01-05T00:00:00"}]}]`,
		"duplicate ids": `[{"service_targets": [{"id": 1, "nodeId": 0, "requestedOperation": "QKD"}, {"id": 1, "nodeId": 0, "requestedOperation": "QKD"}]}]`,
		"passes object": `[{"satellite_passes": {"id": 1}}]`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidInstance)
		})
	}
}

func TestEncodeInstancesIsReadBack(t *testing.T) {
	instances, err := Decode([]byte(generatorOutput))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeInstances(&buf, instances))
	assert.Contains(t, buf.String(), `"number_satellite_passes": 2`)

	again, err := DecodeReader(&buf)
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, instances[0].ID, again[0].ID)
	assert.Equal(t, instances[0].StepDuration, again[0].StepDuration)
	// Sub-second precision is dropped by the generator's timestamp format.
	assert.Equal(t, instances[0].SatellitePasses[1], again[0].SatellitePasses[1])
}

func TestParseTimeLayouts(t *testing.T) {
	want := time.Date(2024, time.March, 2, 13, 4, 5, 0, time.UTC)
	for _, s := range []string{
		"2024-03-02T13:04:05Z",
		"2024-03-02T13:04:05",
		"2024-03-02 13:04:05",
		"2024-03-02 13:04:05+00:00",
		" 2024-03-02T14:04:05+01:00 ",
	} {
		got, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.True(t, got.Equal(want), "%q parsed as %v", s, got)
	}
}

func TestNewReportFiltersSelectedContacts(t *testing.T) {
	instances, err := Decode([]byte(generatorOutput))
	require.NoError(t, err)
	in := instances[0]

	sol, err := core.NewSolution(in.SatellitePasses, in.ServiceTargets)
	require.NoError(t, err)
	// pass 0 serves both targets, pass 1 (no key volume) only post-processing.
	require.Len(t, sol.Contacts, 3)
	sol.Contacts[0].Selected = true
	sol.Contacts[2].Selected = true

	d := core.NewScoreDirector(sol, core.DefaultOptions())
	d.Commit()
	stats := solver.Stats{
		Steps:       10,
		BestScore:   sol.Score,
		Breakdown:   d.Impact(),
		Elapsed:     1500 * time.Millisecond,
		Termination: timectrl.ReasonUnimproved,
	}

	r := NewReport(in.ID, sol, stats, ReportOptions{RunID: "run-1"})
	assert.Equal(t, StatusFeasible, r.Status)
	assert.True(t, r.Feasible)
	assert.Equal(t, 3, r.CandidateContacts)
	assert.Equal(t, 2, r.SelectedContacts)
	require.Len(t, r.Contacts, 2)
	for _, c := range r.Contacts {
		assert.True(t, c.Selected)
	}
	assert.Len(t, r.Constraints, len(core.HardConstraints()))

	wantObjective := 0.73*(1+1520.5) + 0.73
	assert.InDelta(t, wantObjective, r.Objective, 1e-9)
	assert.Equal(t, int(wantObjective), r.Quality)
	assert.InDelta(t, sol.Score.Soft, r.Objective, 1e-9)

	all := NewReport(in.ID, sol, stats, ReportOptions{IncludeUnselected: true})
	assert.Len(t, all.Contacts, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, r))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.True(t, strings.HasPrefix(decoded["score_text"].(string), "0hard/"))
}

func TestObjectiveIgnoresUnselected(t *testing.T) {
	sol := &model.Solution{
		Passes:  []model.SatellitePass{{AchievableKeyVolume: 4}},
		Targets: []model.ServiceTarget{{Priority: 1, RequestedOperation: model.OperationQKD}},
		Contacts: []model.Contact{
			{ID: 0, Selected: false},
		},
	}
	assert.Zero(t, Objective(sol))
	sol.Contacts[0].Selected = true
	assert.Equal(t, 5.0, Objective(sol))
}

func TestWriteReportsShape(t *testing.T) {
	a := &Report{ProblemInstanceID: "a", Status: StatusFeasible}
	b := &Report{ProblemInstanceID: "b", Status: StatusInfeasible}

	var one bytes.Buffer
	require.NoError(t, WriteReports(&one, []*Report{a}))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(one.String()), "{"))

	var many bytes.Buffer
	require.NoError(t, WriteReports(&many, []*Report{a, b}))
	var decoded []Report
	require.NoError(t, json.Unmarshal(many.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "b", decoded[1].ProblemInstanceID)

	var none bytes.Buffer
	require.NoError(t, WriteReports(&none, nil))
	assert.Equal(t, "[]", strings.TrimSpace(none.String()))
}
