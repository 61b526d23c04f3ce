package instance

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/contact-scheduler/core"
	"github.com/signalsfoundry/contact-scheduler/internal/solver"
	"github.com/signalsfoundry/contact-scheduler/model"
)

// Report statuses.
const (
	StatusFeasible   = "FEASIBLE"
	StatusInfeasible = "INFEASIBLE"
)

// ContactView is a contact with its pass and target inlined.
type ContactView struct {
	ID            int                 `json:"id"`
	Selected      bool                `json:"selected"`
	ServiceTarget model.ServiceTarget `json:"serviceTarget"`
	SatellitePass passJSON            `json:"satellitePass"`
}

// ConstraintView is one line of the hard score explanation.
type ConstraintView struct {
	Name       string `json:"name"`
	Violations int    `json:"violations"`
}

// Report is the serialised outcome of a solve.
type Report struct {
	ProblemInstanceID string           `json:"problem_instance_id"`
	RunID             string           `json:"run_id,omitempty"`
	Status            string           `json:"status"`
	Score             model.Score      `json:"score"`
	ScoreText         string           `json:"score_text"`
	Feasible          bool             `json:"feasible"`
	Objective         float64          `json:"objective"`
	Quality           int              `json:"quality"`
	RuntimeSeconds    float64          `json:"runtime_seconds"`
	Termination       string           `json:"termination"`
	Steps             int              `json:"steps"`
	CandidateContacts int              `json:"candidate_contacts"`
	SelectedContacts  int              `json:"selected_contacts"`
	Constraints       []ConstraintView `json:"constraints"`
	Contacts          []ContactView    `json:"contacts"`
}

// ReportOptions tune NewReport.
type ReportOptions struct {
	RunID string
	// IncludeUnselected keeps every candidate contact in the report instead
	// of only the selected ones.
	IncludeUnselected bool
}

// NewReport summarises sol and the stats of the run that produced it.
func NewReport(instanceID string, sol *model.Solution, stats solver.Stats, opts ReportOptions) *Report {
	objective := Objective(sol)
	r := &Report{
		ProblemInstanceID: instanceID,
		RunID:             opts.RunID,
		Score:             sol.Score,
		ScoreText:         sol.Score.String(),
		Feasible:          sol.Score.Feasible(),
		Objective:         objective,
		Quality:           int(objective),
		RuntimeSeconds:    stats.Elapsed.Seconds(),
		Termination:       string(stats.Termination),
		Steps:             stats.Steps,
		CandidateContacts: len(sol.Contacts),
		Constraints:       make([]ConstraintView, 0),
		Contacts:          make([]ContactView, 0),
	}
	r.Status = StatusInfeasible
	if r.Feasible {
		r.Status = StatusFeasible
	}

	for _, c := range core.HardConstraints() {
		r.Constraints = append(r.Constraints, ConstraintView{
			Name:       c.String(),
			Violations: stats.Breakdown.Violations(c),
		})
	}

	for _, c := range sol.Contacts {
		if c.Selected {
			r.SelectedContacts++
		}
		if !c.Selected && !opts.IncludeUnselected {
			continue
		}
		r.Contacts = append(r.Contacts, ContactView{
			ID:            c.ID,
			Selected:      c.Selected,
			ServiceTarget: sol.TargetOf(c),
			SatellitePass: toPassJSON(sol.PassOf(c)),
		})
	}
	return r
}

// Objective recomputes the soft objective over the selected contacts:
// the sum of priority * (1 + keyVolume) for QKD and priority otherwise.
// It is independent of the hard constraints.
func Objective(sol *model.Solution) float64 {
	total := 0.0
	for _, c := range sol.Contacts {
		if c.Selected {
			total += model.Reward(sol.PassOf(c), sol.TargetOf(c))
		}
	}
	return total
}

// WriteReport writes r as indented JSON.
func WriteReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteReports writes a single report as an object and several as an array.
func WriteReports(w io.Writer, reports []*Report) error {
	if len(reports) == 1 {
		return WriteReport(w, reports[0])
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if reports == nil {
		reports = []*Report{}
	}
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	return nil
}
