package core

import (
	"fmt"

	"github.com/signalsfoundry/contact-scheduler/model"
)

// GenerateContacts enumerates every feasible (pass, target) pairing as an
// unselected contact. Passes are the outer loop and targets the inner one;
// ids are assigned from 0 in emission order, so the output is a pure
// function of the input order.
//
// Duplicate pass or target ids make node references ambiguous and are
// rejected with model.ErrInvalidInstance. Empty inputs yield an empty set.
func GenerateContacts(passes []model.SatellitePass, targets []model.ServiceTarget) ([]model.Contact, error) {
	if err := checkUniqueIDs(passes, targets); err != nil {
		return nil, err
	}

	contacts := make([]model.Contact, 0)
	nextID := 0
	for pi, p := range passes {
		for ti, t := range targets {
			if !model.IsValidServiceTarget(p, t) {
				continue
			}
			contacts = append(contacts, model.Contact{
				ID:          nextID,
				TargetIndex: ti,
				PassIndex:   pi,
			})
			nextID++
		}
	}
	return contacts, nil
}

// NewSolution builds the solution arena for an instance with all candidate
// contacts unselected.
func NewSolution(passes []model.SatellitePass, targets []model.ServiceTarget) (*model.Solution, error) {
	contacts, err := GenerateContacts(passes, targets)
	if err != nil {
		return nil, err
	}
	return &model.Solution{
		Passes:   passes,
		Targets:  targets,
		Contacts: contacts,
	}, nil
}

func checkUniqueIDs(passes []model.SatellitePass, targets []model.ServiceTarget) error {
	seenPass := make(map[int]struct{}, len(passes))
	for _, p := range passes {
		if _, ok := seenPass[p.ID]; ok {
			return fmt.Errorf("%w: satellite pass id %d is not unique", model.ErrInvalidInstance, p.ID)
		}
		seenPass[p.ID] = struct{}{}
	}
	seenTarget := make(map[int]struct{}, len(targets))
	for _, t := range targets {
		if _, ok := seenTarget[t.ID]; ok {
			return fmt.Errorf("%w: service target id %d is not unique", model.ErrInvalidInstance, t.ID)
		}
		seenTarget[t.ID] = struct{}{}
	}
	return nil
}
