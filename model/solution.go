package model

// Contact pairs one service target with one satellite pass. It references
// both by index into the owning Solution.
type Contact struct {
	ID          int  `json:"id"`
	TargetIndex int  `json:"-"`
	PassIndex   int  `json:"-"`
	Selected    bool `json:"selected"`
}

// Solution is the arena for a single optimisation run: the immutable inputs,
// every candidate contact and the score of the current selection.
type Solution struct {
	Passes   []SatellitePass
	Targets  []ServiceTarget
	Contacts []Contact
	Score    Score
}

// PassOf returns the pass referenced by c.
func (s *Solution) PassOf(c Contact) SatellitePass { return s.Passes[c.PassIndex] }

// TargetOf returns the service target referenced by c.
func (s *Solution) TargetOf(c Contact) ServiceTarget { return s.Targets[c.TargetIndex] }

// SelectedContacts returns the selected contacts in candidate order.
func (s *Solution) SelectedContacts() []Contact {
	out := make([]Contact, 0)
	for _, c := range s.Contacts {
		if c.Selected {
			out = append(out, c)
		}
	}
	return out
}

// Selection returns a copy of the selected flags indexed by contact position.
func (s *Solution) Selection() []bool {
	sel := make([]bool, len(s.Contacts))
	for i, c := range s.Contacts {
		sel[i] = c.Selected
	}
	return sel
}

// ApplySelection overwrites the selected flags from sel.
func (s *Solution) ApplySelection(sel []bool) {
	for i := range s.Contacts {
		s.Contacts[i].Selected = i < len(sel) && sel[i]
	}
}
