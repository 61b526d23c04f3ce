package passgen

import (
	"fmt"
	"slices"
)

// GroundTerminal is an optical ground station.
type GroundTerminal struct {
	Name   string
	LatDeg float64
	LonDeg float64
	AltM   float64
}

// Position returns the terminal's ECEF position in kilometres.
func (g GroundTerminal) Position() Vec3 {
	return GeodeticToECEF(g.LatDeg, g.LonDeg, g.AltM)
}

// Catalogue names accepted by Terminals.
const (
	CatalogueEurope = "europe"
	CatalogueWorld  = "world"
)

// Terminals returns the first n terminals of a built-in catalogue, or all of
// them when n <= 0.
func Terminals(catalogue string, n int) ([]GroundTerminal, error) {
	var all []GroundTerminal
	switch catalogue {
	case CatalogueEurope:
		all = europeTerminals
	case CatalogueWorld:
		all = worldTerminals
	default:
		return nil, fmt.Errorf("unknown terminal catalogue %q", catalogue)
	}
	if n <= 0 || n > len(all) {
		n = len(all)
	}
	return slices.Clone(all[:n]), nil
}
