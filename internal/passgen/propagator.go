package passgen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// ErrInvalidTLE is returned for two-line element sets that cannot be parsed.
var ErrInvalidTLE = errors.New("invalid TLE")

// ISSLine1 and ISSLine2 are a sample TLE used when no other is supplied.
const (
	ISSLine1 = "1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990"
	ISSLine2 = "2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760"
)

const tleLineLength = 69

// Propagator computes satellite positions from a TLE with SGP4.
type Propagator struct {
	sat        satellite.Satellite
	meanMotion float64 // revolutions per day
}

// NewPropagator parses a TLE.
func NewPropagator(line1, line2 string) (p *Propagator, err error) {
	line1 = strings.TrimRight(line1, " \r\n")
	line2 = strings.TrimRight(line2, " \r\n")
	if len(line1) < tleLineLength || !strings.HasPrefix(line1, "1 ") {
		return nil, fmt.Errorf("%w: line 1 %q", ErrInvalidTLE, line1)
	}
	if len(line2) < tleLineLength || !strings.HasPrefix(line2, "2 ") {
		return nil, fmt.Errorf("%w: line 2 %q", ErrInvalidTLE, line2)
	}
	mm, err := strconv.ParseFloat(strings.TrimSpace(line2[52:63]), 64)
	if err != nil || mm <= 0 {
		return nil, fmt.Errorf("%w: mean motion %q", ErrInvalidTLE, line2[52:63])
	}

	// go-satellite panics on malformed numeric fields
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: %v", ErrInvalidTLE, r)
		}
	}()
	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)
	return &Propagator{sat: sat, meanMotion: mm}, nil
}

// MeanMotion returns the revolutions per day from the TLE.
func (p *Propagator) MeanMotion() float64 { return p.meanMotion }

// OrbitIndex is the number of whole revolutions completed between origin
// and t.
func (p *Propagator) OrbitIndex(origin, t time.Time) int {
	days := t.Sub(origin).Hours() / 24
	return int(days * p.meanMotion)
}

// PositionECEF propagates the satellite to t and returns its Earth-fixed
// position in kilometres.
func (p *Propagator) PositionECEF(t time.Time) Vec3 {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)
	return Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}
}
