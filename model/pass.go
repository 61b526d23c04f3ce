package model

import "time"

// Operation is the kind of service a target requests from a contact.
type Operation string

const (
	// OperationQKD requests quantum key distribution; it needs a pass with
	// non-zero achievable key volume.
	OperationQKD Operation = "QKD"
	// OperationOpticalOnly requests classical optical post-processing.
	OperationOpticalOnly Operation = "OPTICAL_ONLY"
)

// SatellitePass is a time window during which a satellite is visible to a
// ground node.
type SatellitePass struct {
	ID                  int       `json:"id"`
	NodeID              int       `json:"nodeId"`
	OrbitID             int       `json:"orbitId"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	AchievableKeyVolume float64   `json:"achievableKeyVolume"`
}

// Duration returns the length of the pass window.
func (p SatellitePass) Duration() time.Duration {
	return p.EndTime.Sub(p.StartTime)
}

// ServiceTarget is a service request bound to a ground node.
type ServiceTarget struct {
	ID                 int       `json:"id"`
	ApplicationID      int       `json:"applicationId"`
	Priority           float64   `json:"priority"`
	NodeID             int       `json:"nodeId"`
	RequestedOperation Operation `json:"requestedOperation"`
}

// IsValidServiceTarget reports whether target can be served by pass: both
// must refer to the same node, and QKD targets need key volume.
func IsValidServiceTarget(pass SatellitePass, target ServiceTarget) bool {
	if pass.NodeID != target.NodeID {
		return false
	}
	if pass.AchievableKeyVolume == 0 && target.RequestedOperation == OperationQKD {
		return false
	}
	return true
}

// Reward is the soft-score contribution of serving target on pass.
func Reward(pass SatellitePass, target ServiceTarget) float64 {
	if target.RequestedOperation == OperationQKD {
		return target.Priority * (1 + pass.AchievableKeyVolume)
	}
	return target.Priority
}
