// Package health runs the component health checkers and combines their
// verdicts into one overall status.
package health

import (
	"encoding/json"
	"fmt"
)

// Verdict classifies one component's health.
type Verdict int

const (
	// Unknown is the zero value so an unset report can never vote healthy.
	Unknown Verdict = iota
	Healthy
	Warning
	Unhealthy
	// Unavailable means the checker could not run at all, e.g. the backend
	// it probes is not configured. Distinct from a check that ran and failed.
	Unavailable
)

func (v Verdict) String() string {
	switch v {
	case Healthy:
		return "healthy"
	case Warning:
		return "warning"
	case Unhealthy:
		return "unhealthy"
	case Unavailable:
		return "unavailable"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("invalid(%d)", int(v))
	}
}

func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// votes reports whether the verdict participates in the overall precedence
// vote. Checks that could not execute must not masquerade as outages.
func (v Verdict) votes() bool {
	switch v {
	case Healthy, Warning, Unhealthy:
		return true
	}
	return false
}
