package health

import (
	"context"
	"time"
)

// Report is the outcome of one checker run.
type Report struct {
	Name      string         `json:"name"`
	Status    Verdict        `json:"status"`
	Detail    map[string]any `json:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Checker is one independent subsystem probe. Implementations carry their own
// timeouts, hold no state between calls, and share nothing with other
// checkers; one checker failing must never prevent another from running.
type Checker interface {
	Name() string
	Check(ctx context.Context) Report
}

func newReport(name string, status Verdict, detail map[string]any) Report {
	return Report{Name: name, Status: status, Detail: detail, Timestamp: time.Now().UTC()}
}
