package health

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeChecker struct {
	name    string
	status  Verdict
	started chan struct{}
	release chan struct{}
}

func (f *fakeChecker) Name() string { return f.name }

func (f *fakeChecker) Check(ctx context.Context) Report {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
		}
	}
	return newReport(f.name, f.status, nil)
}

func verdicts(statuses ...Verdict) []Report {
	reports := make([]Report, len(statuses))
	for i, s := range statuses {
		reports[i] = Report{Status: s}
	}
	return reports
}

// TestOverallPrecedence covers the fixed precedence rule.
func TestOverallPrecedence(t *testing.T) {
	tests := []struct {
		name string
		in   []Report
		want Verdict
	}{
		{"healthy and warning", verdicts(Healthy, Warning), Warning},
		{"unhealthy wins", verdicts(Healthy, Unhealthy, Warning), Unhealthy},
		{"all excluded", verdicts(Unavailable, Unknown), Unknown},
		{"unavailable does not downgrade", verdicts(Healthy, Unavailable), Healthy},
		{"unknown does not downgrade", verdicts(Warning, Unknown), Warning},
		{"all healthy", verdicts(Healthy, Healthy), Healthy},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overall(tt.in); got != tt.want {
				t.Errorf("Overall(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

// TestVerdictZeroValue guards the enum ordering: an unset report must stay
// out of the overall vote.
func TestVerdictZeroValue(t *testing.T) {
	var v Verdict
	if v != Unknown {
		t.Fatalf("zero verdict = %s, want unknown", v)
	}
	if v.votes() {
		t.Error("zero verdict must not vote")
	}
	if got := Overall([]Report{{}, {Status: Healthy}}); got != Healthy {
		t.Errorf("Overall with zero-valued report = %s, want healthy", got)
	}
	if got := Overall([]Report{{}}); got != Unknown {
		t.Errorf("Overall with only a zero-valued report = %s, want unknown", got)
	}
}

// TestAggregatorOrder verifies results land in registration order even when
// checkers complete out of order.
func TestAggregatorOrder(t *testing.T) {
	slowStarted := make(chan struct{})
	slowRelease := make(chan struct{})
	slow := &fakeChecker{name: "alpha", status: Warning, started: slowStarted, release: slowRelease}
	fast := &fakeChecker{name: "beta", status: Healthy}

	agg := NewAggregator(slow, fast)

	var wg sync.WaitGroup
	wg.Add(1)
	var result Aggregate
	go func() {
		defer wg.Done()
		result = agg.Check(context.Background())
	}()

	<-slowStarted
	// Let the fast checker win the race, then release the slow one.
	time.Sleep(10 * time.Millisecond)
	close(slowRelease)
	wg.Wait()

	if len(result.Components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(result.Components))
	}
	if result.Components[0].Name != "alpha" || result.Components[1].Name != "beta" {
		t.Errorf("Expected registration order [alpha beta], got [%s %s]",
			result.Components[0].Name, result.Components[1].Name)
	}
	if result.Status != Warning {
		t.Errorf("Expected overall warning, got %s", result.Status)
	}
}

type panicChecker struct{}

func (panicChecker) Name() string                   { return "broken" }
func (panicChecker) Check(_ context.Context) Report { panic("boom") }

// TestAggregatorSurvivesPanic verifies one broken checker cannot abort the
// aggregate.
func TestAggregatorSurvivesPanic(t *testing.T) {
	agg := NewAggregator(panicChecker{}, &fakeChecker{name: "ok", status: Healthy})
	result := agg.Check(context.Background())

	if len(result.Components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(result.Components))
	}
	broken := result.Components[0]
	if broken.Name != "broken" || broken.Status != Unhealthy {
		t.Errorf("Expected broken checker to report unhealthy, got %+v", broken)
	}
	if result.Status != Unhealthy {
		t.Errorf("Expected overall unhealthy, got %s", result.Status)
	}
}

func TestAggregatorComponent(t *testing.T) {
	agg := NewAggregator(&fakeChecker{name: "database", status: Healthy})

	rep, ok := agg.Component(context.Background(), "database")
	if !ok {
		t.Fatal("Expected database component to be found")
	}
	if rep.Status != Healthy {
		t.Errorf("Expected healthy report, got %s", rep.Status)
	}

	if _, ok := agg.Component(context.Background(), "nonexistent"); ok {
		t.Error("Expected lookup of unknown component to fail")
	}
}
