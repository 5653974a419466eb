package health

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultAggregateTimeout = 10 * time.Second

// Aggregate is the combined health document spanning all checkers.
type Aggregate struct {
	Status     Verdict   `json:"status"`
	Components []Report  `json:"components"`
	Timestamp  time.Time `json:"timestamp"`
}

// Aggregator fans the registered checkers out concurrently and folds their
// verdicts into one overall status. It holds only the immutable checker list;
// every Check call builds its results from scratch.
type Aggregator struct {
	timeout  time.Duration
	checkers []Checker
}

func NewAggregator(checkers ...Checker) *Aggregator {
	return &Aggregator{timeout: defaultAggregateTimeout, checkers: checkers}
}

// Check runs all checkers in parallel, bounding total latency by the slowest
// single checker. Results land in registration order, not completion order.
func (a *Aggregator) Check(ctx context.Context) Aggregate {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reports := make([]Report, len(a.checkers))
	var g errgroup.Group
	for i, c := range a.checkers {
		g.Go(func() error {
			reports[i] = runChecker(ctx, c)
			return nil
		})
	}
	g.Wait()

	return Aggregate{
		Status:     Overall(reports),
		Components: reports,
		Timestamp:  time.Now().UTC(),
	}
}

// Component runs the single named checker.
func (a *Aggregator) Component(ctx context.Context, name string) (Report, bool) {
	for _, c := range a.checkers {
		if c.Name() == name {
			ctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()
			return runChecker(ctx, c), true
		}
	}
	return Report{}, false
}

// runChecker executes one checker, converting a panic into an unhealthy
// report so a broken checker cannot abort the aggregate.
func runChecker(ctx context.Context, c Checker) (rep Report) {
	defer func() {
		if r := recover(); r != nil {
			rep = newReport(c.Name(), Unhealthy, map[string]any{
				"error": fmt.Sprintf("checker panic: %v", r),
			})
		}
	}()
	rep = c.Check(ctx)
	if rep.Name == "" {
		rep.Name = c.Name()
	}
	if rep.Timestamp.IsZero() {
		rep.Timestamp = time.Now().UTC()
	}
	return rep
}

// Overall folds component verdicts by precedence: unhealthy > warning >
// healthy. Unavailable and unknown verdicts are excluded from the vote; if no
// verdict votes at all, the overall status is unknown.
func Overall(reports []Report) Verdict {
	overall := Unknown
	for _, r := range reports {
		if !r.Status.votes() {
			continue
		}
		if r.Status > overall {
			overall = r.Status
		}
	}
	return overall
}
