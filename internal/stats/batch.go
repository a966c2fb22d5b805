package stats

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/observability"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Computer is what the batch runner needs from a calculator.
type Computer interface {
	Compute(ctx context.Context, a *domain.Activity) (Statistics, error)
}

// Result is the outcome for one activity. Err is set when the computation failed.
type Result struct {
	ActivityID int64
	Stats      Statistics
	Err        error
}

// Value returns the statistics, or zero statistics when the computation failed.
func (r Result) Value() Statistics {
	if r.Err != nil {
		return Zero()
	}
	return r.Stats
}

// Batch maps every activity to its own Result. A failure (or panic) in one unit
// never affects another.
type Batch struct {
	computer    Computer
	concurrency int
}

// NewBatch creates a runner. concurrency < 2 runs the units one after another.
func NewBatch(computer Computer, concurrency int) *Batch {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batch{computer: computer, concurrency: concurrency}
}

// Run computes statistics for every activity; results are index-aligned with the input.
func (b *Batch) Run(ctx context.Context, activities []domain.Activity) []Result {
	results := make([]Result, len(activities))

	var g errgroup.Group
	g.SetLimit(b.concurrency)
	for i := range activities {
		i := i
		a := &activities[i]
		g.Go(func() error {
			results[i] = b.unit(ctx, a)
			return nil // failures stay inside the Result
		})
	}
	_ = g.Wait()

	return results
}

func (b *Batch) unit(ctx context.Context, a *domain.Activity) (res Result) {
	res.ActivityID = a.ID
	defer func() {
		if r := recover(); r != nil {
			res.Stats, res.Err = Zero(), fmt.Errorf("panic computing statistics: %v", r)
		}
		if res.Err != nil {
			observability.StatsFailures.WithLabelValues(string(CategoryOf(a))).Inc()
			slog.WarnContext(ctx, "activity statistics failed, reporting zero",
				slog.Int64("activity_id", a.ID),
				slog.String("category", string(CategoryOf(a))),
				slog.String("error", res.Err.Error()),
			)
		}
	}()
	res.Stats, res.Err = b.computer.Compute(ctx, a)
	return res
}
