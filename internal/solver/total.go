package solver

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// TotalOption configures Total.
type TotalOption func(*totalConfig)

type totalConfig struct {
	workers    int
	onMatch    func(rec Record, ops []Operator)
	onProgress func(done, total int)
}

// WithWorkers bounds how many records are searched concurrently.
// Values below one fall back to GOMAXPROCS.
func WithWorkers(n int) TotalOption {
	return func(cfg *totalConfig) {
		cfg.workers = n
	}
}

// WithMatchHook registers fn to run for every solved record.
// It is called from worker goroutines and must be safe for concurrent use.
func WithMatchHook(fn func(rec Record, ops []Operator)) TotalOption {
	return func(cfg *totalConfig) {
		cfg.onMatch = fn
	}
}

// WithProgressHook registers fn to run after each record is searched.
// It is called from worker goroutines and must be safe for concurrent use.
func WithProgressHook(fn func(done, total int)) TotalOption {
	return func(cfg *totalConfig) {
		cfg.onProgress = fn
	}
}

// Total searches every record and sums the targets of those that can be solved.
// Each worker writes only its own result slot; the sum is reduced afterwards.
func Total(ctx context.Context, s Solver, records []Record, opts ...TotalOption) (Summary, error) {
	cfg := totalConfig{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	solved := make([]bool, len(records))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i := range records {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ops, ok, err := s.Find(records[i])
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			solved[i] = ok
			if ok && cfg.onMatch != nil {
				cfg.onMatch(records[i], ops)
			}
			if cfg.onProgress != nil {
				cfg.onProgress(int(done.Add(1)), len(records))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Records: len(records)}
	for i, ok := range solved {
		if !ok {
			continue
		}
		sum, err := checkedAdd(summary.Total, records[i].Target)
		if err != nil {
			return Summary{}, fmt.Errorf("summing targets: %w", err)
		}
		summary.Total = sum
		summary.Solved++
	}
	return summary, nil
}
