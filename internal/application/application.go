package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eugenenazirov/calibration-solver/internal/config"
	"github.com/eugenenazirov/calibration-solver/internal/loader"
	"github.com/eugenenazirov/calibration-solver/internal/solver"
)

// LoadFunc reads a dataset from the given path.
type LoadFunc func(path string) (*loader.Dataset, error)

// Option configures App behaviour.
type Option func(*App)

// WithLoader overrides how the input is read, primarily for tests.
func WithLoader(load LoadFunc) Option {
	return func(a *App) {
		a.load = load
	}
}

// WithClock overrides the time source used for elapsed time reporting.
func WithClock(clock func() time.Time) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// App encapsulates the solver dependencies for a single calibration run.
type App struct {
	cfg    config.Config
	solver solver.Solver
	logger *zap.Logger
	load   LoadFunc
	clock  func() time.Time
}

// Report summarises a calibration run.
type Report struct {
	Records int
	Skipped int
	Solved  int
	Total   int64
	Elapsed time.Duration
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	ops, err := solver.NormalizeOperators(cfg.Operators)
	if err != nil {
		return nil, fmt.Errorf("failed to apply operators: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		cfg: cfg,
		solver: solver.New(
			solver.WithOperators(ops...),
			solver.WithPruning(cfg.Pruning),
		),
		logger: logger,
		load:   loader.LoadFile,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// Run loads the configured input, solves every record and returns the summary.
func (a *App) Run(ctx context.Context) (Report, error) {
	start := a.clock()

	path := resolveInputPath(a.cfg.Input)
	a.logger.Info("loading input", zap.String("path", path))
	ds, err := a.load(path)
	if err != nil {
		return Report{}, fmt.Errorf("load input: %w", err)
	}
	for _, line := range ds.Skipped {
		a.logger.Debug("skipped malformed line", zap.Int("line", line))
	}

	summary, err := solver.Total(ctx, a.solver, ds.Records, a.totalOptions()...)
	if err != nil {
		return Report{}, fmt.Errorf("solve records: %w", err)
	}

	report := Report{
		Records: summary.Records,
		Skipped: len(ds.Skipped),
		Solved:  summary.Solved,
		Total:   summary.Total,
		Elapsed: a.clock().Sub(start),
	}
	a.logger.Info("calibration complete",
		zap.Int("records", report.Records),
		zap.Int("skipped", report.Skipped),
		zap.Int("solved", report.Solved),
		zap.Int64("total", report.Total),
		zap.String("operators", solver.FormatOperators(a.cfg.Operators)),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

func (a *App) totalOptions() []solver.TotalOption {
	opts := []solver.TotalOption{solver.WithWorkers(a.cfg.Workers)}

	if a.cfg.ProgressInterval > 0 {
		progress := &rate.Sometimes{First: 1, Interval: a.cfg.ProgressInterval}
		opts = append(opts, solver.WithProgressHook(func(done, total int) {
			progress.Do(func() {
				a.logger.Info("progress", zap.Int("done", done), zap.Int("total", total))
			})
		}))
	}

	if a.cfg.Explain {
		opts = append(opts, solver.WithMatchHook(func(rec solver.Record, ops []solver.Operator) {
			a.logger.Info("equation solved",
				zap.Int64("target", rec.Target),
				zap.String("equation", solver.Equation(rec, ops)),
			)
		}))
	}

	return opts
}

// resolveInputPath returns path unchanged when it exists or is absolute;
// otherwise it walks up from the working directory looking for it, so the
// default resources/ location works from any package directory.
func resolveInputPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if resolved, err := resolveProjectPath(path); err == nil {
		return resolved
	}
	return path
}

// resolveProjectPath locates a file or directory relative to the project root by walking up the directory tree.
func resolveProjectPath(relative string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, relative)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("unable to locate %s", relative)
}
