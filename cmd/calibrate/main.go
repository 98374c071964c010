package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/calibration-solver/internal/application"
	"github.com/eugenenazirov/calibration-solver/internal/config"
	"github.com/eugenenazirov/calibration-solver/internal/logging"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var notifyContext = signal.NotifyContext

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	kingpinApp := kingpin.New("calibrate", "Bridge calibration solver - sums the targets reachable with +, * and || evaluated left to right")
	kingpinApp.UsageWriter(stderr)
	kingpinApp.ErrorWriter(stderr)
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	envFile := kingpinApp.Flag("env-file", "Path to a dotenv file with CALIBRATION_* variables").String()
	operators := kingpinApp.Flag("operators", "Comma-separated operators tried in order (+, *, ||)").String()
	workers := kingpinApp.Flag("workers", "Records searched concurrently (0 uses GOMAXPROCS)").Default("-1").Int()
	noPrune := kingpinApp.Flag("no-prune", "Search every branch even when it already exceeds the target").Bool()
	explain := kingpinApp.Flag("explain", "Log the equation found for every solved record").Bool()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	logFormat := kingpinApp.Flag("log-format", "Log encoding (json, console)").String()
	progressInterval := kingpinApp.Flag("progress-interval", "Minimum time between progress logs (0 disables them)").Default("-1s").Duration()
	input := kingpinApp.Arg("input", "Puzzle input file; .gz, .zst and .lz4 files are decompressed").String()

	if _, err := kingpinApp.Parse(args); err != nil {
		_, _ = fmt.Fprintf(stderr, "calibrate: %v\n", err)
		return exitUsage
	}

	overrides := &config.CLIOverrides{
		ConfigFile:     *configFile,
		EnvFile:        *envFile,
		DisablePruning: *noPrune,
		Explain:        *explain,
	}

	if *input != "" {
		overrides.Input = input
	}

	if *operators != "" {
		overrides.Operators = operators
	}

	if *workers >= 0 {
		overrides.Workers = workers
	}

	if *progressInterval >= 0 {
		overrides.ProgressInterval = progressInterval
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *logFormat != "" {
		overrides.LogFormat = logFormat
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "calibrate: failed to load configuration: %v\n", err)
		return exitUsage
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "calibrate: failed to initialize logger: %v\n", err)
		return exitUsage
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return exitFailure
	}

	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := app.Run(ctx)
	if err != nil {
		logger.Error("calibration failed", zap.Error(err))
		return exitFailure
	}

	_, _ = fmt.Fprintf(stdout, "Total result: %d\n", report.Total)
	return exitOK
}
