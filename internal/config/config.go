package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/calibration-solver/internal/solver"
)

const (
	defaultInput            = "resources/real"
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultProgressInterval = 2 * time.Second

	envPrefix = "CALIBRATION_"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Input            string
	Operators        []solver.Operator
	Workers          int
	Pruning          bool
	Explain          bool
	LogLevel         string
	LogFormat        string
	ProgressInterval time.Duration
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Input            string   `yaml:"input"`
	Operators        []string `yaml:"operators"`
	Workers          *int     `yaml:"workers"`
	Pruning          *bool    `yaml:"pruning"`
	Explain          *bool    `yaml:"explain"`
	ProgressInterval string   `yaml:"progress_interval"`
	Log              yamlLog  `yaml:"log"`
}

// yamlLog represents the log section in YAML.
type yamlLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile       string
	EnvFile          string
	Input            *string
	Operators        *string
	Workers          *int
	DisablePruning   bool
	Explain          bool
	LogLevel         *string
	LogFormat        *string
	ProgressInterval *time.Duration
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	env, err := newEnvLookup(overrides)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnvConfig(&cfg, env); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, fmt.Errorf("apply YAML config: %w", err)
		}
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Input:            defaultInput,
		Operators:        solver.DefaultOperators(),
		Workers:          0,
		Pruning:          true,
		LogLevel:         defaultLogLevel,
		LogFormat:        defaultLogFormat,
		ProgressInterval: defaultProgressInterval,
	}
}

func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Input != "" {
		cfg.Input = yamlCfg.Input
	}

	if len(yamlCfg.Operators) > 0 {
		ops, err := solver.ParseOperators(strings.Join(yamlCfg.Operators, ","))
		if err != nil {
			return fmt.Errorf("operators: %w", err)
		}
		cfg.Operators = ops
	}

	if yamlCfg.Workers != nil {
		cfg.Workers = *yamlCfg.Workers
	}

	if yamlCfg.Pruning != nil {
		cfg.Pruning = *yamlCfg.Pruning
	}

	if yamlCfg.Explain != nil {
		cfg.Explain = *yamlCfg.Explain
	}

	if yamlCfg.ProgressInterval != "" {
		d, err := time.ParseDuration(yamlCfg.ProgressInterval)
		if err != nil {
			return fmt.Errorf("progress_interval: %w", err)
		}
		cfg.ProgressInterval = d
	}

	if yamlCfg.Log.Level != "" {
		cfg.LogLevel = yamlCfg.Log.Level
	}

	if yamlCfg.Log.Format != "" {
		cfg.LogFormat = yamlCfg.Log.Format
	}

	return nil
}

type envLookup func(key string) (string, bool)

// newEnvLookup resolves variables from the process environment first and the
// optional dotenv file second.
func newEnvLookup(overrides *CLIOverrides) (envLookup, error) {
	fileVars := map[string]string{}
	if overrides != nil && overrides.EnvFile != "" {
		vars, err := godotenv.Read(overrides.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		fileVars = vars
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
		v, ok := fileVars[key]
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}, nil
}

func applyEnvConfig(cfg *Config, lookup envLookup) error {
	if input, ok := lookup(envPrefix + "INPUT"); ok {
		cfg.Input = input
	}

	if raw, ok := lookup(envPrefix + "OPERATORS"); ok {
		ops, err := solver.ParseOperators(raw)
		if err != nil {
			return fmt.Errorf("%sOPERATORS: %w", envPrefix, err)
		}
		cfg.Operators = ops
	}

	if raw, ok := lookup(envPrefix + "WORKERS"); ok {
		workers, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%sWORKERS: invalid integer %q", envPrefix, raw)
		}
		cfg.Workers = workers
	}

	if raw, ok := lookup(envPrefix + "PRUNING"); ok {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%sPRUNING: invalid boolean %q", envPrefix, raw)
		}
		cfg.Pruning = enabled
	}

	if raw, ok := lookup(envPrefix + "EXPLAIN"); ok {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%sEXPLAIN: invalid boolean %q", envPrefix, raw)
		}
		cfg.Explain = enabled
	}

	if raw, ok := lookup(envPrefix + "PROGRESS_INTERVAL"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%sPROGRESS_INTERVAL: invalid duration %q", envPrefix, raw)
		}
		cfg.ProgressInterval = d
	}

	if level, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = level
	}

	if format, ok := lookup(envPrefix + "LOG_FORMAT"); ok {
		cfg.LogFormat = format
	}

	return nil
}

func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Input != nil && *overrides.Input != "" {
		cfg.Input = *overrides.Input
	}

	if overrides.Operators != nil && *overrides.Operators != "" {
		ops, err := solver.ParseOperators(*overrides.Operators)
		if err != nil {
			return fmt.Errorf("parse operators: %w", err)
		}
		cfg.Operators = ops
	}

	if overrides.Workers != nil && *overrides.Workers >= 0 {
		cfg.Workers = *overrides.Workers
	}

	if overrides.DisablePruning {
		cfg.Pruning = false
	}

	if overrides.Explain {
		cfg.Explain = true
	}

	if overrides.ProgressInterval != nil && *overrides.ProgressInterval >= 0 {
		cfg.ProgressInterval = *overrides.ProgressInterval
	}

	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}

	if overrides.LogFormat != nil && *overrides.LogFormat != "" {
		cfg.LogFormat = *overrides.LogFormat
	}

	return nil
}

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Input) == "" {
		return errors.New("input path cannot be empty")
	}
	if _, err := solver.NormalizeOperators(cfg.Operators); err != nil {
		return err
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%sWORKERS must be >= 0", envPrefix)
	}
	if cfg.ProgressInterval < 0 {
		return errors.New("progress interval must be >= 0")
	}
	switch cfg.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}
	return nil
}
