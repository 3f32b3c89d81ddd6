package app

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/specialistvlad/rigup/internal/executor"
)

// Graph output formats.
const (
	GraphEdges = "edges"
	GraphDOT   = "dot"
)

// Progress output modes.
const (
	ProgressText = "text"
	ProgressLog  = "log"
	ProgressNone = "none"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // manifest files or directories

	// Components are the requested ids, in request order.
	Components []string
	All        bool

	Resume      bool
	DryRun      bool
	Validate    bool
	GraphFormat string // empty unless the graph is to be printed

	StateFile  string
	Timeout    time.Duration
	Retries    int
	Backoff    time.Duration
	MaxBackoff time.Duration

	LogFormat       string
	LogLevel        string
	Progress        string
	NoColor         bool
	MetricsFile     string
	HealthcheckPort int

	// SettingsFile is the settings file the values were read from, if any.
	SettingsFile string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	exec := executor.DefaultConfig()
	return Config{
		ConfigPaths: []string{"components.yaml"},
		StateFile:   ".rigup-state.json",
		Timeout:     exec.Timeout,
		Retries:     exec.MaxAttempts - 1,
		Backoff:     exec.BackoffBase,
		MaxBackoff:  exec.BackoffMax,
		LogFormat:   "text",
		LogLevel:    "info",
		Progress:    ProgressText,
	}
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error
	if len(cfg.ConfigPaths) == 0 {
		errs = append(errs, errors.New("at least one manifest path is required"))
	}
	if cfg.All && len(cfg.Components) > 0 {
		errs = append(errs, errors.New("--all cannot be combined with component ids"))
	}
	if !cfg.All && len(cfg.Components) == 0 && cfg.GraphFormat == "" && !cfg.Validate {
		errs = append(errs, errors.New("no components selected: name at least one component or pass --all"))
	}
	if cfg.GraphFormat != "" && cfg.GraphFormat != GraphEdges && cfg.GraphFormat != GraphDOT {
		errs = append(errs, fmt.Errorf("unknown graph format %q, want %s or %s", cfg.GraphFormat, GraphEdges, GraphDOT))
	}
	if cfg.Retries < 0 {
		errs = append(errs, errors.New("retries must not be negative"))
	}
	if cfg.StateFile == "" && !cfg.DryRun {
		errs = append(errs, errors.New("state file path is required"))
	}
	if !slices.Contains([]string{"text", "json"}, cfg.LogFormat) {
		errs = append(errs, fmt.Errorf("unknown log format %q", cfg.LogFormat))
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !slices.Contains([]string{ProgressText, ProgressLog, ProgressNone}, cfg.Progress) {
		errs = append(errs, fmt.Errorf("unknown progress mode %q", cfg.Progress))
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		errs = append(errs, fmt.Errorf("healthcheck port %d out of range", cfg.HealthcheckPort))
	}
	if err := cfg.executorConfig().Validate(); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) executorConfig() executor.Config {
	return executor.Config{
		Timeout:     c.Timeout,
		MaxAttempts: c.Retries + 1,
		BackoffBase: c.Backoff,
		BackoffMax:  c.MaxBackoff,
		Resume:      c.Resume,
		DryRun:      c.DryRun,
	}
}
