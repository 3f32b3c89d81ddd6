package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/specialistvlad/rigup/internal/app"
	"github.com/specialistvlad/rigup/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix       = "RIGUP"
	defaultSettings = ".rigup.yaml"
)

// Execute parses args, runs the application and returns nil on full success
// or an *ExitError carrying the process exit code.
func Execute(ctx context.Context, args []string, outW, errW io.Writer, opts ...app.Option) error {
	cmd := newRootCmd(outW, errW, func(ctx context.Context, cfg *app.Config) error {
		return run(ctx, outW, errW, cfg, opts)
	})
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// newRootCmd builds the command. runFn receives the validated configuration.
func newRootCmd(outW, errW io.Writer, runFn func(context.Context, *app.Config) error) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "rigup [flags] [COMPONENT...]",
		Short: "Provision a development machine from a component graph",
		Long: `rigup installs the selected components of a machine manifest, and
everything they require, one at a time in dependency order.

A component that fails is reported and everything depending on it is
skipped; independent components still run. Completed components are
recorded in a state file so an interrupted run can be picked up with
--resume.`,
		Example: `  rigup --all
  rigup terminal desktop --retries 2
  rigup --resume terminal
  rigup --graph=dot --all | dot -Tsvg > components.svg
  rigup --validate -f ./machines/laptop`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadSettings(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig(v, args)
			if err != nil {
				return &ExitError{Code: ExitUsage, Message: err.Error()}
			}
			return runFn(cmd.Context(), cfg)
		},
	}
	cmd.SetOut(outW)
	cmd.SetErr(errW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	})

	defaults := app.DefaultConfig()
	flags := cmd.Flags()
	flags.StringSliceP("config", "f", defaults.ConfigPaths, "Manifest file or directory (.yaml, .yml, .conf, .hcl); repeatable.")
	flags.StringSliceP("component", "c", nil, "Component id to install; repeatable. Positional arguments work too.")
	flags.Bool("all", false, "Select every component.")
	flags.Bool("resume", false, "Skip components completed by the previous run.")
	flags.String("graph", "", "Print the dependency graph (edges or dot) instead of running.")
	flags.Lookup("graph").NoOptDefVal = app.GraphEdges
	flags.Bool("validate", false, "Load and resolve only; print the plan.")
	flags.Bool("dry-run", false, "Walk the plan without running tasks or touching the state file.")
	flags.String("state-file", defaults.StateFile, "Where completed components are recorded.")
	flags.Duration("timeout", defaults.Timeout, "Per-attempt task timeout.")
	flags.Int("retries", defaults.Retries, "Extra attempts after a failed one.")
	flags.Duration("backoff", defaults.Backoff, "Wait before the first retry; doubles after each further failure.")
	flags.Duration("max-backoff", defaults.MaxBackoff, "Upper bound for the wait between retries.")
	flags.String("log-level", defaults.LogLevel, "Logging level: debug, info, warn or error.")
	flags.String("log-format", defaults.LogFormat, "Log output format: text or json.")
	flags.String("progress", defaults.Progress, "Progress output: text, log or none.")
	flags.Bool("no-color", false, "Disable colored progress output.")
	flags.String("metrics-file", "", "Write Prometheus metrics to this textfile after the run.")
	flags.Int("healthcheck-port", 0, "Port for the /health and /metrics server during a run. 0 is disabled.")
	flags.String("settings", "", "Settings file (default .rigup.yaml when present).")

	return cmd
}

// loadSettings binds flags, RIGUP_* environment variables and the settings
// file into v. Flags win over the environment, which wins over the file.
func loadSettings(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	path := v.GetString("settings")
	if path == "" {
		if _, err := os.Stat(defaultSettings); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = defaultSettings
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return &ExitError{Code: ExitUsage, Message: fmt.Sprintf("failed to read settings file: %v", err)}
	}
	return nil
}

func newConfig(v *viper.Viper, args []string) (*app.Config, error) {
	var components []string
	components = append(components, args...)
	components = append(components, v.GetStringSlice("component")...)

	return app.NewConfig(app.Config{
		ConfigPaths:     v.GetStringSlice("config"),
		Components:      components,
		All:             v.GetBool("all"),
		Resume:          v.GetBool("resume"),
		DryRun:          v.GetBool("dry-run"),
		Validate:        v.GetBool("validate"),
		GraphFormat:     strings.ToLower(v.GetString("graph")),
		StateFile:       v.GetString("state-file"),
		Timeout:         v.GetDuration("timeout"),
		Retries:         v.GetInt("retries"),
		Backoff:         v.GetDuration("backoff"),
		MaxBackoff:      v.GetDuration("max-backoff"),
		LogFormat:       strings.ToLower(v.GetString("log-format")),
		LogLevel:        strings.ToLower(v.GetString("log-level")),
		Progress:        strings.ToLower(v.GetString("progress")),
		NoColor:         v.GetBool("no-color"),
		MetricsFile:     v.GetString("metrics-file"),
		HealthcheckPort: v.GetInt("healthcheck-port"),
		SettingsFile:    v.ConfigFileUsed(),
	})
}

func run(ctx context.Context, outW, errW io.Writer, cfg *app.Config, opts []app.Option) error {
	a := app.NewApp(outW, errW, cfg, config.NewFileLoader(), opts...)

	summary, err := a.Execute(ctx)
	if err != nil {
		return &ExitError{Code: exitCode(err), Message: err.Error()}
	}
	if summary != nil && !summary.OK() {
		return &ExitError{
			Code:    ExitIncomplete,
			Message: fmt.Sprintf("%d of %d components did not succeed (%d failed, %d skipped)", summary.Failed+summary.Skipped, summary.Total, summary.Failed, summary.Skipped),
		}
	}
	return nil
}
