package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/logging"
	"github.com/churnlab/churnlab/internal/tui"
)

// ErrNotInteractive is returned when the interactive application is started
// without a terminal.
var ErrNotInteractive = errors.New("interactive mode requires a terminal; run a subcommand (see --help)")

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isInteractive is replaced in tests.
var isInteractive = tui.IsInteractive //nolint:gochecknoglobals // Required for test injection

// runTUI is replaced in tests.
var runTUI = tui.Run //nolint:gochecknoglobals // Required for test injection

// NewRootCmd creates the root Cobra command for the churnlab CLI.
// Without a subcommand it starts the interactive application.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "churnlab",
		Short:   "Terminal front-end for the churn analysis workflow",
		Long:    "churnlab runs the churn analysis notebook, browses its plots and reports, and manages its configuration and dataset.",
		Version: ver,
		Example: rootCmdExample,
		Args:    cobra.NoArgs,
		// main prints the error once and exits non-zero.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isInteractive() {
				return ErrNotInteractive
			}
			cfg := config.GetGlobalConfig()
			return runTUI(cmd.Context(), cfg, tui.DefaultActions(cfg))
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("workdir", "", "workspace root (default: $CHURNLAB_WORKDIR or the current directory)")
	cmd.PersistentFlags().String("config", "", "settings file (default: <workdir>/churnlab.yaml)")
	cmd.AddCommand(
		newNotebookCmd(), newGalleryCmd(), newReportCmd(),
		newConfigCmd(), newDatasetCmd(),
	)

	return cmd
}

// loadConfig resolves the workspace, reads the settings file and installs the
// result as the configuration for this invocation.
func loadConfig(cmd *cobra.Command) error {
	workdir, _ := cmd.Flags().GetString("workdir")
	configPath, _ := cmd.Flags().GetString("config")

	root, err := config.ResolveWorkdir(workdir)
	if err != nil {
		return fmt.Errorf("resolving workspace: %w", err)
	}

	cfg, err := config.Load(root, configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	config.ApplyEnvOverrides(cfg)
	if validateErr := cfg.Validate(); validateErr != nil {
		return fmt.Errorf("invalid configuration %s: %w", cfg.ConfigPath(), validateErr)
	}

	config.SetGlobalConfig(cfg)
	return nil
}

// interactiveCommand reports whether cmd starts the interactive application.
func interactiveCommand(cmd *cobra.Command) bool {
	return !cmd.HasParent()
}

const rootCmdExample = `  # Start the interactive application
  churnlab

  # Execute the analysis notebook
  churnlab notebook run

  # Page through a report
  churnlab report show metrics.csv --page 2

  # Show a plot in the terminal
  churnlab gallery show shap summary.png

  # Point the analysis at a new target column
  churnlab config set target_variable Churn

  # Download the dataset and update data_path
  churnlab dataset fetch`
