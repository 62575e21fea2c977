package cli

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/churnlab/churnlab/internal/config"
)

// Keys accepted by config set.
const (
	keyTargetVariable = "target_variable"
	keyDataPath       = "data_path"
)

// ErrUnknownKey is returned by config set for keys it cannot write.
var ErrUnknownKey = fmt.Errorf("key must be %q or %q", keyTargetVariable, keyDataPath)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigSetCmd())
	return cmd
}

// NewConfigInitCmd creates the command that writes a default settings file
// into the workspace.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the settings file with default values",
		Long: `Creates churnlab.yaml in the workspace root with default values and a
.churnlab/.gitignore that keeps the dataset cache out of version control.`,
		Example: `  # Create the settings file
  churnlab config init

  # Overwrite an existing settings file
  churnlab config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := config.GetGlobalConfig()
			cfg, err := config.InitAt(current.Root(), current.ConfigPath(), force)
			if err != nil {
				return err
			}
			cmd.Printf("Configuration initialized at %s\n", cfg.ConfigPath())

			created, err := config.EnsureGitignore(cfg.StateDir())
			if err != nil {
				cmd.PrintErrf("Warning: could not create .gitignore: %v\n", err)
				return nil
			}
			if created {
				cmd.Printf("Created %s/.gitignore\n", cfg.StateDir())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	return cmd
}

// NewConfigShowCmd creates the command that prints the effective settings and
// the analysis configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings and the analysis configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshaling settings: %w", err)
			}
			out := cmd.OutOrStdout()
			cmd.Printf("# settings (%s)\n", cfg.ConfigPath())
			if writeErr := writeSource(out, string(data)+"\n", "yaml"); writeErr != nil {
				return writeErr
			}

			store := cfg.AnalysisStore()
			analysis, err := store.Load()
			if errors.Is(err, config.ErrAnalysisConfigNotFound) {
				cmd.Printf("# analysis configuration (%s)\nnot found\n", store.Path())
				return nil
			}
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if encErr := writeJSON(&buf, analysis); encErr != nil {
				return encErr
			}
			cmd.Printf("# analysis configuration (%s)\n", store.Path())
			return writeSource(out, buf.String(), "json")
		},
	}
}

// NewConfigSetCmd creates the command that edits the analysis configuration.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set target_variable or data_path in the analysis configuration",
		Long: `Rewrites the analysis configuration with one key changed. data_path takes a
dataset file path, relative to the workspace root, and stores it relative to
the data path base directory.`,
		Example: `  # Change the column the models predict
  churnlab config set target_variable Churn

  # Point the analysis at another dataset
  churnlab config set data_path Data/telco_customer_churn.csv`,
		Args: cobra.ExactArgs(2), //nolint:mnd // key and value.
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			store := cfg.AnalysisStore()

			var (
				updated *config.AnalysisConfig
				err     error
			)
			switch args[0] {
			case keyTargetVariable:
				updated, err = store.SetTargetVariable(args[1])
			case keyDataPath:
				updated, err = store.SetDataPath(cfg.Path(args[1]))
			default:
				return fmt.Errorf("%w: got %q", ErrUnknownKey, args[0])
			}
			if err != nil {
				return err
			}

			logger.Info().
				Ctx(cmd.Context()).
				Str("operation", "config_set").
				Str("key", args[0]).
				Str("path", store.Path()).
				Msg("analysis configuration updated")

			value := updated.TargetVariable
			if args[0] == keyDataPath {
				value = updated.DataPath
			}
			cmd.Printf("Set %s = %s in %s\n", args[0], value, store.Path())
			return nil
		},
	}
}
