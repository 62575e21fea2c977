package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/notebook"
)

func newNotebookCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notebook", Short: "Analysis notebook commands"}
	cmd.AddCommand(NewNotebookRunCmd(), NewNotebookVersionCmd())
	return cmd
}

// NewNotebookRunCmd creates the command that executes the analysis notebook
// in place with nbconvert.
func NewNotebookRunCmd() *cobra.Command {
	var (
		timeout          time.Duration
		skipVersionCheck bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute the analysis notebook",
		Long: `Executes the configured notebook in place with
"jupyter nbconvert --to notebook --execute --inplace", from the workspace root.
On failure the output of nbconvert is reported; nothing is retried.`,
		Example: `  # Execute the notebook with the configured timeout
  churnlab notebook run

  # Allow up to two hours
  churnlab notebook run --timeout 2h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.Notebook.Timeout
			}

			cmd.Printf("Executing %s...\n", cfg.Workspace.Notebook)
			result, err := notebook.Run(cmd.Context(), notebook.RunOptions{
				WorkDir:          cfg.Root(),
				Notebook:         cfg.Workspace.Notebook,
				Command:          cfg.Notebook.Command,
				Timeout:          timeout,
				SkipVersionCheck: skipVersionCheck,
			})
			if err != nil {
				return fmt.Errorf("running notebook: %w", err)
			}

			cmd.Printf("Notebook executed successfully in %s\n", result.Duration.Round(time.Second))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultNotebookTimeout, "maximum execution time")
	cmd.Flags().BoolVar(&skipVersionCheck, "skip-version-check", false, "skip the nbconvert version check")

	return cmd
}

// NewNotebookVersionCmd creates the command that reports the nbconvert version.
func NewNotebookVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the installed nbconvert version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			v, err := notebook.Version(cmd.Context(), cfg.Notebook.Command)
			if err != nil {
				return err
			}

			status := "supported"
			if checkErr := notebook.CheckVersion(v); checkErr != nil {
				status = fmt.Sprintf("unsupported, need %s or newer", notebook.MinVersion)
			}
			cmd.Printf("nbconvert %s (%s)\n", v, status)
			return nil
		},
	}
}
