package cli

import (
	"github.com/spf13/cobra"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/dataset"
)

// newAcquirer is replaced in tests.
var newAcquirer = dataset.NewAcquirer //nolint:gochecknoglobals // Required for test injection

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "dataset", Short: "Dataset acquisition commands"}
	cmd.AddCommand(NewDatasetFetchCmd())
	return cmd
}

// NewDatasetFetchCmd creates the command that downloads the dataset, installs
// its CSV and updates data_path.
func NewDatasetFetchCmd() *cobra.Command {
	var handle string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the dataset and point the analysis at it",
		Long: `Downloads the dataset (or reuses the local cache), copies its first CSV file
to the dataset destination and stores that path as data_path in the analysis
configuration. Set KAGGLE_USERNAME and KAGGLE_KEY for authenticated downloads.`,
		Example: `  # Fetch the configured dataset
  churnlab dataset fetch

  # Fetch another dataset
  churnlab dataset fetch --handle owner/other-dataset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if handle == "" {
				handle = cfg.Dataset.Handle
			}

			cmd.Printf("Fetching %s...\n", handle)
			result, err := newAcquirer(cfg).Acquire(cmd.Context(), handle)
			if err != nil {
				return err
			}

			cmd.Printf("Dataset copied to %s\n", result.Destination)
			if result.ConfigUpdated {
				cmd.Printf("data_path set to %s\n", result.DataPath)
			} else {
				cmd.PrintErrf("Warning: analysis configuration not found at %s; data_path not updated\n",
					cfg.AnalysisStore().Path())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&handle, "handle", "", "dataset handle owner/slug (default: dataset.handle from the settings file)")
	return cmd
}
