package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/logging"
)

// setupLogging configures logging based on the settings file, environment,
// and CLI flags. The interactive application owns the terminal, so its logs
// go to the configured file or are discarded.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	cfg := config.GetGlobalConfig()
	settings := cfg.Logging
	if settings.File != "" {
		settings.File = cfg.Path(settings.File)
	}

	interactive := interactiveCommand(cmd)
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		settings.Level = "debug"
		if !interactive {
			settings.Format = logging.FormatConsole
			settings.File = ""
		}
	}

	loggingCfg := settings.ToLoggingConfig()
	if interactive {
		loggingCfg = settings.ForTUI()
	}

	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(cfg); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if !interactive {
		if result.UsingFile {
			logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
		} else if result.FallbackUsed {
			logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
		}
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.With().Str("trace_id", traceID).Logger().WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Info().
		Ctx(ctx).
		Str("command", cmd.CommandPath()).
		Str("workspace", cfg.Root()).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(_ *cobra.Command, logResult *logging.LogPathResult) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
