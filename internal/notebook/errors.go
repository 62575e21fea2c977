// Package notebook executes the analysis notebook through Jupyter's
// nbconvert and reports the outcome.
package notebook

import (
	"errors"
	"fmt"
	"strings"
)

// jupyterInstallURL is where users are pointed when Jupyter is missing.
const jupyterInstallURL = "https://jupyter.org/install"

// Sentinel errors for notebook execution.
var (
	// ErrJupyterNotFound indicates the jupyter binary is not in PATH.
	ErrJupyterNotFound = fmt.Errorf("jupyter not found in PATH; install from %s", jupyterInstallURL)

	// ErrNotebookNotFound indicates the notebook file does not exist.
	ErrNotebookNotFound = errors.New("notebook not found")

	// ErrExecutionFailed indicates nbconvert returned a non-zero exit code.
	ErrExecutionFailed = errors.New("notebook execution failed")

	// ErrUnsupportedVersion indicates nbconvert is older than MinVersion.
	ErrUnsupportedVersion = errors.New("unsupported nbconvert version")

	// ErrTimeout indicates execution exceeded its time limit.
	ErrTimeout = errors.New("notebook execution timed out")
)

// ExecutionError wraps ErrExecutionFailed with the stderr output of nbconvert
// and the process error (exit status or start failure), when present.
func ExecutionError(stderr string, cause error) error {
	msg := strings.TrimSpace(stderr)
	switch {
	case msg == "" && cause == nil:
		return ErrExecutionFailed
	case msg == "":
		return fmt.Errorf("%w: %w", ErrExecutionFailed, cause)
	case cause == nil:
		return fmt.Errorf("%w: %s", ErrExecutionFailed, msg)
	default:
		return fmt.Errorf("%w: %s (%w)", ErrExecutionFailed, msg, cause)
	}
}

// UnsupportedVersionError wraps ErrUnsupportedVersion with the found version.
func UnsupportedVersionError(found string) error {
	return fmt.Errorf("%w: found %s, need %s or newer", ErrUnsupportedVersion, found, MinVersion)
}
