package notebook

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/churnlab/churnlab/internal/logging"
)

// Defaults for notebook execution.
const (
	DefaultCommand = "jupyter"
	DefaultTimeout = 30 * time.Minute
	// MinVersion is the oldest nbconvert accepted. Older releases lack the
	// --inplace semantics used here.
	MinVersion = "6.0.0"
	// versionTimeout bounds the nbconvert --version probe.
	versionTimeout = 30 * time.Second
)

// RunOptions configures a notebook execution.
type RunOptions struct {
	WorkDir  string        // Workspace root; nbconvert runs here.
	Notebook string        // Notebook path, absolute or relative to WorkDir.
	Command  string        // Jupyter executable (default: jupyter).
	Timeout  time.Duration // Max execution time (default: 30 minutes).
	// SkipVersionCheck disables the nbconvert version probe.
	SkipVersionCheck bool
}

// Result describes a successful execution.
type Result struct {
	Notebook string
	Version  string
	Duration time.Duration
}

// Args returns the nbconvert arguments that execute nb in place.
func Args(nb string) []string {
	return []string{"nbconvert", "--to", "notebook", "--execute", "--inplace", nb}
}

func (o RunOptions) notebookPath() string {
	if filepath.IsAbs(o.Notebook) {
		return o.Notebook
	}
	return filepath.Join(o.WorkDir, o.Notebook)
}

// Version returns the installed nbconvert version.
func Version(ctx context.Context, command string) (*semver.Version, error) {
	bin, err := FindBinary(command)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	stdout, stderr, err := Runner.Run(ctx, "", bin, "nbconvert", "--version")
	if err != nil {
		return nil, fmt.Errorf("running nbconvert --version: %w: %s", err, strings.TrimSpace(string(stderr)))
	}
	return ParseVersion(string(stdout))
}

// ParseVersion extracts the version from nbconvert --version output. The
// last non-empty line is used since Jupyter may print warnings first.
func ParseVersion(output string) (*semver.Version, error) {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return nil, errors.New("empty nbconvert version output")
	}
	v, err := semver.NewVersion(last)
	if err != nil {
		return nil, fmt.Errorf("parsing nbconvert version %q: %w", last, err)
	}
	return v, nil
}

// CheckVersion rejects versions older than MinVersion.
func CheckVersion(v *semver.Version) error {
	c, err := semver.NewConstraint(">= " + MinVersion)
	if err != nil {
		return fmt.Errorf("building version constraint: %w", err)
	}
	if !c.Check(v) {
		return UnsupportedVersionError(v.String())
	}
	return nil
}

// Run executes the notebook in place. The outcome is binary: a Result, or
// an error carrying nbconvert's stderr. Nothing is retried.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	log := logging.FromContext(ctx)

	nb := opts.notebookPath()
	if info, err := os.Stat(nb); err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotebookNotFound, nb)
	}

	bin, err := FindBinary(opts.Command)
	if err != nil {
		return nil, err
	}

	result := &Result{Notebook: nb}
	if !opts.SkipVersionCheck {
		v, verErr := Version(ctx, opts.Command)
		if verErr != nil {
			return nil, verErr
		}
		if checkErr := CheckVersion(v); checkErr != nil {
			return nil, checkErr
		}
		result.Version = v.String()
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Info().
		Ctx(ctx).
		Str("component", "notebook").
		Str("operation", "run").
		Str("notebook", nb).
		Str("nbconvert_version", result.Version).
		Dur("timeout", timeout).
		Msg("executing notebook (this may take a while)...")

	start := time.Now()
	_, stderr, err := Runner.Run(ctx, opts.WorkDir, bin, Args(nb)...)
	result.Duration = time.Since(start)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		log.Error().
			Ctx(ctx).
			Str("component", "notebook").
			Err(err).
			Msg("notebook execution failed")
		return nil, ExecutionError(string(stderr), err)
	}

	log.Info().
		Ctx(ctx).
		Str("component", "notebook").
		Dur("duration", result.Duration).
		Msg("notebook executed")
	return result, nil
}
