package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/logging"
)

// Downloader fetches a dataset and returns the directory holding its files.
type Downloader interface {
	Download(ctx context.Context, handle string) (string, error)
}

// Result describes an acquired dataset.
type Result struct {
	Handle      string `json:"handle"`
	CacheDir    string `json:"cache_dir"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	// DataPath is the value written to the analysis configuration, empty
	// when the configuration was not updated.
	DataPath      string `json:"data_path,omitempty"`
	ConfigUpdated bool   `json:"config_updated"`
}

// Acquirer downloads a dataset, installs its CSV at Destination and points
// the analysis configuration at it.
type Acquirer struct {
	Downloader  Downloader
	Store       *config.AnalysisStore
	Destination string
}

// NewAcquirer wires an Acquirer from the application settings.
func NewAcquirer(cfg *config.Config) *Acquirer {
	return &Acquirer{
		Downloader:  NewFetcher(cfg.Dataset.BaseURL, cfg.Path(cfg.Workspace.CacheDir)),
		Store:       cfg.AnalysisStore(),
		Destination: cfg.Path(cfg.Workspace.DatasetDestination),
	}
}

// FirstCSV returns the first .csv file directly inside dir, by name.
func FirstCSV(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading dataset directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCSVFound, dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[0]), nil
}

// CopyFile copies src to dst through a temp file in dst's directory.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // src is a cached dataset file.
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	if mkErr := os.MkdirAll(filepath.Dir(dst), 0o750); mkErr != nil {
		return fmt.Errorf("creating destination directory: %w", mkErr)
	}

	tmpPath := dst + ".tmp"
	out, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmpPath, err)
	}
	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("copying to %s: %w", dst, copyErr)
	}

	if renameErr := os.Rename(tmpPath, dst); renameErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming %s: %w", tmpPath, renameErr)
	}
	return nil
}

// Acquire downloads handle, copies its first CSV to Destination and updates
// data_path. A missing analysis configuration is logged and skipped; the
// dataset is still installed.
func (a *Acquirer) Acquire(ctx context.Context, handle string) (*Result, error) {
	log := logging.FromContext(ctx)

	dir, err := a.Downloader.Download(ctx, handle)
	if err != nil {
		return nil, err
	}

	src, err := FirstCSV(dir)
	if err != nil {
		return nil, err
	}

	if copyErr := CopyFile(src, a.Destination); copyErr != nil {
		return nil, copyErr
	}

	result := &Result{
		Handle:      handle,
		CacheDir:    dir,
		Source:      src,
		Destination: a.Destination,
	}

	if a.Store == nil {
		return result, nil
	}

	updated, err := a.Store.SetDataPath(a.Destination)
	switch {
	case errors.Is(err, config.ErrAnalysisConfigNotFound):
		log.Warn().
			Ctx(ctx).
			Str("component", "dataset").
			Str("config", a.Store.Path()).
			Msg("analysis configuration not found; data_path not updated")
	case err != nil:
		return result, fmt.Errorf("updating data_path: %w", err)
	default:
		result.DataPath = updated.DataPath
		result.ConfigUpdated = true
	}

	log.Info().
		Ctx(ctx).
		Str("component", "dataset").
		Str("source", src).
		Str("destination", a.Destination).
		Bool("config_updated", result.ConfigUpdated).
		Msg("dataset installed")
	return result, nil
}
