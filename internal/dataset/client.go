package dataset

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/churnlab/churnlab/internal/logging"
)

// Defaults for the Kaggle client.
const (
	DefaultBaseURL = "https://www.kaggle.com/api/v1"
	defaultTimeout = 10 * time.Minute
	userAgent      = "churnlab"

	envUsername = "KAGGLE_USERNAME"
	envKey      = "KAGGLE_KEY"
)

// Fetcher downloads datasets into a local cache laid out as
// <CacheDir>/<owner>/<slug>/.
type Fetcher struct {
	HTTPClient *http.Client
	BaseURL    string
	CacheDir   string
	Username   string
	Key        string
}

// NewFetcher creates a Fetcher. Credentials are read from KAGGLE_USERNAME
// and KAGGLE_KEY; both are optional for public datasets.
func NewFetcher(baseURL, cacheDir string) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		CacheDir:   cacheDir,
		Username:   os.Getenv(envUsername),
		Key:        os.Getenv(envKey),
	}
}

// ParseHandle splits an owner/slug handle.
//
//nolint:nonamedreturns // Named returns document the result order.
func ParseHandle(handle string) (owner, slug string, err error) {
	parts := strings.Split(strings.TrimSpace(handle), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" || //nolint:mnd // owner and slug.
		strings.Contains(handle, "..") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}
	return parts[0], parts[1], nil
}

// DatasetDir returns the cache directory of a handle.
func (f *Fetcher) DatasetDir(owner, slug string) string {
	return filepath.Join(f.CacheDir, owner, slug)
}

// DownloadURL returns the archive URL of a handle.
func (f *Fetcher) DownloadURL(owner, slug string) string {
	return fmt.Sprintf("%s/datasets/download/%s/%s", f.BaseURL, owner, slug)
}

// Download fetches the dataset and returns the directory holding its files.
// A non-empty cache directory is reused without contacting the server.
func (f *Fetcher) Download(ctx context.Context, handle string) (string, error) {
	log := logging.FromContext(ctx)

	owner, slug, err := ParseHandle(handle)
	if err != nil {
		return "", err
	}
	dir := f.DatasetDir(owner, slug)

	if cached(dir) {
		log.Info().
			Ctx(ctx).
			Str("component", "dataset").
			Str("handle", handle).
			Str("dir", dir).
			Msg("using cached dataset")
		return dir, nil
	}

	log.Info().
		Ctx(ctx).
		Str("component", "dataset").
		Str("operation", "download").
		Str("handle", handle).
		Msg("downloading dataset...")

	if mkErr := os.MkdirAll(filepath.Dir(dir), 0o750); mkErr != nil {
		return "", fmt.Errorf("creating cache directory: %w", mkErr)
	}

	payload, filename, err := f.fetch(ctx, handle, f.DownloadURL(owner, slug), filepath.Dir(dir))
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(payload)
	}()

	staging := dir + ".partial"
	_ = os.RemoveAll(staging)
	if mkErr := os.MkdirAll(staging, 0o750); mkErr != nil {
		return "", fmt.Errorf("creating staging directory: %w", mkErr)
	}

	if installErr := install(payload, filename, slug, staging); installErr != nil {
		_ = os.RemoveAll(staging)
		return "", installErr
	}

	_ = os.RemoveAll(dir)
	if renameErr := os.Rename(staging, dir); renameErr != nil {
		_ = os.RemoveAll(staging)
		return "", fmt.Errorf("finalizing cache directory: %w", renameErr)
	}

	log.Info().
		Ctx(ctx).
		Str("component", "dataset").
		Str("dir", dir).
		Msg("dataset downloaded")
	return dir, nil
}

// fetch writes the response body to a temp file in tmpDir and returns its
// path plus the server-suggested file name, if any.
func (f *Fetcher) fetch(ctx context.Context, handle, url, tmpDir string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	if f.Username != "" && f.Key != "" {
		req.SetBasicAuth(f.Username, f.Key)
	}

	client := f.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", "", StatusError(handle, resp.StatusCode)
	}
	if resp.ContentLength > maxFileSize {
		return "", "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, resp.ContentLength)
	}

	tmp, err := os.CreateTemp(tmpDir, "download-*")
	if err != nil {
		return "", "", fmt.Errorf("creating temp file: %w", err)
	}
	n, copyErr := io.Copy(tmp, io.LimitReader(resp.Body, maxFileSize+1))
	closeErr := tmp.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(tmp.Name())
		return "", "", fmt.Errorf("%w: %w", ErrDownloadFailed, copyErr)
	}
	if n > maxFileSize {
		_ = os.Remove(tmp.Name())
		return "", "", fmt.Errorf("%w: download", ErrFileTooLarge)
	}

	return tmp.Name(), attachmentName(resp.Header.Get("Content-Disposition")), nil
}

// install unpacks a zip payload into dir, or stores a plain payload under
// filename (falling back to <slug>.csv).
func install(payload, filename, slug, dir string) error {
	isZip, err := IsZip(payload)
	if err != nil {
		return fmt.Errorf("inspecting download: %w", err)
	}
	if isZip {
		return ExtractArchive(payload, dir)
	}

	if filename == "" {
		filename = slug + ".csv"
	}
	target, err := sanitizePath(dir, filename)
	if err != nil {
		return err
	}
	return CopyFile(payload, target)
}

func attachmentName(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil || params["filename"] == "" {
		return ""
	}
	return filepath.Base(params["filename"])
}

func cached(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
