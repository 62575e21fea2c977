package dataset

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxFileSize caps downloads and extracted archive entries at 500MB.
const maxFileSize = 500 * 1024 * 1024

// zipMagic is the local file header signature that starts a zip archive.
var zipMagic = []byte("PK\x03\x04")

// IsZip reports whether the file at path starts with a zip signature.
func IsZip(path string) (bool, error) {
	f, err := os.Open(path) //nolint:gosec // path is a file this package wrote.
	if err != nil {
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	head := make([]byte, len(zipMagic))
	n, err := io.ReadFull(f, head)
	if err != nil && n < len(zipMagic) {
		return false, nil //nolint:nilerr // short files are simply not zips.
	}
	return bytes.Equal(head, zipMagic), nil
}

// sanitizePath joins name onto destDir and rejects results outside destDir.
func sanitizePath(destDir, name string) (string, error) {
	target := filepath.Join(destDir, name) //nolint:gosec // checked below.
	cleanDest := filepath.Clean(destDir) + string(os.PathSeparator)
	if !strings.HasPrefix(target, cleanDest) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

// ExtractArchive extracts the zip archive at src into destDir.
func ExtractArchive(src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer func() {
		_ = r.Close()
	}()

	for _, f := range r.File {
		if err := extractEntry(f, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(f *zip.File, destDir string) error {
	target, err := sanitizePath(destDir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o750)
	}
	if f.UncompressedSize64 > maxFileSize {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, f.Name)
	}
	if mkErr := os.MkdirAll(filepath.Dir(target), 0o750); mkErr != nil {
		return fmt.Errorf("creating directory: %w", mkErr)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	defer func() {
		_ = out.Close()
	}()

	// The header size can lie; bound the actual copy as well.
	n, err := io.Copy(out, io.LimitReader(rc, maxFileSize+1))
	if err != nil {
		return fmt.Errorf("extracting %s: %w", f.Name, err)
	}
	if n > maxFileSize {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, f.Name)
	}
	return nil
}
