// Package dataset downloads the source dataset from Kaggle, caches it
// locally and installs its CSV file into the workspace.
package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors for dataset acquisition.
var (
	// ErrInvalidHandle indicates a handle not in owner/slug form.
	ErrInvalidHandle = errors.New("dataset handle must be owner/slug")

	// ErrDatasetNotFound indicates the server returned 404 for the handle.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrUnauthorized indicates missing or rejected Kaggle credentials.
	ErrUnauthorized = errors.New("kaggle rejected the request; set KAGGLE_USERNAME and KAGGLE_KEY")

	// ErrDownloadFailed indicates any other unsuccessful HTTP response.
	ErrDownloadFailed = errors.New("dataset download failed")

	// ErrNoCSVFound indicates the downloaded dataset has no CSV file.
	ErrNoCSVFound = errors.New("no .csv file found in the downloaded dataset")

	// ErrFileTooLarge indicates a download or archive entry exceeds maxFileSize.
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

	// ErrUnsafePath indicates an archive entry escaping the destination directory.
	ErrUnsafePath = errors.New("illegal file path in archive")
)

// StatusError maps an HTTP status code to a sentinel error.
func StatusError(handle string, status int) error {
	switch status {
	case 401, 403: //nolint:mnd // HTTP status codes.
		return fmt.Errorf("%w (HTTP %d)", ErrUnauthorized, status)
	case 404: //nolint:mnd // HTTP status code.
		return fmt.Errorf("%w: %s", ErrDatasetNotFound, handle)
	default:
		return fmt.Errorf("%w: %s: HTTP %d", ErrDownloadFailed, handle, status)
	}
}
