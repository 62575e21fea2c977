// Package gallery lists, scales and renders the plot images written by the
// analysis notebook.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/churnlab/churnlab/internal/logging"
)

// ErrImageNotFound indicates the image file does not exist.
var ErrImageNotFound = errors.New("image not found")

// imageExtensions are matched against the lowercased file name.
var imageExtensions = []string{".png", ".jpg", ".jpeg"}

// Category is one visuals folder and the images found in it.
type Category struct {
	// Name is the folder's base name, used as the display label.
	Name string `json:"name"`
	// Dir is the folder path as configured.
	Dir string `json:"dir"`
	// Images are file names relative to Dir, sorted.
	Images []string `json:"images"`
}

// Path returns the full path of image.
func (c Category) Path(image string) string {
	return filepath.Join(c.Dir, image)
}

// IsImage reports whether name has a supported image extension.
func IsImage(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ListImages returns the image files directly inside dir, sorted by name.
// A missing directory yields an empty list.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	images := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && IsImage(e.Name()) {
			images = append(images, e.Name())
		}
	}
	sort.Strings(images)
	return images, nil
}

// Catalog lists every directory concurrently and returns one Category per
// directory, in the order given.
func Catalog(ctx context.Context, dirs []string) ([]Category, error) {
	log := logging.FromContext(ctx).With().Str("component", "gallery").Logger()

	out := make([]Category, len(dirs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, dir := range dirs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			images, err := ListImages(dir)
			if err != nil {
				return err
			}
			out[i] = Category{Name: filepath.Base(dir), Dir: dir, Images: images}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, c := range out {
		total += len(c.Images)
	}
	log.Debug().Int("categories", len(out)).Int("images", total).Msg("catalog built")
	return out, nil
}

// Find returns the category whose Name or Dir equals name.
func Find(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name || c.Dir == name {
			return c, true
		}
	}
	return Category{}, false
}
