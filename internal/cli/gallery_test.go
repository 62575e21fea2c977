package cli_test

import (
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnlab/churnlab/internal/cli"
	"github.com/churnlab/churnlab/internal/gallery"
)

func TestGalleryList_Categories(t *testing.T) {
	root := newWorkspace(t)

	out, _, err := execute(t, root, "gallery", "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6, "header, rule and four categories")
	assert.Contains(t, lines[0], "Category")
	assert.Contains(t, lines[2], "exploracion_inicial")
	assert.Regexp(t, `^shap\s+1\s+`, lines[5])
}

func TestGalleryList_OneCategory(t *testing.T) {
	root := newWorkspace(t)

	out, _, err := execute(t, root, "gallery", "list", "shap")
	require.NoError(t, err)
	assert.Equal(t, "summary.png\n", out)

	out, _, err = execute(t, root, "gallery", "list", "models_ajustados")
	require.NoError(t, err)
	assert.Contains(t, out, "No images in")
}

func TestGalleryList_JSON(t *testing.T) {
	root := newWorkspace(t)

	out, _, err := execute(t, root, "gallery", "list", "shap", "--output", "json")
	require.NoError(t, err)

	var categories []gallery.Category
	require.NoError(t, json.Unmarshal([]byte(out), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "shap", categories[0].Name)
	assert.Equal(t, []string{"summary.png"}, categories[0].Images)
}

func TestGalleryList_UnknownCategory(t *testing.T) {
	root := newWorkspace(t)

	_, _, err := execute(t, root, "gallery", "list", "nope")
	require.ErrorIs(t, err, cli.ErrCategoryNotFound)
}

func TestGalleryShow_Render(t *testing.T) {
	root := newWorkspace(t)

	out, _, err := execute(t, root, "gallery", "show", "shap", "summary.png", "--cols", "20")
	require.NoError(t, err)
	assert.Contains(t, out, "summary.png (600x300, source 1200x600)")
	assert.Contains(t, out, "▀")
}

func TestGalleryShow_WritesThumbnail(t *testing.T) {
	root := newWorkspace(t)
	dst := filepath.Join(t.TempDir(), "thumb.png")

	out, _, err := execute(t, root, "gallery", "show", "shap", "summary.png", "--out", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "Thumbnail written to")

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 600, cfg.Width)
	assert.Equal(t, 300, cfg.Height)
}

func TestGalleryShow_ThumbnailBoundFromSettings(t *testing.T) {
	root := newWorkspace(t)
	writeSettings(t, root, "thumbnail:\n  max_width: 100\n  max_height: 100\n")

	out, _, err := execute(t, root, "gallery", "show", "shap", "summary.png", "--cols", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "(100x50, source 1200x600)")
}

func TestGalleryShow_MissingImage(t *testing.T) {
	root := newWorkspace(t)

	_, _, err := execute(t, root, "gallery", "show", "shap", "missing.png")
	require.ErrorIs(t, err, gallery.ErrImageNotFound)
}
