package cli_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/churnlab/churnlab/internal/cli"
	"github.com/churnlab/churnlab/internal/config"
)

// setupCLITest silences logging, isolates the environment and resets the
// configuration installed by each command run.
func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv("CHURNLAB_LOG_LEVEL", "error")
	t.Setenv("CHURNLAB_LOG_FORMAT", "")
	t.Setenv("CHURNLAB_WORKDIR", "")
	t.Setenv("CHURNLAB_PAGE_SIZE", "")
	t.Setenv("KAGGLE_USERNAME", "")
	t.Setenv("KAGGLE_KEY", "")
	t.Cleanup(config.ResetGlobalConfigForTest)
}

// newWorkspace creates a workspace with two reports, one plot and an
// analysis configuration.
func newWorkspace(t *testing.T) string {
	t.Helper()
	setupCLITest(t)
	root := t.TempDir()

	reports := filepath.Join(root, config.DefaultReportsDir)
	require.NoError(t, os.MkdirAll(reports, 0o750))
	var b strings.Builder
	b.WriteString("customerID,tenure,Churn\n")
	for i := 0; i < 45; i++ {
		fmt.Fprintf(&b, "c%02d,%d,No\n", i, i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(reports, "churn.csv"), []byte(b.String()), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(reports, "metrics.csv"), []byte("model,auc\nxgb,0.86\nrf\n"), 0o600))

	shap := filepath.Join(root, "Visuals", "shap")
	require.NoError(t, os.MkdirAll(shap, 0o750))
	writeTestPNG(t, filepath.Join(shap, "summary.png"), 1200, 600)

	analysis := filepath.Join(root, config.DefaultAnalysisConfig)
	require.NoError(t, os.MkdirAll(filepath.Dir(analysis), 0o750))
	require.NoError(t, os.WriteFile(analysis,
		[]byte(`{"target_variable": "Churn", "data_path": "../Data/old.csv", "seed": 42}`), 0o600))

	return root
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeSettings(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.DefaultFileName), []byte(content), 0o600))
}

// execute runs the root command against the workspace at root and returns
// stdout and stderr.
func execute(t *testing.T, root string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--workdir", root}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
