package tui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/dataset"
	"github.com/churnlab/churnlab/internal/notebook"
)

func newWorkspace(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New(t.TempDir())

	reports := cfg.Path(cfg.Workspace.ReportsDir)
	require.NoError(t, os.MkdirAll(reports, 0o750))
	var b strings.Builder
	b.WriteString("customerID,tenure,Churn\n")
	for i := 0; i < 45; i++ {
		fmt.Fprintf(&b, "c%02d,%d,No\n", i, i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(reports, "churn.csv"), []byte(b.String()), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(reports, "metrics.csv"), []byte("model,auc\nxgb,0.86\n"), 0o600))

	for _, v := range cfg.Workspace.Visuals[:2] {
		dir := cfg.Path(v)
		require.NoError(t, os.MkdirAll(dir, 0o750))
		writeTestPNG(t, filepath.Join(dir, "plot.png"))
	}

	analysis := cfg.Path(cfg.Workspace.AnalysisConfig)
	require.NoError(t, os.MkdirAll(filepath.Dir(analysis), 0o750))
	require.NoError(t, os.WriteFile(analysis, []byte(`{"target_variable": "Churn", "data_path": "../Data/old.csv"}`), 0o600))
	return cfg
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 5, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// send delivers a key and runs any background command to completion.
func send(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(keyPress(s))
	drain(m, cmd)
	return cmd
}

// drain executes cmd once and feeds the resulting messages back, skipping
// spinner ticks and quit requests.
func drain(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c != nil {
				m.Update(c())
			}
		}
		return
	}
	if _, quit := msg.(tea.QuitMsg); quit {
		return
	}
	m.Update(msg)
}

func openMenu(m *Model, action menuAction) tea.Cmd {
	m.menu.SetCursor(int(action))
	return send(m, "enter")
}

func TestModel_HomeView(t *testing.T) {
	m := New(context.Background(), newWorkspace(t), Actions{})

	view := m.View()
	assert.Contains(t, view, "churnlab | Home")
	assert.Contains(t, view, "Run notebook")
	assert.Contains(t, view, "Reports")
}

func TestModel_Quit(t *testing.T) {
	m := New(context.Background(), newWorkspace(t), Actions{})

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m.menu.SetCursor(int(actionQuit))
	_, cmd = m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ReportPaging(t *testing.T) {
	m := New(context.Background(), newWorkspace(t), Actions{})

	openMenu(m, actionReports)
	require.Equal(t, ScreenReports, m.Screen())
	assert.Equal(t, []string{"churn.csv", "metrics.csv"}, m.reports.files.Items())

	send(m, "enter")
	require.Equal(t, ScreenReport, m.Screen())
	pager := m.reports.session.Pager()
	assert.Equal(t, 3, pager.TotalPages())
	assert.Contains(t, m.View(), "Page 1/3")

	send(m, "n")
	assert.Equal(t, 1, pager.Index())
	send(m, "G")
	assert.Equal(t, 2, pager.Index())
	send(m, "n")
	assert.Equal(t, 2, pager.Index(), "next on last page is a no-op")
	assert.Contains(t, m.View(), "Rows 41-45 of 45")

	send(m, "p")
	assert.Equal(t, 1, pager.Index())
	send(m, "g")
	assert.Equal(t, 0, pager.Index())
	send(m, "p")
	assert.Equal(t, 0, pager.Index())

	send(m, "esc")
	assert.Equal(t, ScreenReports, m.Screen())
	send(m, "esc")
	assert.Equal(t, ScreenHome, m.Screen())
}

func TestModel_ReportRecord(t *testing.T) {
	m := New(context.Background(), newWorkspace(t), Actions{})

	openMenu(m, actionReports)
	send(m, "enter")
	send(m, "n")
	send(m, "down")
	send(m, "enter")
	require.Equal(t, ScreenRecord, m.Screen())

	view := m.View()
	assert.Contains(t, view, "churn.csv, row 22 of 45")
	assert.Contains(t, view, "c21")
	assert.Contains(t, view, "tenure")

	send(m, "esc")
	assert.Equal(t, ScreenReport, m.Screen())
	assert.Nil(t, m.record)
	assert.Equal(t, 1, m.reports.session.Pager().Index(), "the page is kept")
}

func TestModel_ReportOpenFailureKeepsPage(t *testing.T) {
	cfg := newWorkspace(t)
	m := New(context.Background(), cfg, Actions{})

	openMenu(m, actionReports)
	send(m, "enter")
	send(m, "n")
	send(m, "esc")

	require.NoError(t, os.Remove(cfg.Path(filepath.Join(cfg.Workspace.ReportsDir, "metrics.csv"))))
	send(m, "down")
	send(m, "enter")

	assert.Equal(t, ScreenReports, m.Screen())
	assert.Equal(t, NoticeError, m.Notice().Kind)
	assert.Contains(t, m.Notice().Text, "report not found")
	assert.Equal(t, "churn.csv", m.reports.session.Table().Name)
	assert.Equal(t, 1, m.reports.session.Pager().Index())
}

func TestModel_Gallery(t *testing.T) {
	m := New(context.Background(), newWorkspace(t), Actions{})

	openMenu(m, actionGallery)
	require.Equal(t, ScreenGallery, m.Screen())
	require.Len(t, m.gallery.categories, 4)
	assert.Equal(t, []string{"plot.png"}, m.gallery.list.Items())
	assert.Contains(t, m.View(), "exploracion_inicial (1)")

	send(m, "tab")
	assert.Equal(t, 1, m.gallery.active)
	send(m, "tab")
	assert.Empty(t, m.gallery.list.Items())
	assert.Contains(t, m.View(), "No images in")

	send(m, "tab")
	send(m, "tab")
	assert.Equal(t, 0, m.gallery.active, "tab wraps around")

	send(m, "enter")
	require.Equal(t, ScreenImage, m.Screen())
	assert.Equal(t, 40, m.gallery.image.Width)
	assert.Contains(t, m.View(), "▀")
	assert.Contains(t, m.View(), "plot.png")

	send(m, "esc")
	assert.Equal(t, ScreenGallery, m.Screen())
}

func TestModel_GalleryMissingImage(t *testing.T) {
	cfg := newWorkspace(t)
	m := New(context.Background(), cfg, Actions{})

	openMenu(m, actionGallery)
	require.NoError(t, os.Remove(filepath.Join(cfg.Path(cfg.Workspace.Visuals[0]), "plot.png")))

	send(m, "enter")
	assert.Equal(t, ScreenGallery, m.Screen())
	assert.Equal(t, NoticeError, m.Notice().Kind)
	assert.Contains(t, m.Notice().Text, "image not found")

	send(m, "r")
	assert.Empty(t, m.gallery.list.Items(), "refresh picks up the removal")
}

func TestModel_RunNotebook(t *testing.T) {
	calls := 0
	actions := Actions{
		RunNotebook: func(context.Context) (*notebook.Result, error) {
			calls++
			if calls == 1 {
				return nil, notebook.ExecutionError("CellExecutionError", nil)
			}
			return &notebook.Result{Duration: 3 * time.Second}, nil
		},
	}
	m := New(context.Background(), newWorkspace(t), actions)

	openMenu(m, actionRunNotebook)
	assert.False(t, m.Busy())
	assert.Equal(t, ScreenHome, m.Screen())
	assert.Equal(t, NoticeError, m.Notice().Kind)
	assert.Contains(t, m.Notice().Text, "CellExecutionError")

	send(m, "enter")
	assert.Equal(t, NoticeSuccess, m.Notice().Kind)
	assert.Contains(t, m.Notice().Text, "3s")
}

func TestModel_BusyIgnoresKeys(t *testing.T) {
	actions := Actions{
		RunNotebook: func(context.Context) (*notebook.Result, error) {
			return &notebook.Result{}, nil
		},
	}
	m := New(context.Background(), newWorkspace(t), actions)
	m.menu.SetCursor(int(actionRunNotebook))

	_, cmd := m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	require.True(t, m.Busy())
	assert.Contains(t, m.View(), "Running notebook")

	_, quit := m.Update(keyPress("q"))
	assert.Nil(t, quit, "keys are ignored while busy")

	drain(m, cmd)
	assert.False(t, m.Busy())
}

func TestModel_FetchDataset(t *testing.T) {
	actions := Actions{
		FetchDataset: func(context.Context) (*dataset.Result, error) {
			return &dataset.Result{Destination: "Data/telco_customer_churn.csv"}, nil
		},
	}
	m := New(context.Background(), newWorkspace(t), actions)

	openMenu(m, actionFetchDataset)
	assert.Equal(t, NoticeSuccess, m.Notice().Kind)
	assert.Contains(t, m.Notice().Text, "data_path not updated")

	m.actions.FetchDataset = func(context.Context) (*dataset.Result, error) {
		return nil, dataset.ErrNoCSVFound
	}
	send(m, "enter")
	assert.Equal(t, NoticeError, m.Notice().Kind)
	assert.Equal(t, ScreenHome, m.Screen())
}

func TestModel_ConfigForm(t *testing.T) {
	cfg := newWorkspace(t)
	m := New(context.Background(), cfg, Actions{})

	openMenu(m, actionConfig)
	require.Equal(t, ScreenConfig, m.Screen())
	assert.Equal(t, "Churn", m.form.inputs[fieldTarget].Value())
	assert.Contains(t, m.View(), "../Data/old.csv")

	m.form.inputs[fieldTarget].SetValue("Contract")
	send(m, "tab")
	send(m, "Data/new.csv")
	send(m, "enter")

	assert.Equal(t, ScreenHome, m.Screen())
	assert.Equal(t, NoticeSuccess, m.Notice().Kind)

	saved, err := cfg.AnalysisStore().Load()
	require.NoError(t, err)
	assert.Equal(t, "Contract", saved.TargetVariable)
	assert.Equal(t, "../Data/new.csv", saved.DataPath)
}

func TestModel_ConfigFormCancel(t *testing.T) {
	cfg := newWorkspace(t)
	m := New(context.Background(), cfg, Actions{})

	openMenu(m, actionConfig)
	send(m, "q")
	assert.Equal(t, ScreenConfig, m.Screen(), "q is text in the form")
	send(m, "esc")
	assert.Equal(t, ScreenHome, m.Screen())

	saved, err := cfg.AnalysisStore().Load()
	require.NoError(t, err)
	assert.Equal(t, "Churn", saved.TargetVariable)
}

func TestModel_ConfigMissing(t *testing.T) {
	cfg := newWorkspace(t)
	require.NoError(t, os.Remove(cfg.Path(cfg.Workspace.AnalysisConfig)))
	m := New(context.Background(), cfg, Actions{})

	openMenu(m, actionConfig)
	assert.Equal(t, ScreenHome, m.Screen())
	assert.Equal(t, NoticeError, m.Notice().Kind)
	assert.Contains(t, m.Notice().Text, "not found")
}

func TestModel_WindowResize(t *testing.T) {
	m := New(context.Background(), newWorkspace(t), Actions{})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40-chromeHeight-2, m.gallery.list.Height())
}

func TestScreenHelp(t *testing.T) {
	keys := DefaultKeyMap()
	assert.Len(t, keys.helpFor(ScreenReport).ShortHelp(), 6)
	assert.Len(t, keys.helpFor(ScreenHome).FullHelp(), 1)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "7,043", formatCount(7043))
	assert.Equal(t, "0", formatCount(0))
}
