// Package tui implements the interactive churnlab application.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/dataset"
	"github.com/churnlab/churnlab/internal/gallery"
	"github.com/churnlab/churnlab/internal/logging"
	"github.com/churnlab/churnlab/internal/notebook"
	"github.com/churnlab/churnlab/internal/tui/detail"
	listview "github.com/churnlab/churnlab/internal/tui/list"
)

// Actions are the long-running operations started from the home menu.
type Actions struct {
	RunNotebook  func(ctx context.Context) (*notebook.Result, error)
	FetchDataset func(ctx context.Context) (*dataset.Result, error)
}

// DefaultActions wires Actions to the notebook and dataset packages.
func DefaultActions(cfg *config.Config) Actions {
	return Actions{
		RunNotebook: func(ctx context.Context) (*notebook.Result, error) {
			return notebook.Run(ctx, notebook.RunOptions{
				WorkDir:  cfg.Root(),
				Notebook: cfg.Workspace.Notebook,
				Command:  cfg.Notebook.Command,
				Timeout:  cfg.Notebook.Timeout,
			})
		},
		FetchDataset: func(ctx context.Context) (*dataset.Result, error) {
			return dataset.NewAcquirer(cfg).Acquire(ctx, cfg.Dataset.Handle)
		},
	}
}

type menuAction int

const (
	actionRunNotebook menuAction = iota
	actionConfig
	actionFetchDataset
	actionGallery
	actionReports
	actionQuit
)

type menuItem struct {
	label  string
	hint   string
	action menuAction
}

func homeMenu() []menuItem {
	return []menuItem{
		{label: "Run notebook", hint: "execute the analysis notebook in place", action: actionRunNotebook},
		{label: "Configuration", hint: "edit target variable and dataset", action: actionConfig},
		{label: "Fetch dataset", hint: "download the dataset and update data_path", action: actionFetchDataset},
		{label: "Gallery", hint: "browse generated plots", action: actionGallery},
		{label: "Reports", hint: "page through CSV and Excel reports", action: actionReports},
		{label: "Quit", action: actionQuit},
	}
}

func renderMenuItem(item menuItem, selected bool) string {
	text := item.label
	if item.hint != "" {
		text = fmt.Sprintf("%-16s %s", item.label, SubtleStyle.Render(item.hint))
	}
	return renderItem(text, selected)
}

// Messages delivered by background commands.
type (
	notebookDoneMsg struct {
		result *notebook.Result
		err    error
	}
	datasetDoneMsg struct {
		result *dataset.Result
		err    error
	}
	catalogMsg struct {
		categories []gallery.Category
		err        error
	}
	imageMsg struct {
		name  string
		thumb *gallery.Thumb
		err   error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	ctx     context.Context
	cfg     *config.Config
	actions Actions

	keys KeyMap
	help help.Model

	screen Screen
	width  int
	height int
	notice Notice

	// loading is non-nil while a background command runs.
	loading *LoadingState

	menu    *listview.Model[menuItem]
	gallery *galleryView
	reports *reportsView
	record  *detail.Model
	form    *configForm
}

// New creates the application model.
func New(ctx context.Context, cfg *config.Config, actions Actions) *Model {
	return &Model{
		ctx:     ctx,
		cfg:     cfg,
		actions: actions,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		screen:  ScreenHome,
		width:   defaultWidth,
		height:  defaultHeight,
		menu:    listview.New(homeMenu(), len(homeMenu()), renderMenuItem),
		gallery: newGalleryView(defaultHeight - chromeHeight),
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, cfg *config.Config, actions Actions) error {
	p := tea.NewProgram(New(ctx, cfg, actions), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Screen returns the active screen.
func (m *Model) Screen() Screen { return m.screen }

// Notice returns the current notice.
func (m *Model) Notice() Notice { return m.notice }

// Busy reports whether a background command is running.
func (m *Model) Busy() bool { return m.loading != nil }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if m.loading != nil {
			return m, m.loading.Update(msg)
		}
		return m, nil
	case notebookDoneMsg:
		m.handleNotebookDone(msg)
		return m, nil
	case datasetDoneMsg:
		m.handleDatasetDone(msg)
		return m, nil
	case catalogMsg:
		m.handleCatalog(msg)
		return m, nil
	case imageMsg:
		m.handleImage(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.screen == ScreenConfig && m.form != nil {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	body := max(height-chromeHeight, minHeight)
	m.gallery.setHeight(body)
	if m.reports != nil {
		m.reports.setSize(width, body)
	}
	if m.record != nil {
		m.record.SetSize(width, body-1)
	}
}

func (m *Model) setNotice(n Notice) {
	m.notice = n
	log := logging.FromContext(m.ctx)
	log.Debug().
		Str("component", "tui").
		Str("screen", m.screen.String()).
		Int("kind", int(n.Kind)).
		Msg(n.Text)
}

// startBusy shows the spinner and runs fn in the background.
func (m *Model) startBusy(label string, fn func() tea.Msg) tea.Cmd {
	m.loading = NewLoadingState(label)
	m.notice = Notice{}
	return tea.Batch(m.loading.Init(), fn)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.loading != nil {
		return m, nil
	}
	if m.screen != ScreenConfig && key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.screen {
	case ScreenHome:
		return m.handleHomeKey(msg)
	case ScreenGallery:
		return m.handleGalleryKey(msg)
	case ScreenImage:
		return m.handleImageKey(msg)
	case ScreenReports:
		return m.handleReportsKey(msg)
	case ScreenReport:
		return m.handleReportKey(msg)
	case ScreenRecord:
		return m.handleRecordKey(msg)
	case ScreenConfig:
		return m.handleConfigKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Enter):
		item, ok := m.menu.Selected()
		if !ok {
			return m, nil
		}
		return m, m.activate(item.action)
	}
	m.menu.Update(msg)
	return m, nil
}

func (m *Model) activate(action menuAction) tea.Cmd {
	switch action {
	case actionRunNotebook:
		return m.runNotebook()
	case actionConfig:
		return m.openConfig()
	case actionFetchDataset:
		return m.fetchDataset()
	case actionGallery:
		return m.loadCatalog()
	case actionReports:
		m.openReports()
		return nil
	case actionQuit:
		return tea.Quit
	default:
		return nil
	}
}

func (m *Model) runNotebook() tea.Cmd {
	if m.actions.RunNotebook == nil {
		return nil
	}
	ctx := m.ctx
	run := m.actions.RunNotebook
	return m.startBusy("Running notebook (this may take a while)...", func() tea.Msg {
		res, err := run(ctx)
		return notebookDoneMsg{result: res, err: err}
	})
}

func (m *Model) handleNotebookDone(msg notebookDoneMsg) {
	m.loading = nil
	if msg.err != nil {
		m.setNotice(Notice{Kind: NoticeError, Text: "notebook failed: " + msg.err.Error()})
		return
	}
	m.setNotice(Notice{
		Kind: NoticeSuccess,
		Text: fmt.Sprintf("notebook executed in %s", msg.result.Duration.Round(time.Second)),
	})
}

func (m *Model) fetchDataset() tea.Cmd {
	if m.actions.FetchDataset == nil {
		return nil
	}
	ctx := m.ctx
	fetch := m.actions.FetchDataset
	return m.startBusy("Fetching dataset...", func() tea.Msg {
		res, err := fetch(ctx)
		return datasetDoneMsg{result: res, err: err}
	})
}

func (m *Model) handleDatasetDone(msg datasetDoneMsg) {
	m.loading = nil
	if msg.err != nil {
		m.setNotice(errorNotice(msg.err))
		return
	}
	text := "dataset installed at " + msg.result.Destination
	if msg.result.ConfigUpdated {
		text += " and data_path updated"
	} else {
		text += " (analysis configuration not found, data_path not updated)"
	}
	m.setNotice(Notice{Kind: NoticeSuccess, Text: text})
}

func (m *Model) visualDirs() []string {
	dirs := make([]string, len(m.cfg.Workspace.Visuals))
	for i, v := range m.cfg.Workspace.Visuals {
		dirs[i] = m.cfg.Path(v)
	}
	return dirs
}

func (m *Model) loadCatalog() tea.Cmd {
	ctx := m.ctx
	dirs := m.visualDirs()
	return m.startBusy("Loading images...", func() tea.Msg {
		cats, err := gallery.Catalog(ctx, dirs)
		return catalogMsg{categories: cats, err: err}
	})
}

func (m *Model) handleCatalog(msg catalogMsg) {
	m.loading = nil
	if msg.err != nil {
		m.setNotice(errorNotice(msg.err))
		return
	}
	m.gallery.setCatalog(msg.categories)
	m.screen = ScreenGallery
}

func (m *Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenHome
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.gallery.nextCategory()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadCatalog()
	case key.Matches(msg, m.keys.Enter):
		return m, m.loadImage()
	}
	m.gallery.list.Update(msg)
	return m, nil
}

func (m *Model) loadImage() tea.Cmd {
	cat, ok := m.gallery.current()
	if !ok {
		return nil
	}
	name, ok := m.gallery.list.Selected()
	if !ok {
		m.setNotice(Notice{Kind: NoticeInfo, Text: "no images in " + cat.Name})
		return nil
	}
	path := cat.Path(name)
	maxW, maxH := m.cfg.Thumbnail.MaxWidth, m.cfg.Thumbnail.MaxHeight
	return m.startBusy("Loading "+name+"...", func() tea.Msg {
		thumb, err := gallery.Thumbnail(path, maxW, maxH)
		return imageMsg{name: name, thumb: thumb, err: err}
	})
}

func (m *Model) handleImage(msg imageMsg) {
	m.loading = nil
	if msg.err != nil {
		m.setNotice(errorNotice(msg.err))
		return
	}
	m.gallery.image = msg.thumb
	m.gallery.imageName = msg.name
	m.screen = ScreenImage
}

func (m *Model) handleImageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenGallery
	}
	return m, nil
}

func (m *Model) openReports() {
	if m.reports == nil {
		rv, err := newReportsView(m.cfg.Path(m.cfg.Workspace.ReportsDir), m.cfg.Pager.PageSize)
		if err != nil {
			m.setNotice(errorNotice(err))
			return
		}
		m.reports = rv
		m.reports.setSize(m.width, max(m.height-chromeHeight, minHeight))
	}
	if err := m.reports.refresh(); err != nil {
		m.setNotice(errorNotice(err))
		return
	}
	m.screen = ScreenReports
}

func (m *Model) handleReportsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenHome
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		if err := m.reports.refresh(); err != nil {
			m.setNotice(errorNotice(err))
		}
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		name, ok := m.reports.files.Selected()
		if !ok {
			return m, nil
		}
		if err := m.reports.open(name); err != nil {
			m.setNotice(errorNotice(err))
			return m, nil
		}
		m.notice = Notice{}
		m.screen = ScreenReport
		return m, nil
	}
	m.reports.files.Update(msg)
	return m, nil
}

func (m *Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.reports.session
	moved := false
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenReports
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.openRecord()
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		moved = s.Next()
	case key.Matches(msg, m.keys.PrevPage):
		moved = s.Previous()
	case key.Matches(msg, m.keys.First):
		moved = s.First()
	case key.Matches(msg, m.keys.Last):
		moved = s.Last()
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.reports.table, cmd = m.reports.table.Update(msg)
		return m, cmd
	}
	if moved {
		m.reports.rebuildTable()
	}
	return m, nil
}

// openRecord shows the row under the table cursor.
func (m *Model) openRecord() {
	page := m.reports.session.Page()
	cursor := m.reports.table.Cursor()
	if cursor < 0 || cursor >= len(page) {
		return
	}
	t := m.reports.session.Table()
	start, _, _ := m.reports.session.Pager().Bounds()
	title := fmt.Sprintf("%s, row %s of %s", t.Name, formatCount(start+cursor+1), formatCount(len(t.Rows)))
	m.record = detail.New(title, detail.Fields(t.Header(), page[cursor]),
		max(m.height-chromeHeight-1, minHeight), m.width, detail.Styles{
			Title:    LabelStyle.Bold(true),
			Label:    LabelStyle,
			Value:    ValueStyle,
			Empty:    SubtleStyle,
			Selected: SelectedItemStyle,
		})
	m.screen = ScreenRecord
}

func (m *Model) handleRecordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.record = nil
		m.screen = ScreenReport
		return m, nil
	}
	return m, m.record.Update(msg)
}

func (m *Model) openConfig() tea.Cmd {
	store := m.cfg.AnalysisStore()
	current, err := store.Load()
	if err != nil {
		m.setNotice(errorNotice(err))
		return nil
	}
	m.form = newConfigForm(store, m.cfg.Path, current)
	m.notice = Notice{}
	m.screen = ScreenConfig
	return m.form.Init()
}

func (m *Model) handleConfigKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.screen = ScreenHome
		m.setNotice(Notice{Kind: NoticeInfo, Text: "configuration unchanged"})
		return m, nil
	case "tab", "shift+tab", "down", "up":
		m.form.nextField()
		return m, nil
	case "enter", "ctrl+s":
		saved, err := m.form.save()
		if err != nil {
			m.setNotice(errorNotice(err))
			return m, nil
		}
		m.form = nil
		m.screen = ScreenHome
		m.setNotice(Notice{
			Kind: NoticeSuccess,
			Text: fmt.Sprintf("configuration saved (target_variable=%s, data_path=%s)", saved.TargetVariable, saved.DataPath),
		})
		return m, nil
	}
	return m, m.form.Update(msg)
}

// View implements tea.Model.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case ScreenHome:
		body = m.menu.View()
	case ScreenGallery:
		body = m.gallery.view()
	case ScreenImage:
		body = m.gallery.imageView(m.width)
	case ScreenReports:
		body = m.reports.listView()
	case ScreenReport:
		body = m.reports.tableView()
	case ScreenRecord:
		body = m.record.View()
	case ScreenConfig:
		body = m.form.view()
	}

	title := HeaderStyle.Render("churnlab | " + m.screen.String())
	parts := []string{title, body, ""}
	if m.loading != nil {
		parts = append(parts, RenderLoading(m.loading))
	} else if n := m.notice.View(); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, m.help.View(m.keys.helpFor(m.screen)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
