package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Layout defaults.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5
	// chromeHeight is the space taken by the title, notice and help lines.
	chromeHeight = 8
)

// Screen identifies the active screen.
type Screen int

// Screens of the application.
const (
	ScreenHome Screen = iota
	ScreenGallery
	ScreenImage
	ScreenReports
	ScreenReport
	ScreenRecord
	ScreenConfig
)

// String returns the screen title.
func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "Home"
	case ScreenGallery:
		return "Gallery"
	case ScreenImage:
		return "Image"
	case ScreenReports:
		return "Reports"
	case ScreenReport:
		return "Report"
	case ScreenRecord:
		return "Record"
	case ScreenConfig:
		return "Configuration"
	default:
		return "Unknown"
	}
}

// NoticeKind sets how a notice is styled.
type NoticeKind int

// Notice kinds.
const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a one-line status message shown under the screen body. Notices
// never change screen state.
type Notice struct {
	Kind NoticeKind
	Text string
}

// View renders the notice.
func (n Notice) View() string {
	switch n.Kind {
	case NoticeSuccess:
		return SuccessStyle.Render("✓ " + n.Text)
	case NoticeError:
		return ErrorStyle.Render("✗ " + n.Text)
	default:
		if n.Text == "" {
			return ""
		}
		return InfoStyle.Render(n.Text)
	}
}

func errorNotice(err error) Notice {
	return Notice{Kind: NoticeError, Text: err.Error()}
}

// LoadingState holds the spinner shown while a long operation runs.
type LoadingState struct {
	spinner spinner.Model
	label   string
}

// NewLoadingState creates a loading state with the dot spinner.
func NewLoadingState(label string) *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return &LoadingState{spinner: s, label: label}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner line.
func RenderLoading(l *LoadingState) string {
	if l == nil {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, l.spinner.View(), " ", l.label)
}

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English) //nolint:gochecknoglobals // stateless formatter.

func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

func pageFooter(page, pages, first, last, total int) string {
	if total == 0 {
		return SubtleStyle.Render("No rows")
	}
	return SubtleStyle.Render(fmt.Sprintf("Page %d/%d | Rows %s-%s of %s | Use n/p or ←/→ to navigate, g/G first/last",
		page, pages, formatCount(first), formatCount(last), formatCount(total)))
}
