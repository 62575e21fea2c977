package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/churnlab/churnlab/internal/config"
)

// Form field limits.
const (
	formCharLimit  = 256
	formInputWidth = 60
)

const (
	fieldTarget = iota
	fieldDataset
	fieldCount
)

// configForm edits target_variable and data_path.
type configForm struct {
	store   *config.AnalysisStore
	resolve func(string) string
	current *config.AnalysisConfig

	inputs [fieldCount]textinput.Model
	focus  int
}

// newConfigForm builds the form. resolve maps a workspace-relative path
// typed by the user to a full path.
func newConfigForm(store *config.AnalysisStore, resolve func(string) string, current *config.AnalysisConfig) *configForm {
	target := textinput.New()
	target.Placeholder = "Churn"
	target.CharLimit = formCharLimit
	target.Width = formInputWidth
	target.SetValue(current.TargetVariable)
	target.Focus()

	data := textinput.New()
	data.Placeholder = "leave empty to keep " + current.DataPath
	data.CharLimit = formCharLimit
	data.Width = formInputWidth

	return &configForm{
		store:   store,
		resolve: resolve,
		current: current,
		inputs:  [fieldCount]textinput.Model{target, data},
	}
}

func (f *configForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the focused input.
func (f *configForm) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *configForm) nextField() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % fieldCount
	f.inputs[f.focus].Focus()
}

// values returns the target variable and the resolved dataset path, empty
// when no new dataset was entered.
func (f *configForm) values() (string, string) {
	target := strings.TrimSpace(f.inputs[fieldTarget].Value())
	dataset := strings.TrimSpace(f.inputs[fieldDataset].Value())
	if dataset != "" {
		dataset = f.resolve(dataset)
	}
	return target, dataset
}

func (f *configForm) save() (*config.AnalysisConfig, error) {
	target, dataset := f.values()
	return f.store.Apply(target, dataset)
}

func (f *configForm) view() string {
	var sb strings.Builder
	sb.WriteString(LabelStyle.Render("Target variable"))
	sb.WriteString("\n")
	sb.WriteString(f.inputs[fieldTarget].View())
	sb.WriteString("\n\n")
	sb.WriteString(LabelStyle.Render("New dataset (CSV path relative to the workspace)"))
	sb.WriteString("\n")
	sb.WriteString(f.inputs[fieldDataset].View())
	sb.WriteString("\n\n")
	sb.WriteString(SubtleStyle.Render("Current data_path: " + f.current.DataPath))
	sb.WriteString("\n")
	sb.WriteString(SubtleStyle.Render("File: " + f.store.Path()))
	return BoxStyle.Render(sb.String())
}
