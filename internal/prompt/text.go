package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// textModel asks for a single line of free text.
type textModel struct {
	label        string
	defaultValue string
	input        textinput.Model

	value     string
	done      bool
	cancelled bool
}

func newTextModel(label, defaultValue string) textModel {
	ti := textinput.New()
	ti.Placeholder = defaultValue
	ti.CharLimit = 2048
	ti.Width = 60
	ti.Focus()

	return textModel{
		label:        label,
		defaultValue: defaultValue,
		input:        ti,
	}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			m.value = strings.TrimSpace(m.input.Value())
			if m.value == "" {
				m.value = m.defaultValue
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return questionStyle.Render("? "+m.label) + " " + answerStyle.Render(m.value) + "\n"
	}
	if m.cancelled {
		return questionStyle.Render("? "+m.label) + " " + dimStyle.Render("<cancelled>") + "\n"
	}
	return questionStyle.Render("? "+m.label) + " " + m.input.View() + "\n"
}
