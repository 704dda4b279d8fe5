package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// selectModel lets the user pick one option with the arrow keys.
type selectModel struct {
	label   string
	options []string
	cursor  int

	done      bool
	cancelled bool
}

func newSelectModel(label string, options []string) selectModel {
	return selectModel{
		label:   label,
		options: options,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "esc":
		m.cancelled = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.options) - 1
		}

	case "down", "j", "tab":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}

	case "home":
		m.cursor = 0

	case "end":
		m.cursor = len(m.options) - 1

	case "enter":
		if len(m.options) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(questionStyle.Render("? " + m.label))
	if m.done {
		b.WriteString(" ")
		b.WriteString(answerStyle.Render(m.options[m.cursor]))
		b.WriteString("\n")
		return b.String()
	}
	if m.cancelled {
		b.WriteString(" ")
		b.WriteString(dimStyle.Render("<cancelled>"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("\n")

	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + option))
		} else {
			b.WriteString("  " + option)
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("↑/↓: move • enter: select • esc: cancel"))
	b.WriteString("\n")

	return b.String()
}
