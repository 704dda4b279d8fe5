package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel asks a yes/no question. There is no default: the user has to
// type an answer.
type confirmModel struct {
	label string
	input textinput.Model

	answer    bool
	invalid   bool
	done      bool
	cancelled bool
}

func newConfirmModel(label string) confirmModel {
	ti := textinput.New()
	ti.Placeholder = "y/n"
	ti.CharLimit = 8
	ti.Width = 8
	ti.Focus()

	return confirmModel{
		label: label,
		input: ti,
	}
}

// parseAnswer maps y/yes/n/no (any case) to a bool.
func parseAnswer(s string) (answer, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			answer, ok := parseAnswer(m.input.Value())
			if !ok {
				m.invalid = true
				m.input.SetValue("")
				return m, nil
			}
			m.answer = answer
			m.done = true
			return m, tea.Quit
		}
	}

	m.invalid = false
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	q := questionStyle.Render("? " + m.label)
	switch {
	case m.done:
		a := "No"
		if m.answer {
			a = "Yes"
		}
		return q + " " + answerStyle.Render(a) + "\n"
	case m.cancelled:
		return q + " " + dimStyle.Render("<cancelled>") + "\n"
	}

	s := q + " " + m.input.View() + "\n"
	if m.invalid {
		s += errorStyle.Render("Please type y or n") + "\n"
	}
	return s
}
