package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)

func feed(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestTextModel(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want string
	}{
		{"typed value", []tea.Msg{keys("BV1xx411c7mD"), enter}, "BV1xx411c7mD"},
		{"empty uses default", []tea.Msg{enter}, "4"},
		{"whitespace uses default", []tea.Msg{keys("   "), enter}, "4"},
		{"value is trimmed", []tea.Msg{keys(" 8 "), enter}, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := feed(newTextModel("Thread count:", "4"), tt.msgs...).(textModel)
			if !m.done {
				t.Fatal("prompt not done after enter")
			}
			if m.value != tt.want {
				t.Errorf("value = %q, want %q", m.value, tt.want)
			}
			if !strings.Contains(m.View(), tt.want) {
				t.Errorf("View() = %q does not show the answer", m.View())
			}
		})
	}
}

func TestTextModel_Cancel(t *testing.T) {
	for _, key := range []tea.KeyMsg{esc, ctrlC} {
		m := feed(newTextModel("URL:", ""), keys("abc"), key).(textModel)
		if !m.cancelled || m.done {
			t.Errorf("%s: cancelled = %v, done = %v", key, m.cancelled, m.done)
		}
	}
}

func TestSelectModel(t *testing.T) {
	options := []string{"id: 32 | quality: 480P", "id: 64 | quality: 720P", "id: 80 | quality: 1080P"}

	tests := []struct {
		name string
		msgs []tea.Msg
		want int
	}{
		{"first by default", []tea.Msg{enter}, 0},
		{"down twice", []tea.Msg{down, down, enter}, 2},
		{"up wraps to last", []tea.Msg{up, enter}, 2},
		{"down wraps to first", []tea.Msg{down, down, down, enter}, 0},
		{"vim keys", []tea.Msg{keys("j"), keys("j"), keys("k"), enter}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := feed(newSelectModel("Select a stream for: \"A\"", options), tt.msgs...).(selectModel)
			if !m.done {
				t.Fatal("prompt not done after enter")
			}
			if m.cursor != tt.want {
				t.Errorf("cursor = %d, want %d", m.cursor, tt.want)
			}
			if !strings.Contains(m.View(), options[tt.want]) {
				t.Errorf("View() = %q does not show the choice", m.View())
			}
		})
	}
}

func TestSelectModel_ViewListsOptions(t *testing.T) {
	options := []string{"id: a | quality: low", "id: b | quality: high"}
	view := newSelectModel("Pick", options).View()

	for _, o := range options {
		if !strings.Contains(view, o) {
			t.Errorf("View() missing option %q", o)
		}
	}
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y", true},
		{"Yes", true},
		{"n", false},
		{"NO", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := feed(newConfirmModel("Download?"), keys(tt.input), enter).(confirmModel)
			if !m.done {
				t.Fatal("prompt not done after enter")
			}
			if m.answer != tt.want {
				t.Errorf("answer = %v, want %v", m.answer, tt.want)
			}
		})
	}
}

func TestConfirmModel_RequiresAnswer(t *testing.T) {
	m := feed(newConfirmModel("Download?"), enter).(confirmModel)
	if m.done {
		t.Fatal("empty answer accepted")
	}
	if !m.invalid || !strings.Contains(m.View(), "y or n") {
		t.Errorf("View() = %q, want a hint", m.View())
	}

	m = feed(m, keys("maybe"), enter).(confirmModel)
	if m.done {
		t.Fatal("invalid answer accepted")
	}

	m = feed(m, keys("n"), enter).(confirmModel)
	if !m.done || m.answer {
		t.Errorf("done = %v, answer = %v; want true, false", m.done, m.answer)
	}
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		in         string
		wantAnswer bool
		wantOK     bool
	}{
		{"y", true, true},
		{" YES ", true, true},
		{"n", false, true},
		{"no", false, true},
		{"", false, false},
		{"nope", false, false},
	}

	for _, tt := range tests {
		answer, ok := parseAnswer(tt.in)
		if answer != tt.wantAnswer || ok != tt.wantOK {
			t.Errorf("parseAnswer(%q) = %v, %v; want %v, %v", tt.in, answer, ok, tt.wantAnswer, tt.wantOK)
		}
	}
}
