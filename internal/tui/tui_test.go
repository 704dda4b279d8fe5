package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/lux-downloader/internal/download"
	"github.com/handiism/lux-downloader/internal/model"
)

type fixedProgress struct {
	completed, failed, total int32
}

func (p fixedProgress) GetProgress() (int32, int32, int32) {
	return p.completed, p.failed, p.total
}

func testPlan() *model.Plan {
	return &model.Plan{
		Source:  "https://example.com/v",
		Threads: "4",
		Jobs: []model.SelectedJob{
			{Stream: &model.Stream{ID: "64", Size: 1600000}, Title: "Part 1"},
			{Stream: &model.Stream{ID: "80", Size: 800000}, Title: "Part 2"},
		},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestModel_ProgressMessagesAreKept(t *testing.T) {
	m := NewModel(testPlan(), nil, nil)

	m, _ = update(t, m, ProgressMsg{Message: download.Progress(download.LevelInfo, "Downloading %d of %d: %q", 1, 2, "Part 1")})
	m, _ = update(t, m, ProgressMsg{Message: download.Progress(download.LevelError, "Download failed for video %d: %q: %s", 1, "Part 1", "boom")})

	view := m.View()
	for _, want := range []string{
		`Downloading 1 of 2: "Part 1"`,
		`Download failed for video 1: "Part 1": boom`,
		"https://example.com/v",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
}

func TestModel_LogTailIsBounded(t *testing.T) {
	m := NewModel(testPlan(), nil, nil)
	for i := 0; i < maxLogs+5; i++ {
		m, _ = update(t, m, ProgressMsg{Message: download.Progress(download.LevelInfo, "line %d", i)})
	}

	if len(m.logs) != maxLogs {
		t.Fatalf("len(logs) = %d, want %d", len(m.logs), maxLogs)
	}
	if got, want := m.logs[0].Text, "line 5"; got != want {
		t.Errorf("oldest log = %q, want %q", got, want)
	}
}

func TestModel_TickReadsProgress(t *testing.T) {
	m := NewModel(testPlan(), fixedProgress{completed: 1, failed: 1, total: 2}, nil)

	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("TickMsg returned no command, want next tick")
	}
	if m.completed != 1 || m.failed != 1 || m.total != 2 {
		t.Errorf("progress = %d/%d/%d, want 1/1/2", m.completed, m.failed, m.total)
	}
	if got := m.percent(); got != 1 {
		t.Errorf("percent() = %v, want 1", got)
	}
	if view := m.View(); !strings.Contains(view, "Videos: 2/2 | Failed: 1 | Size: ~3 MB") {
		t.Errorf("View() missing counters\n%s", view)
	}
}

func TestModel_CompleteShowsBanner(t *testing.T) {
	m := NewModel(testPlan(), nil, nil)

	m, _ = update(t, m, CompleteMsg{})
	if m.state != StateComplete {
		t.Fatalf("state = %v, want StateComplete", m.state)
	}
	if view := m.View(); !strings.Contains(view, "All downloads processed") {
		t.Errorf("View() missing banner\n%s", view)
	}
}

func TestModel_DoneQuits(t *testing.T) {
	m := NewModel(testPlan(), fixedProgress{completed: 2, total: 2}, nil)
	m, _ = update(t, m, CompleteMsg{})

	m, cmd := update(t, m, DownloadDoneMsg{})
	if cmd == nil {
		t.Fatal("DownloadDoneMsg returned no command, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("DownloadDoneMsg command is not tea.Quit")
	}
	if m.state != StateComplete {
		t.Errorf("state = %v, want StateComplete", m.state)
	}

	// The program has exited; the last frame must not offer keys.
	view := m.View()
	for _, hint := range []string{"q: quit", "esc:"} {
		if strings.Contains(view, hint) {
			t.Errorf("final View() contains key hint %q\n%s", hint, view)
		}
	}
}

func TestModel_HelpWhileDownloading(t *testing.T) {
	m := NewModel(testPlan(), nil, nil)

	if view := m.View(); !strings.Contains(view, "esc: cancel after the current video") {
		t.Errorf("View() missing cancel hint\n%s", view)
	}
}

func TestModel_EscCancelsDownloads(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewModel(testPlan(), nil, cancel)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if ctx.Err() == nil {
		t.Error("esc did not cancel the download context")
	}
	if m.state != StateError || m.err != ErrStopped {
		t.Errorf("state = %v, err = %v, want StateError, ErrStopped", m.state, m.err)
	}
	if cmd == nil {
		t.Fatal("esc returned no command, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc command is not tea.Quit")
	}
}

func TestModel_QuitKeyIgnoredWhileDownloading(t *testing.T) {
	m := NewModel(testPlan(), nil, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.state != StateDownloading {
		t.Errorf("state = %v, want StateDownloading", m.state)
	}
}
