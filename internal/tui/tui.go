// Package tui provides a Bubble Tea live view of a download run.
//
// The view is a download.Console: the Sink forwards every status message
// to the running program, which keeps the last lines on screen together
// with a progress bar fed from Manager.GetProgress.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/lux-downloader/internal/config"
	"github.com/handiism/lux-downloader/internal/download"
	"github.com/handiism/lux-downloader/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// ErrStopped is returned by Run when the user quit before all jobs ran.
var ErrStopped = errors.New("downloads stopped by user")

// maxLogs is how many status lines stay on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateDownloading State = iota
	StateComplete
	StateError
)

// ProgressSource reports job counters of the current run.
type ProgressSource interface {
	GetProgress() (completed, failed, total int32)
}

// Message types
type (
	// ProgressMsg carries one status line from the Sink.
	ProgressMsg struct {
		Message download.Message
	}

	// CompleteMsg is sent when the Sink received the end-of-stream message.
	CompleteMsg struct{}

	// DownloadDoneMsg is sent when the Manager returned.
	DownloadDoneMsg struct {
		Err error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Model is the Bubble Tea model of the live view.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progress.Model
	source   ProgressSource
	plan     *model.Plan
	logs     []download.Message
	err      error

	completed int32
	failed    int32
	total     int32

	// cancel stops the run when the user quits early.
	cancel context.CancelFunc
}

// NewModel creates the live view for plan.
func NewModel(plan *model.Plan, source ProgressSource, cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	return Model{
		state:    StateDownloading,
		spinner:  sp,
		progress: prog,
		source:   source,
		plan:     plan,
		total:    int32(len(plan.Jobs)),
		cancel:   cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tickProgress())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.state == StateDownloading {
				if m.cancel != nil {
					m.cancel()
				}
				m.state = StateError
				m.err = ErrStopped
			}
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.logs = append(m.logs, msg.Message)
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case CompleteMsg:
		m.state = StateComplete

	case DownloadDoneMsg:
		m.refresh()
		if msg.Err != nil && m.state != StateError {
			m.state = StateError
			m.err = msg.Err
		}
		return m, tea.Quit

	case TickMsg:
		if m.state == StateDownloading {
			m.refresh()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// refresh pulls the job counters from the progress source.
func (m *Model) refresh() {
	if m.source == nil {
		return
	}
	m.completed, m.failed, m.total = m.source.GetProgress()
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.completed+m.failed) / float64(m.total)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎬 lux downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Source: %s • threads: %s", m.plan.Source, m.plan.Threads)))
	b.WriteString("\n\n")

	switch m.state {
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	if help := m.getHelpText(); help != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(help))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Downloading..."))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.percent()))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Videos: %d/%d | Failed: %d | Size: ~%d MB",
		m.completed+m.failed,
		m.total,
		m.failed,
		model.TotalSizeMB(m.plan.Jobs),
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(strings.TrimSuffix(download.Banner, "\n") + fmt.Sprintf(
		"\n\nVideos: %d\nCompleted: %d\nFailed: %d",
		m.total,
		m.completed,
		m.failed,
	)))

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Text))
		b.WriteString("\n")
	}

	return b.String()
}

// getHelpText returns the key hint for the current state. The program exits
// by itself once the run is over, so only a running download has one.
func (m Model) getHelpText() string {
	if m.state == StateDownloading {
		return "esc: cancel after the current video"
	}
	return ""
}

// Console forwards Sink output to a running program.
type Console struct {
	program *tea.Program
}

// Print implements download.Console.
func (c *Console) Print(msg download.Message) {
	c.program.Send(ProgressMsg{Message: msg})
}

// Finish implements download.Console.
func (c *Console) Finish() {
	c.program.Send(CompleteMsg{})
}

// Run downloads plan while showing the live view. If the user quits early
// the remaining jobs are dropped and Run returns once the current video is
// done.
func Run(ctx context.Context, settings *config.Settings, fetcher download.Fetcher, plan *model.Plan) error {
	downloadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	console := &Console{}
	manager := download.NewManager(settings, fetcher, console)
	p := tea.NewProgram(NewModel(plan, manager, cancel), tea.WithContext(ctx))
	console.program = p

	done := make(chan error, 1)
	go func() {
		err := manager.StartDownloads(downloadCtx, plan)
		p.Send(DownloadDoneMsg{Err: err})
		done <- err
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return fmt.Errorf("failed to run live view: %w", err)
	}

	downloadErr := <-done
	if m, ok := final.(Model); ok && m.state == StateError && m.err != nil {
		return m.err
	}
	return downloadErr
}
