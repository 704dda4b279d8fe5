package download

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Banner is printed by TextConsole once all jobs have been processed.
const Banner = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n" +
	"✨ All downloads processed\n" +
	"   Check the messages above for failures.\n" +
	"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"

// TextConsole writes messages as plain lines to a writer.
//
// Lines are colored by level when the writer is a terminal; otherwise the
// text is written exactly as received.
type TextConsole struct {
	w      io.Writer
	styles map[ProgressLevel]lipgloss.Style
	banner lipgloss.Style
	mu     sync.Mutex
}

// NewTextConsole creates a TextConsole writing to w.
func NewTextConsole(w io.Writer) *TextConsole {
	r := lipgloss.NewRenderer(w)
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return &TextConsole{
		w: w,
		styles: map[ProgressLevel]lipgloss.Style{
			LevelInfo:    base.Foreground(lipgloss.Color("#A8DADC")),
			LevelVerbose: base.Foreground(lipgloss.Color("#6C757D")),
			LevelWarning: base.Foreground(lipgloss.Color("#FFE66D")),
			LevelError:   base.Foreground(lipgloss.Color("#FF6B6B")),
			LevelSuccess: base.Foreground(lipgloss.Color("#95E1A3")),
		},
		banner: base.Bold(true).Foreground(lipgloss.Color("#4ECDC4")),
	}
}

// Print implements Console.
func (c *TextConsole) Print(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	style, ok := c.styles[msg.Level]
	if !ok {
		style = c.styles[LevelInfo]
	}
	fmt.Fprintln(c.w, renderLines(style, msg.Text))
}

// Finish implements Console.
func (c *TextConsole) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.w, renderLines(c.banner, strings.TrimSuffix(Banner, "\n")))
}

// renderLines styles each line on its own so multi-line text is not padded
// to a common width.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
