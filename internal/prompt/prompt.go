// Package prompt implements interactive terminal prompts with Bubble Tea.
//
// Prompter satisfies selection.Prompter. Every question runs as its own
// short-lived tea.Program that leaves the answered question on screen, so
// the terminal reads like a transcript once the user is done.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned when the user aborts a prompt with ctrl+c or
// esc.
var ErrInterrupted = errors.New("prompt: interrupted")

// Prompter asks questions on a terminal.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// New creates a Prompter reading keys from in and drawing on out.
// Nil values mean stdin and stdout.
func New(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{in: in, out: out}
}

// Text implements selection.Prompter.
func (p *Prompter) Text(ctx context.Context, label, defaultValue string) (string, error) {
	final, err := p.run(ctx, newTextModel(label, defaultValue))
	if err != nil {
		return "", err
	}

	m := final.(textModel)
	if m.cancelled {
		return "", ErrInterrupted
	}
	return m.value, nil
}

// Select implements selection.Prompter.
func (p *Prompter) Select(ctx context.Context, label string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options to select from for %q", label)
	}

	final, err := p.run(ctx, newSelectModel(label, options))
	if err != nil {
		return 0, err
	}

	m := final.(selectModel)
	if m.cancelled {
		return 0, ErrInterrupted
	}
	return m.cursor, nil
}

// Confirm implements selection.Prompter.
func (p *Prompter) Confirm(ctx context.Context, label string) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(label))
	if err != nil {
		return false, err
	}

	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrInterrupted
	}
	return m.answer, nil
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrInterrupted
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}
