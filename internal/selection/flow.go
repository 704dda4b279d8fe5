// Package selection asks the user what to download.
//
// Flow walks through the prompts in a fixed order: source URL or code,
// one stream per source item, thread count, and a final confirmation.
// It produces a model.Plan and never starts a download itself.
package selection

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/lux-downloader/internal/logging"
	"github.com/handiism/lux-downloader/internal/model"
	"go.uber.org/zap"
)

// ErrCancelled is returned when the user declines the confirmation.
var ErrCancelled = errors.New("download cancelled")

// UnavailableError reports a source item that offers no stream. The
// position of a job is the address lux downloads it by, so no item can be
// left out and the whole selection fails instead.
type UnavailableError struct {
	Index int
	Title string
	Err   string
}

func (e *UnavailableError) Error() string {
	if e.Err != "" {
		return fmt.Sprintf("video %d %q has no streams to download: %s", e.Index+1, e.Title, e.Err)
	}
	return fmt.Sprintf("video %d %q has no streams to download", e.Index+1, e.Title)
}

// Prompter asks the user questions.
type Prompter interface {
	// Text asks for free text. An empty answer yields defaultValue.
	Text(ctx context.Context, label, defaultValue string) (string, error)

	// Select asks the user to pick one of options and returns its index.
	Select(ctx context.Context, label string, options []string) (int, error)

	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, label string) (bool, error)
}

// Extractor resolves a URL or code into source items.
type Extractor interface {
	Extract(ctx context.Context, source string) ([]*model.SourceItem, error)
}

const (
	sourceLabel  = "The video's URL or BV Code:"
	threadsLabel = "Thread count:"
)

// Flow is the interactive selection flow.
type Flow struct {
	prompter       Prompter
	extractor      Extractor
	defaultThreads string

	// Source, when set, is used instead of prompting for it.
	Source string
}

// NewFlow creates a Flow. defaultThreads is offered at the thread count
// prompt.
func NewFlow(prompter Prompter, extractor Extractor, defaultThreads string) *Flow {
	return &Flow{
		prompter:       prompter,
		extractor:      extractor,
		defaultThreads: defaultThreads,
	}
}

// Run asks all questions and returns the confirmed plan.
//
// Extractor errors are returned unchanged so the caller can inspect them.
// Every item becomes a job at its own position; an item without streams
// ends the flow with an *UnavailableError before any stream is chosen.
// If the user says no at the confirmation, ErrCancelled is returned.
func (f *Flow) Run(ctx context.Context) (*model.Plan, error) {
	log := logging.FromContext(ctx)

	source, err := f.askSource(ctx)
	if err != nil {
		return nil, err
	}

	items, err := f.extractor.Extract(ctx, source)
	if err != nil {
		return nil, err
	}

	if err := checkItems(items); err != nil {
		return nil, err
	}

	jobs := make([]model.SelectedJob, 0, len(items))
	for _, item := range items {
		if item.Err != "" {
			log.Warn("Offering streams of an item the extractor reported an error for",
				zap.Int("index", item.Index), zap.String("title", item.Title), zap.String("err", item.Err))
		}
		stream, err := f.askStream(ctx, item)
		if err != nil {
			return nil, err
		}
		log.Debug("Stream selected", zap.Int("index", item.Index), zap.String("stream_id", stream.ID))
		jobs = append(jobs, model.SelectedJob{Stream: stream, Title: item.Title})
	}

	threads, err := f.prompter.Text(ctx, threadsLabel, f.defaultThreads)
	if err != nil {
		return nil, fmt.Errorf("failed to read thread count: %w", err)
	}
	if strings.TrimSpace(threads) == "" {
		threads = f.defaultThreads
	}

	question := fmt.Sprintf("Download %d videos with a total size of %d MB?", len(jobs), model.TotalSizeMB(jobs))
	ok, err := f.prompter.Confirm(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		return nil, ErrCancelled
	}

	return &model.Plan{
		Source:  source,
		Threads: threads,
		Jobs:    jobs,
	}, nil
}

// checkItems makes sure job i can be fetched as item i+1: items must be in
// extractor order and each must offer a stream.
func checkItems(items []*model.SourceItem) error {
	for i, item := range items {
		if item.Index != i {
			return fmt.Errorf("source item %q is at position %d but has index %d", item.Title, i, item.Index)
		}
		if !item.HasStreams() {
			return &UnavailableError{Index: item.Index, Title: item.Title, Err: item.Err}
		}
	}
	return nil
}

func (f *Flow) askSource(ctx context.Context) (string, error) {
	if source := strings.TrimSpace(f.Source); source != "" {
		return source, nil
	}

	for {
		source, err := f.prompter.Text(ctx, sourceLabel, "")
		if err != nil {
			return "", fmt.Errorf("failed to read URL: %w", err)
		}
		if source = strings.TrimSpace(source); source != "" {
			return source, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
}

func (f *Flow) askStream(ctx context.Context, item *model.SourceItem) (*model.Stream, error) {
	options := make([]string, len(item.Streams))
	for i, s := range item.Streams {
		options[i] = s.String()
	}

	idx, err := f.prompter.Select(ctx, fmt.Sprintf("Select a stream for: %q", item.Title), options)
	if err != nil {
		return nil, fmt.Errorf("failed to select stream for %q: %w", item.Title, err)
	}
	if idx < 0 || idx >= len(item.Streams) {
		return nil, fmt.Errorf("invalid stream choice %d for %q", idx, item.Title)
	}

	return item.Streams[idx], nil
}
