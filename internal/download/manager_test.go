package download

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/handiism/lux-downloader/internal/config"
	"github.com/handiism/lux-downloader/internal/logging"
	"github.com/handiism/lux-downloader/internal/model"
	"github.com/handiism/lux-downloader/internal/runner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestManager_StartDownloads(t *testing.T) {
	f := &fakeFetcher{outcomes: map[string]fetchOutcome{
		"id2": {res: &runner.Result{ExitCode: 1, Stderr: []byte("403 Forbidden")}},
	}}

	var buf bytes.Buffer
	m := NewManager(config.DefaultSettings(), f, NewTextConsole(&buf))

	plan := &model.Plan{
		Source:  "BV1xx411c7mD",
		Threads: "4",
		Jobs:    jobs("id1", "Video A", "id2", "Video B"),
	}
	if err := m.StartDownloads(context.Background(), plan); err != nil {
		t.Fatalf("StartDownloads() error: %v", err)
	}

	want := strings.Join([]string{
		`Downloading 1 of 2: "Video A"`,
		`Download completed for video 1: "Video A"`,
		`Downloading 2 of 2: "Video B"`,
		`Download failed for video 2: "Video B": 403 Forbidden`,
	}, "\n") + "\n" + Banner

	if buf.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", buf.String(), want)
	}

	completed, failed, total := m.GetProgress()
	if completed != 1 || failed != 1 || total != 2 {
		t.Errorf("GetProgress() = %d, %d, %d; want 1, 1, 2", completed, failed, total)
	}
}

func TestManager_NoJobs(t *testing.T) {
	var buf bytes.Buffer
	f := &fakeFetcher{}
	m := NewManager(config.DefaultSettings(), f, NewTextConsole(&buf))

	if err := m.StartDownloads(context.Background(), &model.Plan{Source: "x", Threads: "4"}); err != nil {
		t.Fatalf("StartDownloads() error: %v", err)
	}

	if buf.String() != Banner {
		t.Errorf("output = %q, want only the banner", buf.String())
	}
	if len(f.requests) != 0 {
		t.Errorf("got %d fetches, want 0", len(f.requests))
	}
}

func TestManager_SmallQueue(t *testing.T) {
	settings := config.DefaultSettings()
	settings.QueueSize = 1

	var js []model.SelectedJob
	for i := 0; i < 50; i++ {
		js = append(js, model.SelectedJob{Stream: &model.Stream{ID: "s"}, Title: "t"})
	}

	console := &recordingConsole{}
	m := NewManager(settings, &fakeFetcher{}, console)
	if err := m.StartDownloads(context.Background(), &model.Plan{Source: "x", Threads: "1", Jobs: js}); err != nil {
		t.Fatalf("StartDownloads() error: %v", err)
	}

	if len(console.printed) != 100 || console.finished != 1 {
		t.Errorf("printed %d lines, finished %d; want 100, 1", len(console.printed), console.finished)
	}
}

func TestManager_LogsEffectiveQueueSize(t *testing.T) {
	tests := []struct {
		name      string
		queueSize int
		want      int64
	}{
		{"configured", 8, 8},
		{"non-positive falls back", 0, DefaultQueueSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			logging.SetLogger(zap.New(core))
			defer logging.SetLogger(nil)

			settings := config.DefaultSettings()
			settings.QueueSize = tt.queueSize
			m := NewManager(settings, &fakeFetcher{}, NewTextConsole(&bytes.Buffer{}))

			plan := &model.Plan{Source: "BV1", Threads: "4"}
			if err := m.StartDownloads(context.Background(), plan); err != nil {
				t.Fatalf("StartDownloads() error: %v", err)
			}

			started := logs.FilterMessage("Starting downloads").All()
			if len(started) != 1 {
				t.Fatalf("got %d start entries, want 1", len(started))
			}
			if got := started[0].ContextMap()["queue_size"]; got != tt.want {
				t.Errorf("queue_size = %v, want %d", got, tt.want)
			}
		})
	}
}
