package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_Fallback(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	FromContext(context.Background()).Info("hello")

	if logs.Len() != 1 {
		t.Fatalf("got %d log entries, want 1", logs.Len())
	}
}

func TestNewContext_CarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	ctx := NewContext(context.Background(), zap.String("run_id", "abc"))
	FromContext(ctx).Info("job started", zap.Int("item", 1))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["run_id"] != "abc" {
		t.Errorf("run_id = %v, want %q", fields["run_id"], "abc")
	}
	if fields["item"] != int64(1) {
		t.Errorf("item = %v (%T), want 1", fields["item"], fields["item"])
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"loud", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l, err := New(tt.level, "")
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if l == nil {
				t.Fatal("New() returned nil logger")
			}
		})
	}
}
