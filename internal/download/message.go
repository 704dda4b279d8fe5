package download

import "fmt"

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// Kind tells a regular status line apart from the end-of-stream marker.
type Kind int

const (
	// KindProgress is a human-readable status line.
	KindProgress Kind = iota

	// KindComplete marks that no further messages will be sent.
	KindComplete
)

// Message is one value carried from the Driver to the Sink.
type Message struct {
	Kind  Kind
	Text  string
	Level ProgressLevel
}

// Progress returns a status line message.
func Progress(level ProgressLevel, format string, args ...any) Message {
	return Message{Kind: KindProgress, Text: fmt.Sprintf(format, args...), Level: level}
}

// Complete returns the end-of-stream message.
func Complete() Message {
	return Message{Kind: KindComplete}
}

// IsComplete returns true for the end-of-stream message.
func (m Message) IsComplete() bool {
	return m.Kind == KindComplete
}
