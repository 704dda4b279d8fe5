package download

import (
	"context"
	"errors"
)

// Console is where the Sink renders messages. A Sink is its only writer.
type Console interface {
	// Print renders one status line.
	Print(msg Message)

	// Finish renders the completion banner.
	Finish()
}

// Sink prints messages from a Channel until the Complete message arrives.
type Sink struct {
	in      *Channel
	console Console
}

// NewSink creates a Sink reading from in.
func NewSink(in *Channel, console Console) *Sink {
	return &Sink{
		in:      in,
		console: console,
	}
}

// Run consumes messages until Complete or until the channel is closed.
//
// On Complete the banner is printed and Run returns at once. A channel
// closed without Complete ends Run silently. Either way the channel is
// detached so the producer never blocks on a reader that is gone.
func (s *Sink) Run(ctx context.Context) error {
	defer s.in.Detach()

	for {
		msg, err := s.in.Receive(ctx)
		if err != nil {
			if errors.Is(err, ErrChannelClosed) {
				return nil
			}
			return err
		}

		if msg.IsComplete() {
			s.console.Finish()
			return nil
		}
		s.console.Print(msg)
	}
}
