package download

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// DefaultQueueSize is the capacity of a Channel created with size <= 0.
const DefaultQueueSize = 100

// ErrChannelClosed is returned by Send when the consumer has gone away or
// the channel was closed, and by Receive once a closed channel is drained.
var ErrChannelClosed = errors.New("download: channel closed")

// Channel is a bounded FIFO of Messages with one producer and one consumer.
//
// The producer calls Send and finally Close. The consumer calls Receive and,
// when it stops reading, Detach, which makes blocked and later sends fail
// with ErrChannelClosed instead of waiting forever.
type Channel struct {
	ch       chan Message
	detached chan struct{}

	closed     atomic.Bool
	closeOnce  sync.Once
	detachOnce sync.Once
}

// NewChannel creates a Channel holding up to size messages.
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Channel{
		ch:       make(chan Message, size),
		detached: make(chan struct{}),
	}
}

// Cap returns the capacity of the channel.
func (c *Channel) Cap() int {
	return cap(c.ch)
}

// Send enqueues msg, blocking while the channel is full.
func (c *Channel) Send(ctx context.Context, msg Message) error {
	if c.closed.Load() {
		return ErrChannelClosed
	}
	select {
	case <-c.detached:
		return ErrChannelClosed
	default:
	}

	select {
	case c.ch <- msg:
		return nil
	case <-c.detached:
		return ErrChannelClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive dequeues the next message, blocking until one is available.
// It returns ErrChannelClosed when the channel is closed and empty.
func (c *Channel) Receive(ctx context.Context) (Message, error) {
	select {
	case msg, ok := <-c.ch:
		if !ok {
			return Message{}, ErrChannelClosed
		}
		return msg, nil
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

// Close marks the end of production. Buffered messages can still be
// received. Only the producer may call Close; it is safe to call twice.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.ch)
	})
}

// Detach signals that the consumer stopped reading.
func (c *Channel) Detach() {
	c.detachOnce.Do(func() {
		close(c.detached)
	})
}
