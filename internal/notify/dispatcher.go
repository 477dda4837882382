// Package notify delivers alerts to the user through any number of channels.
// Delivery is best-effort: a failing or slow channel never affects the others
// and never surfaces an error to the caller.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Notification is what a channel delivers. Title and Message are always set;
// the remaining fields are filled in for budget alerts.
type Notification struct {
	Title    string
	Message  string
	Category string
	Tier     string
	Amount   string
}

// Channel is one delivery mechanism.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, n Notification) error
}

// DispatchError records one channel's failure. It is logged, never returned.
type DispatchError struct {
	Channel string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("channel %s: %v", e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// DefaultTimeout bounds a single channel's delivery.
const DefaultTimeout = 5 * time.Second

// Dispatcher fans a notification out to its channels.
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	log      *slog.Logger

	// OnError, if set, observes every channel failure after it is logged.
	// It may be called from several goroutines at once.
	OnError func(*DispatchError)
}

// NewDispatcher returns a dispatcher over channels. A non-positive timeout
// uses DefaultTimeout.
func NewDispatcher(timeout time.Duration, channels ...Channel) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		channels: channels,
		timeout:  timeout,
		log:      slog.Default().With("component", "notify"),
	}
}

// Channels returns the names of the configured channels.
func (d *Dispatcher) Channels() []string {
	names := make([]string, len(d.channels))
	for i, c := range d.channels {
		names[i] = c.Name()
	}
	return names
}

// Dispatch delivers title and message to every channel.
func (d *Dispatcher) Dispatch(ctx context.Context, title, message string) {
	d.Send(ctx, Notification{Title: title, Message: message})
}

// Send delivers n to every channel concurrently and returns once each has
// finished or hit its timeout.
func (d *Dispatcher) Send(ctx context.Context, n Notification) {
	var g errgroup.Group
	for _, ch := range d.channels {
		g.Go(func() error {
			if err := d.deliver(ctx, ch, n); err != nil {
				de := &DispatchError{Channel: ch.Name(), Err: err}
				d.log.Warn("delivery failed", "channel", de.Channel, "error", de.Err)
				if d.OnError != nil {
					d.OnError(de)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, ch Channel, n Notification) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("panic: %v", r)
			}
		}()
		done <- ch.Deliver(ctx, n)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
