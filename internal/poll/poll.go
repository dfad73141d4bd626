// Package poll repeats scans until the query matches something.
package poll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shazow/wifiseek/wifi"
)

// DefaultDelay is the pause between polls when Controller.Delay is unset.
const DefaultDelay = time.Second

// State is a step of the retry state machine.
type State int

const (
	StateScanning State = iota
	StateEvaluating
	StateWaiting

	// Terminal states.
	StateMatched
	StateNoMatch
	StateScanError
	StateExhausted
	StateCanceled
)

func (s State) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateEvaluating:
		return "evaluating"
	case StateWaiting:
		return "waiting"
	case StateMatched:
		return "matched"
	case StateNoMatch:
		return "no-match"
	case StateScanError:
		return "scan-error"
	case StateExhausted:
		return "exhausted"
	case StateCanceled:
		return "canceled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Done reports whether s is terminal.
func (s State) Done() bool {
	return s >= StateMatched
}

// Sink receives the final result set of a successful poll.
type Sink interface {
	Emit(ctx context.Context, q wifi.Query, networks []wifi.Network) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, q wifi.Query, networks []wifi.Network) error

// Emit calls f.
func (f SinkFunc) Emit(ctx context.Context, q wifi.Query, networks []wifi.Network) error {
	return f(ctx, q, networks)
}

// Event is sent to the Controller's Observer on every transition.
type Event struct {
	State   State
	Attempt int // 1-based number of the scan this event belongs to
	Scanned int // records returned by the scanner
	Matched int // records left after filtering
	Delay   time.Duration
	Err     error
}

// Result is the terminal outcome of Controller.Run.
type Result struct {
	State    State
	Networks []wifi.Network
	Scans    int
	Err      error
	SinkErrs []error
}

// Controller scans, filters and optionally retries until something
// matches. A Controller is not safe for concurrent use; each Run owns its
// own attempt counter.
type Controller struct {
	Scanner   wifi.Scanner
	Interface string
	Query     wifi.Query

	// Retry enables polling again after an empty result.
	Retry bool
	// Delay between polls, DefaultDelay if zero.
	Delay time.Duration
	// MaxAttempts bounds the number of scans while retrying. Zero means
	// no bound.
	MaxAttempts int

	Sinks    []Sink
	Observer func(Event)
	Logger   *slog.Logger

	// Sleep waits for d or until ctx is done. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Run drives the state machine to a terminal state. Scan errors end the
// run immediately, only empty results are retried.
func (c *Controller) Run(ctx context.Context) Result {
	logger := c.logger()
	delay := c.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}
	sleep := c.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var scans int
	for {
		if err := ctx.Err(); err != nil {
			return c.finish(Event{State: StateCanceled, Attempt: scans, Err: err}, Result{Scans: scans, Err: err})
		}

		scans++
		c.notify(Event{State: StateScanning, Attempt: scans})
		logger.Debug("scanning", "interface", c.Interface, "attempt", scans)

		networks, err := c.Scanner.Scan(ctx, c.Interface)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return c.finish(Event{State: StateCanceled, Attempt: scans, Err: ctxErr}, Result{Scans: scans, Err: ctxErr})
			}
			logger.Error("scan failed", "interface", c.Interface, "query", c.Query.String(), "error", err)
			return c.finish(Event{State: StateScanError, Attempt: scans, Err: err}, Result{Scans: scans, Err: err})
		}

		matched := wifi.Apply(c.Query, networks)
		c.notify(Event{State: StateEvaluating, Attempt: scans, Scanned: len(networks), Matched: len(matched)})
		logger.Debug("evaluated scan", "attempt", scans, "scanned", len(networks), "matched", len(matched), "query", c.Query.String())

		if len(matched) > 0 {
			if err := ctx.Err(); err != nil {
				return c.finish(Event{State: StateCanceled, Attempt: scans, Err: err}, Result{Scans: scans, Err: err})
			}
			res := Result{State: StateMatched, Networks: matched, Scans: scans}
			res.SinkErrs = c.emit(ctx, matched)
			return c.finish(Event{State: StateMatched, Attempt: scans, Scanned: len(networks), Matched: len(matched)}, res)
		}

		if !c.Retry {
			return c.finish(Event{State: StateNoMatch, Attempt: scans, Scanned: len(networks)}, Result{Networks: matched, Scans: scans})
		}
		if c.MaxAttempts > 0 && scans >= c.MaxAttempts {
			return c.finish(Event{State: StateExhausted, Attempt: scans, Scanned: len(networks)}, Result{Networks: matched, Scans: scans})
		}

		c.notify(Event{State: StateWaiting, Attempt: scans, Scanned: len(networks), Delay: delay})
		if err := sleep(ctx, delay); err != nil {
			return c.finish(Event{State: StateCanceled, Attempt: scans, Err: err}, Result{Scans: scans, Err: err})
		}
	}
}

func (c *Controller) finish(ev Event, res Result) Result {
	res.State = ev.State
	if res.Networks == nil {
		res.Networks = []wifi.Network{}
	}
	c.notify(ev)
	return res
}

func (c *Controller) emit(ctx context.Context, networks []wifi.Network) []error {
	var errs []error
	for _, sink := range c.Sinks {
		if err := sink.Emit(ctx, c.Query, networks); err != nil {
			c.logger().Warn("failed to emit results", "sink", fmt.Sprintf("%T", sink), "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

func (c *Controller) notify(ev Event) {
	if c.Observer != nil {
		c.Observer(ev)
	}
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Sleep blocks for d, returning early with the context's error if ctx is
// done first.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsFailure reports whether the result should be treated as a failed run
// by the caller. An empty result is not a failure.
func (r Result) IsFailure() bool {
	return r.State == StateScanError || r.State == StateCanceled
}

