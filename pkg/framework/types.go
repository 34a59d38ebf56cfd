package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Event is delivered from background runners (transports, sensors)
// into the tick. Events are opaque to the loop.
type Event interface{}

// EventPoster accepts events from any goroutine.
type EventPoster interface {
	// PostEvent enqueues the event for the next tick.
	PostEvent(Event)
}

// LoopControl exposes access to the ticking loop.
type LoopControl interface {
	EventPoster
	// TriggerNext schedules an extra tick immediately.
	TriggerNext()
}

// TimeSource provides the time for ticking logic.
type TimeSource interface {
	Time() time.Time
}

// TickContext provides the context of the current tick.
type TickContext interface {
	TimeSource
	// Context retrieves context.Context.
	Context() context.Context
	// Events returns the events collected when this tick started,
	// in the order they were posted.
	Events() []Event

	LoopControl
}

// Ticker is called once per tick.
type Ticker interface {
	Tick(TickContext) error
}

// TickFunc is the func form of Ticker.
type TickFunc func(TickContext) error

// Tick implements Ticker.
func (f TickFunc) Tick(tc TickContext) error {
	return f(tc)
}
