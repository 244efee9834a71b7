package timebase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Action tells the Clock what to do with a tick.
type Action uint8

const (
	// ActionDrop ignores the tick.
	ActionDrop Action = iota
	// ActionCount increments the elapsed counter.
	ActionCount
	// ActionHold pins the elapsed counter at zero.
	ActionHold
)

// Handler decides the fate of every tick.
// OnTick runs on the tick path, so it must not block or perform I/O.
type Handler interface {
	OnTick() Action
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func() Action

// OnTick calls f.
func (f HandlerFunc) OnTick() Action {
	return f()
}

// ErrAlreadyRegistered is returned by Register when a handler is already set.
var ErrAlreadyRegistered = errors.New("tick handler already registered")

// handlerBox lets an interface value live in an atomic.Pointer.
type handlerBox struct {
	handler Handler
}

// Clock is a monotonically incrementing tick counter.
// All methods are safe to call from the tick goroutine and the main loop concurrently.
type Clock struct {
	// elapsed is the number of counted ticks since the last reset.
	elapsed atomic.Uint32
	// handler is set once by Register.
	handler atomic.Pointer[handlerBox]
}

// New returns a Clock with no handler registered.
func New() *Clock {
	return new(Clock)
}

// Register installs the tick handler. It succeeds exactly once.
func (c *Clock) Register(h Handler) error {
	if h == nil {
		return nil
	}

	if !c.handler.CompareAndSwap(nil, &handlerBox{handler: h}) {
		return ErrAlreadyRegistered
	}

	return nil
}

// Tick applies one period of the time base.
func (c *Clock) Tick() {
	box := c.handler.Load()
	if box == nil {
		return
	}

	switch box.handler.OnTick() {
	case ActionCount:
		c.elapsed.Add(1)
	case ActionHold:
		c.elapsed.Store(0)
	case ActionDrop:
	}
}

// Elapsed returns the current count.
func (c *Clock) Elapsed() uint32 {
	return c.elapsed.Load()
}

// Reset sets the count to zero.
func (c *Clock) Reset() {
	c.elapsed.Store(0)
}

// Run calls Tick once per period until ctx is done.
func (c *Clock) Run(ctx context.Context, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
