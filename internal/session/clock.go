package session

import "time"

// Handle identifies one started tick source. The zero Handle means none.
type Handle uint64

// Clock schedules a repeating callback.
type Clock interface {
	// Start calls fn every period until the returned handle is cancelled.
	Start(period time.Duration, fn func()) Handle

	// Cancel stops the tick source. Cancelling an unknown handle is a no-op.
	Cancel(h Handle)
}

// ManualClock is a Clock that only ticks when told to. Cancelled callbacks
// are kept so tests can replay a tick that was already in flight.
type ManualClock struct {
	next      Handle
	active    map[Handle]func()
	callbacks map[Handle]func()
	Started   int
	Cancelled int
}

func NewManualClock() *ManualClock {
	return &ManualClock{
		active:    make(map[Handle]func()),
		callbacks: make(map[Handle]func()),
	}
}

func (c *ManualClock) Start(_ time.Duration, fn func()) Handle {
	c.next++
	c.active[c.next] = fn
	c.callbacks[c.next] = fn
	c.Started++
	return c.next
}

func (c *ManualClock) Cancel(h Handle) {
	if _, ok := c.active[h]; !ok {
		return
	}
	delete(c.active, h)
	c.Cancelled++
}

// Advance delivers n ticks to every active callback.
func (c *ManualClock) Advance(n int) {
	for i := 0; i < n; i++ {
		last := c.next
		for h := Handle(1); h <= last; h++ {
			if fn, ok := c.active[h]; ok {
				fn()
			}
		}
	}
}

// Fire invokes the callback registered under h even if it was cancelled.
func (c *ManualClock) Fire(h Handle) {
	if fn, ok := c.callbacks[h]; ok {
		fn()
	}
}

// Active returns the number of live tick sources.
func (c *ManualClock) Active() int { return len(c.active) }

// Last returns the most recently started handle.
func (c *ManualClock) Last() Handle { return c.next }

// Dispatcher runs fn on the goroutine that owns the engine.
type Dispatcher func(fn func())

// TickerClock ticks from a time.Ticker goroutine per handle and hands every
// tick to a Dispatcher. Start and Cancel must be called from the dispatching
// goroutine.
type TickerClock struct {
	dispatch Dispatcher
	next     Handle
	stops    map[Handle]chan struct{}
}

func NewTickerClock(dispatch Dispatcher) *TickerClock {
	return &TickerClock{
		dispatch: dispatch,
		stops:    make(map[Handle]chan struct{}),
	}
}

func (c *TickerClock) Start(period time.Duration, fn func()) Handle {
	c.next++
	done := make(chan struct{})
	c.stops[c.next] = done

	ticker := time.NewTicker(period)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				c.dispatch(fn)
			}
		}
	}()
	return c.next
}

func (c *TickerClock) Cancel(h Handle) {
	if done, ok := c.stops[h]; ok {
		close(done)
		delete(c.stops, h)
	}
}

// Close cancels every live tick source.
func (c *TickerClock) Close() {
	for h := range c.stops {
		c.Cancel(h)
	}
}
