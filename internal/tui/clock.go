package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iammorganparry/focus/internal/session"
)

// tickMsg is delivered by the tea.Tick scheduled for a clock handle.
type tickMsg struct {
	handle session.Handle
}

// Clock is a session.Clock whose ticks travel through the bubbletea message
// loop, so the engine only ever runs inside Update. Start queues a tea.Tick
// command that the model collects with drain.
type Clock struct {
	next    session.Handle
	active  map[session.Handle]clockEntry
	pending []tea.Cmd
}

type clockEntry struct {
	period time.Duration
	fn     func()
}

func NewClock() *Clock {
	return &Clock{active: map[session.Handle]clockEntry{}}
}

func (c *Clock) Start(period time.Duration, fn func()) session.Handle {
	c.next++
	h := c.next
	c.active[h] = clockEntry{period: period, fn: fn}
	c.pending = append(c.pending, tickCmd(h, period))
	return h
}

func (c *Clock) Cancel(h session.Handle) {
	delete(c.active, h)
}

// fire runs the callback for h and schedules its next tick if h is still
// active afterwards. Ticks for cancelled handles are dropped.
func (c *Clock) fire(h session.Handle) bool {
	entry, ok := c.active[h]
	if !ok {
		return false
	}
	entry.fn()
	if _, still := c.active[h]; still {
		c.pending = append(c.pending, tickCmd(h, entry.period))
	}
	return true
}

// drain returns the tick commands queued since the last call.
func (c *Clock) drain() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}

func tickCmd(h session.Handle, period time.Duration) tea.Cmd {
	return tea.Tick(period, func(time.Time) tea.Msg {
		return tickMsg{handle: h}
	})
}
