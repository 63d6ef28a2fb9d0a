// Package statetest provides a manually driven tick source for testing code
// built on the state package
package statetest

import (
	"sync"
	"time"

	"github.com/ayoisaiah/focustodo/internal/state"
)

type handle struct {
	fn      func()
	stopped bool
}

// Ticker is a state.TickSource that only fires when told to.
type Ticker struct {
	handles []*handle
	mu      sync.Mutex
}

// NewTicker returns an idle manual ticker.
func NewTicker() *Ticker {
	return &Ticker{}
}

type tickerHandle struct {
	t *Ticker
	h *handle
}

func (th tickerHandle) Stop() {
	th.t.mu.Lock()
	defer th.t.mu.Unlock()

	th.h.stopped = true
}

// Every records fn. The interval is ignored.
func (t *Ticker) Every(_ time.Duration, fn func()) state.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := &handle{fn: fn}
	t.handles = append(t.handles, h)

	return tickerHandle{t: t, h: h}
}

func (t *Ticker) collect(includeStopped bool) []func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	var fns []func()

	for _, h := range t.handles {
		if includeStopped || !h.stopped {
			fns = append(fns, h.fn)
		}
	}

	return fns
}

// Tick fires every live handle once.
func (t *Ticker) Tick() {
	for _, fn := range t.collect(false) {
		fn()
	}
}

// TickN calls Tick n times.
func (t *Ticker) TickN(n int) {
	for range n {
		t.Tick()
	}
}

// TickOrphans fires every handle ever created, including stopped ones, to
// simulate callbacks that arrive after cancellation.
func (t *Ticker) TickOrphans() {
	for _, fn := range t.collect(true) {
		fn()
	}
}

// Active returns the number of handles that have not been stopped.
func (t *Ticker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	var n int

	for _, h := range t.handles {
		if !h.stopped {
			n++
		}
	}

	return n
}

// Created returns the number of handles created so far.
func (t *Ticker) Created() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.handles)
}
