package state

import (
	"sync"
	"time"
)

// Handle is a live periodic callback. Stop is idempotent.
type Handle interface {
	Stop()
}

// TickSource schedules fn to run every d until the returned Handle is
// stopped.
type TickSource interface {
	Every(d time.Duration, fn func()) Handle
}

// RealTicks is a TickSource backed by time.Ticker.
type RealTicks struct{}

type tickerHandle struct {
	done chan struct{}
	once sync.Once
}

func (h *tickerHandle) Stop() {
	h.once.Do(func() {
		close(h.done)
	})
}

// Every starts a goroutine that calls fn once per interval. Stopping the
// handle does not wait for an in-flight fn to return.
func (RealTicks) Every(d time.Duration, fn func()) Handle {
	h := &tickerHandle{
		done: make(chan struct{}),
	}

	ticker := time.NewTicker(d)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-h.done:
				return
			case <-ticker.C:
				select {
				case <-h.done:
					return
				default:
				}

				fn()
			}
		}
	}()

	return h
}
