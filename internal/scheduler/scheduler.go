// Package scheduler provides a cancellable repeating task, replacing ad hoc
// interval handles so teardown on session end or view unmount is guaranteed.
package scheduler

import (
	"context"
	"time"
)

// Repeat invokes fn every interval until ctx is cancelled. The first
// invocation happens one interval after the call. Once ctx is done, fn is
// never invoked again; a tick racing the cancellation is dropped.
func Repeat(ctx context.Context, interval time.Duration, fn func(now time.Time)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			// Recheck so a tick queued alongside cancellation never fires.
			select {
			case <-ctx.Done():
				return
			default:
			}
			fn(now)
		}
	}
}

// Go runs Repeat on its own goroutine and returns a stop function that
// cancels it and a done channel that closes once the loop has exited.
func Go(parent context.Context, interval time.Duration, fn func(now time.Time)) (stop func(), done <-chan struct{}) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		Repeat(ctx, interval, fn)
	}()
	return cancel, ch
}
