package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/okhv/focal/internal/scheduler"
)

func TestRepeatFires(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var fired atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		scheduler.Repeat(ctx, 10*time.Millisecond, func(time.Time) {
			fired.Add(1)
		})
	}()

	assert.Eventually(t, func() bool { return fired.Load() >= 3 },
		time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestRepeatStopsOnCancel(t *testing.T) {
	var fired atomic.Int32
	stop, done := scheduler.Go(context.Background(), 10*time.Millisecond, func(time.Time) {
		fired.Add(1)
	})

	assert.Eventually(t, func() bool { return fired.Load() >= 1 },
		time.Second, 5*time.Millisecond)

	stop()
	<-done

	// No fire may happen after cancellation.
	observed := fired.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, observed, fired.Load())
}

func TestGoStopIsIdempotent(t *testing.T) {
	stop, done := scheduler.Go(context.Background(), time.Millisecond, func(time.Time) {})
	stop()
	stop()
	<-done
}
