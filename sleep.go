// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package blinky

import (
	"context"
	"time"
)

// Sleeper blocks the calling goroutine for a period.
//
// Sleep returns ctx.Err() if ctx is done before the period elapses.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper sleeps using a runtime timer.
type TimerSleeper struct{}

// Sleep parks the goroutine until d has elapsed or ctx is done.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
