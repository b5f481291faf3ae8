// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package blinky_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/blinky"
	"golang.org/x/sys/unix"
)

// virtualClock advances time on each Sleep and cancels once the limit, or
// the number of sleeps, is reached.
type virtualClock struct {
	now       time.Duration
	limit     time.Duration
	maxSleeps int
	sleeps    []time.Duration
	cancel    context.CancelFunc
}

func newVirtualClock(ctx context.Context) (*virtualClock, context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	return &virtualClock{cancel: cancel}, ctx
}

func (c *virtualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now += d
	if (c.limit > 0 && c.now >= c.limit) ||
		(c.maxSleeps > 0 && len(c.sleeps) >= c.maxSleeps) {
		c.cancel()
		return ctx.Err()
	}
	return nil
}

type ledCall struct {
	on      bool
	channel int
	at      time.Duration
}

type fakeController struct {
	clock *virtualClock
	calls []ledCall
	err   error
}

func (c *fakeController) On(channel int) error {
	c.calls = append(c.calls, ledCall{true, channel, c.clock.now})
	return c.err
}

func (c *fakeController) Off(channel int) error {
	c.calls = append(c.calls, ledCall{false, channel, c.clock.now})
	return c.err
}

type fakePin struct {
	readyErr     error
	configureErr error
	toggleErr    error
	failAfter    int

	configured bool
	level      bool
	configures int
	levels     []bool
}

func (p *fakePin) Ready() error {
	return p.readyErr
}

func (p *fakePin) ConfigureOutput(active bool) error {
	p.configures++
	if p.configureErr != nil {
		return p.configureErr
	}
	p.configured = true
	p.level = active
	return nil
}

func (p *fakePin) Toggle() error {
	if p.toggleErr != nil && len(p.levels) >= p.failAfter {
		return p.toggleErr
	}
	p.levels = append(p.levels, p.level)
	p.level = !p.level
	return nil
}

func TestPinBlinkerToggles(t *testing.T) {
	clk, ctx := newVirtualClock(context.Background())
	clk.maxSleeps = 5
	pin := fakePin{}
	b := blinky.NewPinBlinker(&pin, blinky.WithSleeper(clk))
	err := b.Blink(ctx)
	assert.Nil(t, err)
	assert.True(t, pin.configured)
	assert.Equal(t, 1, pin.configures)
	require.Len(t, pin.levels, 5)
	assert.Equal(t, []bool{true, false, true, false, true}, pin.levels)
	for _, d := range clk.sleeps {
		assert.Equal(t, 1000*time.Millisecond, d)
	}
}

func TestPinBlinkerDoubleToggle(t *testing.T) {
	clk, ctx := newVirtualClock(context.Background())
	clk.maxSleeps = 2
	pin := fakePin{}
	err := blinky.NewPinBlinker(&pin, blinky.WithSleeper(clk)).Blink(ctx)
	assert.Nil(t, err)
	assert.True(t, pin.level)
}

func TestPinBlinkerNotReady(t *testing.T) {
	clk, ctx := newVirtualClock(context.Background())
	pin := fakePin{readyErr: unix.ENODEV}
	var events []blinky.Event
	b := blinky.NewPinBlinker(&pin,
		blinky.WithSleeper(clk),
		blinky.WithObserver(func(evt blinky.Event) { events = append(events, evt) }))
	err := b.Blink(ctx)
	assert.ErrorIs(t, err, blinky.ErrNotReady)
	assert.ErrorIs(t, err, unix.ENODEV)
	assert.Zero(t, pin.configures)
	assert.Empty(t, pin.levels)
	assert.Empty(t, clk.sleeps)
	require.Len(t, events, 1)
	assert.Equal(t, blinky.EventReady, events[0].Kind)
}

func TestPinBlinkerConfigureFail(t *testing.T) {
	clk, ctx := newVirtualClock(context.Background())
	pin := fakePin{configureErr: unix.EBUSY}
	err := blinky.NewPinBlinker(&pin, blinky.WithSleeper(clk)).Blink(ctx)
	assert.ErrorIs(t, err, blinky.ErrConfigure)
	assert.ErrorIs(t, err, unix.EBUSY)
	assert.Equal(t, 1, pin.configures)
	assert.Empty(t, pin.levels)
	assert.Empty(t, clk.sleeps)
}

func TestPinBlinkerToggleFail(t *testing.T) {
	clk, ctx := newVirtualClock(context.Background())
	clk.maxSleeps = 10
	pin := fakePin{toggleErr: unix.EIO, failAfter: 3}
	var toggles []blinky.Event
	b := blinky.NewPinBlinker(&pin,
		blinky.WithSleeper(clk),
		blinky.WithObserver(func(evt blinky.Event) {
			if evt.Kind == blinky.EventToggle {
				toggles = append(toggles, evt)
			}
		}))
	err := b.Blink(ctx)
	assert.ErrorIs(t, err, blinky.ErrToggle)
	assert.ErrorIs(t, err, unix.EIO)
	assert.Len(t, pin.levels, 3)
	// no sleep after the failed toggle
	assert.Len(t, clk.sleeps, 3)
	require.Len(t, toggles, 4)
	assert.Equal(t, 3, toggles[3].Toggles)
	assert.NotNil(t, toggles[3].Err)
}

func TestPinBlinkerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pin := fakePin{}
	err := blinky.NewPinBlinker(&pin).Blink(ctx)
	assert.Nil(t, err)
	// init runs regardless, the loop does not
	assert.True(t, pin.configured)
	assert.Empty(t, pin.levels)
}

func TestPinBlinkerPeriod(t *testing.T) {
	period := 20 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stamps []time.Time
	pin := fakePin{}
	b := blinky.NewPinBlinker(&pin,
		blinky.WithPeriod(period),
		blinky.WithObserver(func(evt blinky.Event) {
			if evt.Kind != blinky.EventToggle {
				return
			}
			stamps = append(stamps, time.Now())
			if len(stamps) == 4 {
				cancel()
			}
		}))
	err := b.Blink(ctx)
	assert.Nil(t, err)
	require.Len(t, stamps, 4)
	for i := 1; i < len(stamps); i++ {
		gap := stamps[i].Sub(stamps[i-1])
		assert.True(t, gap >= period, "gap %s shorter than period", gap)
	}
}

func TestLEDBlinkerCycle(t *testing.T) {
	clk, ctx := newVirtualClock(context.Background())
	clk.maxSleeps = 6
	ctrl := fakeController{clock: clk}
	b := blinky.NewLEDBlinker(&ctrl, blinky.WithSleeper(clk))
	assert.Equal(t, blinky.DefaultChannel, b.Channel())
	err := b.Blink(ctx)
	assert.Nil(t, err)
	require.Len(t, ctrl.calls, 6)
	for i, c := range ctrl.calls {
		assert.Equal(t, i%2 == 0, c.on)
		assert.Equal(t, 2, c.channel)
		assert.Equal(t, time.Duration(i)*time.Second, c.at)
	}
	assert.Len(t, clk.sleeps, 6)
	for _, d := range clk.sleeps {
		assert.Equal(t, time.Second, d)
	}
}

func TestLEDBlinkerThreeSeconds(t *testing.T) {
	clk, ctx := newVirtualClock(context.Background())
	clk.limit = 3 * time.Second
	ctrl := fakeController{clock: clk}
	err := blinky.NewLEDBlinker(&ctrl, blinky.WithSleeper(clk)).Blink(ctx)
	assert.Nil(t, err)
	ons, offs := 0, 0
	for _, c := range ctrl.calls {
		if c.on {
			ons++
		} else {
			offs++
		}
	}
	pairs := offs
	if ons < offs {
		pairs = ons
	}
	assert.GreaterOrEqual(t, pairs, 1)
	assert.LessOrEqual(t, pairs, 2)
	assert.Contains(t, []int{0, 1}, ons-offs)
}

func TestLEDBlinkerIgnoresErrors(t *testing.T) {
	clk, ctx := newVirtualClock(context.Background())
	clk.maxSleeps = 4
	ctrl := fakeController{clock: clk, err: errors.New("i2c nak")}
	var failed int
	b := blinky.NewLEDBlinker(&ctrl,
		blinky.WithSleeper(clk),
		blinky.WithChannel(1),
		blinky.WithObserver(func(evt blinky.Event) {
			if evt.Err != nil {
				failed++
			}
		}))
	err := b.Blink(ctx)
	assert.Nil(t, err)
	assert.Len(t, ctrl.calls, 4)
	assert.Equal(t, 4, failed)
	for _, c := range ctrl.calls {
		assert.Equal(t, 1, c.channel)
	}
}

func TestLEDBlinkerLogsSample(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctrl := fakeController{clock: &virtualClock{}}
	err := blinky.NewLEDBlinker(&ctrl, blinky.WithLogger(logger)).Blink(ctx)
	assert.Nil(t, err)
	assert.Contains(t, buf.String(), "Blinky Sample")
	assert.Empty(t, ctrl.calls)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "toggle", blinky.EventToggle.String())
	assert.Equal(t, "on", blinky.EventOn.String())
	assert.Equal(t, "unknown", blinky.EventKind(0).String())
}

func TestWithPeriod(t *testing.T) {
	patterns := []struct {
		name   string
		period time.Duration
		sleep  time.Duration
	}{
		{"default", 0, time.Second},
		{"negative", -time.Second, time.Second},
		{"fast", 250 * time.Millisecond, 250 * time.Millisecond},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			clk, ctx := newVirtualClock(context.Background())
			clk.maxSleeps = 2
			pin := fakePin{}
			opts := []blinky.Option{blinky.WithSleeper(clk)}
			if p.period != 0 {
				opts = append(opts, blinky.WithPeriod(p.period))
			}
			err := blinky.NewPinBlinker(&pin, opts...).Blink(ctx)
			assert.Nil(t, err)
			assert.Equal(t, []time.Duration{p.sleep, p.sleep}, clk.sleeps)
		}
		t.Run(p.name, tf)
	}
}

func TestTimerSleeper(t *testing.T) {
	s := blinky.TimerSleeper{}
	start := time.Now()
	err := s.Sleep(context.Background(), 10*time.Millisecond)
	assert.Nil(t, err)
	assert.True(t, time.Since(start) >= 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start = time.Now()
	err = s.Sleep(ctx, time.Hour)
	assert.Equal(t, context.Canceled, err)
	assert.True(t, time.Since(start) < time.Second)
}
