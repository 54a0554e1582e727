package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCheckCountsDownThenRejects(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))
	cfg := Config{MaxRequests: 5, Window: time.Minute}

	for want := 4; want >= 0; want-- {
		d := l.Check("10.0.0.1", cfg)
		require.True(t, d.Allowed)
		assert.Equal(t, want, d.Remaining)
		assert.Equal(t, 5, d.Limit)
		assert.Empty(t, d.Message)
	}

	d := l.Check("10.0.0.1", cfg)
	require.False(t, d.Allowed)
	assert.Zero(t, d.Remaining)
	assert.True(t, d.ResetAt.After(clock.Now()))
	assert.Equal(t, 60, d.RetryAfter(clock.Now()))
	assert.Contains(t, d.Message, "60 seconds")
}

func TestCheckResetsAfterWindow(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))
	cfg := Config{MaxRequests: 1, Window: time.Minute}

	require.True(t, l.Check("a", cfg).Allowed)
	require.False(t, l.Check("a", cfg).Allowed)

	// The window is inclusive of its reset instant.
	clock.Advance(time.Minute)
	require.False(t, l.Check("a", cfg).Allowed)

	clock.Advance(time.Millisecond)
	d := l.Check("a", cfg)
	require.True(t, d.Allowed)
	assert.Equal(t, clock.Now().Add(time.Minute), d.ResetAt)
}

func TestCheckRejectionKeepsResetTime(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))
	cfg := Config{MaxRequests: 1, Window: time.Minute}

	first := l.Check("a", cfg)
	clock.Advance(40 * time.Second)
	d := l.Check("a", cfg)

	require.False(t, d.Allowed)
	assert.Equal(t, first.ResetAt, d.ResetAt)
	assert.Equal(t, 20, d.RetryAfter(clock.Now()))
}

func TestCheckCustomMessage(t *testing.T) {
	l := New(WithClock(newFakeClock().Now))
	cfg := Config{MaxRequests: 1, Window: 90 * time.Second, Message: "Slow down."}

	l.Check("a", cfg)
	d := l.Check("a", cfg)
	assert.Equal(t, "Slow down. Retry in 90 seconds.", d.Message)
}

func TestSuffixSeparatesBudgets(t *testing.T) {
	l := New(WithClock(newFakeClock().Now))
	estimate := Config{MaxRequests: 1, Window: time.Minute, IdentifierSuffix: "estimate"}
	subscribe := Config{MaxRequests: 1, Window: time.Minute, IdentifierSuffix: "subscribe"}

	require.True(t, l.Check("a", estimate).Allowed)
	require.False(t, l.Check("a", estimate).Allowed)
	require.True(t, l.Check("a", subscribe).Allowed)
	require.True(t, l.Check("b", estimate).Allowed)
	assert.Equal(t, 3, l.Len())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "a", Key("a", ""))
	assert.Equal(t, "a:estimate", Key("a", "estimate"))
}

func TestInvalidConfigFailsOpen(t *testing.T) {
	l := New()
	for _, cfg := range []Config{
		{MaxRequests: 0, Window: time.Minute},
		{MaxRequests: 5, Window: 0},
		{MaxRequests: -1, Window: -time.Second},
	} {
		require.Error(t, cfg.Validate())
		for i := 0; i < 10; i++ {
			assert.True(t, l.Check("a", cfg).Allowed)
		}
	}
	assert.Zero(t, l.Len())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Config{MaxRequests: 1, Window: time.Second}.Validate())

	err := Config{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_requests")
	assert.Contains(t, err.Error(), "window")
}

func TestSweepRemovesExpired(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now))

	l.Check("short", Config{MaxRequests: 1, Window: time.Second})
	l.Check("long", Config{MaxRequests: 1, Window: time.Hour})
	require.Equal(t, 2, l.Len())

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
}

func TestCheckSweepsOpportunistically(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now), WithSweepInterval(time.Minute))
	cfg := Config{MaxRequests: 1, Window: time.Second}

	for i := 0; i < 10; i++ {
		l.Check(fmt.Sprintf("client-%d", i), cfg)
	}
	require.Equal(t, 10, l.Len())

	clock.Advance(30 * time.Second)
	l.Check("late", cfg)
	assert.Equal(t, 11, l.Len(), "no sweep before the interval elapses")

	clock.Advance(31 * time.Second)
	l.Check("later", cfg)
	assert.Equal(t, 1, l.Len())
}

func TestReset(t *testing.T) {
	l := New(WithClock(newFakeClock().Now))
	cfg := Config{MaxRequests: 1, Window: time.Minute, IdentifierSuffix: "estimate"}

	l.Check("a", cfg)
	require.False(t, l.Check("a", cfg).Allowed)

	l.Reset(Key("a", "estimate"))
	assert.True(t, l.Check("a", cfg).Allowed)
}

func TestStartJanitor(t *testing.T) {
	clock := newFakeClock()
	l := New(WithClock(clock.Now), WithSweepInterval(10*time.Millisecond))
	l.Check("a", Config{MaxRequests: 1, Window: time.Second})
	clock.Advance(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.StartJanitor(ctx)

	require.Eventually(t, func() bool { return l.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestCheckConcurrent(t *testing.T) {
	l := New()
	cfg := Config{MaxRequests: 50, Window: time.Hour}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check("shared", cfg).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}
