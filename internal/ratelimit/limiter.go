// Package ratelimit implements an in-memory fixed-window request limiter keyed
// by client identity.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// DefaultSweepInterval bounds how often expired windows are purged.
const DefaultSweepInterval = 5 * time.Minute

// DefaultMessage is used for rejections when the policy has no message.
const DefaultMessage = "Too many requests, please try again later."

// Config is a limit policy applied to one call of Check.
type Config struct {
	MaxRequests int           `mapstructure:"max_requests" yaml:"max_requests"`
	Window      time.Duration `mapstructure:"window" yaml:"window"`

	// IdentifierSuffix separates budgets of the same client across endpoints.
	IdentifierSuffix string `mapstructure:"-" yaml:"-"`
	Message          string `mapstructure:"message" yaml:"message,omitempty"`
}

// Validate reports misconfigured policies. Check fails open on them.
func (c Config) Validate() error {
	var errs []error
	if c.MaxRequests <= 0 {
		errs = append(errs, fmt.Errorf("max_requests must be positive, got %d", c.MaxRequests))
	}
	if c.Window <= 0 {
		errs = append(errs, fmt.Errorf("window must be positive, got %s", c.Window))
	}
	return errors.Join(errs...)
}

// Decision is the outcome of a Check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	Message   string
}

// RetryAfter returns the whole seconds until the window resets, at least one.
func (d Decision) RetryAfter(now time.Time) int {
	secs := int(math.Ceil(d.ResetAt.Sub(now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key within fixed windows. The zero value is not
// usable; construct with New.
type Limiter struct {
	mu         sync.Mutex
	entries    map[string]*entry
	clock      func() time.Time
	sweepEvery time.Duration
	lastSweep  time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock injects the time source.
func WithClock(clock func() time.Time) Option {
	return func(l *Limiter) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithSweepInterval sets how often Check purges expired windows.
func WithSweepInterval(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.sweepEvery = d
		}
	}
}

// New creates a Limiter.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		entries:    make(map[string]*entry),
		clock:      func() time.Time { return time.Now().UTC() },
		sweepEvery: DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.clock()
	return l
}

// Key joins a client key and an endpoint suffix.
func Key(clientKey, suffix string) string {
	if suffix == "" {
		return clientKey
	}
	return clientKey + ":" + suffix
}

// Check counts one request for clientKey under cfg and reports whether it is
// within the limit.
func (l *Limiter) Check(clientKey string, cfg Config) Decision {
	now := l.clock()
	if cfg.Validate() != nil {
		return Decision{Allowed: true, Limit: cfg.MaxRequests, ResetAt: now}
	}

	key := Key(clientKey, cfg.IdentifierSuffix)

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.sweepEvery {
		l.sweepLocked(now)
	}

	e, ok := l.entries[key]
	if !ok || now.After(e.resetAt) {
		e = &entry{resetAt: now.Add(cfg.Window)}
		l.entries[key] = e
	}
	e.count++

	d := Decision{Limit: cfg.MaxRequests, ResetAt: e.resetAt}
	if e.count > cfg.MaxRequests {
		msg := cfg.Message
		if msg == "" {
			msg = DefaultMessage
		}
		d.Message = fmt.Sprintf("%s Retry in %d seconds.", msg, d.RetryAfter(now))
		return d
	}

	d.Allowed = true
	d.Remaining = cfg.MaxRequests - e.count
	return d
}

// Sweep removes expired windows and returns how many were dropped.
func (l *Limiter) Sweep() int {
	now := l.clock()

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sweepLocked(now)
}

func (l *Limiter) sweepLocked(now time.Time) int {
	removed := 0
	for k, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, k)
			removed++
		}
	}
	l.lastSweep = now
	return removed
}

// StartJanitor sweeps on a ticker until ctx is cancelled, so idle processes
// release memory too.
func (l *Limiter) StartJanitor(ctx context.Context) {
	t := time.NewTicker(l.sweepEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Sweep()
			}
		}
	}()
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Reset forgets the window for an effective key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
}

// Now reads the limiter's clock, so callers compute retry delays against the
// same time source as Check.
func (l *Limiter) Now() time.Time {
	return l.clock()
}
