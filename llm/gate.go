// Rate gate for remote calls: sliding-window request and token budgets
// plus an in-flight cap.
//
// Information Hiding:
// - Window bookkeeping and pruning
// - In-flight slot accounting via a channel semaphore
// - Release idempotency

package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrRateLimited is returned when a call cannot acquire a slot within
// its context deadline.
var ErrRateLimited = errors.New("rate limited")

// GateConfig bounds remote usage over a sliding window.
type GateConfig struct {
	// MaxInFlight caps concurrent remote calls. Zero means 1.
	MaxInFlight int
	// MaxRequests caps calls started within Window. Zero disables the cap.
	MaxRequests int
	// MaxTokens caps estimated tokens consumed within Window. Zero disables.
	MaxTokens int
	// Window is the sliding-window span. Zero means one minute.
	Window time.Duration
}

func (c GateConfig) withDefaults() GateConfig {
	if c.MaxInFlight < 1 {
		c.MaxInFlight = 1
	}
	if c.Window <= 0 {
		c.Window = time.Minute
	}
	return c
}

type gateEntry struct {
	at     time.Time
	tokens int
}

// RateGate admits remote calls under the configured budgets. Safe for
// concurrent use.
type RateGate struct {
	cfg   GateConfig
	slots chan struct{}
	now   func() time.Time

	mu      sync.Mutex
	history []gateEntry
}

// NewRateGate creates a gate with the given budgets.
func NewRateGate(cfg GateConfig) *RateGate {
	cfg = cfg.withDefaults()
	return &RateGate{
		cfg:   cfg,
		slots: make(chan struct{}, cfg.MaxInFlight),
		now:   time.Now,
	}
}

// Acquire blocks until a slot is available or ctx is done. On success it
// returns a release func that must be called exactly once on every exit
// path; calling it more than once is harmless. estTokens is the caller's
// token estimate charged against the window budget.
func (g *RateGate) Acquire(ctx context.Context, estTokens int) (release func(), err error) {
	// Window budgets are checked before taking an in-flight slot so a
	// budget rejection never holds a slot.
	if err := g.waitForWindow(ctx, estTokens); err != nil {
		return nil, err
	}

	select {
	case g.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrRateLimited, ctx.Err())
	}

	g.mu.Lock()
	g.history = append(g.history, gateEntry{at: g.now(), tokens: estTokens})
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			<-g.slots
		})
	}, nil
}

// waitForWindow blocks until the sliding-window budgets admit one more
// call of estTokens, or ctx is done.
func (g *RateGate) waitForWindow(ctx context.Context, estTokens int) error {
	for {
		wait, ok := g.windowWait(estTokens)
		if ok {
			return nil
		}
		if wait <= 0 {
			wait = 10 * time.Millisecond
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %v", ErrRateLimited, ctx.Err())
		}
	}
}

// windowWait prunes expired entries and reports whether the budgets
// admit one more call now; if not, it returns how long until the oldest
// blocking entry expires.
func (g *RateGate) windowWait(estTokens int) (time.Duration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := g.now().Add(-g.cfg.Window)
	kept := g.history[:0]
	for _, e := range g.history {
		if e.at.After(cutoff) {
			kept = append(kept, e)
		}
	}
	g.history = kept

	overRequests := g.cfg.MaxRequests > 0 && len(g.history) >= g.cfg.MaxRequests
	tokensUsed := 0
	for _, e := range g.history {
		tokensUsed += e.tokens
	}
	overTokens := g.cfg.MaxTokens > 0 && tokensUsed+estTokens > g.cfg.MaxTokens

	if !overRequests && !overTokens {
		return 0, true
	}
	if len(g.history) == 0 {
		// A single call exceeds the token budget outright; no amount of
		// waiting helps, but the caller's deadline bounds the retry loop.
		return g.cfg.Window, false
	}
	return g.history[0].at.Sub(cutoff), false
}

// InFlight reports how many slots are currently held.
func (g *RateGate) InFlight() int {
	return len(g.slots)
}

// GatedClient wraps a Provider so every call passes through a RateGate.
// The release runs on every exit path, success or failure.
type GatedClient struct {
	provider Provider
	gate     *RateGate
}

// NewGatedClient wraps provider with gate.
func NewGatedClient(provider Provider, gate *RateGate) *GatedClient {
	return &GatedClient{provider: provider, gate: gate}
}

// Name returns the underlying provider name.
func (c *GatedClient) Name() string { return c.provider.Name() }

// Model returns the underlying provider model.
func (c *GatedClient) Model() string { return c.provider.Model() }

// Chat acquires a slot, forwards the call, and releases the slot.
func (c *GatedClient) Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error) {
	return c.ChatWithFormat(ctx, messages, nil)
}

// ChatWithFormat acquires a slot, forwards the call, and releases the slot.
func (c *GatedClient) ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (LLMResponse, error) {
	release, err := c.gate.Acquire(ctx, estimateTokens(messages))
	if err != nil {
		return LLMResponse{}, err
	}
	defer release()

	return c.provider.ChatWithFormat(ctx, messages, format)
}

// estimateTokens approximates prompt size at four characters per token.
func estimateTokens(messages []ChatMessage) int {
	chars := 0
	for _, m := range messages {
		chars += len(m.Content)
	}
	est := chars / 4
	if est < 1 {
		est = 1
	}
	return est
}

// Verify GatedClient implements Provider
var _ Provider = (*GatedClient)(nil)
