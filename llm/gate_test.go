package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeProvider returns canned responses or a fixed error.
type fakeProvider struct {
	mu    sync.Mutex
	calls int
	reply string
	err   error
	block chan struct{} // when set, calls block until closed
}

func (f *fakeProvider) Name() string  { return "fake" }
func (f *fakeProvider) Model() string { return "fake-1" }

func (f *fakeProvider) Chat(ctx context.Context, messages []ChatMessage) (LLMResponse, error) {
	return f.ChatWithFormat(ctx, messages, nil)
}

func (f *fakeProvider) ChatWithFormat(ctx context.Context, messages []ChatMessage, format *ResponseFormat) (LLMResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return LLMResponse{}, ctx.Err()
		}
	}
	if f.err != nil {
		return LLMResponse{}, f.err
	}
	return LLMResponse{Content: f.reply}, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestGateReleasesSlotAfterSuccess(t *testing.T) {
	gate := NewRateGate(GateConfig{MaxInFlight: 1})
	client := NewGatedClient(&fakeProvider{reply: "ok"}, gate)

	for i := 0; i < 3; i++ {
		if _, err := client.Chat(context.Background(), []ChatMessage{UserMessage("hi")}); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if gate.InFlight() != 0 {
		t.Errorf("InFlight = %d after completion, want 0", gate.InFlight())
	}
}

func TestGateReleasesSlotAfterProviderError(t *testing.T) {
	gate := NewRateGate(GateConfig{MaxInFlight: 1})
	client := NewGatedClient(&fakeProvider{err: fmt.Errorf("upstream down")}, gate)

	for i := 0; i < 3; i++ {
		if _, err := client.Chat(context.Background(), []ChatMessage{UserMessage("hi")}); err == nil {
			t.Fatal("expected provider error")
		}
	}
	// A leaked slot would make this third call impossible with MaxInFlight 1.
	if gate.InFlight() != 0 {
		t.Errorf("InFlight = %d after errors, want 0", gate.InFlight())
	}
}

func TestGateBlocksAtInFlightCap(t *testing.T) {
	gate := NewRateGate(GateConfig{MaxInFlight: 1})
	block := make(chan struct{})
	client := NewGatedClient(&fakeProvider{reply: "ok", block: block}, gate)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = client.Chat(context.Background(), []ChatMessage{UserMessage("slow")})
	}()

	// Wait until the first call holds the slot.
	deadline := time.Now().Add(time.Second)
	for gate.InFlight() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first call never acquired the slot")
		}
		time.Sleep(time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Chat(ctx, []ChatMessage{UserMessage("second")})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("blocked call error = %v, want ErrRateLimited", err)
	}

	close(block)
	<-done
}

func TestGateRequestWindowExhaustion(t *testing.T) {
	gate := NewRateGate(GateConfig{MaxInFlight: 2, MaxRequests: 2, Window: time.Minute})
	client := NewGatedClient(&fakeProvider{reply: "ok"}, gate)

	for i := 0; i < 2; i++ {
		if _, err := client.Chat(context.Background(), []ChatMessage{UserMessage("hi")}); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Chat(ctx, []ChatMessage{UserMessage("over budget")})
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited", err)
	}
}

func TestGateWindowEntriesExpire(t *testing.T) {
	gate := NewRateGate(GateConfig{MaxInFlight: 1, MaxRequests: 1, Window: time.Minute})

	// Backdate the clock so the first entry lands outside the window.
	base := time.Now()
	gate.now = func() time.Time { return base.Add(-2 * time.Minute) }

	release, err := gate.Acquire(context.Background(), 10)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	release()

	gate.now = func() time.Time { return base }
	release, err = gate.Acquire(context.Background(), 10)
	if err != nil {
		t.Fatalf("acquire after window expiry: %v", err)
	}
	release()
}

func TestGateTokenBudget(t *testing.T) {
	gate := NewRateGate(GateConfig{MaxInFlight: 1, MaxTokens: 100, Window: time.Minute})

	release, err := gate.Acquire(context.Background(), 80)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := gate.Acquire(ctx, 50); !errors.Is(err, ErrRateLimited) {
		t.Errorf("over-budget acquire error = %v, want ErrRateLimited", err)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	gate := NewRateGate(GateConfig{MaxInFlight: 1})

	release, err := gate.Acquire(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	release()
	release() // second call must not free a slot it no longer holds

	if gate.InFlight() != 0 {
		t.Errorf("InFlight = %d, want 0", gate.InFlight())
	}
}

func TestEstimateTokensFloor(t *testing.T) {
	if got := estimateTokens([]ChatMessage{{Content: ""}}); got != 1 {
		t.Errorf("empty estimate = %d, want 1", got)
	}
	if got := estimateTokens([]ChatMessage{{Content: "12345678"}}); got != 2 {
		t.Errorf("estimate = %d, want 2", got)
	}
}
