package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSleeper records requested delays without waiting.
type fakeSleeper struct {
	delays []time.Duration
}

func (f *fakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	f.delays = append(f.delays, d)
	return nil
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := DoWithSleeper(context.Background(), PollConfig(5, time.Second), func() error {
		calls++
		return nil
	}, &fakeSleeper{})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls=%d, want 1", calls)
	}
}

func TestDoExhaustsBudget(t *testing.T) {
	s := &fakeSleeper{}
	calls := 0
	err := DoWithSleeper(context.Background(), PollConfig(12, time.Second), func() error {
		calls++
		return ErrNotReady
	}, s)
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("err=%v, want ErrNotReady", err)
	}
	if calls != 12 {
		t.Errorf("calls=%d, want 12", calls)
	}
	// No sleep after the final attempt.
	if len(s.delays) != 11 {
		t.Errorf("sleeps=%d, want 11", len(s.delays))
	}
}

func TestDoStopError(t *testing.T) {
	boom := errors.New("service error")
	calls := 0
	err := DoWithSleeper(context.Background(), PollConfig(5, time.Second), func() error {
		calls++
		return Stop(boom)
	}, &fakeSleeper{})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want wrapped boom", err)
	}
	if calls != 1 {
		t.Errorf("calls=%d, want 1", calls)
	}
}

func TestDoContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := DoWithSleeper(ctx, PollConfig(5, time.Second), func() error {
		t.Fatal("fn should not run after cancellation")
		return nil
	}, &fakeSleeper{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v, want context.Canceled", err)
	}
}

func TestConstantDelay(t *testing.T) {
	s := &fakeSleeper{}
	_ = DoWithSleeper(context.Background(), PollConfig(3, 5*time.Second), func() error {
		return ErrNotReady
	}, s)
	for i, d := range s.delays {
		if d != 5*time.Second {
			t.Errorf("delay[%d]=%v, want 5s", i, d)
		}
	}
}

func TestExponentialDelayCapped(t *testing.T) {
	cfg := Config{
		MaxAttempts: 4,
		Interval:    time.Second,
		MaxInterval: 2 * time.Second,
		Strategy:    Exponential,
	}
	s := &fakeSleeper{}
	_ = DoWithSleeper(context.Background(), cfg, func() error {
		return ErrNotReady
	}, s)
	want := []time.Duration{time.Second, 2 * time.Second, 2 * time.Second}
	if len(s.delays) != len(want) {
		t.Fatalf("sleeps=%d, want %d", len(s.delays), len(want))
	}
	for i := range want {
		if s.delays[i] != want[i] {
			t.Errorf("delay[%d]=%v, want %v", i, s.delays[i], want[i])
		}
	}
}

func TestZeroAttemptsNoOp(t *testing.T) {
	err := Do(context.Background(), Config{}, func() error {
		t.Fatal("fn should not run")
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
}
