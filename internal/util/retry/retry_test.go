package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do() = %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, WithInitialDelay(time.Millisecond), WithMaxAttempts(5))
	if err != nil {
		t.Fatalf("Do() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_ExhaustsAttemptBudget(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("still failing")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return sentinel
	}, WithInitialDelay(time.Millisecond), WithMaxAttempts(3))
	if err == nil {
		t.Fatal("Do() = nil, want error")
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("Do() = %v, want wrapped %v", err, sentinel)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDo_NonRetryableReturnsImmediately(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("invalid parameter")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return sentinel
	},
		WithInitialDelay(time.Millisecond),
		WithRetryable(func(error) bool { return false }),
	)
	if !errors.Is(err, sentinel) {
		t.Fatalf("Do() = %v, want %v", err, sentinel)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDo_RetryablePredicateSelectsErrors(t *testing.T) {
	t.Parallel()

	transient := errors.New("throttled")
	fatal := errors.New("access denied")
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls == 1 {
			return transient
		}
		return fatal
	},
		WithInitialDelay(time.Millisecond),
		WithRetryable(func(err error) bool { return errors.Is(err, transient) }),
	)
	if !errors.Is(err, fatal) {
		t.Fatalf("Do() = %v, want %v", err, fatal)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, func() error {
		return errors.New("transient")
	}, WithInitialDelay(time.Minute))
	if err == nil {
		t.Fatal("Do() = nil, want context error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() = %v, want wrapped context.Canceled", err)
	}
}

func TestDo_DelayGrowthIsCapped(t *testing.T) {
	t.Parallel()

	start := time.Now()
	_ = Do(context.Background(), func() error {
		return errors.New("transient")
	},
		WithMaxAttempts(4),
		WithInitialDelay(time.Millisecond),
		WithMaxDelay(2*time.Millisecond),
		WithMultiplier(10),
	)
	// 3 waits capped at 2ms each; generous upper bound to avoid flakes.
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("elapsed = %v, want well under 1s", elapsed)
	}
}
