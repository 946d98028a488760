package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), DefaultRetryConfig(), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "ok" || calls != 1 {
		t.Errorf("expected ok after 1 call, got %q after %d", result, calls)
	}
}

func TestRetry_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	var retried []int
	cfg := fastRetry(3)
	cfg.OnRetry = func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) }

	result, err := Retry(context.Background(), cfg, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("temporary")
		}
		return calls, nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != 3 {
		t.Errorf("expected 3, got %d", result)
	}
	if len(retried) != 2 || retried[0] != 1 || retried[1] != 2 {
		t.Errorf("unexpected OnRetry attempts %v", retried)
	}
}

func TestRetry_ReturnsLastError(t *testing.T) {
	calls := 0
	last := errors.New("third")
	_, err := Retry(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		if calls == 3 {
			return "", last
		}
		return "", errors.New("earlier")
	})
	if !errors.Is(err, last) {
		t.Errorf("expected last error, got %v", err)
	}
}

func TestRetry_ZeroAttemptsMeansOnce(t *testing.T) {
	calls := 0
	_ = RetryFunc(context.Background(), RetryConfig{}, func() error {
		calls++
		return errors.New("fail")
	})
	if calls != 1 {
		t.Errorf("expected a single call, got %d", calls)
	}
}

func TestRetry_StopsWhenRetryIfRejects(t *testing.T) {
	calls := 0
	permanent := errors.New("permanent")
	cfg := fastRetry(5)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, permanent) }

	err := RetryFunc(context.Background(), cfg, func() error {
		calls++
		return permanent
	})
	if !errors.Is(err, permanent) || calls != 1 {
		t.Errorf("expected one call with permanent error, got %d calls, err %v", calls, err)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryFunc(ctx, fastRetry(3), func() error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no calls, got %d", calls)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	if DefaultRetryIf(context.Canceled) || DefaultRetryIf(context.DeadlineExceeded) {
		t.Error("context errors must not be retried")
	}
	if !DefaultRetryIf(errors.New("boom")) {
		t.Error("plain errors should be retried")
	}
}

func TestRetryConfig_BackoffCapped(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, BackoffFactor: 2}
	if got := cfg.backoff(1); got != time.Second {
		t.Errorf("attempt 1: expected 1s, got %v", got)
	}
	if got := cfg.backoff(2); got != 2*time.Second {
		t.Errorf("attempt 2: expected 2s, got %v", got)
	}
	if got := cfg.backoff(5); got != 3*time.Second {
		t.Errorf("attempt 5: expected cap of 3s, got %v", got)
	}
}
