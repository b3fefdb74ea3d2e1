package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	transient := &RetryableError{Err: errors.New("timeout")}
	permanent := errors.New("bad request")

	tests := []struct {
		name      string
		attempts  int
		results   []error // per call; the last repeats
		wantCalls int
		wantErr   error
	}{
		{"success", 3, []error{nil}, 1, nil},
		{"permanent error stops", 3, []error{permanent}, 1, permanent},
		{"recovers", 3, []error{transient, nil}, 2, nil},
		{"exhausted", 3, []error{transient}, 3, transient},
		{"zero attempts runs once", 0, []error{transient}, 1, transient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			p := Policy{Attempts: tt.attempts, Delay: time.Millisecond}
			err := Retry(context.Background(), p, func() error {
				r := tt.results[min(calls, len(tt.results)-1)]
				calls++
				return r
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, Policy{Attempts: 3, Delay: time.Hour}, func() error {
		return Retryable(errors.New("timeout"))
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRetryMaxDelayCapsServerWait(t *testing.T) {
	p := Policy{Attempts: 2, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
	calls := 0
	start := time.Now()
	err := Retry(context.Background(), p, func() error {
		calls++
		if calls == 1 {
			return &RetryableError{Err: errors.New("busy"), After: time.Hour}
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("err = %v, calls = %d", err, calls)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("waited %v, want the wait capped at MaxDelay", elapsed)
	}
}

func TestRetryable(t *testing.T) {
	inner := errors.New("connection reset")
	err := Retryable(inner)
	if !IsRetryable(err) || !errors.Is(err, inner) || err.Error() != "connection reset" {
		t.Errorf("Retryable should wrap transparently: %v", err)
	}
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	if IsRetryable(inner) {
		t.Error("a plain error is not retryable")
	}
}

func TestRetryAfter(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"7", 7 * time.Second},
		{" 2 ", 2 * time.Second},
		{"0", 0},
		{"-3", 0},
		{"soon", 0},
		{"Fri, 01 Mar 2024 12:00:30 GMT", 30 * time.Second},
		{"Fri, 01 Mar 2024 11:00:00 GMT", 0},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := RetryAfter(tt.header, now); got != tt.want {
				t.Errorf("RetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
