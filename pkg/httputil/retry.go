package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Policy bounds how often and how patiently [Retry] tries again.
type Policy struct {
	// Attempts is the total number of calls, including the first. Values
	// below one mean a single call.
	Attempts int

	// Delay is the wait before the second call. It doubles after each
	// further failure.
	Delay time.Duration

	// MaxDelay caps any single wait, including one requested by the server.
	// Zero means no cap.
	MaxDelay time.Duration
}

// DefaultPolicy is three calls, starting at one second, never waiting longer
// than ten.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxDelay: 10 * time.Second}

// RetryableError marks a failure as transient. After, when positive,
// replaces the backoff delay before the next call.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or anything it wraps, is a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Retry calls fn until it returns nil, returns an error that is not
// retryable, or p.Attempts calls have been made. It returns the last error,
// or ctx.Err() when the context ends during a wait.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) || i == attempts-1 {
			return err
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		if p.MaxDelay > 0 {
			wait = min(wait, p.MaxDelay)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		delay *= 2
	}
	return err
}

// RetryAfter parses a Retry-After header given either as seconds or as an
// HTTP date relative to now. It returns zero when the header is absent or
// unusable.
func RetryAfter(header string, now time.Time) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(header); err == nil {
		if secs <= 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
