package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/highweigh/pkg/httputil"
)

func ExampleRetry() {
	p := httputil.Policy{Attempts: 3, Delay: time.Millisecond}
	calls := 0
	err := httputil.Retry(context.Background(), p, func() error {
		calls++
		if calls < 3 {
			return httputil.Retryable(errors.New("503 service unavailable"))
		}
		return nil
	})
	fmt.Println("calls:", calls)
	fmt.Println("error:", err)
	// Output:
	// calls: 3
	// error: <nil>
}

func ExampleRetry_permanent() {
	calls := 0
	err := httputil.Retry(context.Background(), httputil.DefaultPolicy, func() error {
		calls++
		return errors.New("404 not found")
	})
	fmt.Println("calls:", calls)
	fmt.Println("error:", err)
	// Output:
	// calls: 1
	// error: 404 not found
}
