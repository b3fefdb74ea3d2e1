// Package httputil retries transient HTTP failures.
//
// [Retry] calls a function under a [Policy] until it succeeds, fails with an
// error that is not a [RetryableError], or runs out of attempts. Waits double
// between calls unless the failure carries a server-requested delay, which
// [RetryAfter] reads from the Retry-After header:
//
//	err := httputil.Retry(ctx, httputil.DefaultPolicy, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    defer resp.Body.Close()
//	    if resp.StatusCode == http.StatusTooManyRequests {
//	        return &httputil.RetryableError{
//	            Err:   fmt.Errorf("status %d", resp.StatusCode),
//	            After: httputil.RetryAfter(resp.Header.Get("Retry-After"), time.Now()),
//	        }
//	    }
//	    return nil
//	})
package httputil
