package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/highweigh/pkg/buildinfo"
	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/httputil"
	"github.com/matzehuels/highweigh/pkg/observability"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

// maxDocumentSize bounds a fetched document.
const maxDocumentSize = 8 << 20

// HTTPSource fetches documents over HTTP(S). Transport failures, 429 and 5xx
// responses are retried with exponential backoff, honoring Retry-After.
type HTTPSource struct {
	client  *http.Client
	headers map[string]string
	policy  httputil.Policy
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHeaders adds headers to every request, e.g. Authorization.
func WithHeaders(h map[string]string) HTTPOption {
	return func(s *HTTPSource) { s.headers = h }
}

// WithRetry sets the attempt count and the initial backoff delay. The cap
// on a single wait is kept from [httputil.DefaultPolicy].
func WithRetry(attempts int, delay time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.policy.Attempts, s.policy.Delay = attempts, delay
	}
}

// NewHTTPSource returns an HTTPSource using client, or a client with a 30
// second timeout when client is nil.
func NewHTTPSource(client *http.Client, opts ...HTTPOption) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	s := &HTTPSource{client: client, policy: httputil.DefaultPolicy}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context, url string) (*Raw, error) {
	var raw *Raw
	err := httputil.Retry(ctx, s.policy, func() error {
		r, err := s.get(ctx, url)
		raw = r
		return err
	})
	if err != nil {
		return nil, classify(url, err)
	}
	return raw, nil
}

func (s *HTTPSource) get(ctx context.Context, url string) (*Raw, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml, application/toml;q=0.9, */*;q=0.5")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, httputil.Retryable(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, httputil.Retryable(err)
	}
	if len(data) > maxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document at %s exceeds %d bytes", url, maxDocumentSize)
	}

	format := roadmap.FormatFromContentType(resp.Header.Get("Content-Type"))
	if format == "" {
		format = roadmap.DetectFormat(url, data)
	}
	return &Raw{Ref: url, Format: format, Data: data}, nil
}

type statusError struct{ code int }

func (e *statusError) Error() string { return fmt.Sprintf("status %d", e.code) }

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return fmt.Errorf("%w: status %d", ErrNotFound, code)
	case code == http.StatusTooManyRequests || code >= 500:
		return &httputil.RetryableError{
			Err:   &statusError{code},
			After: httputil.RetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
	default:
		return &statusError{code}
	}
}

// classify turns a fetch failure into a coded error.
func classify(url string, err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	switch {
	case stderrors.Is(err, ErrNotFound):
		return errors.Wrap(errors.ErrCodeNotFound, err, "fetch %s", url)
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", url)
	default:
		return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url)
	}
}
