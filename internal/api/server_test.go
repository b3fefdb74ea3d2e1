package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/highweigh/pkg/cache"
	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/pipeline"
	"github.com/matzehuels/highweigh/pkg/source"
)

const sampleJSON = `{
  "title": "Platform",
  "startMonth": "2024-1",
  "months": 3,
  "projects": [
    {"name": "Search", "rag": "green",
     "bars": [{"type": "build", "start": "2024-1-1", "stop": "2024-2-15"}]}
  ]
}`

const sampleYAML = `title: Mobile
startMonth: 2024-1
months: 2
projects:
  - name: App
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "platform.json"), []byte(sampleJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mobile.yaml"), []byte(sampleYAML), 0o644))

	store, err := source.NewDirStore(dir)
	require.NoError(t, err)

	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(pipeline.NewRunner(c, nil, logger), store, logger)
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Build.Version)
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "", "")
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err, "generated request id should be a uuid")

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", id)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid\r\n")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid\r\n", rec.Header().Get("X-Request-ID"))
}

func TestRender(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name        string
		target      string
		contentType string
		body        string
		wantType    string
		wantPrefix  string
	}{
		{"json body to svg", "/render?today=2024-2-1", "application/json", sampleJSON, "image/svg+xml", "<svg"},
		{"yaml body to svg", "/render", "application/yaml", sampleYAML, "image/svg+xml", "<svg"},
		{"sniffed body", "/render", "", sampleJSON, "image/svg+xml", "<svg"},
		{"json output", "/render?format=json", "application/json", sampleJSON, "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.contentType, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.wantPrefix))
		})
	}
}

func TestRenderCacheHeader(t *testing.T) {
	s := newTestServer(t)

	first := do(t, s, http.MethodPost, "/render?today=2024-2-1", "application/json", sampleJSON)
	second := do(t, s, http.MethodPost, "/render?today=2024-2-1", "application/json", sampleJSON)

	assert.Equal(t, "miss", first.Header().Get("X-Highweigh-Cache"))
	assert.Equal(t, "hit", second.Header().Get("X-Highweigh-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("ETag"), second.Header().Get("ETag"))
}

func TestRenderErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
		wantErr  string
	}{
		{"empty body", "/render", "", http.StatusBadRequest, "INVALID_INPUT"},
		{"malformed document", "/render", `{"months": "three"}`, http.StatusBadRequest, "INVALID_DOCUMENT"},
		{"zero months", "/render", `{"startMonth": "2024-1", "months": 0}`, http.StatusBadRequest, "INVALID_DOCUMENT"},
		{"bad format", "/render?format=gif", sampleJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad today", "/render?today=2024-13-1", sampleJSON, http.StatusBadRequest, "INVALID_DATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, "application/json", tt.body)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantErr, string(body.Error))
			assert.NotEmpty(t, body.Message)
			assert.Equal(t, rec.Header().Get("X-Request-ID"), body.RequestID)
		})
	}
}

func TestListRoadmaps(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/roadmaps", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"mobile", "platform"}, body.Roadmaps)
}

func TestStoredRoadmap(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/roadmaps/platform", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Platform")

	rec = do(t, s, http.MethodGet, "/roadmaps/mobile.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = do(t, s, http.MethodGet, "/roadmaps/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoStore(t *testing.T) {
	s := New(pipeline.NewRunner(nil, nil, nil), nil, log.NewWithOptions(io.Discard, log.Options{}))
	rec := do(t, s, http.MethodGet, "/roadmaps/platform", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSplitFormat(t *testing.T) {
	tests := []struct {
		in, name, format string
	}{
		{"platform", "platform", ""},
		{"platform.png", "platform", "png"},
		{"v1.2", "v1.2", ""},
		{"team.roadmap.pdf", "team.roadmap", "pdf"},
		{".svg", ".svg", ""},
	}
	for _, tt := range tests {
		name, format := splitFormat(tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.Equal(t, tt.format, format, tt.in)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeInvalidDocument, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeNetwork, http.StatusBadGateway},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeUnsupported, http.StatusNotImplemented},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(errors.New(tt.code, "x")), string(tt.code))
	}
}
