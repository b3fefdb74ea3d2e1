package source

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/highweigh/pkg/errors"
	"github.com/matzehuels/highweigh/pkg/roadmap"
)

const sampleYAML = `title: Platform
lastUpdated: 2024-02-01
startMonth: 2024-1
months: 3
projects:
  - name: Search
    rag: green
    bars:
      - {type: build, start: 2024-1-1, stop: 2024-2-15}
`

const sampleJSON = `{"title":"Platform","startMonth":"2024-1","months":2,"projects":[{"name":"Search"}]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://example.com/roadmap.json", true},
		{"http://localhost:8080/x", true},
		{"roadmap.yaml", false},
		{"/tmp/https.yaml", false},
		{"ftp://example.com/x", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.ref); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "platform.yaml", sampleYAML)

	raw, err := Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if raw.Format != roadmap.FormatYAML || raw.Ref != path {
		t.Errorf("raw = %s %s", raw.Ref, raw.Format)
	}
	doc, err := raw.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Title != "Platform" || len(doc.Projects) != 1 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestFileSourceMissing(t *testing.T) {
	_, err := FileSource{}.Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
	if !stderrors.Is(err, ErrNotFound) {
		t.Error("err should wrap ErrNotFound")
	}
}

func TestHTTPSource(t *testing.T) {
	var gotUA, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Write([]byte(sampleYAML))
	}))
	defer srv.Close()

	s := NewHTTPSource(srv.Client(), WithHeaders(map[string]string{"Authorization": "Bearer t"}))
	raw, err := s.Fetch(context.Background(), srv.URL+"/data")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if raw.Format != roadmap.FormatYAML {
		t.Errorf("format = %q, want yaml from Content-Type", raw.Format)
	}
	if gotAuth != "Bearer t" || gotUA == "" {
		t.Errorf("headers: auth=%q ua=%q", gotAuth, gotUA)
	}
}

func TestHTTPSourceSniffsFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	raw, err := NewHTTPSource(srv.Client()).Fetch(context.Background(), srv.URL+"/data")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if raw.Format != roadmap.FormatJSON {
		t.Errorf("format = %q, want json", raw.Format)
	}
}

func TestHTTPSourceErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    []int // per attempt, last one repeats
		wantCode  errors.Code
		wantCalls int32
	}{
		{"not found", []int{404}, errors.ErrCodeNotFound, 1},
		{"client error", []int{403}, errors.ErrCodeNetwork, 1},
		{"server error exhausts retries", []int{503}, errors.ErrCodeNetwork, 3},
		{"recovers after 5xx", []int{502, 200}, "", 2},
		{"recovers after 429", []int{429, 200}, "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(calls.Add(1)) - 1
				status := tt.status[min(n, len(tt.status)-1)]
				if status != http.StatusOK {
					w.WriteHeader(status)
					return
				}
				w.Write([]byte(sampleJSON))
			}))
			defer srv.Close()

			s := NewHTTPSource(srv.Client(), WithRetry(3, time.Millisecond))
			_, err := s.Fetch(context.Background(), srv.URL+"/r.json")

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Fetch: %v", err)
				}
			} else if !errors.Is(err, tt.wantCode) {
				t.Fatalf("err = %v, want %s", err, tt.wantCode)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestHTTPSourceNotFoundWrapsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewHTTPSource(srv.Client()).Fetch(context.Background(), srv.URL)
	if !stderrors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound in chain", err)
	}
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "platform.yaml", sampleYAML)
	writeFile(t, dir, "mobile.json", sampleJSON)
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	s, err := NewDirStore(dir)
	if err != nil {
		t.Fatalf("NewDirStore: %v", err)
	}
	ctx := context.Background()

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "mobile" || names[1] != "platform" {
		t.Errorf("List = %v", names)
	}

	raw, err := s.Fetch(ctx, "mobile")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if raw.Ref != "mobile" || raw.Format != roadmap.FormatJSON {
		t.Errorf("raw = %s %s", raw.Ref, raw.Format)
	}

	if _, err := s.Fetch(ctx, "missing"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing: err = %v", err)
	}
	for _, bad := range []string{"", "../etc/passwd", "a/b", ".hidden"} {
		if _, err := s.Fetch(ctx, bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Fetch(%q) err = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestDirStorePut(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "platform.yaml", sampleYAML)
	s, _ := NewDirStore(dir)
	ctx := context.Background()

	doc, err := roadmap.Decode([]byte(sampleJSON), roadmap.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "platform", doc); err != nil {
		t.Fatalf("Put: %v", err)
	}

	raw, err := s.Fetch(ctx, "platform")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if raw.Format != roadmap.FormatJSON {
		t.Errorf("format = %s, want json after Put replaced the yaml file", raw.Format)
	}
	got, err := raw.Decode()
	if err != nil {
		t.Fatal(err)
	}
	if got.Months != 2 {
		t.Errorf("Months = %d, want 2", got.Months)
	}
}

func TestNewDirStoreMissing(t *testing.T) {
	if _, err := NewDirStore(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestOpenStore(t *testing.T) {
	s, err := OpenStore(context.Background(), StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if _, ok := s.(*DirStore); !ok {
		t.Errorf("store = %T", s)
	}
	if _, err := OpenStore(context.Background(), StoreConfig{Backend: "s3"}); err == nil {
		t.Error("unknown backend should fail")
	}
}
