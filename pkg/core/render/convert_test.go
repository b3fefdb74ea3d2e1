package render

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/highweigh/pkg/errors"
)

func withConverter(t *testing.T, path string) {
	t.Helper()
	prev := Converter
	Converter = path
	t.Cleanup(func() { Converter = prev })
}

func fakeConverter(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script converter")
	}
	path := filepath.Join(t.TempDir(), "rsvg-convert")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertMissingBinary(t *testing.T) {
	withConverter(t, "highweigh-no-such-converter")

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestConvertPassesStdin(t *testing.T) {
	withConverter(t, fakeConverter(t, `echo "$@"; cat`))

	out, err := ToPNG(context.Background(), []byte("<svg/>"), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if got, want := string(out), "-f png -z 2.00\n<svg/>"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConvertFailure(t *testing.T) {
	withConverter(t, fakeConverter(t, `echo broken >&2; exit 1`))

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Fatalf("err = %v, want INTERNAL_ERROR", err)
	}
}

func TestConvertCancelled(t *testing.T) {
	withConverter(t, fakeConverter(t, `sleep 5`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ToPDF(ctx, []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("err = %v, want TIMEOUT", err)
	}
}
