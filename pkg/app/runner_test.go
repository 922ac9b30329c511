package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRun_Freeze(t *testing.T) {
	a := newSite(t, Options{})
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer

	code := Run(context.Background(), a, []string{"freeze", "-out", dir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("missing frozen page: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"compiled /", "compiled /about"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q in %q", want, out)
		}
	}
}

func TestRun_FreezeWithCache(t *testing.T) {
	a := newSite(t, Options{})
	cache := filepath.Join(t.TempDir(), ".glaze", "pages.db")
	var stdout, stderr bytes.Buffer

	code := Run(context.Background(), a, []string{"freeze", "-out", t.TempDir(), "-cache", cache}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if _, err := os.Stat(cache); err != nil {
		t.Errorf("cache file not created: %v", err)
	}

	stdout.Reset()
	b := newSite(t, Options{})
	code = Run(context.Background(), b, []string{"freeze", "-out", t.TempDir(), "-cache", cache}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("second run exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "cached") {
		t.Errorf("second run did not hit the cache: %q", stdout.String())
	}
}

func TestRun_ServeStopsOnCancel(t *testing.T) {
	a := newSite(t, Options{Logf: func(string, ...any) {}})
	ctx, cancel := context.WithCancel(context.Background())
	var stdout, stderr bytes.Buffer

	codec := make(chan int, 1)
	go func() {
		codec <- Run(ctx, a, []string{"serve", "-addr", "127.0.0.1:0"}, &stdout, &stderr)
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case code := <-codec:
		if code != 0 {
			t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
		}
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not stop on cancel")
	}
}

func TestRun_UsageErrors(t *testing.T) {
	a := newSite(t, Options{})
	var stdout, stderr bytes.Buffer
	if code := Run(context.Background(), a, nil, &stdout, &stderr); code != 2 {
		t.Errorf("no args: exit code = %d", code)
	}
	if code := Run(context.Background(), a, []string{"deploy"}, &stdout, &stderr); code != 2 {
		t.Errorf("unknown command: exit code = %d", code)
	}
	if code := Run(context.Background(), a, []string{"freeze", "-bogus"}, &stdout, &stderr); code != 2 {
		t.Errorf("bad flag: exit code = %d", code)
	}
}
