package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/store"
)

type countingCompiler struct {
	version string

	mu       sync.Mutex
	compiles int
}

func (c *countingCompiler) Compile(ctx context.Context, document string) (string, error) {
	c.mu.Lock()
	c.compiles++
	c.mu.Unlock()
	return document, nil
}

func (c *countingCompiler) Version(ctx context.Context) (string, error) {
	return c.version, nil
}

func (c *countingCompiler) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compiles
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestFreezeTo_WritesSite(t *testing.T) {
	a := newSite(t, Options{BaseURL: "https://example.org"})
	dir := t.TempDir()
	results, err := a.FreezeTo(context.Background(), dir)
	if err != nil {
		t.Fatalf("FreezeTo: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}

	home := readFile(t, filepath.Join(dir, "index.html"))
	for _, want := range []string{"<!doctype html>", "<title>site</title>", "Welcome"} {
		if !strings.Contains(home, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	about := readFile(t, filepath.Join(dir, "about", "index.html"))
	if !strings.Contains(about, "About") {
		t.Error("about page missing content")
	}

	css := readFile(t, filepath.Join(dir, "style.css"))
	for _, want := range []string{".View{display:block", ".Text{display:inline"} {
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet missing %q", want)
		}
	}

	sitemap := readFile(t, filepath.Join(dir, "sitemap.xml"))
	for _, want := range []string{
		"<loc>https://example.org/</loc>",
		"<loc>https://example.org/about</loc>",
	} {
		if !strings.Contains(sitemap, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

func TestFreezeTo_RepeatedRunsIdentical(t *testing.T) {
	a := newSite(t, Options{})
	first, second := t.TempDir(), t.TempDir()
	if _, err := a.FreezeTo(context.Background(), first); err != nil {
		t.Fatalf("first FreezeTo: %v", err)
	}
	if _, err := a.FreezeTo(context.Background(), second); err != nil {
		t.Fatalf("second FreezeTo: %v", err)
	}
	for _, rel := range []string{"index.html", filepath.Join("about", "index.html"), "style.css", "sitemap.xml"} {
		if readFile(t, filepath.Join(first, rel)) != readFile(t, filepath.Join(second, rel)) {
			t.Errorf("%s differs between runs", rel)
		}
	}
}

func TestFreezeTo_SecondRunUsesCache(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "pages.db")
	comp := &countingCompiler{version: "v1"}
	a := newSite(t, Options{Compiler: comp, StorePath: storePath})

	first := t.TempDir()
	results, err := a.FreezeTo(context.Background(), first)
	if err != nil {
		t.Fatalf("first FreezeTo: %v", err)
	}
	for _, r := range results {
		if r.Cached {
			t.Errorf("%s cached on first run", r.Route)
		}
	}
	if comp.count() != 2 {
		t.Fatalf("compiles = %d, want 2", comp.count())
	}

	second := t.TempDir()
	results, err = a.FreezeTo(context.Background(), second)
	if err != nil {
		t.Fatalf("second FreezeTo: %v", err)
	}
	for _, r := range results {
		if !r.Cached {
			t.Errorf("%s not cached on second run", r.Route)
		}
	}
	if comp.count() != 2 {
		t.Errorf("compiles = %d after cached run, want 2", comp.count())
	}

	if readFile(t, filepath.Join(first, "index.html")) != readFile(t, filepath.Join(second, "index.html")) {
		t.Error("cached run produced different bytes")
	}
}

func TestFreezeTo_CompilerVersionInvalidatesCache(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "pages.db")
	a := newSite(t, Options{Compiler: &countingCompiler{version: "v1"}, StorePath: storePath})
	if _, err := a.FreezeTo(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("first FreezeTo: %v", err)
	}

	comp := &countingCompiler{version: "v2"}
	b := newSite(t, Options{Compiler: comp, StorePath: storePath})
	results, err := b.FreezeTo(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("second FreezeTo: %v", err)
	}
	for _, r := range results {
		if r.Cached {
			t.Errorf("%s served from cache across compiler versions", r.Route)
		}
	}
	if comp.count() != 2 {
		t.Errorf("compiles = %d, want 2", comp.count())
	}
}

func TestFreezeTo_PrunesStaleRoutes(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "pages.db")
	a := New(Options{Name: "site", StorePath: storePath})
	a.MustPage("/", homePage)
	a.MustPage("/old", aboutPage)
	if _, err := a.FreezeTo(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("first FreezeTo: %v", err)
	}

	b := New(Options{Name: "site", StorePath: storePath})
	b.MustPage("/", homePage)
	if _, err := b.FreezeTo(context.Background(), t.TempDir()); err != nil {
		t.Fatalf("second FreezeTo: %v", err)
	}

	cache, err := store.Open(storePath)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer cache.Close()
	routes, err := cache.Routes()
	if err != nil {
		t.Fatalf("Routes: %v", err)
	}
	if len(routes) != 1 || routes[0] != "/" {
		t.Fatalf("cached routes = %v, want [/]", routes)
	}
}

func TestFreezeTo_NoPages(t *testing.T) {
	_, err := New(Options{}).FreezeTo(context.Background(), t.TempDir())
	if !errors.IsKind(err, errors.KindConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
}

func TestFreezeTo_CanceledContext(t *testing.T) {
	a := newSite(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.FreezeTo(ctx, t.TempDir()); err == nil {
		t.Fatal("want error for canceled context")
	}
}
