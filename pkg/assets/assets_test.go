package assets

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-glaze/glaze/pkg/errors"
)

func writePNG(t *testing.T, filename string, width, height int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatal(err)
	}
}

func newTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "img", "logo.png"), 320, 120)
	writePNG(t, filepath.Join(dir, "img", "icon.png"), 16, 16)
	if err := os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return lib, dir
}

func TestLibrary_ProbesImageDimensions(t *testing.T) {
	lib, _ := newTestLibrary(t)

	info, ok := lib.Lookup("/img/logo.png")
	if !ok {
		t.Fatal("logo.png not indexed")
	}
	if info.Width != 320 || info.Height != 120 {
		t.Errorf("dimensions = %dx%d, want 320x120", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format = %q, want png", info.Format)
	}
	if info.Size <= 0 {
		t.Errorf("size = %d, want positive", info.Size)
	}
}

func TestLibrary_NonImageIndexedWithoutDimensions(t *testing.T) {
	lib, _ := newTestLibrary(t)

	info, ok := lib.Lookup("/robots.txt")
	if !ok {
		t.Fatal("robots.txt not indexed")
	}
	if info.Width != 0 || info.Height != 0 || info.Format != "" {
		t.Errorf("non-image carries image data: %+v", info)
	}
	if _, _, ok := lib.Dimensions("/robots.txt"); ok {
		t.Error("Dimensions resolved for a non-image")
	}
}

func TestLibrary_UndecodableImageKeptWithoutDimensions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	info, ok := lib.Lookup("/broken.png")
	if !ok {
		t.Fatal("broken.png not indexed")
	}
	if info.Width != 0 || info.Height != 0 {
		t.Errorf("undecodable image has dimensions: %+v", info)
	}
}

func TestLibrary_LookupCanonicalization(t *testing.T) {
	lib, _ := newTestLibrary(t)

	for _, src := range []string{
		"/img/logo.png",
		"img/logo.png",
		"/img/logo.png?v=2",
		"/img/logo.png#hero",
		"/img/../img/logo.png",
	} {
		if _, _, ok := lib.Dimensions(src); !ok {
			t.Errorf("Dimensions(%q) did not resolve", src)
		}
	}
	for _, src := range []string{
		"",
		"https://cdn.example.com/img/logo.png",
		"//cdn.example.com/img/logo.png",
		"/img/missing.png",
	} {
		if _, ok := lib.Lookup(src); ok {
			t.Errorf("Lookup(%q) resolved unexpectedly", src)
		}
	}
}

func TestLibrary_ScanPicksUpNewFiles(t *testing.T) {
	lib, dir := newTestLibrary(t)

	writePNG(t, filepath.Join(dir, "img", "new.png"), 8, 8)
	if _, ok := lib.Lookup("/img/new.png"); ok {
		t.Fatal("unscanned file resolved")
	}
	if err := lib.Scan(); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if w, h, ok := lib.Dimensions("/img/new.png"); !ok || w != 8 || h != 8 {
		t.Errorf("new.png = %dx%d ok=%v, want 8x8", w, h, ok)
	}
}

func TestLibrary_SkipsDotfiles(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, ".cache", "x.png"), 4, 4)
	if err := os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte{0}, 0o644); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "ok.png"), 4, 4)

	lib, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got, want := lib.Paths(), []string{"/ok.png"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestLibrary_PathsSorted(t *testing.T) {
	lib, _ := newTestLibrary(t)
	want := []string{"/img/icon.png", "/img/logo.png", "/robots.txt"}
	if got := lib.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestOpen_RejectsNonDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(file)
	if err == nil {
		t.Fatal("Open accepted a plain file")
	}
	if !errors.IsKind(err, errors.KindConfiguration) {
		t.Errorf("error kind = %v, want configuration", errors.KindOf(err))
	}
}
