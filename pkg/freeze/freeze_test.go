package freeze_test

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-glaze/glaze/pkg/assets"
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/freeze"
	"github.com/go-glaze/glaze/pkg/hydrate"
	"github.com/go-glaze/glaze/pkg/minify"
	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/widgets"
)

// CounterView is the canonical stateful fixture: a count seeded from
// Start, displayed as text, incremented by a button.
type CounterView struct {
	core.StatefulBase
	Start int
}

func (c CounterView) CreateState() core.State { return &counterState{start: c.Start} }

type counterState struct {
	core.StateBase
	start int
}

func (s *counterState) InitState() {
	start := s.start
	s.Seed(func(d *core.Draft) { d.Set("count", start) })
}

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	count := s.Snapshot().Int("count")
	return widgets.View{
		Children: []core.Widget{
			widgets.Text{Content: strconv.Itoa(count)},
			widgets.ButtonOf("+", func() {
				s.SetState(func(d *core.Draft) { d.Set("count", count+1) })
			}),
		},
	}
}

// orphanView is stateful but never registered for hydration.
type orphanView struct {
	core.StatefulBase
}

func (orphanView) CreateState() core.State { return &orphanState{} }

type orphanState struct {
	core.StateBase
}

func (s *orphanState) Build(ctx core.BuildContext) core.Widget {
	return widgets.Text{Content: "orphan"}
}

// unknownHost carries a type id no registry knows.
type unknownHost struct {
	core.HostBase
}

func (unknownHost) WidgetType() registry.TypeID { return registry.TypeID(9999) }

func (unknownHost) InstanceAttrs() map[string]string { return nil }

func (unknownHost) EventBindings() []core.EventBinding { return nil }

func (unknownHost) ChildWidgets() []core.Widget { return nil }

// explodingView panics during build.
type explodingView struct {
	core.StatelessBase
}

func (explodingView) Build(ctx core.BuildContext) core.Widget {
	panic("boom")
}

func init() {
	hydrate.MustRegister("CounterView", func() core.StatefulWidget { return CounterView{} })
}

func mustFreeze(t *testing.T, w core.Widget, opts freeze.Options) *freeze.Result {
	t.Helper()
	res, err := freeze.Freeze(context.Background(), w, opts)
	if err != nil {
		t.Fatalf("Freeze failed: %v", err)
	}
	return res
}

func TestFreeze_CounterPage(t *testing.T) {
	res := mustFreeze(t, CounterView{}, freeze.Options{Title: "Counter"})

	doc := res.Document
	for _, want := range []string{
		"<!doctype html>",
		"<title>Counter</title>",
		`<w class="View gz-widget">`,
		`<w class="Text gz-widget">0</w>`,
		`<button class="Button gz-widget" type="button">+</button>`,
		`glaze.rehydrate(a,"CounterView",{"count":0})`,
		`<link as="style" href="/style.css" onload="this.onload=null;this.rel='stylesheet'" rel="preload"/>`,
		`<noscript><link href="/style.css" rel="stylesheet"/></noscript>`,
		`<script defer="" src="/glaze.js"></script>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "<div") || strings.Contains(doc, "<span") {
		t.Errorf("development tags leaked into production markup:\n%s", doc)
	}
}

func TestFreeze_BootstrapIsLastAnchorChild(t *testing.T) {
	res := mustFreeze(t, CounterView{Start: 41}, freeze.Options{})

	script := `<script>(function(){var a=document.currentScript.parentElement;(window.requestAnimationFrame||window.setTimeout)(function(){glaze.rehydrate(a,"CounterView",{"count":41})})})();</script>`
	if !strings.Contains(res.Document, script+"</w>") {
		t.Errorf("bootstrap script is not the anchor's last child:\n%s", res.Document)
	}
}

func TestFreeze_StyleSubsetExact(t *testing.T) {
	res := mustFreeze(t, CounterView{}, freeze.Options{})

	want := ".View{display:block;box-sizing:border-box}\n" +
		".Text{display:inline}\n" +
		".Button{cursor:pointer;font:inherit}\n"
	if res.CSS != want {
		t.Errorf("CSS subset:\n got: %q\nwant: %q", res.CSS, want)
	}
	for _, unused := range []string{".Link", ".Image", ".Row", ".Column", ".Input"} {
		if strings.Contains(res.CSS, unused) {
			t.Errorf("CSS carries unused style %s", unused)
		}
	}
}

func TestFreeze_RepeatedFreezesAreByteIdentical(t *testing.T) {
	opts := freeze.Options{Title: "Counter"}
	first := mustFreeze(t, CounterView{Start: 7}, opts)
	for i := 0; i < 5; i++ {
		again := mustFreeze(t, CounterView{Start: 7}, opts)
		if again.Document != first.Document {
			t.Fatalf("freeze %d produced different bytes", i+2)
		}
		if again.CSS != first.CSS {
			t.Fatalf("freeze %d produced different CSS", i+2)
		}
	}
}

func TestFreeze_LinkKeepsAnchorTag(t *testing.T) {
	res := mustFreeze(t, widgets.LinkOf("/docs", "Docs"), freeze.Options{})
	if !strings.Contains(res.Document, `<a class="Link gz-widget" href="/docs">Docs</a>`) {
		t.Errorf("link did not keep its declared tag:\n%s", res.Document)
	}
}

func TestFreeze_StatelessPageHasNoBootstrap(t *testing.T) {
	res := mustFreeze(t, widgets.Text{Content: "static"}, freeze.Options{})
	if strings.Contains(res.Document, "glaze.rehydrate") {
		t.Errorf("stateless page carries a bootstrap:\n%s", res.Document)
	}
	if !strings.Contains(res.Document, `<script defer="" src="/glaze.js"></script>`) {
		t.Error("runtime script reference missing")
	}
}

func TestFreeze_NoStylesNoStylesheetLink(t *testing.T) {
	res := mustFreeze(t, core.TextLeaf{Content: "bare"}, freeze.Options{})
	if strings.Contains(res.Document, "style.css") {
		t.Errorf("styleless page links a stylesheet:\n%s", res.Document)
	}
	if res.CSS != "" {
		t.Errorf("styleless page bundled CSS %q", res.CSS)
	}
}

func TestFreeze_UnregisteredStatefulAborts(t *testing.T) {
	_, err := freeze.Freeze(context.Background(), orphanView{}, freeze.Options{})
	if err == nil {
		t.Fatal("freeze accepted an unhydratable stateful widget")
	}
	if !errors.IsKind(err, errors.KindConfiguration) {
		t.Errorf("error kind = %v, want configuration", errors.KindOf(err))
	}
	if !strings.Contains(err.Error(), "orphanView") {
		t.Errorf("error does not name the type: %v", err)
	}
}

func TestFreeze_UnknownTypeAborts(t *testing.T) {
	_, err := freeze.Freeze(context.Background(), unknownHost{}, freeze.Options{})
	if err == nil {
		t.Fatal("freeze accepted an unknown widget type")
	}
	if !errors.IsKind(err, errors.KindUnresolvedType) {
		t.Errorf("error kind = %v, want unresolved type", errors.KindOf(err))
	}
}

func TestFreeze_BuildPanicAbortsWithNoOutput(t *testing.T) {
	res, err := freeze.Freeze(context.Background(), widgets.View{
		Children: []core.Widget{
			widgets.Text{Content: "before"},
			explodingView{},
		},
	}, freeze.Options{})
	if err == nil {
		t.Fatal("freeze accepted a panicking build")
	}
	if res != nil {
		t.Errorf("partial output survived a failed freeze: %+v", res)
	}
	var buildErr *errors.BuildError
	if !errors.As(err, &buildErr) {
		t.Errorf("error = %v, want a build error", err)
	}
}

func TestFreeze_AssetPassInjectsDimensions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "img", "logo.png"), 320, 120)
	lib, err := assets.Open(dir)
	if err != nil {
		t.Fatalf("assets.Open failed: %v", err)
	}

	res := mustFreeze(t, widgets.View{
		Children: []core.Widget{
			widgets.Image{Src: "/img/logo.png", Alt: "logo"},
			widgets.Image{Src: "/img/logo.png", Alt: "sized", Width: 64, Height: 24},
			widgets.Image{Src: "https://cdn.example.com/x.png", Alt: "external"},
		},
	}, freeze.Options{Assets: lib})

	if !strings.Contains(res.Document, `<img alt="logo" class="Image gz-widget" height="120" src="/img/logo.png" width="320"/>`) {
		t.Errorf("asset pass did not inject dimensions:\n%s", res.Document)
	}
	if !strings.Contains(res.Document, `<img alt="sized" class="Image gz-widget" height="24" src="/img/logo.png" width="64"/>`) {
		t.Errorf("explicit dimensions were not preserved:\n%s", res.Document)
	}
	if !strings.Contains(res.Document, `<img alt="external" class="Image gz-widget" src="https://cdn.example.com/x.png"/>`) {
		t.Errorf("external image was modified:\n%s", res.Document)
	}
}

func TestFreeze_CompilerReceivesFullDocument(t *testing.T) {
	var compiled string
	comp := compilerFunc(func(ctx context.Context, doc string) (string, error) {
		compiled = doc
		return "MINIFIED", nil
	})

	res := mustFreeze(t, widgets.Text{Content: "x"}, freeze.Options{Compiler: comp})

	if res.Document != "MINIFIED" {
		t.Errorf("compiler output not returned: %q", res.Document)
	}
	if !strings.HasPrefix(compiled, "<!doctype html>") || !strings.HasSuffix(compiled, "</html>") {
		t.Errorf("compiler did not receive the full document: %q", compiled)
	}
}

// compilerFunc adapts a function to the minify.Compiler interface.
type compilerFunc func(ctx context.Context, doc string) (string, error)

func (f compilerFunc) Compile(ctx context.Context, doc string) (string, error) { return f(ctx, doc) }

func (compilerFunc) Version(ctx context.Context) (string, error) { return "v0.0.0", nil }

var _ minify.Compiler = compilerFunc(nil)

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
