package app

import (
	"reflect"
	"testing"

	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/widgets"
)

func homePage() core.Widget {
	return widgets.View{Children: []core.Widget{
		widgets.Text{Content: "Welcome"},
	}}
}

func aboutPage() core.Widget {
	return widgets.View{Children: []core.Widget{
		widgets.Text{Content: "About"},
	}}
}

func newSite(t *testing.T, opts Options) *App {
	t.Helper()
	if opts.Name == "" {
		opts.Name = "site"
	}
	a := New(opts)
	a.MustPage("/", homePage)
	a.MustPage("/about", aboutPage)
	return a
}

func TestPage_RejectsBadRoutes(t *testing.T) {
	a := New(Options{})
	for _, route := range []string{
		"",
		"docs",
		"/docs/",
		"/a//b",
		"/a/../b",
		"/{page}",
		stylesheetRoute,
		reloadRoute,
	} {
		if err := a.Page(route, homePage); !errors.IsKind(err, errors.KindConfiguration) {
			t.Errorf("Page(%q): want configuration error, got %v", route, err)
		}
	}
}

func TestPage_RejectsNilBuilder(t *testing.T) {
	a := New(Options{})
	if err := a.Page("/", nil); !errors.IsKind(err, errors.KindConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
}

func TestPage_RejectsDuplicateRoute(t *testing.T) {
	a := New(Options{})
	if err := a.Page("/", homePage); err != nil {
		t.Fatalf("first Page: %v", err)
	}
	if err := a.Page("/", aboutPage); !errors.IsKind(err, errors.KindConfiguration) {
		t.Fatalf("want configuration error, got %v", err)
	}
}

func TestMustPage_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want panic")
		}
	}()
	New(Options{}).MustPage("no-slash", homePage)
}

func TestRoutes_Sorted(t *testing.T) {
	a := New(Options{})
	a.MustPage("/b", homePage)
	a.MustPage("/a", homePage)
	a.MustPage("/", homePage)
	want := []string{"/", "/a", "/b"}
	if got := a.Routes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Routes() = %v, want %v", got, want)
	}
}

func TestPageTitle(t *testing.T) {
	a := New(Options{Name: "site"})
	if got := a.pageTitle("/"); got != "site" {
		t.Errorf("root title = %q", got)
	}
	if got := a.pageTitle("/docs/install"); got != "site - docs/install" {
		t.Errorf("page title = %q", got)
	}
}

func TestNew_DefaultsName(t *testing.T) {
	if a := New(Options{}); a.opts.Name != "glaze" {
		t.Fatalf("default name = %q", a.opts.Name)
	}
}
