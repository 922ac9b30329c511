package style

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-glaze/glaze/pkg/errors"
)

func TestLibrary_AddAndGet(t *testing.T) {
	l := NewLibrary()
	if err := l.Add("base", ".gz-widget{box-sizing:border-box}"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	css, ok := l.Get("base")
	if !ok {
		t.Fatal("Get(base) missing after Add")
	}
	if !strings.Contains(css, "box-sizing") {
		t.Errorf("Get(base) = %q", css)
	}
	if _, ok := l.Get("ghost"); ok {
		t.Error("Get(ghost) found an unregistered style")
	}
}

func TestLibrary_RejectsDuplicatesAndEmptyNames(t *testing.T) {
	l := NewLibrary()
	l.MustAdd("card", ".Card{}")

	if err := l.Add("card", ".Card{color:red}"); err == nil {
		t.Error("duplicate Add succeeded")
	} else if !errors.IsKind(err, errors.KindConfiguration) {
		t.Errorf("duplicate Add kind = %v, want configuration", errors.KindOf(err))
	}
	if err := l.Add("  ", "x"); err == nil {
		t.Error("blank-name Add succeeded")
	}
}

func TestLibrary_NamesInRegistrationOrder(t *testing.T) {
	l := NewLibrary()
	for _, n := range []string{"c", "a", "b"} {
		l.MustAdd(n, "/*"+n+"*/")
	}
	if got, want := l.Names(), []string{"c", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRegistry_FirstUseOrder(t *testing.T) {
	r := NewRegistry()
	r.Use("base", "panel")
	r.Use("card", "base", "panel")
	r.Use("", "card")

	if got, want := r.Used(), []string{"base", "panel", "card"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Used() = %v, want %v", got, want)
	}

	r.Reset()
	if got := r.Used(); len(got) != 0 {
		t.Errorf("Used() after Reset = %v, want empty", got)
	}
	r.Use("panel")
	if got, want := r.Used(), []string{"panel"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Used() after Reset+Use = %v, want %v", got, want)
	}
}

func TestBundle_ConcatenatesInCollectionOrder(t *testing.T) {
	l := NewLibrary()
	l.MustAdd("base", ".a{}")
	l.MustAdd("card", ".b{}\n")
	l.MustAdd("unused", ".z{}")

	out, err := Bundle(l, []string{"card", "base"})
	if err != nil {
		t.Fatalf("Bundle failed: %v", err)
	}
	if out != ".b{}\n.a{}\n" {
		t.Errorf("Bundle = %q", out)
	}
	if strings.Contains(out, ".z{}") {
		t.Error("Bundle emitted a style that was never collected")
	}
}

func TestBundle_MissingStyleIsConfigurationError(t *testing.T) {
	l := NewLibrary()
	l.MustAdd("base", ".a{}")

	_, err := Bundle(l, []string{"base", "ghost"})
	if err == nil {
		t.Fatal("Bundle with unregistered name succeeded")
	}
	if !errors.IsKind(err, errors.KindConfiguration) {
		t.Errorf("error kind = %v, want configuration", errors.KindOf(err))
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error does not name the missing style: %v", err)
	}
}

func TestBundle_Deterministic(t *testing.T) {
	l := NewLibrary()
	l.MustAdd("a", ".a{}")
	l.MustAdd("b", ".b{}")

	first, err := Bundle(l, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Bundle failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Bundle(l, []string{"a", "b"})
		if err != nil {
			t.Fatalf("Bundle failed: %v", err)
		}
		if again != first {
			t.Fatalf("Bundle output changed between runs: %q vs %q", first, again)
		}
	}
}
