package registry

import (
	"reflect"
	"testing"
)

// buildHierarchy registers View <- Panel <- Card with overlapping
// defaults so precedence is observable at every level.
func buildHierarchy(t *testing.T) (*Registry, TypeID) {
	t.Helper()
	r := New()
	view := r.MustRegister(Spec{
		Name:   "View",
		Styles: []string{"base"},
		Attrs:  map[string]string{"role": "group", "data-layer": "view"},
	})
	panel := r.MustRegister(Spec{
		Name:    "Panel",
		Extends: view,
		Styles:  []string{"panel", "base"},
		Attrs:   map[string]string{"data-layer": "panel", "data-pad": "8"},
	})
	card := r.MustRegister(Spec{
		Name:    "Card",
		Extends: panel,
		Styles:  []string{"card"},
		Attrs:   map[string]string{"data-pad": "12"},
	})
	return r, card
}

func TestResolve_AttributePrecedence(t *testing.T) {
	r, card := buildHierarchy(t)

	res, err := r.Resolve(card, map[string]string{"data-layer": "instance", "title": "hi"}, Development)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := map[string]string{
		"role":       "group",    // only the root declares it
		"data-pad":   "12",       // Card overrides Panel
		"data-layer": "instance", // instance overrides Panel which overrode View
		"title":      "hi",       // instance-only
	}
	if !reflect.DeepEqual(res.Attrs, want) {
		t.Errorf("Attrs = %v, want %v", res.Attrs, want)
	}
}

func TestResolve_ClassListRootToSpecific(t *testing.T) {
	r, card := buildHierarchy(t)

	res, err := r.Resolve(card, nil, Production)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	want := []string{"View", "Panel", "Card", WidgetClass}
	if !reflect.DeepEqual(res.Classes, want) {
		t.Errorf("Classes = %v, want %v", res.Classes, want)
	}
}

func TestResolve_ClassAttributeFoldsIntoClassList(t *testing.T) {
	r := New()
	base := r.MustRegister(Spec{
		Name:  "Chip",
		Attrs: map[string]string{"class": "pill rounded"},
	})

	res, err := r.Resolve(base, map[string]string{"class": "rounded accent"}, Development)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if _, ok := res.Attrs["class"]; ok {
		t.Errorf("Attrs leaked a class key: %v", res.Attrs)
	}
	want := []string{"Chip", "pill", "rounded", "accent", WidgetClass}
	if !reflect.DeepEqual(res.Classes, want) {
		t.Errorf("Classes = %v, want %v", res.Classes, want)
	}
}

func TestResolve_DeclaredTagHonoredInBothModes(t *testing.T) {
	r := New()
	text := r.MustRegister(Spec{Name: "Text"})
	link := r.MustRegister(Spec{Name: "Link", Extends: text, Tag: "a"})
	fancy := r.MustRegister(Spec{Name: "FancyLink", Extends: link})

	for _, mode := range []Mode{Development, Production} {
		res, err := r.Resolve(link, nil, mode)
		if err != nil {
			t.Fatalf("Resolve(Link, %v) failed: %v", mode, err)
		}
		if res.Tag != "a" {
			t.Errorf("Link tag in %v = %q, want %q", mode, res.Tag, "a")
		}

		// The declared tag is inherited by subtypes.
		res, err = r.Resolve(fancy, nil, mode)
		if err != nil {
			t.Fatalf("Resolve(FancyLink, %v) failed: %v", mode, err)
		}
		if res.Tag != "a" {
			t.Errorf("FancyLink tag in %v = %q, want %q", mode, res.Tag, "a")
		}
	}
}

func TestResolve_SubtypeTagOverridesAncestor(t *testing.T) {
	r := New()
	box := r.MustRegister(Spec{Name: "Box", Tag: "div"})
	nav := r.MustRegister(Spec{Name: "NavBox", Extends: box, Tag: "nav"})

	res, err := r.Resolve(nav, nil, Production)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Tag != "nav" {
		t.Errorf("NavBox tag = %q, want %q", res.Tag, "nav")
	}
}

func TestResolve_TagFallbackByMode(t *testing.T) {
	r := New()
	base := r.MustRegister(Spec{Name: "Blank"})
	sub := r.MustRegister(Spec{Name: "BlankChild", Extends: base})

	dev, err := r.Resolve(sub, nil, Development)
	if err != nil {
		t.Fatalf("Resolve(Development) failed: %v", err)
	}
	if dev.Tag != "blankchild" {
		t.Errorf("development fallback tag = %q, want %q", dev.Tag, "blankchild")
	}

	prod, err := r.Resolve(sub, nil, Production)
	if err != nil {
		t.Fatalf("Resolve(Production) failed: %v", err)
	}
	if prod.Tag != PlaceholderTag {
		t.Errorf("production fallback tag = %q, want %q", prod.Tag, PlaceholderTag)
	}
}

func TestResolve_StylesRootToSpecificWithoutDuplicates(t *testing.T) {
	r, card := buildHierarchy(t)

	res, err := r.Resolve(card, nil, Development)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// "base" appears on both View and Panel but is kept once, at its
	// first (root-most) position.
	want := []string{"base", "panel", "card"}
	if !reflect.DeepEqual(res.Styles, want) {
		t.Errorf("Styles = %v, want %v", res.Styles, want)
	}
}

func TestResolve_RootTypeAlone(t *testing.T) {
	r := New()
	id := r.MustRegister(Spec{Name: "Solo"})

	res, err := r.Resolve(id, nil, Development)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Tag != "solo" {
		t.Errorf("Tag = %q, want %q", res.Tag, "solo")
	}
	if want := []string{"Solo", WidgetClass}; !reflect.DeepEqual(res.Classes, want) {
		t.Errorf("Classes = %v, want %v", res.Classes, want)
	}
	if len(res.Attrs) != 0 {
		t.Errorf("Attrs = %v, want empty", res.Attrs)
	}
	if len(res.Styles) != 0 {
		t.Errorf("Styles = %v, want empty", res.Styles)
	}
}
