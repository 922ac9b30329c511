// Package hydrate restores frozen stateful widgets to live trees.
//
// Freezing embeds a bootstrap script under each stateful anchor; the
// script carries the registered type name and the serialized state
// record. Hydration runs the handoff in the other direction: locate the
// anchor, decode the payload, look up the registered factory, and mount
// a fresh instance seeded with the frozen state. After the handoff the
// tree behaves exactly as a dev-rendered one.
//
// The package is usable without a browser: parse frozen markup with
// dom.ParseFragmentString, then RehydrateAll over the fragment.
package hydrate

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/render"
)

// Factory builds a fresh instance of a registered stateful widget type.
type Factory func() core.StatefulWidget

// TypeName returns the hydration name of a widget: its bare Go type
// name. Freezing records this name in the bootstrap payload, so
// registrations use it too:
//
//	hydrate.MustRegister(hydrate.TypeName(CounterView{}), func() core.StatefulWidget {
//	    return CounterView{}
//	})
//
// Anonymous and local types have no name and cannot hydrate.
func TypeName(w core.Widget) string {
	t := reflect.TypeOf(w)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes a stateful widget type hydratable under name. The
// freezer refuses to freeze a stateful widget whose type name has no
// registration, so pages never ship payloads nothing can restore.
func Register(name string, factory Factory) error {
	const op = "hydrate.Register"
	if name == "" {
		return errors.Configuration(op, fmt.Errorf("type name must not be empty"))
	}
	if factory == nil {
		return errors.Configuration(op, fmt.Errorf("factory for %q must not be nil", name))
	}
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if _, dup := factories[name]; dup {
		return errors.Configuration(op, fmt.Errorf("type %q already registered", name))
	}
	factories[name] = factory
	return nil
}

// MustRegister is Register, panicking on failure.
// Intended for package-level registrations.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Registered reports whether name has a hydration factory.
func Registered(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// Rehydrate restores the stateful widget anchored at anchor: the
// bootstrap payload is decoded, the registered factory instantiates a
// fresh widget, and the widget mounts seeded with the frozen state.
// The returned tree is live; the frozen anchor itself stays inert.
func Rehydrate(anchor *dom.Node, opts render.Options) (*render.Tree, error) {
	const op = "hydrate.Rehydrate"
	script, ok := ExtractBootstrap(anchor)
	if !ok {
		return nil, errors.New(op, errors.KindHydrate, fmt.Errorf("anchor <%s> has no bootstrap script", anchor.Tag()))
	}
	name, seed, err := ParseBootstrap(script)
	if err != nil {
		return nil, err
	}
	factory, ok := Lookup(name)
	if !ok {
		return nil, errors.Configuration(op, fmt.Errorf("stateful type %q not registered for hydration", name))
	}
	widget := factory()
	if widget == nil {
		return nil, errors.Configuration(op, fmt.Errorf("factory for %q returned nil", name))
	}
	return render.MountSeeded(widget, seed, opts)
}

// RehydrateAll restores every top-level stateful anchor under page.
// Anchors nested inside another scripted anchor are skipped; the outer
// instance re-creates them as part of its own fresh subtree. Any
// failure aborts the whole pass.
func RehydrateAll(page *dom.Node, opts render.Options) ([]*render.Tree, error) {
	anchors := scriptedAnchors(page)
	trees := make([]*render.Tree, 0, len(anchors))
	for _, anchor := range anchors {
		tree, err := Rehydrate(anchor, opts)
		if err != nil {
			for _, t := range trees {
				t.Unmount()
			}
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// scriptedAnchors returns the outermost widget anchors carrying a
// bootstrap script, in document order.
func scriptedAnchors(page *dom.Node) []*dom.Node {
	var anchors []*dom.Node
	for _, n := range page.FindByClass(registry.WidgetClass) {
		if _, ok := ExtractBootstrap(n); !ok {
			continue
		}
		if underScriptedAnchor(n, page) {
			continue
		}
		anchors = append(anchors, n)
	}
	return anchors
}

func underScriptedAnchor(n, page *dom.Node) bool {
	for p := n.Parent(); p != nil && p != page; p = p.Parent() {
		if !p.HasClass(registry.WidgetClass) {
			continue
		}
		if _, ok := ExtractBootstrap(p); ok {
			return true
		}
	}
	return false
}
