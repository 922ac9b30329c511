// Package core provides the widget and element framework interfaces and lifecycle.
//
// This package defines the foundational types for building declarative
// markup trees: Widget, Element, State, and BuildContext. Widgets describe
// what the page should contain; elements instantiate widgets at a location
// in the tree and drive their lifecycle; rendered output is a dom.Node
// tree the elements keep in sync.
//
// # Core Types
//
// Widget is an immutable description of part of the page. Widgets are
// lightweight configuration values created freely on every build.
//
// Element is the instantiation of a Widget at a particular location in the
// tree. Elements manage lifecycle and identity. Host elements materialize a
// markup node; stateless and stateful elements compose other widgets.
//
// # Stateful Widgets
//
// State lives outside the widget value, as an immutable snapshot of
// JSON-serializable fields. Embed StateBase in your state struct, seed
// the record once in InitState, and transition it through SetState:
//
//	type counterState struct {
//	    core.StateBase
//	}
//
//	func (s *counterState) InitState() {
//	    s.Seed(func(d *core.Draft) { d.Set("count", 0) })
//	}
//
//	func (s *counterState) Build(ctx core.BuildContext) core.Widget {
//	    n := s.Snapshot().Int("count")
//	    return widgets.Button{
//	        Label: fmt.Sprintf("Count: %d", n),
//	        OnClick: func(*dom.Event) {
//	            s.SetState(func(d *core.Draft) { d.Set("count", n+1) })
//	        },
//	    }
//	}
//
// SetState is synchronous: the transition commits a fresh snapshot, the
// subtree rebuilds, and the rendered nodes are replaced before SetState
// returns. There is no diffing; a rebuild replaces the whole subtree at
// its mount point.
//
// # Constructor Conventions
//
// Widgets are struct literals. Long-lived mutable objects (owners,
// registries) use NewX() constructors returning pointers.
package core
