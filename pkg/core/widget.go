package core

import (
	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/registry"
)

// Widget is an immutable description of part of the page.
type Widget interface {
	// CreateElement returns a fresh, unconfigured element for this widget
	// kind. The framework wires the widget and owner in afterwards.
	CreateElement() Element
	// Key distinguishes otherwise identical widgets. Unused by the
	// replacement renderer but carried on the interface for callers that
	// label widgets.
	Key() any
}

// StatelessWidget composes other widgets from its immutable fields.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget owns a State that survives rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// HostWidget materializes a markup node. Its widget type descriptor
// determines tag, classes, styles, and default attributes.
type HostWidget interface {
	Widget
	// WidgetType returns the registered descriptor ID.
	WidgetType() registry.TypeID
	// InstanceAttrs returns per-instance attribute overrides.
	InstanceAttrs() map[string]string
	// EventBindings returns the event handlers to attach to the node.
	EventBindings() []EventBinding
	// ChildWidgets returns the children in construction order.
	ChildWidgets() []Widget
}

// State holds the mutable side of a stateful widget.
// Embed StateBase to get Seed, Snapshot, SetState, and disposal handling.
type State interface {
	// InitState runs exactly once, before the first build. It seeds the
	// state record and must not trigger a rebuild.
	InitState()
	// Build produces the widget subtree from the current snapshot.
	Build(ctx BuildContext) Widget
	// Dispose releases resources when the element unmounts.
	Dispose()
}

// BuildContext is the element-side view a Build method receives.
type BuildContext interface {
	// Widget returns the widget this context belongs to.
	Widget() Widget
	// Mode reports whether the tree renders in development or production.
	Mode() registry.Mode
	// FindAncestor walks up the element tree and returns the first
	// ancestor for which predicate holds.
	FindAncestor(predicate func(Element) bool) Element
}

// Element is the instantiation of a widget in the tree.
type Element interface {
	Widget() Widget
	Mount(parent Element, slot any)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	VisitChildren(visitor func(Element) bool)
	Depth() int
}

// EventBinding pairs an event name with its handler.
type EventBinding struct {
	Event   string
	Handler dom.Handler
}

// TextLeaf is the primitive text widget. It renders as a bare text node
// with no element wrapper.
type TextLeaf struct {
	Content string
}

// CreateElement returns a new TextElement.
func (TextLeaf) CreateElement() Element { return NewTextElement() }

// Key returns nil (no key).
func (TextLeaf) Key() any { return nil }

// StatelessBase provides default CreateElement and Key implementations for
// stateless widgets. Embed it in your widget struct to satisfy the Widget
// interface without boilerplate:
//
//	type Greeting struct {
//	    core.StatelessBase
//	    Name string
//	}
//
//	func (g Greeting) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: "Hello, " + g.Name}
//	}
type StatelessBase struct{}

// CreateElement returns a new StatelessElement.
func (StatelessBase) CreateElement() Element { return NewStatelessElement() }

// Key returns nil (no key).
func (StatelessBase) Key() any { return nil }

// StatefulBase provides default CreateElement and Key implementations for
// stateful widgets. Embed it in your widget struct to satisfy the Widget
// interface without boilerplate:
//
//	type Counter struct {
//	    core.StatefulBase
//	}
//
//	func (Counter) CreateState() core.State { return &counterState{} }
type StatefulBase struct{}

// CreateElement returns a new StatefulElement.
func (StatefulBase) CreateElement() Element { return NewStatefulElement() }

// Key returns nil (no key).
func (StatefulBase) Key() any { return nil }

// HostBase provides default CreateElement and Key implementations for
// host widgets. The embedding struct still implements the descriptive
// HostWidget methods itself.
type HostBase struct{}

// CreateElement returns a new HostElement.
func (HostBase) CreateElement() Element { return NewHostElement() }

// Key returns nil (no key).
func (HostBase) Key() any { return nil }
