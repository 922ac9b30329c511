package core

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/registry"
)

// hostAttacher is implemented by elements that own a markup node children
// can attach into: host elements and the render root.
type hostAttacher interface {
	hostNode() *dom.Node
	syncChildNodes()
}

// nodesProvider exposes the rendered nodes of an element's subtree.
type nodesProvider interface {
	renderedNodes() []*dom.Node
}

type elementBase struct {
	widget     Widget
	parent     Element
	depth      int
	slot       any
	buildOwner *BuildOwner
	dirty      bool
	self       Element
	mounted    bool
	hostParent hostAttacher // nearest ancestor that owns a markup node
}

func (e *elementBase) Widget() Widget {
	return e.widget
}

func (e *elementBase) Depth() int {
	return e.depth
}

func (e *elementBase) MarkNeedsBuild() {
	if e.dirty {
		return
	}
	e.dirty = true
	if e.buildOwner != nil && e.self != nil {
		e.buildOwner.ScheduleBuild(e.self)
	}
}

// Mode reports the resolution mode of the owning tree.
func (e *elementBase) Mode() registry.Mode {
	if e.buildOwner != nil {
		return e.buildOwner.Mode()
	}
	return registry.Development
}

func (e *elementBase) parentElement() Element {
	return e.parent
}

func (e *elementBase) setWidget(widget Widget) {
	e.widget = widget
}

func (e *elementBase) setSelf(self Element) {
	e.self = self
}

func (e *elementBase) setBuildOwner(owner *BuildOwner) {
	e.buildOwner = owner
}

func (e *elementBase) isMounted() bool {
	return e.mounted
}

func (e *elementBase) mountBase(parent Element, slot any) {
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.hostParent = findHostParent(parent)
	e.mounted = true
}

// FindAncestor walks up the element tree and returns the first ancestor
// for which predicate holds.
func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// syncHost resyncs the nearest host ancestor's markup children. Called
// after a rebuild replaced this element's subtree.
func (e *elementBase) syncHost() {
	if e.hostParent != nil {
		e.hostParent.syncChildNodes()
	}
}

// buildAndMount replaces an element's child subtree: the existing child is
// unmounted, buildFn produces the new widget, and the result is inflated
// and mounted. The whole step runs under the owner's in-build guard with
// panic recovery; a failed build reports a BuildError and yields either
// the configured error widget or nothing. In strict mode the error
// propagates instead, aborting the walk.
func (e *elementBase) buildAndMount(existing Element, buildFn func() Widget) Element {
	if existing != nil {
		existing.Unmount()
	}

	var child Element
	var buildErr *errors.BuildError
	rethrown := false

	func() {
		if e.buildOwner != nil {
			e.buildOwner.beginBuild()
			defer e.buildOwner.endBuild()
		}
		defer func() {
			if r := recover(); r != nil {
				if be, ok := r.(*errors.BuildError); ok {
					buildErr = be
					rethrown = true
					return
				}
				buildErr = &errors.BuildError{
					Widget:     reflect.TypeOf(e.widget).String(),
					Element:    reflect.TypeOf(e.self).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built := buildFn()
		child = mountChild(built, e.self, e.buildOwner)
	}()

	if buildErr == nil {
		return child
	}

	if !rethrown {
		errors.ReportBuildError(buildErr)
	}
	if e.buildOwner != nil && e.buildOwner.Strict() {
		panic(buildErr)
	}
	if builder := GetErrorWidgetBuilder(); builder != nil {
		if errWidget := builder(buildErr); errWidget != nil {
			return mountFallback(errWidget, e.self, e.buildOwner)
		}
	}
	return nil
}

// TextElement hosts a TextLeaf as a bare text node.
type TextElement struct {
	elementBase
	node *dom.Node
}

// NewTextElement creates an unconfigured text element.
func NewTextElement() *TextElement {
	return &TextElement{}
}

func (e *TextElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	leaf, ok := e.widget.(TextLeaf)
	if !ok {
		panic(errors.TypeMismatch("core.TextElement.Mount", e.widget))
	}
	e.node = dom.NewText(leaf.Content)
}

func (e *TextElement) Unmount() {
	e.mounted = false
	if e.node != nil {
		e.node.Detach()
	}
}

func (e *TextElement) RebuildIfNeeded() {
	e.dirty = false
}

func (e *TextElement) VisitChildren(visitor func(Element) bool) {}

func (e *TextElement) renderedNodes() []*dom.Node {
	if e.node == nil {
		return nil
	}
	return []*dom.Node{e.node}
}

// StatelessElement hosts a StatelessWidget.
type StatelessElement struct {
	elementBase
	child Element
}

// NewStatelessElement creates an unconfigured stateless element.
func NewStatelessElement() *StatelessElement {
	return &StatelessElement{}
}

func (e *StatelessElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatelessElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
}

func (e *StatelessElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	widget, ok := e.widget.(StatelessWidget)
	if !ok {
		panic(errors.TypeMismatch("core.StatelessElement.Build", e.widget))
	}
	e.child = e.buildAndMount(e.child, func() Widget {
		return widget.Build(e)
	})
	e.syncHost()
}

func (e *StatelessElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *StatelessElement) renderedNodes() []*dom.Node {
	return childNodes(e.child)
}

// StatefulElement hosts a StatefulWidget and its State.
type StatefulElement struct {
	elementBase
	child Element
	state State
}

// NewStatefulElement creates an unconfigured stateful element.
func NewStatefulElement() *StatefulElement {
	return &StatefulElement{}
}

// State returns the state instance owned by this element.
func (e *StatefulElement) State() State {
	return e.state
}

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	widget, ok := e.widget.(StatefulWidget)
	if !ok {
		panic(errors.TypeMismatch("core.StatefulElement.Mount", e.widget))
	}
	e.state = widget.CreateState()
	if e.state == nil {
		panic(errors.Configuration("core.StatefulElement.Mount",
			fmt.Errorf("%s: CreateState returned nil", reflect.TypeOf(e.widget))))
	}

	lc, guarded := e.state.(stateLifecycle)
	if guarded {
		lc.attachElement(e)
		lc.beginInit()
	}
	e.state.InitState()
	if guarded {
		lc.finishInit()
		if e.buildOwner != nil {
			if seed, ok := e.buildOwner.takeSeed(); ok {
				lc.restore(seed)
			}
		}
	}

	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.state != nil {
		e.state.Dispose()
	}
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	e.child = e.buildAndMount(e.child, func() Widget {
		return e.state.Build(e)
	})
	e.syncHost()
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *StatefulElement) renderedNodes() []*dom.Node {
	return childNodes(e.child)
}

// AnchorNode returns the root markup node of the stateful widget's built
// subtree, or nil when the subtree renders no element. Freezing appends
// the widget's hydration bootstrap to this node.
func (e *StatefulElement) AnchorNode() *dom.Node {
	nodes := childNodes(e.child)
	for _, n := range nodes {
		if n.Kind() == dom.ElementNode {
			return n
		}
	}
	return nil
}

// HostElement hosts a HostWidget and owns its markup node.
type HostElement struct {
	elementBase
	node     *dom.Node
	children []Element
}

// NewHostElement creates an unconfigured host element.
func NewHostElement() *HostElement {
	return &HostElement{}
}

// Node returns the markup node this element materialized.
func (e *HostElement) Node() *dom.Node {
	return e.node
}

func (e *HostElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	widget, ok := e.widget.(HostWidget)
	if !ok {
		panic(errors.TypeMismatch("core.HostElement.Mount", e.widget))
	}

	resolved, err := resolveFor(e.buildOwner, widget)
	if err != nil {
		panic(err)
	}
	e.node = dom.NewElement(resolved.Tag)
	for _, class := range resolved.Classes {
		e.node.AddClass(class)
	}
	for key, value := range resolved.Attrs {
		e.node.SetAttr(key, value)
	}
	for _, binding := range widget.EventBindings() {
		if binding.Event != "" && binding.Handler != nil {
			e.node.On(binding.Event, binding.Handler)
		}
	}

	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *HostElement) Unmount() {
	e.mounted = false
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil
	if e.node != nil {
		e.node.Teardown()
		e.node.Detach()
	}
}

func (e *HostElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false

	widget := e.widget.(HostWidget)
	for _, child := range e.children {
		child.Unmount()
	}
	childWidgets := widget.ChildWidgets()
	e.children = make([]Element, 0, len(childWidgets))
	for _, childWidget := range childWidgets {
		if childWidget == nil {
			continue
		}
		child := inflateWidget(childWidget, e.buildOwner)
		e.children = append(e.children, child)
		child.Mount(e, nil)
	}
	e.syncChildNodes()
}

func (e *HostElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

func (e *HostElement) hostNode() *dom.Node {
	return e.node
}

// syncChildNodes rebuilds the markup child list from the element children
// in construction order. Rebuilds resync through here rather than
// splicing, so replacement stays positionally exact.
func (e *HostElement) syncChildNodes() {
	if e.node == nil {
		return
	}
	var nodes []*dom.Node
	for _, child := range e.children {
		nodes = append(nodes, childNodes(child)...)
	}
	e.node.SetChildren(nodes)
}

func (e *HostElement) renderedNodes() []*dom.Node {
	if e.node == nil {
		return nil
	}
	return []*dom.Node{e.node}
}

// RootElement anchors a widget tree inside a markup container, usually a
// fragment. It is the mount point renderers attach to.
type RootElement struct {
	elementBase
	container *dom.Node
	child     Element
}

// NewRootElement creates a root over the given container node.
func NewRootElement(container *dom.Node, owner *BuildOwner) *RootElement {
	e := &RootElement{container: container}
	e.buildOwner = owner
	e.setSelf(e)
	e.mounted = true
	return e
}

// Container returns the markup node the tree renders into.
func (e *RootElement) Container() *dom.Node {
	return e.container
}

// Attach inflates and mounts widget as the root of the tree, replacing
// any previous root. Errors that abort the walk are returned rather than
// reported: an unresolvable type, a mismatched widget kind, or, in strict
// mode, any failed build.
func (e *RootElement) Attach(widget Widget) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError("core.Attach", r)
		}
	}()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if widget == nil {
		e.syncChildNodes()
		return nil
	}
	child := inflateWidget(widget, e.buildOwner)
	e.child = child
	child.Mount(e, nil)
	e.syncChildNodes()
	return nil
}

// AttachSeeded is Attach with a hydration seed: the first stateful element
// mounted during the walk restores the seed over its InitState defaults.
// When widget itself is stateful, that is widget's own state.
func (e *RootElement) AttachSeeded(widget Widget, seed Snapshot) error {
	if e.buildOwner != nil {
		e.buildOwner.setSeed(seed)
		defer e.buildOwner.clearSeed()
	}
	return e.Attach(widget)
}

func (e *RootElement) Mount(parent Element, slot any) {}

func (e *RootElement) Unmount() {
	e.mounted = false
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.container != nil {
		e.container.SetChildren(nil)
	}
}

func (e *RootElement) RebuildIfNeeded() {
	e.dirty = false
}

func (e *RootElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *RootElement) hostNode() *dom.Node {
	return e.container
}

func (e *RootElement) syncChildNodes() {
	if e.container == nil {
		return
	}
	e.container.SetChildren(childNodes(e.child))
}

// findHostParent walks up from parent to the nearest element owning a
// markup node.
func findHostParent(parent Element) hostAttacher {
	current := parent
	for current != nil {
		if attacher, ok := current.(hostAttacher); ok {
			return attacher
		}
		if base, ok := current.(interface{ parentElement() Element }); ok {
			current = base.parentElement()
		} else {
			break
		}
	}
	return nil
}

// childNodes returns the rendered nodes of an element subtree.
func childNodes(child Element) []*dom.Node {
	if child == nil {
		return nil
	}
	if provider, ok := child.(nodesProvider); ok {
		return provider.renderedNodes()
	}
	return nil
}

// mountChild inflates and mounts a built widget under parent.
func mountChild(widget Widget, parent Element, owner *BuildOwner) Element {
	if widget == nil {
		return nil
	}
	child := inflateWidget(widget, owner)
	child.Mount(parent, nil)
	return child
}

// mountFallback mounts an error widget, swallowing any secondary failure.
func mountFallback(widget Widget, parent Element, owner *BuildOwner) (child Element) {
	defer func() {
		if recover() != nil {
			child = nil
		}
	}()
	return mountChild(widget, parent, owner)
}

// inflateWidget creates and wires the element for a widget. A widget
// whose CreateElement yields nothing cannot participate in the tree.
func inflateWidget(widget Widget, owner *BuildOwner) Element {
	element := widget.CreateElement()
	if element == nil {
		panic(errors.TypeMismatch("core.inflateWidget", widget))
	}
	if setter, ok := element.(interface{ setWidget(Widget) }); ok {
		setter.setWidget(widget)
	}
	if setter, ok := element.(interface{ setBuildOwner(*BuildOwner) }); ok {
		setter.setBuildOwner(owner)
	}
	if setter, ok := element.(interface{ setSelf(Element) }); ok {
		setter.setSelf(element)
	}
	return element
}

// resolveFor resolves a host widget's type through the owner, falling
// back to the default registry in development mode for ownerless mounts.
func resolveFor(owner *BuildOwner, widget HostWidget) (registry.Resolved, error) {
	if owner != nil {
		return owner.resolveType(widget.WidgetType(), widget.InstanceAttrs())
	}
	return registry.Default.Resolve(widget.WidgetType(), widget.InstanceAttrs(), registry.Development)
}

// recoveredError normalizes a recovered panic into an error.
func recoveredError(op string, r any) error {
	switch t := r.(type) {
	case *errors.Error:
		return t
	case *errors.BuildError:
		return t
	case error:
		return errors.New(op, errors.KindPanic, t)
	default:
		return errors.New(op, errors.KindPanic, fmt.Errorf("%v", t))
	}
}
