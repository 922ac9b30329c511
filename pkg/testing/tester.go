package testing

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/freeze"
	"github.com/go-glaze/glaze/pkg/hydrate"
	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/render"
	"github.com/go-glaze/glaze/pkg/style"
)

// WidgetTester mounts widget trees in memory and drives them through
// events, freezing, and rehydration. It wraps a render.Tree; no server
// or browser is involved.
type WidgetTester struct {
	opts  render.Options
	trees []*render.Tree
}

// NewWidgetTester creates a tester that mounts in development mode with
// strict error propagation. Call Cleanup() when done, or use
// NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{
		opts: render.Options{
			Mode:   registry.Development,
			Strict: true,
		},
	}
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via
// t.Cleanup(). This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts every tree the tester holds. Must be called if not
// using NewWidgetTesterWithT.
func (t *WidgetTester) Cleanup() {
	t.unmountAll()
}

// SetMode sets the resolution mode. Must be called before PumpWidget.
func (t *WidgetTester) SetMode(mode registry.Mode) {
	t.opts.Mode = mode
}

// SetRegistry replaces the widget type registry. Must be called before
// PumpWidget.
func (t *WidgetTester) SetRegistry(reg *registry.Registry) {
	t.opts.Registry = reg
}

// SetStyles attaches a style usage collector. Must be called before
// PumpWidget.
func (t *WidgetTester) SetStyles(styles *style.Registry) {
	t.opts.Styles = styles
}

// SetStrict toggles strict error propagation. Must be called before
// PumpWidget.
func (t *WidgetTester) SetStrict(strict bool) {
	t.opts.Strict = strict
}

// PumpWidget unmounts any previous tree and mounts widget fresh. Event
// handlers rebuild synchronously, so no separate pump step exists; the
// tree is fully built when PumpWidget returns.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	t.unmountAll()
	tree, err := render.Mount(widget, t.opts)
	if err != nil {
		return err
	}
	t.trees = []*render.Tree{tree}
	return nil
}

// Tree returns the active tree, or nil before the first PumpWidget.
// After HydrateDocument this is the first rehydrated tree.
func (t *WidgetTester) Tree() *render.Tree {
	if len(t.trees) == 0 {
		return nil
	}
	return t.trees[0]
}

// Trees returns every tree the tester holds. PumpWidget yields one;
// HydrateDocument yields one per top-level anchor.
func (t *WidgetTester) Trees() []*render.Tree {
	return t.trees
}

// RootElement returns the root element of the active tree.
func (t *WidgetTester) RootElement() core.Element {
	tree := t.Tree()
	if tree == nil {
		return nil
	}
	return tree.Root()
}

// Container returns the markup container of the active tree.
func (t *WidgetTester) Container() *dom.Node {
	tree := t.Tree()
	if tree == nil {
		return nil
	}
	return tree.Container()
}

// Find evaluates a finder against the active element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	root := t.RootElement()
	if root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(root),
		finder:   finder,
	}
}

// FindText is shorthand for Find(ByText(text)).
func (t *WidgetTester) FindText(text string) FinderResult {
	return t.Find(ByText(text))
}

// RenderedHTML serializes the active tree to markup.
func (t *WidgetTester) RenderedHTML() (string, error) {
	tree := t.Tree()
	if tree == nil {
		return "", fmt.Errorf("RenderedHTML: no widget pumped")
	}
	return tree.HTML()
}

// FreezeWidget produces the static document for widget. The tester's
// registry is used when opts leaves it unset; freezing always resolves
// in production mode and does not touch the tester's active tree.
func (t *WidgetTester) FreezeWidget(widget core.Widget, opts freeze.Options) (*freeze.Result, error) {
	if opts.Registry == nil {
		opts.Registry = t.opts.Registry
	}
	return freeze.Freeze(context.Background(), widget, opts)
}

// HydrateDocument parses a frozen document and rehydrates every
// top-level anchor in it, replacing the tester's current trees with the
// live results. Stateful types in the document must be registered with
// the hydrate package.
func (t *WidgetTester) HydrateDocument(document string) error {
	page, err := dom.ParseFragmentString(document)
	if err != nil {
		return err
	}
	trees, err := hydrate.RehydrateAll(page, t.opts)
	if err != nil {
		return err
	}
	if len(trees) == 0 {
		return fmt.Errorf("HydrateDocument: no hydration anchors in document")
	}
	t.unmountAll()
	t.trees = trees
	return nil
}

func (t *WidgetTester) unmountAll() {
	for _, tree := range t.trees {
		tree.Unmount()
	}
	t.trees = nil
}

// domNodeOf resolves an element to a markup node: the first node its
// subtree renders, or, for bare text, the node of the nearest enclosing
// host. Tapping a button's label thereby taps the button.
func domNodeOf(e core.Element) *dom.Node {
	if e == nil {
		return nil
	}
	var node *dom.Node
	walkTree(e, func(el core.Element) bool {
		if node != nil {
			return false
		}
		if host, ok := el.(*core.HostElement); ok {
			node = host.Node()
			return false
		}
		return true
	})
	if node != nil {
		return node
	}
	climber, ok := e.(interface {
		FindAncestor(predicate func(core.Element) bool) core.Element
	})
	if !ok {
		return nil
	}
	ancestor := climber.FindAncestor(func(a core.Element) bool {
		_, isHost := a.(*core.HostElement)
		return isHost
	})
	if host, ok := ancestor.(*core.HostElement); ok {
		return host.Node()
	}
	return nil
}
