// Package render mounts widget trees into an in-memory document and
// serializes the result. It is the development entry point: full tag
// names, live event listeners, formatted markup. The freezer drives the
// same machinery in production mode with strict error handling.
package render

import (
	"fmt"

	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/registry"
	"github.com/go-glaze/glaze/pkg/style"
)

// Options configures a mount.
type Options struct {
	// Mode selects attribute resolution. The zero value is Development.
	Mode registry.Mode

	// Registry is the widget type registry. Nil means registry.Default.
	Registry *registry.Registry

	// Styles, when set, collects the style name of every type chain
	// resolved while building. The freezer uses this to find the exact
	// style subset a page needs.
	Styles *style.Registry

	// Strict aborts the mount on the first failed build instead of
	// rendering an error placeholder in its place.
	Strict bool
}

// Tree is a mounted widget tree: the live elements plus the document
// fragment they materialized into. Listeners stay attached, so events
// dispatched against the fragment reach widget state.
type Tree struct {
	owner     *core.BuildOwner
	root      *core.RootElement
	container *dom.Node
}

// Mount builds widget into a fresh container fragment.
func Mount(widget core.Widget, opts Options) (*Tree, error) {
	return mount(widget, core.Snapshot{}, false, opts)
}

// MountSeeded mounts widget with a state overlay for the first stateful
// element of the walk. Hydration enters here: InitState defaults apply
// first, then the seed, then the first build.
func MountSeeded(widget core.Widget, seed core.Snapshot, opts Options) (*Tree, error) {
	return mount(widget, seed, true, opts)
}

func mount(widget core.Widget, seed core.Snapshot, seeded bool, opts Options) (*Tree, error) {
	if widget == nil {
		return nil, errors.Configuration("render.Mount", fmt.Errorf("nil root widget"))
	}
	owner := core.NewBuildOwner(opts.Registry, opts.Mode)
	owner.SetStrict(opts.Strict)
	if opts.Styles != nil {
		owner.CollectStyles(opts.Styles)
	}

	container := dom.NewFragment()
	root := core.NewRootElement(container, owner)

	var err error
	if seeded {
		err = root.AttachSeeded(widget, seed)
	} else {
		err = root.Attach(widget)
	}
	if err != nil {
		root.Unmount()
		return nil, err
	}
	return &Tree{owner: owner, root: root, container: container}, nil
}

// Container returns the fragment the tree rendered into.
func (t *Tree) Container() *dom.Node {
	return t.container
}

// Owner returns the build owner coordinating this tree.
func (t *Tree) Owner() *core.BuildOwner {
	return t.owner
}

// Root returns the root element, the handle tests use to walk the
// element tree.
func (t *Tree) Root() *core.RootElement {
	return t.root
}

// Unmount tears the tree down: state disposed, listeners released, the
// container emptied.
func (t *Tree) Unmount() {
	t.root.Unmount()
}

// HTML serializes the current tree.
func (t *Tree) HTML() (string, error) {
	return t.container.HTML()
}

// FormattedHTML serializes the current tree with indentation for
// human-readable dev output.
func (t *Tree) FormattedHTML() (string, error) {
	return t.container.FormattedHTML()
}

// Render is the one-shot form: mount widget and return the fragment it
// produced. The tree stays live behind the fragment; use Mount when the
// caller needs to unmount later.
func Render(widget core.Widget, opts Options) (*dom.Node, error) {
	tree, err := Mount(widget, opts)
	if err != nil {
		return nil, err
	}
	return tree.Container(), nil
}

// HTML mounts widget, serializes the fragment, and tears the tree down.
func HTML(widget core.Widget, opts Options) (string, error) {
	tree, err := Mount(widget, opts)
	if err != nil {
		return "", err
	}
	defer tree.Unmount()
	return tree.HTML()
}
