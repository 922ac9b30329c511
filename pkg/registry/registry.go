// Package registry holds widget type descriptors and resolves their
// effective tag, class list, and attributes.
//
// A widget type is a data-only descriptor: a unique name, an optional
// declared tag, a set of style-reference names, and default attributes.
// Types form a single-inheritance hierarchy through an index-based extends
// pointer into the registry's arena. Resolution walks the chain explicitly,
// so inheritance behavior is testable without any live widgets.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-glaze/glaze/pkg/errors"
)

// TypeID identifies a registered widget type inside its registry.
type TypeID int

// NoType marks the absence of a parent type.
const NoType TypeID = -1

// MaxAncestry bounds the inheritance walk. A chain deeper than this is
// treated as cyclic.
const MaxAncestry = 64

// PlaceholderTag is the production tag for types with no declared tag
// anywhere in their chain. It carries no HTML semantics, which gives the
// external minifier maximal freedom to collapse element names.
const PlaceholderTag = "w"

// WidgetClass is the fixed terminal class appended to every resolved class
// list. Hydration uses it to find widget anchors generically.
const WidgetClass = "gz-widget"

// Mode selects development or production resolution behavior.
type Mode int

const (
	// Development resolves human-readable tags derived from type names.
	Development Mode = iota
	// Production resolves the generic placeholder tag unless the chain
	// declares an explicit one.
	Production
)

func (m Mode) String() string {
	if m == Production {
		return "production"
	}
	return "development"
}

// Spec describes a widget type to register.
type Spec struct {
	// Name is the unique type name. It doubles as the type's CSS class.
	Name string
	// Extends points at the parent type, or NoType for a root.
	Extends TypeID
	// Tag optionally declares the rendered element's tag name. Declared
	// tags are inherited and honored in both modes.
	Tag string
	// Styles lists the names of the style sheets this type requires.
	Styles []string
	// Attrs holds default attributes contributed by this type.
	Attrs map[string]string
}

// descriptor is the stored, immutable form of a Spec.
type descriptor struct {
	id      TypeID
	name    string
	extends TypeID
	tag     string
	styles  []string
	attrs   map[string]string
}

// Registry is an arena of widget type descriptors.
// The zero value is not usable; call New.
type Registry struct {
	mu     sync.RWMutex
	types  []descriptor
	byName map[string]TypeID
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{byName: make(map[string]TypeID)}
}

// Register adds a type descriptor and returns its ID.
// The name must be unique and Extends must reference an already registered
// type (or NoType), so well-formed registries cannot contain cycles.
func (r *Registry) Register(s Spec) (TypeID, error) {
	const op = "registry.Register"

	name := strings.TrimSpace(s.Name)
	if name == "" {
		return NoType, errors.Configuration(op, fmt.Errorf("type name must not be empty"))
	}
	if strings.ContainsAny(name, " \t\n\"'<>") {
		return NoType, errors.Configuration(op, fmt.Errorf("type name %q contains markup-unsafe characters", name))
	}
	if tag := s.Tag; tag != strings.TrimSpace(tag) || strings.ContainsAny(tag, " \t\n\"'<>") {
		return NoType, errors.Configuration(op, fmt.Errorf("tag %q for type %q is not a valid element name", s.Tag, name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.byName[name]; dup {
		return NoType, errors.Configuration(op, fmt.Errorf("type %q already registered", name))
	}
	if s.Extends != NoType && (s.Extends < 0 || int(s.Extends) >= len(r.types)) {
		return NoType, errors.Configuration(op, fmt.Errorf("type %q extends unknown type id %d", name, s.Extends))
	}

	d := descriptor{
		id:      TypeID(len(r.types)),
		name:    name,
		extends: s.Extends,
		tag:     s.Tag,
		styles:  append([]string(nil), s.Styles...),
	}
	if len(s.Attrs) > 0 {
		d.attrs = make(map[string]string, len(s.Attrs))
		for k, v := range s.Attrs {
			d.attrs[k] = v
		}
	}

	r.types = append(r.types, d)
	r.byName[name] = d.id
	return d.id, nil
}

// MustRegister is Register, panicking on failure.
// Intended for package-level widget type declarations.
func (r *Registry) MustRegister(s Spec) TypeID {
	id, err := r.Register(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Lookup returns the ID registered under name.
func (r *Registry) Lookup(name string) (TypeID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	return id, ok
}

// Name returns the type name for id, or "" for an unknown ID.
func (r *Registry) Name(id TypeID) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || int(id) >= len(r.types) {
		return ""
	}
	return r.types[id].name
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// chain returns descriptors from the most specific type up to the root.
// The walk is depth-bounded so a corrupted arena surfaces as
// ErrCyclicHierarchy instead of an infinite loop.
func (r *Registry) chain(id TypeID) ([]descriptor, error) {
	if id < 0 || int(id) >= len(r.types) {
		return nil, fmt.Errorf("%w: id %d", errors.ErrUnknownType, id)
	}

	var out []descriptor
	for cur := id; cur != NoType; {
		if len(out) >= MaxAncestry {
			return nil, fmt.Errorf("%w: ancestry of %q exceeds depth %d",
				errors.ErrCyclicHierarchy, r.types[id].name, MaxAncestry)
		}
		if cur < 0 || int(cur) >= len(r.types) {
			return nil, fmt.Errorf("%w: id %d reached via %q", errors.ErrUnknownType, cur, r.types[id].name)
		}
		d := r.types[cur]
		out = append(out, d)
		cur = d.extends
	}
	return out, nil
}

// Default is the registry used by package-level widget declarations.
var Default = New()

// Register adds a type to the Default registry.
func Register(s Spec) (TypeID, error) { return Default.Register(s) }

// MustRegister adds a type to the Default registry, panicking on failure.
func MustRegister(s Spec) TypeID { return Default.MustRegister(s) }

// Lookup finds a type in the Default registry by name.
func Lookup(name string) (TypeID, bool) { return Default.Lookup(name) }
