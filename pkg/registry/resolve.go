package registry

import (
	"fmt"
	"strings"

	"github.com/go-glaze/glaze/pkg/errors"
)

// Resolved is the flattened rendering view of a widget type: the element
// tag, the ordered class list, the merged attributes, and the style
// references its chain requires.
type Resolved struct {
	// Tag is the element tag name to render.
	Tag string
	// Classes lists type names from the root ancestor down to the concrete
	// type, terminated by WidgetClass. Later entries are more specific.
	Classes []string
	// Attrs holds merged attributes, most specific source winning.
	// It never contains a "class" key; class values fold into Classes.
	Attrs map[string]string
	// Styles lists style-reference names in root-to-specific declaration
	// order, duplicate-free.
	Styles []string
}

// Resolve flattens the inheritance chain of id into its rendering view.
//
// Tag resolution walks from the concrete type toward the root and takes the
// first declared tag; a declared tag is honored in both modes. When no type
// in the chain declares one, Development derives the tag from the concrete
// type name and Production falls back to PlaceholderTag.
//
// Attributes merge root first, so subtypes override ancestors and instance
// attributes override both. A "class" attribute from any source is not
// dropped; its values append to the class list instead.
func (r *Registry) Resolve(id TypeID, instanceAttrs map[string]string, mode Mode) (Resolved, error) {
	const op = "registry.Resolve"

	r.mu.RLock()
	chain, err := r.chain(id)
	r.mu.RUnlock()
	if err != nil {
		if errors.Is(err, errors.ErrCyclicHierarchy) {
			return Resolved{}, errors.Configuration(op, err)
		}
		return Resolved{}, errors.UnresolvedType(op, r.Name(id), err)
	}

	res := Resolved{
		Attrs: make(map[string]string),
	}

	// Tag: nearest declared tag wins, regardless of mode.
	for _, d := range chain {
		if d.tag != "" {
			res.Tag = d.tag
			break
		}
	}
	if res.Tag == "" {
		if mode == Production {
			res.Tag = PlaceholderTag
		} else {
			res.Tag = strings.ToLower(chain[0].name)
		}
	}

	// Classes and attributes accumulate root to specific.
	seenClass := make(map[string]bool)
	addClass := func(c string) {
		if c == "" || seenClass[c] {
			return
		}
		seenClass[c] = true
		res.Classes = append(res.Classes, c)
	}
	seenStyle := make(map[string]bool)
	for i := len(chain) - 1; i >= 0; i-- {
		d := chain[i]
		addClass(d.name)
		for k, v := range d.attrs {
			if k == "class" {
				continue
			}
			res.Attrs[k] = v
		}
		for _, s := range d.styles {
			if s == "" || seenStyle[s] {
				continue
			}
			seenStyle[s] = true
			res.Styles = append(res.Styles, s)
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if v, ok := chain[i].attrs["class"]; ok {
			for _, c := range strings.Fields(v) {
				addClass(c)
			}
		}
	}
	for k, v := range instanceAttrs {
		if k == "class" {
			continue
		}
		res.Attrs[k] = v
	}
	if v, ok := instanceAttrs["class"]; ok {
		for _, c := range strings.Fields(v) {
			addClass(c)
		}
	}
	addClass(WidgetClass)

	return res, nil
}

// ResolveName resolves by type name instead of ID.
func (r *Registry) ResolveName(name string, instanceAttrs map[string]string, mode Mode) (Resolved, error) {
	const op = "registry.ResolveName"
	id, ok := r.Lookup(name)
	if !ok {
		return Resolved{}, errors.UnresolvedType(op, name, fmt.Errorf("%w: %q", errors.ErrUnknownType, name))
	}
	return r.Resolve(id, instanceAttrs, mode)
}
