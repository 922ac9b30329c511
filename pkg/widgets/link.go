package widgets

import (
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/registry"
)

// Link is a hyperlink widget. Its type declares the "a" tag, so links
// render as real anchors in development and production alike.
//
// Example:
//
//	LinkOf("/docs", "Read the docs")
//
// A Child widget replaces the Text label when set:
//
//	Link{Href: "/", Child: Image{Src: "/logo.png", Alt: "home"}}
type Link struct {
	core.HostBase
	// Href is the link target.
	Href string
	// Text is the link label. Ignored when Child is set.
	Text string
	// Child optionally replaces the text label.
	Child core.Widget
	// Attrs holds per-instance attribute overrides.
	Attrs map[string]string
}

// LinkOf creates a text link.
//
// This is a convenience helper equivalent to:
//
//	Link{Href: href, Text: text}
func LinkOf(href, text string) Link {
	return Link{Href: href, Text: text}
}

func (l Link) WidgetType() registry.TypeID { return TypeLink }

func (l Link) InstanceAttrs() map[string]string {
	if l.Href == "" {
		return l.Attrs
	}
	return attrsWith(l.Attrs, "href", l.Href)
}

func (l Link) EventBindings() []core.EventBinding { return nil }

func (l Link) ChildWidgets() []core.Widget {
	if l.Child != nil {
		return []core.Widget{l.Child}
	}
	if l.Text == "" {
		return nil
	}
	return []core.Widget{core.TextLeaf{Content: l.Text}}
}
