package widgets

import (
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/registry"
)

// Text renders a run of text, inline by stylesheet. The content becomes
// a text node child, so markup in Content is escaped, never interpreted.
type Text struct {
	core.HostBase
	// Content is the text to display.
	Content string
	// Attrs holds per-instance attribute overrides.
	Attrs map[string]string
}

func (t Text) WidgetType() registry.TypeID { return TypeText }

func (t Text) InstanceAttrs() map[string]string { return t.Attrs }

func (t Text) EventBindings() []core.EventBinding { return nil }

func (t Text) ChildWidgets() []core.Widget {
	return []core.Widget{core.TextLeaf{Content: t.Content}}
}
