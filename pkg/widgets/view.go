package widgets

import (
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/registry"
)

// View is the generic container widget. It materializes an element
// carrying the View class, block by stylesheet, and holds its children
// in construction order.
//
// Example:
//
//	View{
//	    ID: "hero",
//	    Children: []core.Widget{
//	        Text{Content: "Welcome"},
//	        LinkOf("/docs", "Get started"),
//	    },
//	}
type View struct {
	core.HostBase
	// ID is rendered as the id attribute when non-empty.
	ID string
	// Attrs holds per-instance attribute overrides.
	Attrs map[string]string
	// Children are rendered in order.
	Children []core.Widget
}

func (v View) WidgetType() registry.TypeID { return TypeView }

func (v View) InstanceAttrs() map[string]string {
	return attrsWithID(v.Attrs, v.ID)
}

func (v View) EventBindings() []core.EventBinding { return nil }

func (v View) ChildWidgets() []core.Widget { return v.Children }
