package widgets

import (
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/registry"
)

// Row lays its children out horizontally. Row extends View, so rendered
// rows carry both class names and both style references.
type Row struct {
	core.HostBase
	// Attrs holds per-instance attribute overrides.
	Attrs map[string]string
	// Children are rendered in order.
	Children []core.Widget
}

// RowOf creates a row over the given children.
func RowOf(children ...core.Widget) Row {
	return Row{Children: children}
}

func (r Row) WidgetType() registry.TypeID { return TypeRow }

func (r Row) InstanceAttrs() map[string]string { return r.Attrs }

func (r Row) EventBindings() []core.EventBinding { return nil }

func (r Row) ChildWidgets() []core.Widget { return r.Children }

// Column lays its children out vertically. Column extends View the same
// way Row does.
type Column struct {
	core.HostBase
	// Attrs holds per-instance attribute overrides.
	Attrs map[string]string
	// Children are rendered in order.
	Children []core.Widget
}

// ColumnOf creates a column over the given children.
func ColumnOf(children ...core.Widget) Column {
	return Column{Children: children}
}

func (c Column) WidgetType() registry.TypeID { return TypeColumn }

func (c Column) InstanceAttrs() map[string]string { return c.Attrs }

func (c Column) EventBindings() []core.EventBinding { return nil }

func (c Column) ChildWidgets() []core.Widget { return c.Children }
