package widgets

import (
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/registry"
)

// Button is a clickable button widget.
//
// Example using a struct literal:
//
//	Button{
//	    Label:    "Submit",
//	    OnClick:  handleSubmit,
//	    Disabled: !valid,
//	}
//
// Example using the helper:
//
//	ButtonOf("Submit", handleSubmit).WithDisabled(!valid)
//
// The click handler fires through the document's event dispatch, so
// tests drive it with dom events and the dev server wires it to real
// browser clicks.
type Button struct {
	core.HostBase
	// Label is the text displayed on the button.
	Label string
	// OnClick is called when the button is clicked.
	OnClick func()
	// Disabled disables the button when true.
	Disabled bool
	// Attrs holds per-instance attribute overrides.
	Attrs map[string]string
}

// ButtonOf creates a button with the given label and click handler.
//
// This is a convenience helper equivalent to:
//
//	Button{Label: label, OnClick: onClick}
func ButtonOf(label string, onClick func()) Button {
	return Button{Label: label, OnClick: onClick}
}

// WithDisabled returns a copy of the button with the given disabled state.
func (b Button) WithDisabled(disabled bool) Button {
	b.Disabled = disabled
	return b
}

func (b Button) WidgetType() registry.TypeID { return TypeButton }

func (b Button) InstanceAttrs() map[string]string {
	if !b.Disabled {
		return b.Attrs
	}
	return attrsWith(b.Attrs, "disabled", "")
}

func (b Button) EventBindings() []core.EventBinding {
	if b.OnClick == nil || b.Disabled {
		return nil
	}
	onClick := b.OnClick
	return []core.EventBinding{{
		Event:   "click",
		Handler: func(*dom.Event) { onClick() },
	}}
}

func (b Button) ChildWidgets() []core.Widget {
	if b.Label == "" {
		return nil
	}
	return []core.Widget{core.TextLeaf{Content: b.Label}}
}
