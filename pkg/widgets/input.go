package widgets

import (
	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/registry"
)

// Input is a single-line text input. OnChange receives the input's new
// value from the change event.
//
// Example:
//
//	Input{
//	    Value:       name,
//	    Placeholder: "Your name",
//	    OnChange:    func(v string) { s.SetState(func(d *core.Draft) { d.Set("name", v) }) },
//	}
type Input struct {
	core.HostBase
	// Value is the current input value.
	Value string
	// Placeholder is shown while the input is empty.
	Placeholder string
	// Kind is the input's type attribute. Empty means "text".
	Kind string
	// OnChange is called with the new value on change events.
	OnChange func(value string)
	// Attrs holds per-instance attribute overrides.
	Attrs map[string]string
}

func (in Input) WidgetType() registry.TypeID { return TypeInput }

func (in Input) InstanceAttrs() map[string]string {
	kind := in.Kind
	if kind == "" {
		kind = "text"
	}
	pairs := []string{"type", kind}
	if in.Value != "" {
		pairs = append(pairs, "value", in.Value)
	}
	if in.Placeholder != "" {
		pairs = append(pairs, "placeholder", in.Placeholder)
	}
	return attrsWith(in.Attrs, pairs...)
}

func (in Input) EventBindings() []core.EventBinding {
	if in.OnChange == nil {
		return nil
	}
	onChange := in.OnChange
	return []core.EventBinding{{
		Event:   "change",
		Handler: func(e *dom.Event) { onChange(e.Value) },
	}}
}

func (in Input) ChildWidgets() []core.Widget { return nil }
