// Package testbed provides internal test widgets for the testing framework.
package testbed

import (
	"strconv"

	"github.com/go-glaze/glaze/pkg/core"
	"github.com/go-glaze/glaze/pkg/hydrate"
	"github.com/go-glaze/glaze/pkg/widgets"
)

func init() {
	hydrate.MustRegister(hydrate.TypeName(Counter{}), func() core.StatefulWidget { return Counter{} })

	hydrate.MustRegister(hydrate.TypeName(EchoInput{}), func() core.StatefulWidget { return EchoInput{} })
}

// Counter displays a count and increments it when its button is clicked.
type Counter struct {
	core.StatefulBase
	Initial int
	OnClick func(count int)
}

func (c Counter) CreateState() core.State {
	return &counterState{initial: c.Initial, onClick: c.OnClick}
}

type counterState struct {
	core.StateBase
	initial int
	onClick func(int)
}

func (s *counterState) InitState() {
	initial := s.initial
	s.Seed(func(d *core.Draft) { d.Set("count", initial) })
}

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	count := s.Snapshot().Int("count")
	return widgets.View{
		Children: []core.Widget{
			widgets.Text{Content: strconv.Itoa(count)},
			widgets.ButtonOf("+", func() {
				s.SetState(func(d *core.Draft) { d.Set("count", count+1) })
				if s.onClick != nil {
					s.onClick(count + 1)
				}
			}),
		},
	}
}

// EchoInput renders an input and mirrors the last entered value.
type EchoInput struct {
	core.StatefulBase
	Placeholder string
}

func (e EchoInput) CreateState() core.State {
	return &echoInputState{placeholder: e.Placeholder}
}

type echoInputState struct {
	core.StateBase
	placeholder string
}

func (s *echoInputState) InitState() {
	s.Seed(func(d *core.Draft) { d.Set("value", "") })
}

func (s *echoInputState) Build(ctx core.BuildContext) core.Widget {
	value := s.Snapshot().String("value")
	return widgets.View{
		Children: []core.Widget{
			widgets.Input{
				Value:       value,
				Placeholder: s.placeholder,
				OnChange: func(v string) {
					s.SetState(func(d *core.Draft) { d.Set("value", v) })
				},
			},
			widgets.Text{Content: value},
		},
	}
}

// Keyed tags its child with a key so tests can target it.
type Keyed struct {
	core.StatelessBase
	KeyValue any
	Child    core.Widget
}

func (k Keyed) Key() any {
	return k.KeyValue
}

func (k Keyed) Build(ctx core.BuildContext) core.Widget {
	return k.Child
}
