package testing

import (
	"fmt"

	"github.com/go-glaze/glaze/pkg/dom"
)

// Tap dispatches a click event to the first element matched by finder.
// Any SetState the handler runs has completed, subtree replaced, by the
// time Tap returns.
func (t *WidgetTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no elements: %s", finder.Description())
	}
	node := domNodeOf(result.First())
	if node == nil {
		return fmt.Errorf("Tap: element renders no markup node: %s", finder.Description())
	}
	node.Dispatch(&dom.Event{Type: "click"})
	return nil
}

// EnterText dispatches a change event carrying value to the first
// element matched by finder, the way a browser reports an edited input.
func (t *WidgetTester) EnterText(finder Finder, value string) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("EnterText: finder matched no elements: %s", finder.Description())
	}
	node := domNodeOf(result.First())
	if node == nil {
		return fmt.Errorf("EnterText: element renders no markup node: %s", finder.Description())
	}
	node.Dispatch(&dom.Event{Type: "change", Value: value})
	return nil
}

// Dispatch delivers an arbitrary event to the markup node of the first
// element matched by finder. The event bubbles from that node toward
// the container.
func (t *WidgetTester) Dispatch(finder Finder, event *dom.Event) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Dispatch: finder matched no elements: %s", finder.Description())
	}
	node := domNodeOf(result.First())
	if node == nil {
		return fmt.Errorf("Dispatch: element renders no markup node: %s", finder.Description())
	}
	node.Dispatch(event)
	return nil
}
