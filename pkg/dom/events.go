package dom

import "github.com/go-glaze/glaze/pkg/errors"

// Handler reacts to an event delivered to a node.
type Handler func(*Event)

// Event is a dispatched UI event. Value carries the payload for value
// events (input), and is empty otherwise.
type Event struct {
	Type    string
	Target  *Node
	Value   string
	stopped bool
}

// StopPropagation prevents the event from bubbling further up the tree.
func (e *Event) StopPropagation() { e.stopped = true }

type listener struct {
	fn Handler
}

// On registers a handler for the named event and returns a function that
// removes it again. The handler fires at most once per removal.
func (n *Node) On(event string, h Handler) func() {
	if h == nil {
		return func() {}
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: h}
	n.listeners[event] = append(n.listeners[event], l)
	return func() {
		for i, cur := range n.listeners[event] {
			if cur == l {
				n.listeners[event][i] = nil
				return
			}
		}
	}
}

// HasListener reports whether any handler is registered for event.
func (n *Node) HasListener(event string) bool {
	for _, l := range n.listeners[event] {
		if l != nil {
			return true
		}
	}
	return false
}

// Dispatch delivers the event to n's handlers and then bubbles it toward
// the root until a handler stops propagation. A panicking handler is
// reported through the error handler and does not take down the dispatch.
func (n *Node) Dispatch(ev *Event) {
	if ev == nil {
		return
	}
	if ev.Target == nil {
		ev.Target = n
	}
	for cur := n; cur != nil; cur = cur.parent {
		for _, l := range cur.listeners[ev.Type] {
			if l == nil {
				continue
			}
			invoke(l.fn, ev)
			if ev.stopped {
				return
			}
		}
		if ev.stopped {
			return
		}
	}
}

func invoke(h Handler, ev *Event) {
	defer errors.Recover("dom.Dispatch")
	h(ev)
}
