package core

import (
	"reflect"
	"sync"

	"github.com/go-glaze/glaze/pkg/errors"
)

type statePhase int

const (
	phaseCreated statePhase = iota
	phaseInitializing
	phaseReady
	phaseDisposed
)

// StateBase provides the state record and lifecycle plumbing for stateful
// widget states. Embed this struct in your state to eliminate boilerplate:
//
//	type myState struct {
//	    core.StateBase
//	}
//
//	func (s *myState) InitState() {
//	    s.Seed(func(d *core.Draft) { d.Set("count", 0) })
//	}
//
// The record is a value: reads go through Snapshot, writes through
// SetState transitions that commit a fresh snapshot before the subtree
// rebuilds.
type StateBase struct {
	element   *StatefulElement
	phase     statePhase
	record    Snapshot
	seeded    bool
	disposers []func()
	mu        sync.Mutex
}

// attachElement stores the element reference for triggering rebuilds.
// Called by the framework during mount.
func (s *StateBase) attachElement(element *StatefulElement) {
	s.element = element
}

// Element returns the element associated with this state.
// Returns nil before mount.
func (s *StateBase) Element() *StatefulElement {
	return s.element
}

func (s *StateBase) beginInit() {
	s.phase = phaseInitializing
	s.record = Snapshot{}
	s.seeded = false
}

func (s *StateBase) finishInit() {
	s.phase = phaseReady
}

// Snapshot returns the current state record. Accessing the record before
// InitState has completed, or after disposal, is a state access violation.
func (s *StateBase) Snapshot() Snapshot {
	if s.phase != phaseReady {
		panic(errors.StateAccess("core.Snapshot", s.widgetName(),
			"state record read "+s.phaseDescription()))
	}
	return s.record
}

// Seed populates the state record. It may be called exactly once, from
// inside InitState.
func (s *StateBase) Seed(fn func(*Draft)) {
	if s.phase != phaseInitializing {
		panic(errors.StateAccess("core.Seed", s.widgetName(),
			"Seed called outside InitState"))
	}
	if s.seeded {
		panic(errors.StateAccess("core.Seed", s.widgetName(),
			"state record seeded twice"))
	}
	s.seeded = true
	draft := s.record.draft()
	if fn != nil {
		fn(draft)
	}
	s.record = draft.commit()
}

// SetState runs a transition against a draft of the record, commits the
// result, and synchronously rebuilds the widget's subtree. The rendered
// nodes are replaced before SetState returns.
//
// Calling SetState while a build is in progress is a state access
// violation: builds must be pure reads of a committed snapshot. After
// disposal SetState is a safe no-op.
func (s *StateBase) SetState(fn func(*Draft)) {
	if s.phase == phaseDisposed {
		return
	}
	owner := s.owner()
	if owner != nil && owner.InBuild() {
		panic(errors.StateAccess("core.SetState", s.widgetName(),
			"SetState during build"))
	}
	if s.phase != phaseReady {
		panic(errors.StateAccess("core.SetState", s.widgetName(),
			"SetState "+s.phaseDescription()))
	}

	draft := s.record.draft()
	if fn != nil {
		fn(draft)
	}
	s.record = draft.commit()

	if s.element == nil {
		return
	}
	s.element.MarkNeedsBuild()
	if owner != nil {
		owner.FlushBuild()
	} else {
		s.element.RebuildIfNeeded()
	}
}

// restore overlays a deserialized record on the seeded defaults.
// Hydration calls this between InitState and the first build.
func (s *StateBase) restore(overlay Snapshot) {
	s.record = s.record.Merge(overlay)
}

// OnDispose registers a cleanup function to run when the state is
// disposed. It returns an unregister function. Cleanups run in reverse
// registration order, once.
func (s *StateBase) OnDispose(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == phaseDisposed {
		cleanup()
		return func() {}
	}

	index := len(s.disposers)
	s.disposers = append(s.disposers, cleanup)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if index < len(s.disposers) {
			s.disposers[index] = nil
		}
	}
}

// RunDisposers executes all registered disposers in reverse order and
// marks the state disposed. Called automatically by Dispose.
func (s *StateBase) RunDisposers() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == phaseDisposed {
		return
	}
	s.phase = phaseDisposed
	s.record = Snapshot{}

	for i := len(s.disposers) - 1; i >= 0; i-- {
		if s.disposers[i] != nil {
			s.disposers[i]()
		}
	}
	s.disposers = nil
}

// Dispose cleans up resources. Override for custom cleanup, but always
// call s.RunDisposers() or s.StateBase.Dispose() in your override.
func (s *StateBase) Dispose() {
	s.RunDisposers()
}

// IsDisposed reports whether this state has been disposed.
func (s *StateBase) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == phaseDisposed
}

// InitState is a no-op default implementation.
// Override it to seed your state record.
func (s *StateBase) InitState() {}

// Build is a default implementation that returns nil.
// Override it to build your widget subtree.
func (s *StateBase) Build(ctx BuildContext) Widget {
	return nil
}

func (s *StateBase) owner() *BuildOwner {
	if s.element == nil {
		return nil
	}
	return s.element.buildOwner
}

func (s *StateBase) widgetName() string {
	if s.element == nil || s.element.widget == nil {
		return ""
	}
	return reflect.TypeOf(s.element.widget).String()
}

func (s *StateBase) phaseDescription() string {
	switch s.phase {
	case phaseCreated:
		return "before InitState"
	case phaseInitializing:
		return "during InitState"
	case phaseDisposed:
		return "after disposal"
	default:
		return "in an unexpected phase"
	}
}

// stateLifecycle is the plumbing the framework drives on a state.
// StateBase provides it; states must embed StateBase (or replicate this)
// to participate in mounting.
type stateLifecycle interface {
	attachElement(*StatefulElement)
	beginInit()
	finishInit()
	restore(Snapshot)
}
