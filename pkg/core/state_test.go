package core

import (
	"testing"

	"github.com/go-glaze/glaze/pkg/dom"
	"github.com/go-glaze/glaze/pkg/errors"
	"github.com/go-glaze/glaze/pkg/registry"
)

func mountState(t *testing.T, init func(*testState), build func(*testState, BuildContext) Widget) (*RootElement, *testState) {
	t.Helper()
	reg := registry.New()
	box := reg.MustRegister(registry.Spec{Name: "Box", Tag: "div"})
	owner := NewBuildOwner(reg, registry.Development)
	root := NewRootElement(dom.NewFragment(), owner)

	var st *testState
	if build == nil {
		build = func(s *testState, ctx BuildContext) Widget {
			return testHostWidget{typeID: box}
		}
	}
	err := root.Attach(testStatefulWidget{
		createStateFn: func() State {
			st = &testState{initFn: init, buildFn: build}
			return st
		},
	})
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	return root, st
}

func expectStateAccess(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a state access violation")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value is %T, not error", r)
		}
		if !errors.IsKind(err, errors.KindStateAccess) {
			t.Errorf("panic kind = %v, want state access", errors.KindOf(err))
		}
	}()
	fn()
}

func TestStateBase_SnapshotBeforeInitIsViolation(t *testing.T) {
	s := &testState{}
	expectStateAccess(t, func() { s.Snapshot() })
}

func TestStateBase_SnapshotDuringInitIsViolation(t *testing.T) {
	mountState(t, func(s *testState) {
		expectStateAccess(t, func() { s.Snapshot() })
	}, nil)
}

func TestStateBase_SeedOutsideInitStateIsViolation(t *testing.T) {
	_, st := mountState(t, nil, nil)
	expectStateAccess(t, func() {
		st.Seed(func(d *Draft) { d.Set("late", 1) })
	})
}

func TestStateBase_SeedTwiceIsViolation(t *testing.T) {
	mountState(t, func(s *testState) {
		s.Seed(func(d *Draft) { d.Set("a", 1) })
		expectStateAccess(t, func() {
			s.Seed(func(d *Draft) { d.Set("b", 2) })
		})
	}, nil)
}

func TestStateBase_SetStateDuringInitIsViolation(t *testing.T) {
	mountState(t, func(s *testState) {
		expectStateAccess(t, func() {
			s.SetState(func(d *Draft) { d.Set("x", 1) })
		})
	}, nil)
}

func TestStateBase_SetStateAfterDisposeIsNoOp(t *testing.T) {
	root, st := mountState(t, func(s *testState) {
		s.Seed(func(d *Draft) { d.Set("count", 0) })
	}, nil)
	root.Unmount()

	builds := st.builds
	st.SetState(func(d *Draft) { d.Set("count", 7) })
	if st.builds != builds {
		t.Errorf("disposed SetState rebuilt: %d -> %d", builds, st.builds)
	}
	if !st.IsDisposed() {
		t.Error("state not marked disposed after unmount")
	}
}

func TestStateBase_SnapshotAfterDisposeIsViolation(t *testing.T) {
	root, st := mountState(t, func(s *testState) {
		s.Seed(func(d *Draft) { d.Set("count", 0) })
	}, nil)
	root.Unmount()
	expectStateAccess(t, func() { st.Snapshot() })
}

func TestStateBase_TransitionSeesCommittedDraft(t *testing.T) {
	_, st := mountState(t, func(s *testState) {
		s.Seed(func(d *Draft) { d.Set("count", 10) })
	}, nil)

	st.SetState(func(d *Draft) {
		if got := d.Int("count"); got != 10 {
			t.Errorf("draft starts at %d, want 10", got)
		}
		d.Set("count", d.Int("count")+5)
	})

	if got := st.Snapshot().Int("count"); got != 15 {
		t.Errorf("committed count = %d, want 15", got)
	}
}

func TestStateBase_SnapshotIsolatedFromDraftMutation(t *testing.T) {
	_, st := mountState(t, func(s *testState) {
		s.Seed(func(d *Draft) { d.Set("count", 1) })
	}, nil)

	before := st.Snapshot()
	st.SetState(func(d *Draft) { d.Set("count", 2) })

	// The snapshot captured before the transition still reads the old
	// value; commits never mutate in place.
	if got := before.Int("count"); got != 1 {
		t.Errorf("earlier snapshot now reads %d, want 1", got)
	}
	if got := st.Snapshot().Int("count"); got != 2 {
		t.Errorf("current snapshot reads %d, want 2", got)
	}
}

func TestOnDispose_RunsInReverseOrder(t *testing.T) {
	var order []string
	root, _ := mountState(t, func(s *testState) {
		s.OnDispose(func() { order = append(order, "first") })
		s.OnDispose(func() { order = append(order, "second") })
	}, nil)

	root.Unmount()

	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Errorf("disposer order = %v, want [second first]", order)
	}
}

func TestOnDispose_UnregisterPreventsRun(t *testing.T) {
	ran := false
	var unregister func()
	root, _ := mountState(t, func(s *testState) {
		unregister = s.OnDispose(func() { ran = true })
	}, nil)

	unregister()
	root.Unmount()

	if ran {
		t.Error("unregistered disposer still ran")
	}
}

func TestOnDispose_AfterDisposalRunsImmediately(t *testing.T) {
	root, st := mountState(t, nil, nil)
	root.Unmount()

	ran := false
	st.OnDispose(func() { ran = true })
	if !ran {
		t.Error("disposer registered after disposal did not run immediately")
	}
}
