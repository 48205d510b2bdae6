package core

import (
	"reflect"
	"testing"

	"github.com/go-drift/bloc/pkg/errors"
)

// testStatelessWidget is a simple stateless widget for testing.
type testStatelessWidget struct {
	StatelessBase
	buildFn func(BuildContext) Widget
}

func (w testStatelessWidget) Build(ctx BuildContext) Widget {
	if w.buildFn != nil {
		return w.buildFn(ctx)
	}
	return nil
}

// testStatefulWidget is a simple stateful widget for testing.
type testStatefulWidget struct {
	StatefulBase
	label         string
	createStateFn func() State
}

func (w testStatefulWidget) CreateState() State {
	if w.createStateFn != nil {
		return w.createStateFn()
	}
	return &testState{}
}

type testState struct {
	StateBase
	buildFn     func(BuildContext) Widget
	initCalls   int
	updateCalls int
	deps        int
	disposed    int
}

func (s *testState) InitState()                             { s.initCalls++ }
func (s *testState) DidUpdateWidget(oldWidget StatefulWidget) { s.updateCalls++ }
func (s *testState) DidChangeDependencies()                 { s.deps++ }

func (s *testState) Dispose() {
	s.disposed++
	s.StateBase.Dispose()
}

func (s *testState) Build(ctx BuildContext) Widget {
	if s.buildFn != nil {
		return s.buildFn(ctx)
	}
	return nil
}

type testScope struct {
	InheritedBase
	value int
	child Widget
}

func (s testScope) ChildWidget() Widget { return s.child }

func (s testScope) UpdateShouldNotify(old InheritedWidget) bool {
	return s.value != old.(testScope).value
}

type testErrorHandler struct {
	errors.LogHandler
	buildErrors []*errors.BuildError
}

func (h *testErrorHandler) HandleBuildError(err *errors.BuildError) {
	h.buildErrors = append(h.buildErrors, err)
}

func TestStatefulLifecycle(t *testing.T) {
	state := &testState{}
	owner := NewBuildOwner()
	root := MountRoot(testStatefulWidget{createStateFn: func() State { return state }}, owner)

	if state.initCalls != 1 {
		t.Errorf("InitState calls = %d, want 1", state.initCalls)
	}
	if state.Element() != root {
		t.Error("state should be bound to its element")
	}

	root.Update(testStatefulWidget{label: "next", createStateFn: func() State { return state }})
	if state.updateCalls != 1 {
		t.Errorf("DidUpdateWidget calls = %d, want 1", state.updateCalls)
	}
	if got := WidgetOf[testStatefulWidget](state).label; got != "next" {
		t.Errorf("WidgetOf label = %q, want %q", got, "next")
	}

	root.Unmount()
	if state.disposed != 1 {
		t.Errorf("Dispose calls = %d, want 1", state.disposed)
	}
	if !state.IsDisposed() {
		t.Error("expected state to be disposed")
	}
}

func TestSetStateSchedulesRebuild(t *testing.T) {
	builds := 0
	state := &testState{buildFn: func(BuildContext) Widget {
		builds++
		return nil
	}}
	owner := NewBuildOwner()
	frames := 0
	owner.OnNeedsFrame = func() { frames++ }
	MountRoot(testStatefulWidget{createStateFn: func() State { return state }}, owner)

	if builds != 1 {
		t.Fatalf("builds after mount = %d, want 1", builds)
	}

	state.SetState(nil)
	state.SetState(nil)
	if !owner.NeedsWork() {
		t.Fatal("expected pending work after SetState")
	}
	if frames != 1 {
		t.Errorf("frames requested = %d, want 1", frames)
	}

	if visited := owner.FlushBuild(); visited != 1 {
		t.Errorf("FlushBuild visited %d elements, want 1", visited)
	}
	if builds != 2 {
		t.Errorf("builds after flush = %d, want 2", builds)
	}
	if owner.NeedsWork() {
		t.Error("expected no pending work after flush")
	}
}

func TestSetStateAfterDisposeIsNoop(t *testing.T) {
	state := &testState{}
	owner := NewBuildOwner()
	root := MountRoot(testStatefulWidget{createStateFn: func() State { return state }}, owner)
	root.Unmount()

	called := false
	state.SetState(func() { called = true })
	if called {
		t.Error("SetState callback should not run after dispose")
	}
	if owner.NeedsWork() {
		t.Error("disposed state should not schedule work")
	}
}

func TestDependOnInherited(t *testing.T) {
	var seen []int
	dependent := &testState{buildFn: func(ctx BuildContext) Widget {
		scope := ctx.DependOnInherited(reflect.TypeOf(testScope{}))
		if scope != nil {
			seen = append(seen, scope.(testScope).value)
		}
		return nil
	}}
	child := testStatefulWidget{createStateFn: func() State { return dependent }}

	owner := NewBuildOwner()
	root := MountRoot(testScope{value: 1, child: child}, owner)
	if got := root.(*InheritedElement).DependentCount(); got != 1 {
		t.Fatalf("dependents = %d, want 1", got)
	}

	root.Update(testScope{value: 2, child: child})
	owner.FlushBuild()

	if want := []int{1, 2}; !reflect.DeepEqual(seen, want) {
		t.Errorf("seen = %v, want %v", seen, want)
	}
	if dependent.deps < 2 {
		t.Errorf("DidChangeDependencies calls = %d, want at least 2", dependent.deps)
	}
}

func TestUnmountedDependentIsDropped(t *testing.T) {
	showReader := true
	reader := testStatelessWidget{buildFn: func(ctx BuildContext) Widget {
		ctx.DependOnInherited(reflect.TypeOf(testScope{}))
		return nil
	}}
	host := &testState{buildFn: func(BuildContext) Widget {
		if showReader {
			return reader
		}
		return nil
	}}

	owner := NewBuildOwner()
	root := MountRoot(testScope{value: 1, child: testStatefulWidget{createStateFn: func() State { return host }}}, owner)
	scope := root.(*InheritedElement)
	if got := scope.DependentCount(); got != 1 {
		t.Fatalf("dependents = %d, want 1", got)
	}

	showReader = false
	host.SetState(nil)
	owner.FlushBuild()

	if got := scope.DependentCount(); got != 0 {
		t.Errorf("dependents after unmount = %d, want 0", got)
	}
}

func TestDependOnInheritedMissing(t *testing.T) {
	var found any = "unset"
	owner := NewBuildOwner()
	MountRoot(testStatelessWidget{buildFn: func(ctx BuildContext) Widget {
		found = ctx.DependOnInherited(reflect.TypeOf(testScope{}))
		return nil
	}}, owner)

	if found != nil {
		t.Errorf("expected nil lookup, got %v", found)
	}
}

func TestFindAncestor(t *testing.T) {
	var ancestor Element
	owner := NewBuildOwner()
	root := MountRoot(testScope{value: 1, child: testStatelessWidget{buildFn: func(ctx BuildContext) Widget {
		ancestor = ctx.FindAncestor(func(e Element) bool {
			_, ok := e.(*InheritedElement)
			return ok
		})
		return nil
	}}}, owner)

	if ancestor != root {
		t.Error("FindAncestor should return the root scope element")
	}
}

func TestChildReplacedOnTypeChange(t *testing.T) {
	first := &testState{}
	useStateful := true
	parent := &testState{buildFn: func(BuildContext) Widget {
		if useStateful {
			return testStatefulWidget{createStateFn: func() State { return first }}
		}
		return testStatelessWidget{}
	}}
	owner := NewBuildOwner()
	MountRoot(testStatefulWidget{createStateFn: func() State { return parent }}, owner)

	useStateful = false
	parent.SetState(nil)
	owner.FlushBuild()

	if first.disposed != 1 {
		t.Errorf("replaced child disposed %d times, want 1", first.disposed)
	}
}

func TestBuildPanicIsReported(t *testing.T) {
	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	owner := NewBuildOwner()
	MountRoot(testStatelessWidget{buildFn: func(BuildContext) Widget {
		panic("test panic in build")
	}}, owner)

	if len(handler.buildErrors) != 1 {
		t.Fatalf("expected 1 build error, got %d", len(handler.buildErrors))
	}
	err := handler.buildErrors[0]
	if err.Recovered != "test panic in build" {
		t.Errorf("Recovered = %v", err.Recovered)
	}
	if err.StackTrace == "" {
		t.Error("expected StackTrace to be captured")
	}
}

func TestErrorWidgetBuilderFallback(t *testing.T) {
	handler := &testErrorHandler{}
	errors.SetHandler(handler)
	defer errors.SetHandler(nil)

	fallbackBuilt := false
	SetErrorWidgetBuilder(func(*errors.BuildError) Widget {
		return testStatelessWidget{buildFn: func(BuildContext) Widget {
			fallbackBuilt = true
			return nil
		}}
	})
	defer SetErrorWidgetBuilder(nil)

	MountRoot(testStatelessWidget{buildFn: func(BuildContext) Widget {
		panic("broken")
	}}, NewBuildOwner())

	if !fallbackBuilt {
		t.Error("expected fallback widget to be mounted")
	}
}
