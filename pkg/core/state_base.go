package core

import "sync"

// stateBase is satisfied by any struct that embeds StateBase, so helpers
// such as UseDisposer and WidgetOf can take the state itself.
type stateBase interface {
	state() *StateBase
}

func (s *StateBase) state() *StateBase { return s }

// StateBase carries the element link and cleanup list shared by every
// State. Embed it and override only the lifecycle methods you need.
//
//	type counterState struct {
//		core.StateBase
//		bloc *bloc.Bloc[int]
//	}
type StateBase struct {
	element *StatefulElement

	mu       sync.Mutex
	cleanups []func()
	disposed bool
}

// SetElement links the state to its element. The framework calls it before
// InitState.
func (s *StateBase) SetElement(element *StatefulElement) {
	s.element = element
}

// Element is nil until the state is mounted.
func (s *StateBase) Element() *StatefulElement {
	return s.element
}

// SetState runs fn and marks the element dirty. After disposal it does
// nothing, which lets late bloc notifications arrive harmlessly.
//
// Call it only from the goroutine that flushes the BuildOwner.
func (s *StateBase) SetState(fn func()) {
	if s.IsDisposed() {
		return
	}
	if fn != nil {
		fn()
	}
	if s.element != nil {
		s.element.MarkNeedsBuild()
	}
}

// OnDispose queues cleanup to run at disposal, or runs it now if the state
// is already gone. The returned func cancels it.
func (s *StateBase) OnDispose(cleanup func()) (cancel func()) {
	if cleanup == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		cleanup()
		return func() {}
	}
	slot := len(s.cleanups)
	s.cleanups = append(s.cleanups, cleanup)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		if slot < len(s.cleanups) {
			s.cleanups[slot] = nil
		}
		s.mu.Unlock()
	}
}

// RunDisposers runs the queued cleanups, last registered first. Only the
// first call has any effect.
func (s *StateBase) RunDisposers() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	pending := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(pending) - 1; i >= 0; i-- {
		if run := pending[i]; run != nil {
			run()
		}
	}
}

// Dispose runs the cleanups. Overrides must call s.StateBase.Dispose().
func (s *StateBase) Dispose() {
	s.RunDisposers()
}

func (s *StateBase) InitState() {}

func (s *StateBase) Build(ctx BuildContext) Widget { return nil }

func (s *StateBase) DidChangeDependencies() {}

func (s *StateBase) DidUpdateWidget(oldWidget StatefulWidget) {}

// IsDisposed reports whether Dispose has run.
func (s *StateBase) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// WidgetOf returns the widget currently configuring s, or the zero W when s
// is unmounted or configured by another widget type.
func WidgetOf[W Widget](s stateBase) W {
	element := s.state().element
	if element != nil {
		if w, ok := element.Widget().(W); ok {
			return w
		}
	}
	var zero W
	return zero
}
