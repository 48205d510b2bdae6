package bloc

// Binding mirrors a Bloc into a view's local state for as long as it is
// attached. It is the explicit attach/detach contract UI adapters drive from
// their mount, update and unmount hooks.
//
// A Binding is not safe for concurrent use; it belongs to a single view.
type Binding[S any] struct {
	onChange func(S)
	bloc     *Bloc[S]
	listener *Listener[S]
	value    S
}

// NewBinding creates a detached binding. onChange runs after Value has been
// updated for every notification received while attached; it may be nil.
func NewBinding[S any](onChange func(S)) *Binding[S] {
	return &Binding[S]{onChange: onChange}
}

// Attach binds to b. Attaching to the currently bound Bloc is a no-op.
// Attaching to a different Bloc removes the old listener, re-reads the
// displayed value from b and installs a fresh listener.
func (bd *Binding[S]) Attach(b *Bloc[S]) {
	if b == bd.bloc {
		return
	}
	bd.Detach()
	if b == nil {
		return
	}
	bd.bloc = b
	bd.value = b.State()
	var listener *Listener[S]
	listener = NewListener(func(state S) {
		// A notification already in flight when Detach ran must not leak
		// into the view.
		if bd.listener != listener {
			return
		}
		bd.value = state
		if bd.onChange != nil {
			bd.onChange(state)
		}
	})
	bd.listener = listener
	b.Subscribe(listener)
}

// Detach removes the binding's listener from the bound Bloc. The last
// displayed value is kept.
func (bd *Binding[S]) Detach() {
	if bd.bloc == nil {
		return
	}
	bd.bloc.Unsubscribe(bd.listener)
	bd.bloc = nil
	bd.listener = nil
}

// Value returns the displayed state.
func (bd *Binding[S]) Value() S {
	return bd.value
}

// Bloc returns the bound Bloc, or nil when detached.
func (bd *Binding[S]) Bloc() *Bloc[S] {
	return bd.bloc
}

// Attached reports whether the binding currently holds a subscription.
func (bd *Binding[S]) Attached() bool {
	return bd.bloc != nil
}
