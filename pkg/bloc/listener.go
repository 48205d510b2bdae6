package bloc

// Listener is a subscription handle. Its identity (the pointer) is what
// Unsubscribe matches on.
type Listener[S any] struct {
	fn func(S)
}

// NewListener wraps fn in a handle that can be subscribed to a Bloc.
func NewListener[S any](fn func(S)) *Listener[S] {
	return &Listener[S]{fn: fn}
}

func (l *Listener[S]) call(state S) {
	if l.fn != nil {
		l.fn(state)
	}
}
