package stream

import "github.com/go-drift/bloc/pkg/bloc"

// FromBloc exposes b as a Source. Subscribers see every state emitted after
// they subscribe; the current state is not replayed. Sources built from the
// same Bloc compare equal.
func FromBloc[S any](b *bloc.Bloc[S]) Source[S] {
	return blocSource[S]{bloc: b}
}

type blocSource[S any] struct {
	bloc *bloc.Bloc[S]
}

func (s blocSource[S]) Subscribe(observer Observer[S]) Disposable {
	if s.bloc == nil {
		return Empty
	}
	return DisposeFunc(s.bloc.Listen(observer.next))
}
