package widgets

import (
	"github.com/go-drift/bloc/pkg/bloc"
	"github.com/go-drift/bloc/pkg/core"
)

// BlocBuilder rebuilds its subtree whenever Bloc emits a new state.
//
// On mount it displays Bloc's current state and subscribes; on unmount it
// unsubscribes. When the parent rebuilds it with a different Bloc, the old
// subscription is dropped and the displayed state is re-read from the new one.
//
// A nil Bloc is resolved from the nearest enclosing BlocScope[S].
type BlocBuilder[S any] struct {
	// Bloc is the container to mirror.
	Bloc *bloc.Bloc[S]
	// Builder renders the displayed state. Required.
	Builder func(ctx core.BuildContext, state S) core.Widget
	// WidgetKey is an optional key for the widget.
	WidgetKey any
}

func (b BlocBuilder[S]) CreateElement() core.Element {
	return core.NewStatefulElement()
}

func (b BlocBuilder[S]) Key() any {
	return b.WidgetKey
}

func (b BlocBuilder[S]) CreateState() core.State {
	return &blocBuilderState[S]{}
}

type blocBuilderState[S any] struct {
	core.StateBase
	binding *bloc.Binding[S]
}

func (s *blocBuilderState[S]) InitState() {
	s.binding = bloc.NewBinding(func(S) {
		s.SetState(nil)
	})
	s.binding.Attach(s.resolve())
	core.UseDisposer(s, s.binding.Detach)
}

func (s *blocBuilderState[S]) DidChangeDependencies() {
	s.binding.Attach(s.resolve())
}

func (s *blocBuilderState[S]) DidUpdateWidget(oldWidget core.StatefulWidget) {
	s.binding.Attach(s.resolve())
}

func (s *blocBuilderState[S]) resolve() *bloc.Bloc[S] {
	if b := core.WidgetOf[BlocBuilder[S]](s).Bloc; b != nil {
		return b
	}
	return BlocOf[S](s.Element())
}

func (s *blocBuilderState[S]) Build(ctx core.BuildContext) core.Widget {
	widget := ctx.Widget().(BlocBuilder[S])
	if widget.Builder == nil {
		return nil
	}
	return widget.Builder(ctx, s.binding.Value())
}
