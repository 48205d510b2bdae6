package widgets

import (
	"reflect"

	"github.com/go-drift/bloc/pkg/core"
	"github.com/go-drift/bloc/pkg/errors"
	"github.com/go-drift/bloc/pkg/stream"
)

// StreamBuilder rebuilds its subtree with the latest snapshot of Stream.
//
// The snapshot starts as [stream.NoneSnapshot]. Every value moves it to
// [stream.ActiveSnapshot] and completion moves it to [stream.DoneSnapshot].
// Errors from the source are reported to the errors handler and leave the
// snapshot unchanged. The subscription is disposed exactly once on unmount.
//
// Sources must deliver events on the goroutine that drives the BuildOwner.
type StreamBuilder[T any] struct {
	// Stream is the source to subscribe to. A nil Stream never leaves None.
	Stream stream.Source[T]
	// Builder renders the current snapshot. Required.
	Builder func(ctx core.BuildContext, snapshot stream.Snapshot[T]) core.Widget
	// WidgetKey is an optional key for the widget.
	WidgetKey any
}

func (b StreamBuilder[T]) CreateElement() core.Element {
	return core.NewStatefulElement()
}

func (b StreamBuilder[T]) Key() any {
	return b.WidgetKey
}

func (b StreamBuilder[T]) CreateState() core.State {
	return &streamBuilderState[T]{
		snapshot:     stream.NoneSnapshot[T]{},
		subscription: stream.Empty,
	}
}

type streamBuilderState[T any] struct {
	core.StateBase
	snapshot     stream.Snapshot[T]
	subscription stream.Disposable
	source       stream.Source[T]
	generation   int
}

func (s *streamBuilderState[T]) InitState() {
	s.subscribe(core.WidgetOf[StreamBuilder[T]](s).Stream)
	core.UseDisposer(s, func() {
		s.subscription.Dispose()
		s.subscription = stream.Empty
	})
}

func (s *streamBuilderState[T]) DidUpdateWidget(oldWidget core.StatefulWidget) {
	next := core.WidgetOf[StreamBuilder[T]](s).Stream
	if sameSource(next, s.source) {
		return
	}
	s.subscription.Dispose()
	s.snapshot = stream.NoneSnapshot[T]{}
	s.subscribe(next)
}

func (s *streamBuilderState[T]) subscribe(source stream.Source[T]) {
	s.generation++
	s.source = source
	if source == nil {
		s.subscription = stream.Empty
		return
	}
	generation := s.generation
	s.subscription = stream.Once(source.Subscribe(stream.Observer[T]{
		OnNext: func(v T) {
			s.setSnapshot(generation, stream.ActiveSnapshot[T]{Data: v})
		},
		OnError: func(err error) {
			errors.Report(&errors.BlocError{
				Op:   "widgets.StreamBuilder",
				Kind: errors.KindStream,
				Err:  err,
			})
		},
		OnDone: func() {
			s.setSnapshot(generation, stream.DoneSnapshot[T]{})
		},
	}))
}

// setSnapshot drops events from a subscription that has since been replaced.
func (s *streamBuilderState[T]) setSnapshot(generation int, snapshot stream.Snapshot[T]) {
	if generation != s.generation {
		return
	}
	s.SetState(func() {
		s.snapshot = snapshot
	})
}

func (s *streamBuilderState[T]) Build(ctx core.BuildContext) core.Widget {
	widget := ctx.Widget().(StreamBuilder[T])
	if widget.Builder == nil {
		return nil
	}
	return widget.Builder(ctx, s.snapshot)
}

// sameSource reports whether a and b are the same source. Sources whose
// dynamic type is not comparable are always treated as different.
func sameSource[T any](a, b stream.Source[T]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
