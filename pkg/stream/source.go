package stream

import "sync"

// Disposable releases a subscription.
type Disposable interface {
	Dispose()
}

// DisposeFunc adapts a function to Disposable.
type DisposeFunc func()

// Dispose calls f.
func (f DisposeFunc) Dispose() {
	if f != nil {
		f()
	}
}

type emptyDisposable struct{}

func (emptyDisposable) Dispose() {}

// Empty is a Disposable that does nothing. It stands in for a subscription
// that was never made.
var Empty Disposable = emptyDisposable{}

// Once wraps d so that only the first Dispose call reaches it.
func Once(d Disposable) Disposable {
	if d == nil {
		return Empty
	}
	var once sync.Once
	return DisposeFunc(func() {
		once.Do(d.Dispose)
	})
}

// Observer receives the events of a Source. Nil callbacks are skipped.
type Observer[T any] struct {
	OnNext  func(T)
	OnError func(error)
	OnDone  func()
}

func (o Observer[T]) next(v T) {
	if o.OnNext != nil {
		o.OnNext(v)
	}
}

func (o Observer[T]) err(err error) {
	if o.OnError != nil {
		o.OnError(err)
	}
}

func (o Observer[T]) done() {
	if o.OnDone != nil {
		o.OnDone()
	}
}

// Source is an asynchronous push sequence.
type Source[T any] interface {
	Subscribe(observer Observer[T]) Disposable
}

// SourceFunc adapts a function to Source.
type SourceFunc[T any] func(observer Observer[T]) Disposable

// Subscribe calls f.
func (f SourceFunc[T]) Subscribe(observer Observer[T]) Disposable {
	return f(observer)
}
