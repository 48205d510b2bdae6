package bloc

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-drift/bloc/pkg/errors"
)

// Bloc is an observable state container.
//
// The listener slice is copy-on-write: Subscribe and Unsubscribe install a new
// slice, and Emit iterates the slice that was current when it started. A
// listener removed mid-notification therefore never causes another listener
// to be skipped or called twice.
//
// Bloc is safe for concurrent use. The lock is never held while listeners run,
// so listeners may call back into the Bloc.
type Bloc[S any] struct {
	mu        sync.Mutex
	state     S
	listeners []*Listener[S]
}

// New creates a Bloc holding initial.
func New[S any](initial S) *Bloc[S] {
	b := &Bloc[S]{state: initial}
	observeCreate(b, initial)
	return b
}

// State returns the current state.
func (b *Bloc[S]) State() S {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Emit replaces the current state and notifies every subscribed listener in
// subscription order. Listeners run even when next equals the previous state.
func (b *Bloc[S]) Emit(next S) {
	b.mu.Lock()
	current := b.state
	b.state = next
	listeners := b.listeners
	b.mu.Unlock()

	observeChange(b, Change[S]{Current: current, Next: next})

	for _, l := range listeners {
		l.call(next)
	}
}

// Observer panics are reported and never reach the caller of New or Emit.
func observeCreate(b, initial any) {
	defer errors.Recover("bloc.Observer.OnCreate")
	currentObserver().OnCreate(b, initial)
}

func observeChange(b any, change fmt.Stringer) {
	defer errors.Recover("bloc.Observer.OnChange")
	currentObserver().OnChange(b, change)
}

// Update emits the result of applying transform to the current state.
func (b *Bloc[S]) Update(transform func(S) S) {
	b.Emit(transform(b.State()))
}

// Subscribe appends l to the listener list. The same handle may be
// subscribed more than once; it is then notified once per subscription.
func (b *Bloc[S]) Subscribe(l *Listener[S]) {
	if l == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	next := make([]*Listener[S], len(b.listeners), len(b.listeners)+1)
	copy(next, b.listeners)
	b.listeners = append(next, l)
}

// Unsubscribe removes the first occurrence of l. Unknown handles are ignored.
func (b *Bloc[S]) Unsubscribe(l *Listener[S]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := slices.Index(b.listeners, l)
	if i < 0 {
		return
	}
	b.listeners = slices.Delete(slices.Clone(b.listeners), i, i+1)
}

// Listen subscribes fn and returns a function that removes exactly that
// subscription. Calling the returned function more than once is a no-op.
func (b *Bloc[S]) Listen(fn func(S)) (cancel func()) {
	l := NewListener(fn)
	b.Subscribe(l)
	var once sync.Once
	return func() {
		once.Do(func() { b.Unsubscribe(l) })
	}
}

// Len returns the number of active subscriptions.
func (b *Bloc[S]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
