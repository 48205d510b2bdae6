package stream

import (
	"slices"
	"sync"
)

// Subject is a multi-subscriber Source that callers push values into.
// Subscribers are notified in subscription order. Once closed, Add and Error
// are ignored and late subscribers receive OnDone immediately.
type Subject[T any] struct {
	mu        sync.Mutex
	observers []*subjectObserver[T]
	closed    bool
}

type subjectObserver[T any] struct {
	Observer[T]
}

// NewSubject creates an open Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers observer and returns a Disposable that removes it.
func (s *Subject[T]) Subscribe(observer Observer[T]) Disposable {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		observer.done()
		return Empty
	}
	entry := &subjectObserver[T]{Observer: observer}
	s.observers = append(slices.Clip(s.observers), entry)
	s.mu.Unlock()

	return Once(DisposeFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if i := slices.Index(s.observers, entry); i >= 0 {
			s.observers = slices.Delete(slices.Clone(s.observers), i, i+1)
		}
	}))
}

// Add pushes v to every subscriber.
func (s *Subject[T]) Add(v T) {
	for _, o := range s.snapshot(false) {
		o.next(v)
	}
}

// Error pushes err to every subscriber. The subject stays open.
func (s *Subject[T]) Error(err error) {
	for _, o := range s.snapshot(false) {
		o.err(err)
	}
}

// Close completes the subject and drops all subscribers.
func (s *Subject[T]) Close() {
	for _, o := range s.snapshot(true) {
		o.done()
	}
}

// Len returns the number of current subscribers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

func (s *Subject[T]) snapshot(closing bool) []*subjectObserver[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	observers := s.observers
	if closing {
		s.closed = true
		s.observers = nil
	}
	return observers
}
