package widgets

import (
	"reflect"
	"sync/atomic"

	"github.com/go-drift/bloc/pkg/core"
	"github.com/go-drift/bloc/pkg/errors"
)

// Context is a typed slot that a ContextProvider fills for its subtree.
// Outside of any provider the slot is empty.
type Context[T any] struct {
	// id keeps every context a distinct allocation; pointers to zero-size
	// values may alias.
	id uint64
}

var contextIDs atomic.Uint64

// CreateContext returns a new context and its accessor. The accessor returns
// the value of the nearest enclosing provider and panics with
// *errors.ContextError when there is none, or when it provided a nil value.
//
//	sessionCtx, useSession := widgets.CreateContext[*Session]()
//
//	func (p ProfilePage) Build(ctx core.BuildContext) core.Widget {
//	    session := useSession(ctx)
//	    ...
//	}
func CreateContext[T any]() (*Context[T], func(ctx core.BuildContext) T) {
	c := &Context[T]{id: contextIDs.Add(1)}
	return c, c.Use
}

// Provide returns a provider that binds value for child and its descendants.
func (c *Context[T]) Provide(value T, child core.Widget) ContextProvider[T] {
	return ContextProvider[T]{Context: c, Value: value, Child: child}
}

// Lookup returns the value of the nearest enclosing provider of c.
// The second result is false when no provider supplied a non-nil value.
func (c *Context[T]) Lookup(ctx core.BuildContext) (T, bool) {
	var zero T
	found := ctx.DependOnInheritedWhere(func(w core.InheritedWidget) bool {
		p, ok := w.(ContextProvider[T])
		return ok && p.Context == c
	})
	if found == nil {
		return zero, false
	}
	value := found.(ContextProvider[T]).Value
	if isNil(value) {
		return zero, false
	}
	return value, true
}

// Use is the accessor returned by CreateContext.
func (c *Context[T]) Use(ctx core.BuildContext) T {
	value, ok := c.Lookup(ctx)
	if !ok {
		panic(&errors.ContextError{Context: reflect.TypeFor[T]().String()})
	}
	return value
}

// ContextProvider supplies Value to every descendant reading Context.
type ContextProvider[T any] struct {
	core.InheritedBase
	Context *Context[T]
	Value   T
	Child   core.Widget
}

func (p ContextProvider[T]) ChildWidget() core.Widget {
	return p.Child
}

func (p ContextProvider[T]) UpdateShouldNotify(oldWidget core.InheritedWidget) bool {
	old, ok := oldWidget.(ContextProvider[T])
	if !ok {
		return true
	}
	return valuesDiffer(old.Value, p.Value)
}

// WithChild returns a copy of p wrapping child.
func (p ContextProvider[T]) WithChild(child core.Widget) core.Widget {
	p.Child = child
	return p
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// valuesDiffer compares with == where it is safe and falls back to
// reflect.DeepEqual. A comparable type can still hold an uncomparable
// dynamic value in an interface field, so == panics are caught too.
func valuesDiffer(a, b any) (differ bool) {
	if a == nil || b == nil {
		return a != b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return !reflect.DeepEqual(a, b)
	}
	defer func() {
		if recover() != nil {
			differ = !reflect.DeepEqual(a, b)
		}
	}()
	return a != b
}
