package widgets

import (
	"reflect"

	"github.com/go-drift/bloc/pkg/bloc"
	"github.com/go-drift/bloc/pkg/core"
	"github.com/go-drift/bloc/pkg/errors"
)

// BlocScope makes Bloc available to descendants through BlocOf. A
// BlocBuilder without an explicit Bloc reads the nearest scope of its type.
type BlocScope[S any] struct {
	core.InheritedBase
	Bloc  *bloc.Bloc[S]
	Child core.Widget
}

func (s BlocScope[S]) ChildWidget() core.Widget {
	return s.Child
}

func (s BlocScope[S]) UpdateShouldNotify(oldWidget core.InheritedWidget) bool {
	old, ok := oldWidget.(BlocScope[S])
	return !ok || old.Bloc != s.Bloc
}

// WithChild returns a copy of s wrapping child.
func (s BlocScope[S]) WithChild(child core.Widget) core.Widget {
	s.Child = child
	return s
}

// MaybeBlocOf returns the Bloc of the nearest BlocScope[S], or nil.
func MaybeBlocOf[S any](ctx core.BuildContext) *bloc.Bloc[S] {
	found := ctx.DependOnInherited(reflect.TypeFor[BlocScope[S]]())
	if found == nil {
		return nil
	}
	return found.(BlocScope[S]).Bloc
}

// BlocOf returns the Bloc of the nearest BlocScope[S]. It panics with
// *errors.ContextError when there is no such scope.
func BlocOf[S any](ctx core.BuildContext) *bloc.Bloc[S] {
	b := MaybeBlocOf[S](ctx)
	if b == nil {
		panic(&errors.ContextError{Context: reflect.TypeFor[*bloc.Bloc[S]]().String()})
	}
	return b
}
