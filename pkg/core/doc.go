// Package core provides the widget and element framework that bindings are
// mounted into.
//
// This package defines the foundational types: Widget, Element, State and
// BuildContext. Widgets describe what a view should look like; elements are
// their mounted instances and own the lifecycle.
//
// # Stateful Widgets
//
// For widgets that need mutable state, embed StateBase in your state struct:
//
//	type myState struct {
//	    core.StateBase
//	    count int
//	}
//
//	func (s *myState) InitState() {
//	    // Initialize state here
//	}
//
//	func (s *myState) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: fmt.Sprintf("Count: %d", s.count)}
//	}
//
// The element calls InitState on mount, DidUpdateWidget when its parent
// rebuilds it with a new configuration, and Dispose on unmount. These are the
// attach and detach points bindings hook into.
//
// # Scheduling
//
// SetState marks the element dirty with its BuildOwner. Nothing is rebuilt
// until the owner's FlushBuild runs, which rebuilds dirty elements parent
// first.
//
// # Hooks
//
// UseDisposer registers cleanup that runs when the state is disposed.
package core
