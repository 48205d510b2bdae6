package core

import "reflect"

// Widget is an immutable description of part of the UI.
type Widget interface {
	CreateElement() Element
	Key() any
}

// StatelessWidget builds its child from its own configuration alone.
type StatelessWidget interface {
	Widget
	Build(ctx BuildContext) Widget
}

// StatefulWidget creates a State that persists across rebuilds.
type StatefulWidget interface {
	Widget
	CreateState() State
}

// State holds the mutable half of a StatefulWidget.
type State interface {
	InitState()
	Build(ctx BuildContext) Widget
	Dispose()
	DidChangeDependencies()
	DidUpdateWidget(oldWidget StatefulWidget)
}

// InheritedWidget makes a value available to its descendants.
type InheritedWidget interface {
	Widget
	ChildWidget() Widget
	// UpdateShouldNotify reports whether dependents must rebuild when the
	// widget is replaced by this one.
	UpdateShouldNotify(oldWidget InheritedWidget) bool
}

// BuildContext locates a widget in the tree.
type BuildContext interface {
	Widget() Widget
	FindAncestor(predicate func(Element) bool) Element
	// DependOnInherited returns the nearest ancestor InheritedWidget of the
	// given type, registering the caller for rebuild when it changes.
	// Returns nil when no such ancestor exists.
	DependOnInherited(inheritedType reflect.Type) any
	// DependOnInheritedWhere is DependOnInherited with an arbitrary match.
	DependOnInheritedWhere(match func(InheritedWidget) bool) InheritedWidget
}

// Element is a mounted instance of a Widget.
type Element interface {
	BuildContext
	Mount(parent Element, slot any)
	Update(newWidget Widget)
	Unmount()
	RebuildIfNeeded()
	MarkNeedsBuild()
	Depth() int
	VisitChildren(visitor func(Element) bool)
}
