package core

// InheritedElement is the element that hosts an [InheritedWidget] and tracks
// the descendants that depend on it.
//
// When a descendant calls [BuildContext.DependOnInherited], it registers as a
// dependent of this element. When the InheritedWidget is replaced and
// [InheritedWidget.UpdateShouldNotify] returns true, every registered
// dependent is notified and scheduled for rebuild.
type InheritedElement struct {
	elementBase
	child      Element
	dependents map[Element]struct{}
}

// NewInheritedElement creates an InheritedElement.
// The widget and build owner are set by the framework during inflation.
func NewInheritedElement() *InheritedElement {
	element := &InheritedElement{
		dependents: make(map[Element]struct{}),
	}
	element.setSelf(element)
	return element
}

func (e *InheritedElement) Mount(parent Element, slot any) {
	e.attach(parent, slot)
	e.RebuildIfNeeded()
}

func (e *InheritedElement) Update(newWidget Widget) {
	oldWidget := e.widget.(InheritedWidget)
	e.widget = newWidget
	if newWidget.(InheritedWidget).UpdateShouldNotify(oldWidget) {
		for dependent := range e.dependents {
			notifyDependent(dependent)
		}
	}
	e.MarkNeedsBuild()
}

func (e *InheritedElement) Unmount() {
	e.mounted = false
	e.dropDependencies()
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
}

func (e *InheritedElement) RebuildIfNeeded() {
	if !e.dirty || !e.mounted {
		return
	}
	e.dirty = false
	childWidget := e.widget.(InheritedWidget).ChildWidget()
	e.child = updateChild(e.child, childWidget, e, e.buildOwner)
}

func (e *InheritedElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

// DependentCount reports how many elements currently depend on this one.
func (e *InheritedElement) DependentCount() int {
	return len(e.dependents)
}

func (e *InheritedElement) addDependent(dependent Element) {
	if dependent == nil {
		return
	}
	if e.dependents == nil {
		e.dependents = make(map[Element]struct{})
	}
	e.dependents[dependent] = struct{}{}
}

func (e *InheritedElement) removeDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// notifyDependent triggers DidChangeDependencies on the dependent element.
func notifyDependent(element Element) {
	if mountable, ok := element.(interface{ isMounted() bool }); ok && !mountable.isMounted() {
		return
	}
	if stateful, ok := element.(*StatefulElement); ok && stateful.state != nil {
		stateful.state.DidChangeDependencies()
	}
	element.MarkNeedsBuild()
}
