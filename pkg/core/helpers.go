package core

// StatelessBase supplies CreateElement and a nil Key. A widget that embeds it
// only has to implement Build:
//
//	type CountLabel struct {
//	    core.StatelessBase
//	    Count int
//	}
//
//	func (l CountLabel) Build(ctx core.BuildContext) core.Widget {
//	    return widgets.Text{Content: strconv.Itoa(l.Count)}
//	}
type StatelessBase struct{}

func (StatelessBase) CreateElement() Element { return NewStatelessElement() }
func (StatelessBase) Key() any               { return nil }

// StatefulBase supplies CreateElement and a nil Key for widgets whose
// CreateState returns a state embedding StateBase.
type StatefulBase struct{}

func (StatefulBase) CreateElement() Element { return NewStatefulElement() }
func (StatefulBase) Key() any               { return nil }

// InheritedBase supplies CreateElement and a nil Key for providers. The
// embedding widget implements ChildWidget and UpdateShouldNotify; descendants
// find it with BuildContext.DependOnInherited:
//
//	type SessionScope struct {
//	    core.InheritedBase
//	    Session *Session
//	    Child   core.Widget
//	}
//
//	func (s SessionScope) ChildWidget() core.Widget { return s.Child }
//
//	func (s SessionScope) UpdateShouldNotify(old core.InheritedWidget) bool {
//	    return s.Session != old.(SessionScope).Session
//	}
type InheritedBase struct{}

func (InheritedBase) CreateElement() Element { return NewInheritedElement() }
func (InheritedBase) Key() any               { return nil }
