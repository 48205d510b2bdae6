package testing

import (
	"testing"

	"github.com/go-drift/bloc/pkg/core"
)

// WidgetTester mounts widget trees without a host and drives their build
// phase explicitly.
type WidgetTester struct {
	buildOwner *core.BuildOwner
	root       core.Element
	dispatches []func()
}

// NewWidgetTester creates a tester with an empty tree.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester() *WidgetTester {
	return &WidgetTester{
		buildOwner: core.NewBuildOwner(),
	}
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T) *WidgetTester {
	tester := NewWidgetTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the current tree.
func (t *WidgetTester) Cleanup() {
	t.Unmount()
}

// BuildOwner returns the owner that schedules rebuilds for the mounted tree.
func (t *WidgetTester) BuildOwner() *core.BuildOwner {
	return t.buildOwner
}

// PumpWidget mounts (or remounts) a widget and runs one frame.
func (t *WidgetTester) PumpWidget(widget core.Widget) error {
	t.Unmount()
	t.root = core.MountRoot(widget, t.buildOwner)
	return t.Pump()
}

// UpdateWidget rebuilds the existing root with a new configuration of the
// same type, keeping element state, and runs one frame. Falls back to
// PumpWidget when there is no root or the type differs.
func (t *WidgetTester) UpdateWidget(widget core.Widget) error {
	if t.root == nil || widget == nil || t.root.Widget() == nil ||
		typeName(t.root.Widget()) != typeName(widget) {
		return t.PumpWidget(widget)
	}
	t.root.Update(widget)
	return t.Pump()
}

// Pump runs a single frame: drains dispatched callbacks, then flushes builds.
func (t *WidgetTester) Pump() error {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
	t.buildOwner.FlushBuild()
	return nil
}

// Unmount tears down the mounted tree, disposing every state.
func (t *WidgetTester) Unmount() {
	if t.root != nil {
		t.root.Unmount()
		t.root = nil
	}
}

// Dispatch queues a callback for the next Pump.
func (t *WidgetTester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// NeedsPump reports whether a rebuild or dispatched callback is pending.
func (t *WidgetTester) NeedsPump() bool {
	return t.buildOwner.NeedsWork() || len(t.dispatches) > 0
}

// RootElement returns the root element of the mounted tree.
func (t *WidgetTester) RootElement() core.Element {
	return t.root
}

// Find evaluates a finder against the current element tree.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	if t.root == nil {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		elements: finder.Evaluate(t.root),
		finder:   finder,
	}
}
