package testing

import (
	"testing"

	"github.com/go-drift/bloc/pkg/testing/internal/testbed"
	"github.com/go-drift/bloc/pkg/widgets"
)

func TestPumpWidget_MountsTree(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	err := tester.PumpWidget(widgets.Text{Content: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if tester.RootElement() == nil {
		t.Fatal("expected root element after PumpWidget")
	}
}

func TestPumpWidget_Remount(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	tester.PumpWidget(widgets.Text{Content: "first"})
	first := tester.RootElement()

	tester.PumpWidget(widgets.Text{Content: "second"})
	second := tester.RootElement()

	if first == second {
		t.Error("expected new root element after remount")
	}
}

func TestUpdateWidget_KeepsRoot(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	tester.PumpWidget(testbed.Counter{Initial: 1})
	first := tester.RootElement()
	counter := testbed.CounterBloc(first)

	tester.UpdateWidget(testbed.Counter{Initial: 9})

	if tester.RootElement() != first {
		t.Error("expected UpdateWidget to keep the root element")
	}
	if testbed.CounterBloc(tester.RootElement()) != counter {
		t.Error("expected state to survive UpdateWidget")
	}
	if !tester.Find(ByText("1")).Exists() {
		t.Error("initial value is read once at InitState")
	}
}

func TestUpdateWidget_TypeChangeRemounts(t *testing.T) {
	tester := NewWidgetTesterWithT(t)

	tester.PumpWidget(testbed.Counter{Initial: 1})
	tester.UpdateWidget(widgets.Text{Content: "plain"})

	if !tester.Find(ByText("plain")).Exists() {
		t.Error("expected Text root after type change")
	}
}

func TestPump_RebuildsOnEmit(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})
	counter := testbed.CounterBloc(tester.RootElement())

	counter.Update(func(n int) int { return n + 1 })
	if !tester.NeedsPump() {
		t.Fatal("expected pending rebuild after emit")
	}
	tester.Pump()

	if !tester.Find(ByText("1")).Exists() {
		t.Errorf("expected text '1', got %v", tester.Find(ByType[widgets.Text]()).Texts())
	}
	if tester.NeedsPump() {
		t.Error("expected no pending work after Pump")
	}
}

func TestDispatch_RunsOnPump(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	ran := false
	tester.Dispatch(func() { ran = true })

	if !tester.NeedsPump() {
		t.Error("expected dispatched callback to count as pending work")
	}
	if ran {
		t.Fatal("callback ran before Pump")
	}
	tester.Pump()
	if !ran {
		t.Error("callback did not run on Pump")
	}
}

func TestUnmount_ReleasesSubscriptions(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})
	counter := testbed.CounterBloc(tester.RootElement())

	if counter.Len() != 1 {
		t.Fatalf("expected one listener, got %d", counter.Len())
	}
	tester.Unmount()
	if counter.Len() != 0 {
		t.Errorf("expected no listeners after unmount, got %d", counter.Len())
	}
	if tester.RootElement() != nil {
		t.Error("expected nil root after unmount")
	}
}
