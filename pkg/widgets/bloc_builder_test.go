package widgets_test

import (
	"strconv"
	"testing"

	"github.com/go-drift/bloc/pkg/bloc"
	"github.com/go-drift/bloc/pkg/core"
	blocktest "github.com/go-drift/bloc/pkg/testing"
	"github.com/go-drift/bloc/pkg/widgets"
)

type counter struct {
	Count int
}

func counterView(b *bloc.Bloc[counter], builds *int) widgets.BlocBuilder[counter] {
	return widgets.BlocBuilder[counter]{
		Bloc: b,
		Builder: func(ctx core.BuildContext, state counter) core.Widget {
			if builds != nil {
				*builds++
			}
			return widgets.Text{Content: "count:" + strconv.Itoa(state.Count)}
		},
	}
}

func TestBlocBuilderShowsStateAtMount(t *testing.T) {
	b := bloc.New(counter{Count: 3})
	tester := blocktest.NewWidgetTesterWithT(t)

	if err := tester.PumpWidget(counterView(b, nil)); err != nil {
		t.Fatal(err)
	}

	if !tester.Find(blocktest.ByText("count:3")).Exists() {
		t.Errorf("expected count:3, got %v", tester.Find(blocktest.ByType[widgets.Text]()).Texts())
	}
	if b.Len() != 1 {
		t.Errorf("listeners = %d, want 1", b.Len())
	}
}

func TestBlocBuilderRebuildsOnEmit(t *testing.T) {
	b := bloc.New(counter{})
	builds := 0
	tester := blocktest.NewWidgetTesterWithT(t)
	tester.PumpWidget(counterView(b, &builds))

	b.Emit(counter{Count: 1})
	if !tester.NeedsPump() {
		t.Fatal("emit should schedule a rebuild")
	}
	tester.Pump()

	if !tester.Find(blocktest.ByText("count:1")).Exists() {
		t.Errorf("expected count:1, got %v", tester.Find(blocktest.ByType[widgets.Text]()).Texts())
	}
	if builds != 2 {
		t.Errorf("builds = %d, want 2", builds)
	}
}

func TestBlocBuilderCoalescesEmitsPerFrame(t *testing.T) {
	b := bloc.New(counter{})
	builds := 0
	tester := blocktest.NewWidgetTesterWithT(t)
	tester.PumpWidget(counterView(b, &builds))

	b.Emit(counter{Count: 1})
	b.Emit(counter{Count: 2})
	tester.Pump()

	if builds != 2 {
		t.Errorf("builds = %d, want 2", builds)
	}
	if !tester.Find(blocktest.ByText("count:2")).Exists() {
		t.Error("expected latest state to be displayed")
	}
}

func TestBlocBuilderDetachesOnUnmount(t *testing.T) {
	b := bloc.New(counter{})
	builds := 0
	tester := blocktest.NewWidgetTesterWithT(t)
	tester.PumpWidget(counterView(b, &builds))

	tester.Unmount()
	if b.Len() != 0 {
		t.Fatalf("listeners after unmount = %d, want 0", b.Len())
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("emit after unmount panicked: %v", r)
			}
		}()
		b.Emit(counter{Count: 9})
	}()
	if tester.NeedsPump() {
		t.Error("emit after unmount should not schedule work")
	}
	if builds != 1 {
		t.Errorf("builds = %d, want 1", builds)
	}
}

func TestBlocBuilderReattachesWhenBlocChanges(t *testing.T) {
	first := bloc.New(counter{Count: 1})
	second := bloc.New(counter{Count: 20})
	tester := blocktest.NewWidgetTesterWithT(t)
	tester.PumpWidget(counterView(first, nil))

	tester.UpdateWidget(counterView(second, nil))

	if first.Len() != 0 || second.Len() != 1 {
		t.Fatalf("listeners first=%d second=%d, want 0 and 1", first.Len(), second.Len())
	}
	if !tester.Find(blocktest.ByText("count:20")).Exists() {
		t.Errorf("expected count:20, got %v", tester.Find(blocktest.ByType[widgets.Text]()).Texts())
	}

	first.Emit(counter{Count: 2})
	if tester.NeedsPump() {
		t.Error("old bloc should no longer schedule rebuilds")
	}
	second.Emit(counter{Count: 21})
	tester.Pump()
	if !tester.Find(blocktest.ByText("count:21")).Exists() {
		t.Error("expected count:21")
	}
}

func TestBlocBuilderSameBlocKeepsSubscription(t *testing.T) {
	b := bloc.New(counter{Count: 1})
	tester := blocktest.NewWidgetTesterWithT(t)
	tester.PumpWidget(counterView(b, nil))

	tester.UpdateWidget(counterView(b, nil))

	if b.Len() != 1 {
		t.Errorf("listeners = %d, want 1", b.Len())
	}
}

func TestBlocBuilderResolvesScope(t *testing.T) {
	b := bloc.New(counter{Count: 5})
	tester := blocktest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.BlocScope[counter]{
		Bloc:  b,
		Child: counterView(nil, nil),
	})

	if !tester.Find(blocktest.ByText("count:5")).Exists() {
		t.Errorf("expected count:5, got %v", tester.Find(blocktest.ByType[widgets.Text]()).Texts())
	}

	b.Emit(counter{Count: 6})
	tester.Pump()
	if !tester.Find(blocktest.ByText("count:6")).Exists() {
		t.Error("expected count:6")
	}
}

func TestBlocBuilderFollowsScopeChange(t *testing.T) {
	first := bloc.New(counter{Count: 1})
	second := bloc.New(counter{Count: 2})
	tester := blocktest.NewWidgetTesterWithT(t)
	tester.PumpWidget(widgets.BlocScope[counter]{Bloc: first, Child: counterView(nil, nil)})

	tester.UpdateWidget(widgets.BlocScope[counter]{Bloc: second, Child: counterView(nil, nil)})

	if first.Len() != 0 || second.Len() != 1 {
		t.Fatalf("listeners first=%d second=%d, want 0 and 1", first.Len(), second.Len())
	}
	if !tester.Find(blocktest.ByText("count:2")).Exists() {
		t.Error("expected count:2")
	}
}
