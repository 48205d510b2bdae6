package testing

import (
	"testing"

	"github.com/go-drift/bloc/pkg/core"
	"github.com/go-drift/bloc/pkg/testing/internal/testbed"
	"github.com/go-drift/bloc/pkg/widgets"
)

type keyed struct {
	core.StatelessBase
	key   string
	child core.Widget
}

func (k keyed) Key() any { return k.key }

func (k keyed) Build(ctx core.BuildContext) core.Widget { return k.child }

func TestByType(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	result := tester.Find(ByType[widgets.Text]())
	if !result.Exists() {
		t.Fatal("expected to find Text widget")
	}
	text := result.Widget().(widgets.Text)
	if text.Content != "0" {
		t.Errorf("expected text '0', got %q", text.Content)
	}
}

func TestByText(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 42})

	if !tester.Find(ByText("42")).Exists() {
		t.Error("expected to find text '42'")
	}
	if tester.Find(ByText("99")).Exists() {
		t.Error("should not find text '99'")
	}
}

func TestByTextContaining(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 123})

	if !tester.Find(ByTextContaining("12")).Exists() {
		t.Error("expected to find text containing '12'")
	}
	if tester.Find(ByTextContaining("99")).Exists() {
		t.Error("should not find text containing '99'")
	}
}

func TestByType_BlocScope(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 5})

	if !tester.Find(ByType[widgets.BlocScope[int]]()).Exists() {
		t.Fatal("expected to find BlocScope inside Counter")
	}
	if tester.Find(ByType[widgets.BlocScope[string]]()).Exists() {
		t.Error("BlocScope[string] should not match BlocScope[int]")
	}
}

func TestByKey(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(keyed{key: "outer", child: keyed{key: "inner", child: widgets.Text{Content: "x"}}})

	result := tester.Find(ByKey("inner"))
	if result.Count() != 1 {
		t.Fatalf("expected 1 match, got %d", result.Count())
	}
	if result.Widget().(keyed).key != "inner" {
		t.Errorf("matched wrong widget %#v", result.Widget())
	}
}

func TestByPredicate(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 3})

	result := tester.Find(ByPredicate(func(e core.Element) bool {
		_, ok := e.Widget().(widgets.BlocBuilder[int])
		return ok
	}))
	if result.Count() != 1 {
		t.Errorf("expected 1 BlocBuilder, got %d", result.Count())
	}
}

func TestDescendant(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 1})

	inside := tester.Find(Descendant(ByType[widgets.BlocScope[int]](), ByType[widgets.Text]()))
	if inside.Count() != 1 {
		t.Errorf("expected Text under BlocScope, got %d", inside.Count())
	}
	outside := tester.Find(Descendant(ByType[widgets.Text](), ByType[widgets.BlocScope[int]]()))
	if outside.Exists() {
		t.Error("BlocScope is not a descendant of Text")
	}
}

func TestFinderResult_FirstPanicsWhenEmpty(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(testbed.Counter{Initial: 0})

	defer func() {
		if recover() == nil {
			t.Error("expected First to panic")
		}
	}()
	tester.Find(ByText("missing")).First()
}

func TestFinderResult_Texts(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	tester.PumpWidget(keyed{key: "k", child: widgets.Text{Content: "a"}})

	texts := tester.Find(ByType[widgets.Text]()).Texts()
	if len(texts) != 1 || texts[0] != "a" {
		t.Errorf("Texts() = %v, want [a]", texts)
	}
}

func TestFindWithoutRoot(t *testing.T) {
	tester := NewWidgetTesterWithT(t)
	if tester.Find(ByType[widgets.Text]()).Exists() {
		t.Error("expected no matches on an empty tester")
	}
}
