// Package testing provides a widget testing harness for bindings.
//
// # Quick Start
//
// Create a tester, pump a widget, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    counter := bloc.New(0)
//	    tester := blocktest.NewWidgetTesterWithT(t)
//	    tester.PumpWidget(widgets.BlocBuilder[int]{
//	        Bloc: counter,
//	        Builder: func(ctx core.BuildContext, n int) core.Widget {
//	            return widgets.Text{Content: strconv.Itoa(n)}
//	        },
//	    })
//
//	    counter.Emit(1)
//	    tester.Pump()
//
//	    if !tester.Find(blocktest.ByText("1")).Exists() {
//	        t.Error("expected '1' text")
//	    }
//	}
//
// Import the package under an alias (blocktest above) to avoid clashing with
// the standard library testing package.
//
// # Deferred Delivery
//
// Dispatch queues a callback for the next Pump, which is how tests model a
// source that delivers asynchronously onto the build goroutine.
package testing
