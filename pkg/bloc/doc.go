// Package bloc provides an observable state container and the attach/detach
// contract that UI bindings use to mirror it.
//
// A Bloc holds exactly one current state value and an ordered list of
// listeners. Emit replaces the state and synchronously notifies every
// listener, in subscription order, with the new value:
//
//	counter := bloc.New(0)
//	l := bloc.NewListener(func(n int) { fmt.Println("count:", n) })
//	counter.Subscribe(l)
//	counter.Emit(1) // prints "count: 1"
//	counter.Unsubscribe(l)
//
// Listeners are handles rather than bare functions so that subscribing the
// same listener twice (and unsubscribing it once) is well defined. Listen is
// a shorthand that returns a cancel function instead.
//
// # Bindings
//
// Binding is the lifecycle-facing half of the package. A UI adapter calls
// Attach when its view mounts (or when the bound Bloc changes) and Detach when
// it unmounts; in between, Value always reflects the latest state.
//
// # Observers
//
// SetObserver installs a process-wide hook that sees every Bloc creation and
// state change. LogObserver writes changes to logrus at debug level.
package bloc
