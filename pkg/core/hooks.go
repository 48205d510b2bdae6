package core

// UseDisposer registers release to run when the state is disposed and
// returns it unchanged, so a subscription can be opened and tied to the
// state's lifetime in one line:
//
//	func (s *viewState) InitState() {
//	    core.UseDisposer(s, counter.Listen(s.onCount))
//	}
//
// Disposers run once, last registered first.
func UseDisposer(s stateBase, release func()) func() {
	s.state().OnDispose(release)
	return release
}
