package stream

// ConnectionState describes where a Source is in its lifecycle.
type ConnectionState int

const (
	// None means nothing has been received.
	None ConnectionState = iota
	// Waiting means a subscription exists but nothing has been received yet.
	Waiting
	// Active means at least one value has been received.
	Active
	// Done means the source completed.
	Done
)

func (s ConnectionState) String() string {
	switch s {
	case None:
		return "none"
	case Waiting:
		return "waiting"
	case Active:
		return "active"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Snapshot is the latest known status of a Source. The concrete variants are
// NoneSnapshot, WaitingSnapshot, ActiveSnapshot and DoneSnapshot; only
// ActiveSnapshot carries data.
type Snapshot[T any] interface {
	ConnectionState() ConnectionState
	sealed()
}

// NoneSnapshot is the initial snapshot.
type NoneSnapshot[T any] struct{}

func (NoneSnapshot[T]) ConnectionState() ConnectionState { return None }
func (NoneSnapshot[T]) sealed()                          {}

// WaitingSnapshot is reserved for sources that signal subscription before
// their first value. StreamBuilder does not produce it.
type WaitingSnapshot[T any] struct{}

func (WaitingSnapshot[T]) ConnectionState() ConnectionState { return Waiting }
func (WaitingSnapshot[T]) sealed()                          {}

// ActiveSnapshot carries the latest value.
type ActiveSnapshot[T any] struct {
	Data T
}

func (ActiveSnapshot[T]) ConnectionState() ConnectionState { return Active }
func (ActiveSnapshot[T]) sealed()                          {}

// DoneSnapshot is terminal.
type DoneSnapshot[T any] struct{}

func (DoneSnapshot[T]) ConnectionState() ConnectionState { return Done }
func (DoneSnapshot[T]) sealed()                          {}

// Data returns the value held by s and whether s is active.
func Data[T any](s Snapshot[T]) (T, bool) {
	if active, ok := s.(ActiveSnapshot[T]); ok {
		return active.Data, true
	}
	var zero T
	return zero, false
}
