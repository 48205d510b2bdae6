package bloc

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Change describes a single state replacement.
type Change[S any] struct {
	Current S
	Next    S
}

func (c Change[S]) String() string {
	return fmt.Sprintf("Change{current: %v, next: %v}", c.Current, c.Next)
}

// Observer sees every Bloc created and every state change, regardless of
// state type. Implementations must not call Emit on the observed Bloc.
type Observer interface {
	OnCreate(bloc any, initial any)
	OnChange(bloc any, change fmt.Stringer)
}

type noopObserver struct{}

func (noopObserver) OnCreate(any, any)          {}
func (noopObserver) OnChange(any, fmt.Stringer) {}

var (
	observerMu sync.RWMutex
	observer   Observer = noopObserver{}
)

// SetObserver installs the global observer. Pass nil to restore the no-op default.
func SetObserver(o Observer) {
	observerMu.Lock()
	defer observerMu.Unlock()
	if o == nil {
		observer = noopObserver{}
		return
	}
	observer = o
}

func currentObserver() Observer {
	observerMu.RLock()
	defer observerMu.RUnlock()
	return observer
}

// LogObserver logs Bloc lifecycle events at debug level.
type LogObserver struct {
	// Logger receives the entries. Nil uses the logrus standard logger.
	Logger *logrus.Logger
}

func (o *LogObserver) logger() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

func (o *LogObserver) OnCreate(bloc any, initial any) {
	o.logger().WithFields(logrus.Fields{
		"bloc":    fmt.Sprintf("%T", bloc),
		"initial": initial,
	}).Debug("bloc created")
}

func (o *LogObserver) OnChange(bloc any, change fmt.Stringer) {
	o.logger().WithFields(logrus.Fields{
		"bloc":   fmt.Sprintf("%T", bloc),
		"change": change.String(),
	}).Debug("bloc changed")
}
