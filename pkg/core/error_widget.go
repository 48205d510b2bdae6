package core

import (
	"sync/atomic"

	"github.com/go-drift/bloc/pkg/errors"
)

// ErrorWidgetBuilder returns the widget mounted in place of a subtree whose
// build panicked. A nil result leaves the slot empty.
type ErrorWidgetBuilder func(err *errors.BuildError) Widget

var errorWidgetBuilder atomic.Pointer[ErrorWidgetBuilder]

// SetErrorWidgetBuilder replaces the process-wide fallback builder. Nil
// restores DefaultErrorWidgetBuilder.
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) {
	if builder == nil {
		errorWidgetBuilder.Store(nil)
		return
	}
	errorWidgetBuilder.Store(&builder)
}

// GetErrorWidgetBuilder returns the current fallback builder.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	if builder := errorWidgetBuilder.Load(); builder != nil {
		return *builder
	}
	return DefaultErrorWidgetBuilder
}

// DefaultErrorWidgetBuilder mounts nothing. The failure has already been
// passed to errors.ReportBuildError.
func DefaultErrorWidgetBuilder(*errors.BuildError) Widget {
	return nil
}
