// Package errors provides structured error handling for the bloc library.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBuild indicates a build-time widget error.
	KindBuild
	// KindContext indicates a context read outside of its provider.
	KindContext
	// KindStorage indicates a key/value or cookie storage failure.
	KindStorage
	// KindStream indicates an error delivered by a push source.
	KindStream
)

func (k ErrorKind) String() string {
	switch k {
	case KindPanic:
		return "panic"
	case KindBuild:
		return "build"
	case KindContext:
		return "context"
	case KindStorage:
		return "storage"
	case KindStream:
		return "stream"
	default:
		return "unknown"
	}
}

// BlocError represents a structured error raised by the library.
type BlocError struct {
	// Op is the operation that failed (e.g., "storage.Set").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Key is the storage key or context name, if applicable.
	Key string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BlocError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s [%s] key=%s: %v", e.Op, e.Kind, e.Key, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BlocError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "bloc.Emit").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildError represents a failure during widget build.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, StatefulElement, etc.).
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// MissingProviderMessage is the message carried by every ContextError.
const MissingProviderMessage = "context must be inside a Provider with a value"

// ContextError is raised (as a panic value) when a context accessor runs
// without an enclosing provider. It signals a usage bug, not a runtime condition.
type ContextError struct {
	// Context is the type name of the context value that was requested.
	Context string
}

func (e *ContextError) Error() string {
	if e.Context == "" {
		return MissingProviderMessage
	}
	return fmt.Sprintf("%s: %s", MissingProviderMessage, e.Context)
}

// ErrorHandler receives errors reported by the library.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BlocError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}
