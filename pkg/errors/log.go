package errors

import (
	"github.com/sirupsen/logrus"
)

// LogHandler is an ErrorHandler that logs errors through logrus.
type LogHandler struct {
	// Logger receives the entries. Nil uses the logrus standard logger.
	Logger *logrus.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *logrus.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logrus.StandardLogger()
}

// HandleError logs a BlocError.
func (h *LogHandler) HandleError(err *BlocError) {
	if err == nil {
		return
	}
	entry := h.logger().WithFields(logrus.Fields{
		"op":   err.Op,
		"kind": err.Kind.String(),
	})
	if err.Key != "" {
		entry = entry.WithField("key", err.Key)
	}
	entry.WithError(err.Err).Error("bloc error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	entry := h.logger().WithField("value", err.Value)
	if err.Op != "" {
		entry = entry.WithField("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}
	entry.Error("bloc panic")
}

// HandleBuildError logs a BuildError.
func (h *LogHandler) HandleBuildError(err *BuildError) {
	if err == nil {
		return
	}
	entry := h.logger().WithFields(logrus.Fields{
		"widget":  err.Widget,
		"element": err.Element,
	})
	if h.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}
	entry.Error(err.Error())
}
