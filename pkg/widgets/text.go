package widgets

import (
	"github.com/go-drift/bloc/pkg/core"
	"github.com/go-drift/bloc/pkg/errors"
)

// Text is a leaf widget carrying a string. It renders nothing itself; hosts
// and tests read Content from the mounted tree.
type Text struct {
	core.StatelessBase
	// Content is the text string to display.
	Content string
}

func (t Text) Build(ctx core.BuildContext) core.Widget {
	return nil
}

// ErrorText mounts the failure message as Text. Install it with
// core.SetErrorWidgetBuilder(widgets.ErrorText).
func ErrorText(err *errors.BuildError) core.Widget {
	return Text{Content: err.Error()}
}
