package server

import (
	"fmt"
	"strings"

	"github.com/go-drift/bloc/pkg/core"
	"github.com/go-drift/bloc/pkg/widgets"
)

var appNameContext, useAppName = widgets.CreateContext[string]()

// counterView renders the count as "<app>: <n>".
type counterView struct {
	core.StatelessBase
}

func (counterView) Build(ctx core.BuildContext) core.Widget {
	name := useAppName(ctx)
	return widgets.BlocBuilder[int]{
		Builder: func(ctx core.BuildContext, count int) core.Widget {
			return widgets.Text{Content: fmt.Sprintf("%s: %d", name, count)}
		},
	}
}

// renderedText concatenates the content of every Text in the tree in
// depth-first order.
func renderedText(root core.Element) string {
	var parts []string
	var walk func(core.Element)
	walk = func(e core.Element) {
		if text, ok := e.Widget().(widgets.Text); ok {
			parts = append(parts, text.Content)
		}
		e.VisitChildren(func(child core.Element) bool {
			walk(child)
			return true
		})
	}
	if root != nil {
		walk(root)
	}
	return strings.Join(parts, "\n")
}
