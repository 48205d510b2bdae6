// Package testbed provides internal test widgets for the testing framework.
package testbed

import (
	"strconv"

	"github.com/go-drift/bloc/pkg/bloc"
	"github.com/go-drift/bloc/pkg/core"
	"github.com/go-drift/bloc/pkg/widgets"
)

// Counter owns an int Bloc, exposes it through a BlocScope and renders the
// current count as Text.
type Counter struct {
	core.StatefulBase
	Initial int
}

func (c Counter) CreateState() core.State {
	return &counterState{}
}

type counterState struct {
	core.StateBase
	bloc *bloc.Bloc[int]
}

func (s *counterState) InitState() {
	s.bloc = bloc.New(core.WidgetOf[Counter](s).Initial)
}

func (s *counterState) Build(ctx core.BuildContext) core.Widget {
	return widgets.BlocScope[int]{
		Bloc: s.bloc,
		Child: widgets.BlocBuilder[int]{
			Builder: func(ctx core.BuildContext, count int) core.Widget {
				return widgets.Text{Content: strconv.Itoa(count)}
			},
		},
	}
}

// CounterBloc returns the Bloc owned by a mounted Counter element.
func CounterBloc(element core.Element) *bloc.Bloc[int] {
	stateful, ok := element.(*core.StatefulElement)
	if !ok {
		return nil
	}
	state, ok := stateful.State().(*counterState)
	if !ok {
		return nil
	}
	return state.bloc
}
