package widgets

import "github.com/go-drift/bloc/pkg/core"

// ProviderWidget is a widget that wraps a single child and can be
// re-instantiated around a different one.
type ProviderWidget interface {
	core.Widget
	WithChild(child core.Widget) core.Widget
}

// ComposeProviders nests providers around child. The first provider is the
// outermost; an empty list returns child unchanged.
func ComposeProviders(providers []ProviderWidget, child core.Widget) core.Widget {
	for i := len(providers) - 1; i >= 0; i-- {
		if providers[i] == nil {
			continue
		}
		child = providers[i].WithChild(child)
	}
	return child
}

// BlocProvider mounts Providers nested in order, outermost first, around Child.
type BlocProvider struct {
	core.StatelessBase
	Providers []ProviderWidget
	Child     core.Widget
}

func (p BlocProvider) Build(ctx core.BuildContext) core.Widget {
	return ComposeProviders(p.Providers, p.Child)
}
