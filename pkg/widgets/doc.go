// Package widgets provides the binding widgets that connect blocs, streams
// and contexts to a widget tree.
//
// # Bindings
//
// BlocBuilder rebuilds whenever its Bloc emits:
//
//	widgets.BlocBuilder[int]{
//	    Bloc: counter,
//	    Builder: func(ctx core.BuildContext, count int) core.Widget {
//	        return widgets.Text{Content: fmt.Sprintf("Count: %d", count)}
//	    },
//	}
//
// StreamBuilder rebuilds with a [stream.Snapshot] of the latest emission of a
// [stream.Source].
//
// # Providers
//
// CreateContext returns a context and an accessor that panics outside of a
// provider. BlocProvider nests several providers without the pyramid:
//
//	widgets.BlocProvider{
//	    Providers: []widgets.ProviderWidget{
//	        sessionCtx.Provide(session, nil),
//	        widgets.BlocScope[int]{Bloc: counter},
//	    },
//	    Child: app,
//	}
//
// The first provider is the outermost.
package widgets
