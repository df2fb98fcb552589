package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/casper-db/casper-go/v1/logger"
)

// FXModule provides *Tracer from a tracer.Config and shuts the provider down
// when the application stops, flushing pending spans.
//
//	app := fx.New(
//	    tracer.FXModule,
//	    fx.Supply(tracer.Config{ServiceName: "search-api"}),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle registers the shutdown hook of the tracer.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down tracer", nil, nil)
			return t.Shutdown(ctx)
		},
	})
}
