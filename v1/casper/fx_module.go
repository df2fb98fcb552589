package casper

import (
	"context"

	"go.uber.org/fx"

	"github.com/casper-db/casper-go/v1/logger"
	"github.com/casper-db/casper-go/v1/observability"
	"github.com/casper-db/casper-go/v1/tracer"
	"github.com/casper-db/casper-go/v1/vectordb"
)

// FXModule provides *Client and registers its shutdown.
// A casper.Config must be available in the container; logger, observer and
// tracer are picked up when present.
//
//	app := fx.New(
//	    logger.FXModule,
//	    metrics.FXModule,
//	    casper.FXModule,
//	    fx.Provide(casper.NewConfigFromEnv),
//	)
var FXModule = fx.Module("casper",
	fx.Provide(
		NewClientWithDI,
		NewVectorDBAdapterWithDI,
		func(a *VectorDBAdapter) vectordb.Service { return a },
	),
	fx.Invoke(RegisterCasperLifecycle),
)

// CasperParams groups the dependencies of NewClientWithDI.
type CasperParams struct {
	fx.In

	Config   *Config
	Logger   logger.Logger          `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   *tracer.Tracer         `optional:"true"`
}

// NewClientWithDI builds a client from injected dependencies.
func NewClientWithDI(params CasperParams) (*Client, error) {
	cfg := *params.Config
	if params.Logger != nil {
		cfg.Logger = params.Logger
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	if params.Tracer != nil {
		client.WithTracer(params.Tracer)
	}
	return client, nil
}

// AdapterParams groups the dependencies of NewVectorDBAdapterWithDI.
type AdapterParams struct {
	fx.In

	Client *Client
	Config AdapterConfig `optional:"true"`
}

// NewVectorDBAdapterWithDI exposes the client as a vectordb.Service.
func NewVectorDBAdapterWithDI(params AdapterParams) *VectorDBAdapter {
	return NewVectorDBAdapter(params.Client, params.Config)
}

// RegisterCasperLifecycle closes the client when the application stops.
func RegisterCasperLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}
