package casper

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/casper-db/casper-go/internal/casperfake"
	"github.com/casper-db/casper-go/v1/observability"
)

func testConfig(srv *casperfake.Server) *Config {
	return DefaultConfig().
		WithEndpoint(srv.URL()).
		WithGRPCAddress(srv.GRPCAddress()).
		WithDialOptions(srv.DialOptions()...)
}

func newFake(t *testing.T) *casperfake.Server {
	t.Helper()
	srv := casperfake.New()
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) (*Client, *casperfake.Server) {
	t.Helper()

	srv := newFake(t)

	client, err := NewClient(*testConfig(srv))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, srv
}

// TestObserver records every observed operation.
type TestObserver struct {
	mu         sync.Mutex
	operations []observability.OperationContext
}

func (o *TestObserver) ObserveOperation(ctx observability.OperationContext) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.operations = append(o.operations, ctx)
}

func (o *TestObserver) GetOperations() []observability.OperationContext {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]observability.OperationContext, len(o.operations))
	copy(out, o.operations)
	return out
}

func vectorOf(dim int, seed float32) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = seed + float32(i)/float32(dim)
	}
	return v
}

func u32(v uint32) *uint32 { return &v }
