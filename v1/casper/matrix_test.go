package casper

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"google.golang.org/grpc/codes"

	"github.com/casper-db/casper-go/v1/metrics"
	"github.com/casper-db/casper-go/v1/tracer"
)

func TestUploadMatrixChunkingIsLossless(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	const dim, rows = 3, 7
	values := sequence(dim * rows)

	for c := 1; c <= len(values)+2; c++ {
		name := fmt.Sprintf("m-%d", c)
		res, err := client.UploadMatrix(ctx, UploadMatrixRequest{Name: name, Dim: dim, Values: values, ChunkFloats: c})
		require.NoError(t, err, "chunk %d", c)

		wantChunks := (len(values) + c - 1) / c
		assert.Equal(t, uint32(rows), res.TotalVectors)
		assert.Equal(t, uint32(wantChunks), res.TotalChunks)
		assert.Equal(t, wantChunks+1, res.FramesSent)

		stored, ok := srv.Matrix(name)
		require.True(t, ok)
		assert.Equal(t, values, stored, "chunk %d", c)
	}

	uploads := srv.Uploads()
	require.Len(t, uploads, len(values)+2)
	for i, up := range uploads {
		c := i + 1
		assert.Equal(t, uint32(dim), up.Dimension)
		assert.Equal(t, uint32(len(up.Frames)), up.TotalChunks)
		for j, frame := range up.Frames {
			assert.LessOrEqual(t, len(frame), c)
			if j < len(up.Frames)-1 {
				assert.Len(t, frame, c)
			}
		}
	}
}

func TestUploadMatrixUsesConfiguredChunkSize(t *testing.T) {
	srv := newFake(t)
	client, err := NewClient(*testConfig(srv).WithChunkFloats(8))
	require.NoError(t, err)
	defer client.Close()

	res, err := client.UploadMatrix(context.Background(), UploadMatrixRequest{Name: "m", Dim: 4, Values: sequence(20)})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), res.TotalChunks)

	up := srv.Uploads()[0]
	assert.Len(t, up.Frames[0], 8)
	assert.Len(t, up.Frames[2], 4)
}

func TestUploadMatrixValidation(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	cases := map[string]UploadMatrixRequest{
		"empty name":     {Dim: 2, Values: sequence(4)},
		"zero dim":       {Name: "m", Values: sequence(4)},
		"empty values":   {Name: "m", Dim: 2},
		"partial row":    {Name: "m", Dim: 3, Values: sequence(4)},
		"negative chunk": {Name: "m", Dim: 2, Values: sequence(4), ChunkFloats: -1},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := client.UploadMatrix(ctx, req)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
	assert.Empty(t, srv.Uploads())
}

func TestUploadMatrixServerAbort(t *testing.T) {
	client, srv := newTestClient(t)
	srv.FailUploadAfter(2)

	_, err := client.UploadMatrix(context.Background(), UploadMatrixRequest{Name: "m", Dim: 1, Values: sequence(50), ChunkFloats: 1})

	var se *StreamError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codes.ResourceExhausted, se.Code)
	assert.Equal(t, "m", se.Matrix)

	_, stored := srv.Matrix("m")
	assert.False(t, stored)
}

func TestUploadMatrixCancelled(t *testing.T) {
	client, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.UploadMatrix(ctx, UploadMatrixRequest{Name: "m", Dim: 2, Values: sequence(4)})

	var se *StreamError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, codes.Canceled, se.Code)
}

func TestConcurrentUploadsDoNotInterleave(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			values := make([]float32, 64)
			for j := range values {
				values[j] = float32(i)
			}
			_, err := client.UploadMatrix(ctx, UploadMatrixRequest{Name: fmt.Sprintf("m-%d", i), Dim: 4, Values: values, ChunkFloats: 5})
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	for i := 0; i < n; i++ {
		stored, ok := srv.Matrix(fmt.Sprintf("m-%d", i))
		require.True(t, ok)
		for _, v := range stored {
			require.Equal(t, float32(i), v)
		}
	}
}

func TestUploadMatrixPropagatesTraceContext(t *testing.T) {
	client, srv := newTestClient(t)
	rec := tracetest.NewSpanRecorder()
	client.WithTracer(tracer.NewFromProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))))

	_, err := client.UploadMatrix(context.Background(), UploadMatrixRequest{Name: "m", Dim: 2, Values: sequence(4)})
	require.NoError(t, err)

	up := srv.Uploads()[0]
	require.NotEmpty(t, up.Metadata["traceparent"])

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, up.Metadata["traceparent"][0], spans[0].SpanContext().TraceID().String())
}

func TestMatrixAndPQLifecycle(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for _, name := range []string{"cb-0", "cb-1"} {
		_, err := client.UploadMatrix(ctx, UploadMatrixRequest{Name: name, Dim: 4, Values: sequence(16)})
		require.NoError(t, err)
	}

	info, err := client.GetMatrix(ctx, "cb-0")
	require.NoError(t, err)
	assert.Equal(t, MatrixInfo{Name: "cb-0", Dim: 4, Len: 4, Enabled: true}, *info)

	matrices, err := client.ListMatrices(ctx)
	require.NoError(t, err)
	assert.Len(t, matrices, 2)

	err = client.CreatePQ(ctx, "pq", CreatePQRequest{Dim: 8, Codebooks: []string{"cb-0", "missing"}})
	assert.True(t, IsNotFound(err))

	require.NoError(t, client.CreatePQ(ctx, "pq", CreatePQRequest{Dim: 8, Codebooks: []string{"cb-0", "cb-1"}}))
	pq, err := client.GetPQ(ctx, "pq")
	require.NoError(t, err)
	assert.Equal(t, []string{"cb-0", "cb-1"}, pq.Codebooks)
	assert.Equal(t, uint32(8), pq.Dim)

	pqs, err := client.ListPQs(ctx)
	require.NoError(t, err)
	require.Len(t, pqs, 1)

	require.NoError(t, client.DeletePQ(ctx, "pq"))
	_, err = client.GetPQ(ctx, "pq")
	assert.True(t, IsNotFound(err))
	pqs, err = client.ListPQs(ctx)
	require.NoError(t, err)
	assert.NotNil(t, pqs)
	assert.Empty(t, pqs)

	require.NoError(t, client.DeleteMatrix(ctx, "cb-0"))
	_, err = client.GetMatrix(ctx, "cb-0")
	assert.True(t, IsNotFound(err))
}

func TestPQIndexRequiresExistingQuantizer(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.CreateCollection(ctx, "docs", CreateCollectionRequest{Dim: 4, MaxSize: 10}))

	pqName := "absent"
	err := client.CreateHNSWIndex(ctx, "docs", CreateHNSWIndexRequest{
		HNSW: HNSWIndexConfig{Metric: MetricInnerProduct, Quantization: QuantizationPQ8, M: 8, M0: 16, EfConstruction: 32, PQName: &pqName},
	})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 400, reqErr.StatusCode)
}

func TestUploadMatrixFeedsPrometheusObserver(t *testing.T) {
	client, _ := newTestClient(t)
	m := metrics.NewMetrics(metrics.Config{ServiceName: "test"})
	client.WithObserver(m)
	ctx := context.Background()

	_, err := client.UploadMatrix(ctx, UploadMatrixRequest{Name: "emb", Dim: 3, Values: sequence(12), ChunkFloats: 5})
	require.NoError(t, err)
	_, err = client.GetMatrix(ctx, "emb")
	require.NoError(t, err)

	expected := `
# HELP casper_client_streamed_values_total Float values sent through matrix upload streams
# TYPE casper_client_streamed_values_total counter
casper_client_streamed_values_total{matrix="emb",service="test"} 12
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "casper_client_streamed_values_total"))

	count, err := testutil.GatherAndCount(m.Registry, "casper_client_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
