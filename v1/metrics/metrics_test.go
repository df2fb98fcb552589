package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casper-db/casper-go/v1/observability"
)

func TestNewMetricsDefaults(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})
	assert.Equal(t, DefaultMetricsAddress, m.Server.Addr)
	assert.Equal(t, DefaultNamespace, m.namespace)
}

func TestObserveOperationCountsByStatus(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "casper", Operation: "search", Transport: "http", Duration: 5 * time.Millisecond,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "casper", Operation: "search", Transport: "http", Error: errors.New("boom"),
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "casper", Operation: "search", Transport: "http",
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("search", "http", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("search", "http", StatusError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestObserveOperationCountsStreamedValues(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Operation: "upload_matrix", Transport: "grpc", Resource: "embeddings", Size: 384,
	})
	m.ObserveOperation(observability.OperationContext{
		Operation: "get_matrix", Transport: "http", Resource: "embeddings", Size: 1000,
	})

	assert.Equal(t, 384.0, testutil.ToFloat64(m.streamedValues.WithLabelValues("embeddings")))
}

func TestCreateCounterRegistersWithServiceLabel(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "svc"})
	c := m.CreateCounter("custom_total", "custom", []string{"kind"})
	c.WithLabelValues("a").Inc()

	count, err := testutil.GatherAndCount(m.Registry, DefaultNamespace+"_custom_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsEndpointServesRegistry(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "svc"})
	m.IncrementRequests("list_collections", "http", StatusOK)

	rr := httptest.NewRecorder()
	m.Server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `casper_client_operations_total{operation="list_collections",service="svc",status="ok",transport="http"} 1`), body)
}
