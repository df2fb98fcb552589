package casper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetric(t *testing.T) {
	assert.Equal(t, MetricInnerProduct, ParseMetric("ip"))
	assert.Equal(t, MetricInnerProduct, ParseMetric(" Dot "))
	assert.Equal(t, MetricEuclidean, ParseMetric("L2"))
	assert.Equal(t, MetricCosine, ParseMetric("cosine"))
	assert.Equal(t, Metric("manhattan"), ParseMetric("manhattan"))

	assert.True(t, MetricCosine.IsKnown())
	assert.False(t, Metric("manhattan").IsKnown())
}

func TestParseQuantization(t *testing.T) {
	assert.Equal(t, QuantizationF32, ParseQuantization("float32"))
	assert.Equal(t, QuantizationPQ8, ParseQuantization("PQ8"))
	assert.False(t, ParseQuantization("int4").IsKnown())
}

func TestUnknownEnumValuesRoundTrip(t *testing.T) {
	body := []byte(`{"metric":"hamming","quantization":"int4","m":8,"m0":16,"ef_construction":64}`)

	var cfg HNSWIndexConfig
	require.NoError(t, json.Unmarshal(body, &cfg))
	assert.Equal(t, Metric("hamming"), cfg.Metric)
	assert.False(t, cfg.Metric.IsKnown())

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, string(body), string(out))
}
