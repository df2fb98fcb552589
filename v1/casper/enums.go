package casper

import "strings"

// Metric is the distance function of an HNSW index.
// Values the client does not know are kept verbatim.
type Metric string

const (
	MetricInnerProduct Metric = "inner-product"
	MetricEuclidean    Metric = "euclidean"
	MetricCosine       Metric = "cosine"
)

// IsKnown reports whether m is one of the metrics defined by this package.
func (m Metric) IsKnown() bool {
	switch m {
	case MetricInnerProduct, MetricEuclidean, MetricCosine:
		return true
	}
	return false
}

func (m Metric) String() string { return string(m) }

// ParseMetric maps common spellings onto a Metric. Unrecognized input is
// returned unchanged as a Metric.
func ParseMetric(s string) Metric {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inner-product", "inner_product", "innerproduct", "ip", "dot":
		return MetricInnerProduct
	case "euclidean", "l2":
		return MetricEuclidean
	case "cosine", "cos":
		return MetricCosine
	}
	return Metric(s)
}

// Quantization is the storage encoding of indexed vectors.
type Quantization string

const (
	QuantizationF32 Quantization = "f32"
	QuantizationPQ8 Quantization = "pq8"
)

// IsKnown reports whether q is one of the quantizations defined by this package.
func (q Quantization) IsKnown() bool {
	return q == QuantizationF32 || q == QuantizationPQ8
}

func (q Quantization) String() string { return string(q) }

// ParseQuantization maps common spellings onto a Quantization.
func ParseQuantization(s string) Quantization {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f32", "float32":
		return QuantizationF32
	case "pq8", "pq":
		return QuantizationPQ8
	}
	return Quantization(s)
}
