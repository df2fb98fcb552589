package casper

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeBinaryResults(results []SearchResult) []byte {
	buf := make([]byte, 4+len(results)*searchEntrySize)
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(results)))
	for i, r := range results {
		off := 4 + i*searchEntrySize
		binary.LittleEndian.PutUint32(buf[off:], r.ID)
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(r.Score))
	}
	return buf
}

func sequence(n int) []float32 {
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(i) + 0.5
	}
	return values
}

func TestChunkValuesIsLossless(t *testing.T) {
	values := sequence(97)

	for size := 1; size <= len(values)+3; size++ {
		chunks := chunkValues(values, size)

		require.Len(t, chunks, (len(values)+size-1)/size, "chunk size %d", size)
		var joined []float32
		for i, chunk := range chunks {
			require.NotEmpty(t, chunk)
			require.LessOrEqual(t, len(chunk), size)
			if i < len(chunks)-1 {
				require.Len(t, chunk, size)
			}
			joined = append(joined, chunk...)
		}
		require.Equal(t, values, joined, "chunk size %d", size)
	}
}

func TestChunkValuesSharesBackingArray(t *testing.T) {
	values := sequence(10)
	chunks := chunkValues(values, 4)

	require.Len(t, chunks, 3)
	assert.Same(t, &values[4], &chunks[1][0])
	assert.Equal(t, 4, cap(chunks[0]))
}

func TestChunkValuesEmpty(t *testing.T) {
	assert.Nil(t, chunkValues(nil, 4))
	assert.Nil(t, chunkValues(sequence(3), 0))
}

func TestDecodeSearchBinary(t *testing.T) {
	want := []SearchResult{{ID: 7, Score: 0.9}, {ID: 3, Score: -1.25}}

	got, err := decodeSearchResults("search", "application/octet-stream", encodeBinaryResults(want))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	empty, err := decodeSearchResults("search", "", encodeBinaryResults(nil))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDecodeSearchBinaryRejectsMalformed(t *testing.T) {
	full := encodeBinaryResults([]SearchResult{{ID: 1, Score: 1}, {ID: 2, Score: 0.5}})

	for name, body := range map[string][]byte{
		"empty":          nil,
		"short count":    {1, 0},
		"truncated pair": full[:len(full)-3],
		"trailing bytes": append(append([]byte(nil), full...), 0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := decodeSearchResults("search", "application/octet-stream", body)
			require.Error(t, err)
			assert.Equal(t, KindDecode, KindOf(err))
		})
	}
}

func TestDecodeSearchJSON(t *testing.T) {
	objects, err := decodeSearchResults("search", "application/json; charset=utf-8", []byte(`[{"id":4,"score":0.75},{"id":2,"score":0.5}]`))
	require.NoError(t, err)
	assert.Equal(t, []SearchResult{{ID: 4, Score: 0.75}, {ID: 2, Score: 0.5}}, objects)

	tuples, err := decodeSearchResults("search", "application/json", []byte(`[[4, 0.75], [2, 0.5]]`))
	require.NoError(t, err)
	assert.Equal(t, objects, tuples)

	_, err = decodeSearchResults("search", "application/json", []byte(`[[4]]`))
	assert.Equal(t, KindDecode, KindOf(err))

	_, err = decodeSearchResults("search", "application/json", []byte(`{"id":1}`))
	assert.Equal(t, KindDecode, KindOf(err))
}

func TestValidateHNSW(t *testing.T) {
	valid := HNSWIndexConfig{Metric: MetricInnerProduct, Quantization: QuantizationF32, M: 16, M0: 32, EfConstruction: 200}
	require.NoError(t, validateHNSW("op", valid))

	pqName := "pq-1"
	withPQ := valid
	withPQ.Quantization = QuantizationPQ8
	withPQ.PQName = &pqName
	require.NoError(t, validateHNSW("op", withPQ))

	cases := map[string]func(c *HNSWIndexConfig){
		"metric":          func(c *HNSWIndexConfig) { c.Metric = "" },
		"quantization":    func(c *HNSWIndexConfig) { c.Quantization = "" },
		"m":               func(c *HNSWIndexConfig) { c.M = 0 },
		"m0":              func(c *HNSWIndexConfig) { c.M0 = 0 },
		"ef_construction": func(c *HNSWIndexConfig) { c.EfConstruction = 0 },
		"pq_name":         func(c *HNSWIndexConfig) { c.Quantization = QuantizationPQ8 },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			err := validateHNSW("op", cfg)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, field, ve.Field)
		})
	}
}
