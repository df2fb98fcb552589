package casper

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
)

func requireName(op, field, name string) error {
	if name == "" {
		return validationError(op, field, "must not be empty")
	}
	return nil
}

func requireVector(op string, v []float32) error {
	if len(v) == 0 {
		return validationError(op, "vector", "must not be empty")
	}
	return nil
}

func requirePositive(op, field string, v uint32) error {
	if v == 0 {
		return validationError(op, field, "must be greater than zero")
	}
	return nil
}

func validateHNSW(op string, cfg HNSWIndexConfig) error {
	if cfg.Metric == "" {
		return validationError(op, "metric", "must not be empty")
	}
	if cfg.Quantization == "" {
		return validationError(op, "quantization", "must not be empty")
	}
	if err := requirePositive(op, "m", cfg.M); err != nil {
		return err
	}
	if err := requirePositive(op, "m0", cfg.M0); err != nil {
		return err
	}
	if err := requirePositive(op, "ef_construction", cfg.EfConstruction); err != nil {
		return err
	}
	if cfg.Quantization == QuantizationPQ8 && (cfg.PQName == nil || *cfg.PQName == "") {
		return validationError(op, "pq_name", "is required for pq8 quantization")
	}
	return nil
}

// chunkValues splits values into consecutive sub-slices of at most size
// elements. The chunks share the backing array of values.
func chunkValues(values []float32, size int) [][]float32 {
	if len(values) == 0 || size < 1 {
		return nil
	}
	chunks := make([][]float32, 0, (len(values)+size-1)/size)
	for start := 0; start < len(values); start += size {
		end := start + size
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end:end])
	}
	return chunks
}

// searchEntrySize is the size of one (u32 id, f32 score) pair in the binary layout.
const searchEntrySize = 8

// decodeSearchResults decodes a search body by its content type: JSON objects
// or [id, score] tuples, otherwise the little-endian binary layout
// u32 count followed by count (u32 id, f32 score) pairs.
func decodeSearchResults(op, contentType string, body []byte) ([]SearchResult, error) {
	if isJSON(contentType) {
		return decodeSearchJSON(op, body)
	}
	return decodeSearchBinary(op, body)
}

func decodeSearchBinary(op string, body []byte) ([]SearchResult, error) {
	if len(body) < 4 {
		return nil, &DecodeError{Op: op, Body: body, Err: fmt.Errorf("binary search response truncated: %d bytes", len(body))}
	}
	count := binary.LittleEndian.Uint32(body[:4])
	want := 4 + uint64(count)*searchEntrySize
	if uint64(len(body)) != want {
		return nil, &DecodeError{Op: op, Body: body, Err: fmt.Errorf("binary search response has %d bytes, expected %d for %d results", len(body), want, count)}
	}

	results := make([]SearchResult, count)
	for i := range results {
		off := 4 + i*searchEntrySize
		results[i] = SearchResult{
			ID:    binary.LittleEndian.Uint32(body[off : off+4]),
			Score: math.Float32frombits(binary.LittleEndian.Uint32(body[off+4 : off+8])),
		}
	}
	return results, nil
}

func decodeSearchJSON(op string, body []byte) ([]SearchResult, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &DecodeError{Op: op, Body: body, Err: err}
	}

	results := make([]SearchResult, 0, len(raw))
	for i, item := range raw {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '[' {
			var tuple []float64
			if err := json.Unmarshal(item, &tuple); err != nil {
				return nil, &DecodeError{Op: op, Body: body, Err: fmt.Errorf("result %d: %w", i, err)}
			}
			if len(tuple) != 2 || tuple[0] < 0 || tuple[0] > math.MaxUint32 || tuple[0] != math.Trunc(tuple[0]) {
				return nil, &DecodeError{Op: op, Body: body, Err: fmt.Errorf("result %d: expected [id, score], got %s", i, item)}
			}
			results = append(results, SearchResult{ID: uint32(tuple[0]), Score: float32(tuple[1])})
			continue
		}

		var r SearchResult
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, &DecodeError{Op: op, Body: body, Err: fmt.Errorf("result %d: %w", i, err)}
		}
		results = append(results, r)
	}
	return results, nil
}
