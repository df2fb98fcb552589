package casper

// CreateCollectionRequest describes a new collection.
type CreateCollectionRequest struct {
	Dim     uint32 `json:"dim"`
	MaxSize uint32 `json:"max_size"`
}

// CollectionInfo is the server's description of a collection.
type CollectionInfo struct {
	Name      string     `json:"name"`
	Dimension uint32     `json:"dimension"`
	Mutable   bool       `json:"mutable"`
	HasIndex  bool       `json:"has_index"`
	MaxSize   uint32     `json:"max_size"`
	Size      uint32     `json:"size"`
	Index     *IndexInfo `json:"index,omitempty"`
}

// IndexInfo describes the index attached to a collection.
type IndexInfo struct {
	HNSW          *HNSWIndexConfig `json:"hnsw,omitempty"`
	Normalization bool             `json:"normalization"`
}

type collectionsResponse struct {
	Collections []CollectionInfo `json:"collections"`
}

// InsertRequest adds a single vector.
type InsertRequest struct {
	ID     uint32    `json:"id"`
	Vector []float32 `json:"vector"`
}

// VectorRecord is a stored vector.
type VectorRecord struct {
	ID     uint32    `json:"id"`
	Vector []float32 `json:"vector"`
}

// SearchRequest is a nearest-neighbour query.
//
// Limit caps the number of returned results; nil returns the whole candidate
// pool. Candidates sets the server-side pool size; zero uses Limit, or
// DefaultSearchCandidates when Limit is nil.
type SearchRequest struct {
	Vector     []float32 `json:"vector"`
	Limit      *uint32   `json:"limit,omitempty"`
	Candidates uint32    `json:"-"`
}

// DefaultSearchCandidates is the candidate pool used when a search sets neither limit nor pool.
const DefaultSearchCandidates = 10

// SearchResult is one hit, ordered best first.
type SearchResult struct {
	ID    uint32  `json:"id"`
	Score float32 `json:"score"`
}

// BatchInsertOperation is one insert of a batch update.
type BatchInsertOperation struct {
	ID     uint32    `json:"id"`
	Vector []float32 `json:"vector"`
}

// BatchUpdateRequest groups inserts and deletes into one request.
type BatchUpdateRequest struct {
	Insert []BatchInsertOperation `json:"insert"`
	Delete []uint32               `json:"delete"`
}

// HNSWIndexConfig holds HNSW build parameters.
type HNSWIndexConfig struct {
	Metric         Metric       `json:"metric"`
	Quantization   Quantization `json:"quantization"`
	M              uint32       `json:"m"`
	M0             uint32       `json:"m0"`
	EfConstruction uint32       `json:"ef_construction"`
	PQName         *string      `json:"pq_name,omitempty"`
}

// CreateHNSWIndexRequest creates an HNSW index. Normalization is omitted from
// the request when nil.
type CreateHNSWIndexRequest struct {
	HNSW          HNSWIndexConfig `json:"hnsw"`
	Normalization *bool           `json:"normalization,omitempty"`
}

// MatrixInfo describes a stored matrix.
type MatrixInfo struct {
	Name    string `json:"name"`
	Dim     uint32 `json:"dim"`
	Len     uint32 `json:"len"`
	Enabled bool   `json:"enabled"`
}

// UploadMatrixRequest is a matrix to stream to the server. Values are the
// rows concatenated in order; ChunkFloats of zero uses the configured default.
type UploadMatrixRequest struct {
	Name        string
	Dim         uint32
	Values      []float32
	ChunkFloats int
}

// UploadMatrixResult is the server acknowledgment of an upload.
type UploadMatrixResult struct {
	Message      string
	TotalVectors uint32
	TotalChunks  uint32
	FramesSent   int
}

// CreatePQRequest creates a product quantizer from trained codebook matrices.
type CreatePQRequest struct {
	Dim       uint32   `json:"dim"`
	Codebooks []string `json:"codebooks"`
}

// PQInfo describes a product quantizer.
type PQInfo struct {
	Name      string   `json:"name"`
	Dim       uint32   `json:"dim"`
	Codebooks []string `json:"codebooks"`
	Enabled   bool     `json:"enabled"`
}
