package vectordb

// SearchRequest is a single similarity query.
type SearchRequest struct {
	// CollectionName is the collection to search.
	CollectionName string `json:"collectionName"`

	// Vector is the query embedding.
	Vector []float32 `json:"vector"`

	// TopK is the maximum number of results; zero lets the backend decide.
	TopK int `json:"maxResults"`
}

// SearchResult is one hit of a similarity query.
type SearchResult struct {
	// ID of the matched embedding.
	ID string `json:"id"`

	// Score as reported by the backend, higher is closer for similarity metrics.
	Score float32 `json:"score"`

	// CollectionName is the collection the hit came from.
	CollectionName string `json:"collectionName,omitempty"`
}

// EmbeddingInput is one embedding to insert.
type EmbeddingInput struct {
	ID     string    `json:"id"`
	Vector []float32 `json:"vector"`
}

// Collection describes a vector collection.
type Collection struct {
	Name string `json:"name"`

	// Status is "indexed" when the collection has an index, "raw" otherwise.
	Status string `json:"status"`

	// VectorSize is the dimension of stored vectors.
	VectorSize int `json:"vectorSize"`

	// Distance is the metric of the index, empty without an index.
	Distance string `json:"distance"`

	// Capacity is the maximum number of vectors the collection accepts.
	Capacity uint64 `json:"capacity"`

	// PointCount is the number of stored vectors.
	PointCount uint64 `json:"pointCount"`
}
