package vectordb

import "context"

// Service is a database-agnostic view of a vector store. Application code that
// only needs similarity search and basic writes can depend on Service instead
// of a concrete client.
//
//	func NewRecommender(db vectordb.Service) *Recommender {
//	    return &Recommender{db: db}
//	}
//
//	// casper.NewVectorDBAdapter(casperClient, casper.AdapterConfig{}) implements Service.
type Service interface {
	// Search runs every request and returns one result slice per request, in
	// request order. Requests may target different collections.
	Search(ctx context.Context, requests ...SearchRequest) ([][]SearchResult, error)

	// Insert stores embeddings in a collection.
	Insert(ctx context.Context, collectionName string, inputs []EmbeddingInput) error

	// Delete removes embeddings by id.
	Delete(ctx context.Context, collectionName string, ids []string) error

	// EnsureCollection creates a collection unless one with that name exists.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error

	// GetCollection returns metadata about a collection.
	GetCollection(ctx context.Context, name string) (*Collection, error)

	// ListCollections returns the names of all collections.
	ListCollections(ctx context.Context) ([]string, error)
}
