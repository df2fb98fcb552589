package casper

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/casper-db/casper-go/v1/vectordb"
)

// DefaultAdapterMaxSize is the capacity given to collections created by
// VectorDBAdapter.EnsureCollection.
const DefaultAdapterMaxSize = 1_000_000

// AdapterConfig tunes VectorDBAdapter.
type AdapterConfig struct {
	// MaxSize is the capacity of collections created by EnsureCollection.
	MaxSize uint32 `yaml:"max_size" envconfig:"CASPER_ADAPTER_MAX_SIZE"`
}

// VectorDBAdapter exposes a Client as a vectordb.Service. String ids must be
// decimal uint32 values. Casper stores no payloads.
type VectorDBAdapter struct {
	client  *Client
	maxSize uint32
}

var _ vectordb.Service = (*VectorDBAdapter)(nil)

func NewVectorDBAdapter(client *Client, cfg AdapterConfig) *VectorDBAdapter {
	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = DefaultAdapterMaxSize
	}
	return &VectorDBAdapter{client: client, maxSize: maxSize}
}

// Search runs the requests in order. A failed request leaves a nil entry in
// the results and its error is joined into the returned error.
func (a *VectorDBAdapter) Search(ctx context.Context, requests ...vectordb.SearchRequest) ([][]vectordb.SearchResult, error) {
	results := make([][]vectordb.SearchResult, len(requests))
	var errs []error

	for i, req := range requests {
		sr := SearchRequest{Vector: req.Vector}
		if req.TopK > 0 {
			if req.TopK > math.MaxUint32 {
				errs = append(errs, fmt.Errorf("request %d: %w", i, validationError("search", "top_k", "exceeds uint32")))
				continue
			}
			limit := uint32(req.TopK)
			sr.Limit = &limit
		}

		hits, err := a.client.Search(ctx, req.CollectionName, sr)
		if err != nil {
			errs = append(errs, fmt.Errorf("request %d: %w", i, err))
			continue
		}

		out := make([]vectordb.SearchResult, len(hits))
		for j, h := range hits {
			out[j] = vectordb.SearchResult{
				ID:             strconv.FormatUint(uint64(h.ID), 10),
				Score:          h.Score,
				CollectionName: req.CollectionName,
			}
		}
		results[i] = out
	}

	return results, errors.Join(errs...)
}

// Insert writes all inputs in one batch update.
func (a *VectorDBAdapter) Insert(ctx context.Context, collectionName string, inputs []vectordb.EmbeddingInput) error {
	if len(inputs) == 0 {
		return nil
	}
	batch := NewBatch()
	for _, in := range inputs {
		id, err := parseID("insert", in.ID)
		if err != nil {
			return err
		}
		batch.Insert(id, in.Vector)
	}
	return a.applyBatch(ctx, collectionName, batch)
}

// Delete removes all ids in one batch update.
func (a *VectorDBAdapter) Delete(ctx context.Context, collectionName string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	batch := NewBatch()
	for _, s := range ids {
		id, err := parseID("delete", s)
		if err != nil {
			return err
		}
		batch.Delete(id)
	}
	return a.applyBatch(ctx, collectionName, batch)
}

func (a *VectorDBAdapter) applyBatch(ctx context.Context, collection string, batch *Batch) error {
	outcome, err := a.client.BatchUpdate(ctx, collection, batch.Request())
	if err != nil {
		return err
	}
	if failed := outcome.Failed(); len(failed) > 0 {
		msgs := make([]string, 0, len(failed))
		for _, f := range failed {
			msgs = append(msgs, fmt.Sprintf("%s %d: %s", f.Op, f.ID, f.Error))
		}
		return fmt.Errorf("casper: %d of %d batch items failed: %s", len(failed), batch.Len(), strings.Join(msgs, "; "))
	}
	return nil
}

// EnsureCollection creates the collection when it does not exist. An existing
// collection is left untouched, whatever its dimension.
func (a *VectorDBAdapter) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	if vectorSize == 0 || vectorSize > math.MaxUint32 {
		return validationError("ensure_collection", "vector_size", "must be between 1 and 2^32-1")
	}

	_, err := a.client.GetCollection(ctx, name)
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return err
	}

	err = a.client.CreateCollection(ctx, name, CreateCollectionRequest{Dim: uint32(vectorSize), MaxSize: a.maxSize})
	if errors.Is(err, ErrAlreadyExists) {
		return nil
	}
	return err
}

func (a *VectorDBAdapter) GetCollection(ctx context.Context, name string) (*vectordb.Collection, error) {
	info, err := a.client.GetCollection(ctx, name)
	if err != nil {
		return nil, err
	}

	col := &vectordb.Collection{
		Name:       info.Name,
		Status:     "raw",
		VectorSize: int(info.Dimension),
		Capacity:   uint64(info.MaxSize),
		PointCount: uint64(info.Size),
	}
	if info.HasIndex {
		col.Status = "indexed"
	}
	if info.Index != nil && info.Index.HNSW != nil {
		col.Distance = string(info.Index.HNSW.Metric)
	}
	return col, nil
}

func (a *VectorDBAdapter) ListCollections(ctx context.Context) ([]string, error) {
	infos, err := a.client.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names, nil
}

func parseID(op, s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, validationError(op, "id", fmt.Sprintf("%q is not a uint32", s))
	}
	return uint32(id), nil
}
