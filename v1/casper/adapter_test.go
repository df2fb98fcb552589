package casper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casper-db/casper-go/v1/vectordb"
)

func TestVectorDBAdapter(t *testing.T) {
	client, srv := newTestClient(t)
	db := NewVectorDBAdapter(client, AdapterConfig{MaxSize: 100})
	ctx := context.Background()

	require.NoError(t, db.EnsureCollection(ctx, "docs", 2))
	require.NoError(t, db.EnsureCollection(ctx, "docs", 2))

	col, err := db.GetCollection(ctx, "docs")
	require.NoError(t, err)
	assert.Equal(t, &vectordb.Collection{Name: "docs", Status: "raw", VectorSize: 2, Capacity: 100}, col)

	require.NoError(t, db.Insert(ctx, "docs", []vectordb.EmbeddingInput{
		{ID: "1", Vector: []float32{1, 0}},
		{ID: "2", Vector: []float32{0, 1}},
		{ID: "3", Vector: []float32{0.9, 0.1}},
	}))

	results, err := db.Search(ctx,
		vectordb.SearchRequest{CollectionName: "docs", Vector: []float32{1, 0}, TopK: 2},
		vectordb.SearchRequest{CollectionName: "docs", Vector: []float32{0, 1}, TopK: 1},
	)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Len(t, results[0], 2)
	assert.Equal(t, "1", results[0][0].ID)
	assert.Equal(t, "3", results[0][1].ID)
	assert.Equal(t, "docs", results[0][0].CollectionName)
	assert.Equal(t, "2", results[1][0].ID)

	require.NoError(t, db.Delete(ctx, "docs", []string{"1", "3"}))
	_, ok := srv.Vector("docs", 1)
	assert.False(t, ok)

	names, err := db.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs"}, names)
}

func TestVectorDBAdapterRejectsNonNumericIDs(t *testing.T) {
	client, srv := newTestClient(t)
	db := NewVectorDBAdapter(client, AdapterConfig{})

	err := db.Insert(context.Background(), "docs", []vectordb.EmbeddingInput{{ID: "doc-1", Vector: []float32{1}}})
	assert.True(t, IsValidation(err))
	err = db.Delete(context.Background(), "docs", []string{"-4"})
	assert.True(t, IsValidation(err))

	assert.Empty(t, srv.Requests())
}

func TestVectorDBAdapterSearchJoinsErrors(t *testing.T) {
	client, _ := newTestClient(t)
	db := NewVectorDBAdapter(client, AdapterConfig{})
	ctx := context.Background()
	require.NoError(t, db.EnsureCollection(ctx, "docs", 1))
	require.NoError(t, db.Insert(ctx, "docs", []vectordb.EmbeddingInput{{ID: "1", Vector: []float32{1}}}))

	results, err := db.Search(ctx,
		vectordb.SearchRequest{CollectionName: "missing", Vector: []float32{1}},
		vectordb.SearchRequest{CollectionName: "docs", Vector: []float32{1}},
	)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Nil(t, results[0])
	require.Len(t, results[1], 1)
}

func TestVectorDBAdapterReportsFailedItems(t *testing.T) {
	client, srv := newTestClient(t)
	srv.BatchItemResults(true)
	db := NewVectorDBAdapter(client, AdapterConfig{})
	ctx := context.Background()
	require.NoError(t, db.EnsureCollection(ctx, "docs", 1))

	err := db.Delete(ctx, "docs", []string{"7"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete 7")
}
