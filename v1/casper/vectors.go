package casper

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentSearches bounds the number of in-flight requests of SearchBatch.
const maxConcurrentSearches = 10

// InsertVector stores one vector. The server rejects vectors whose length
// differs from the collection dimension (ErrDimensionMismatch).
func (c *Client) InsertVector(ctx context.Context, collection string, req InsertRequest) error {
	const op = "insert_vector"
	id := strconv.FormatUint(uint64(req.ID), 10)
	return c.run(ctx, operation{name: op, resource: collection, subResource: id}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", collection); err != nil {
			return 0, err
		}
		if err := requireVector(op, req.Vector); err != nil {
			return 0, err
		}

		path, err := buildPath(op, "collection", collection, "insert")
		if err != nil {
			return 0, err
		}
		query := url.Values{}
		if err := addQuery(op, query, "id", req.ID); err != nil {
			return 0, err
		}

		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "collection " + collection,
			method:   http.MethodPost,
			path:     path,
			query:    query,
			body:     req,
		}, nil)
	})
}

// DeleteVector removes one vector by id.
func (c *Client) DeleteVector(ctx context.Context, collection string, id uint32) error {
	const op = "delete_vector"
	sid := strconv.FormatUint(uint64(id), 10)
	return c.run(ctx, operation{name: op, resource: collection, subResource: sid}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", collection); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "collection", collection, "delete")
		if err != nil {
			return 0, err
		}
		query := url.Values{}
		if err := addQuery(op, query, "id", id); err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "vector " + sid,
			method:   http.MethodDelete,
			path:     path,
			query:    query,
		}, nil)
	})
}

// GetVector fetches one stored vector. A missing vector or collection is a
// *NotFoundError.
func (c *Client) GetVector(ctx context.Context, collection string, id uint32) (*VectorRecord, error) {
	const op = "get_vector"
	sid := strconv.FormatUint(uint64(id), 10)
	var rec VectorRecord
	err := c.run(ctx, operation{name: op, resource: collection, subResource: sid}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", collection); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "collection", collection, "vector", id)
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "vector " + sid,
			method:   http.MethodGet,
			path:     path,
		}, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Search returns the nearest stored vectors, best first, at most *req.Limit
// of them when a limit is set.
func (c *Client) Search(ctx context.Context, collection string, req SearchRequest) ([]SearchResult, error) {
	const op = "search"
	var results []SearchResult
	err := c.run(ctx, operation{name: op, resource: collection}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", collection); err != nil {
			return 0, err
		}
		if err := requireVector(op, req.Vector); err != nil {
			return 0, err
		}
		if req.Limit != nil && *req.Limit == 0 {
			return 0, validationError(op, "limit", "must be greater than zero")
		}

		candidates := req.Candidates
		if candidates == 0 {
			candidates = DefaultSearchCandidates
			if req.Limit != nil {
				candidates = *req.Limit
			}
		}

		path, err := buildPath(op, "collection", collection, "search")
		if err != nil {
			return 0, err
		}
		query := url.Values{}
		if err := addQuery(op, query, "limit", candidates); err != nil {
			return 0, err
		}

		resp, err := c.http.do(ctx, httpCall{
			op:       op,
			resource: "collection " + collection,
			method:   http.MethodPost,
			path:     path,
			query:    query,
			body:     req,
		})
		if err != nil {
			return 0, err
		}

		results, err = decodeSearchResults(op, resp.contentType, resp.body)
		if err != nil {
			return int64(len(resp.body)), err
		}
		if req.Limit != nil && uint32(len(results)) > *req.Limit {
			results = results[:*req.Limit]
		}
		return int64(len(resp.body)), nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SearchBatch runs queries concurrently against one collection and returns
// their results in query order. The first failure cancels the remaining
// queries and is returned.
func (c *Client) SearchBatch(ctx context.Context, collection string, queries []SearchRequest) ([][]SearchResult, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}

	results := make([][]SearchResult, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSearches)

	for i, q := range queries {
		g.Go(func() error {
			res, err := c.Search(gctx, collection, q)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
