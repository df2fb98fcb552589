package casper

import (
	"context"
	"net/http"
	"net/url"
)

// CreateHNSWIndex builds an HNSW index over a collection. A second index on
// the same collection fails with ErrAlreadyExists.
func (c *Client) CreateHNSWIndex(ctx context.Context, collection string, req CreateHNSWIndexRequest) error {
	const op = "create_hnsw_index"
	return c.run(ctx, operation{name: op, resource: collection}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", collection); err != nil {
			return 0, err
		}
		if err := validateHNSW(op, req.HNSW); err != nil {
			return 0, err
		}

		path, err := buildPath(op, "collection", collection, "index")
		if err != nil {
			return 0, err
		}
		query := url.Values{}
		if req.Normalization != nil {
			if err := addQuery(op, query, "has_normalization", *req.Normalization); err != nil {
				return 0, err
			}
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

// DeleteIndex drops the index of a collection.
func (c *Client) DeleteIndex(ctx context.Context, collection string) error {
	const op = "delete_index"
	return c.run(ctx, operation{name: op, resource: collection}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", collection); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "collection", collection, "index")
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "index of " + collection,
			method:   http.MethodDelete,
			path:     path,
		}, nil)
	})
}
