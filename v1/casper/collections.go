package casper

import (
	"context"
	"net/http"
	"net/url"
)

// ListCollections returns every collection on the server.
func (c *Client) ListCollections(ctx context.Context) ([]CollectionInfo, error) {
	var out collectionsResponse
	err := c.run(ctx, operation{name: "list_collections"}, func(ctx context.Context) (int64, error) {
		return c.http.doJSON(ctx, httpCall{
			op:       "list_collections",
			resource: "collections",
			method:   http.MethodGet,
			path:     "collections",
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	if out.Collections == nil {
		out.Collections = []CollectionInfo{}
	}
	return out.Collections, nil
}

// GetCollection returns the description of one collection.
func (c *Client) GetCollection(ctx context.Context, name string) (*CollectionInfo, error) {
	const op = "get_collection"
	var info CollectionInfo
	err := c.run(ctx, operation{name: op, resource: name}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", name); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "collection", name)
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "collection " + name,
			method:   http.MethodGet,
			path:     path,
		}, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateCollection creates a collection of fixed dimension and capacity.
func (c *Client) CreateCollection(ctx context.Context, name string, req CreateCollectionRequest) error {
	const op = "create_collection"
	return c.run(ctx, operation{name: op, resource: name}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", name); err != nil {
			return 0, err
		}
		if err := requirePositive(op, "dim", req.Dim); err != nil {
			return 0, err
		}
		if err := requirePositive(op, "max_size", req.MaxSize); err != nil {
			return 0, err
		}

		path, err := buildPath(op, "collection", name)
		if err != nil {
			return 0, err
		}
		query := url.Values{}
		if err := addQuery(op, query, "dim", req.Dim); err != nil {
			return 0, err
		}
		if err := addQuery(op, query, "max_size", req.MaxSize); err != nil {
			return 0, err
		}

		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "collection " + name,
			method:   http.MethodPost,
			path:     path,
			query:    query,
			body:     req,
		}, nil)
	})
}

// DeleteCollection removes a collection with its vectors and index.
func (c *Client) DeleteCollection(ctx context.Context, name string) error {
	const op = "delete_collection"
	return c.run(ctx, operation{name: op, resource: name}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", name); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "collection", name)
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "collection " + name,
			method:   http.MethodDelete,
			path:     path,
		}, nil)
	})
}
