package casper

import (
	"context"
	"net/http"
)

// CreatePQ registers a product quantizer built from existing codebook matrices.
func (c *Client) CreatePQ(ctx context.Context, name string, req CreatePQRequest) error {
	const op = "create_pq"
	return c.run(ctx, operation{name: op, resource: name}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "name", name); err != nil {
			return 0, err
		}
		if err := requirePositive(op, "dim", req.Dim); err != nil {
			return 0, err
		}
		if len(req.Codebooks) == 0 {
			return 0, validationError(op, "codebooks", "must not be empty")
		}
		for _, cb := range req.Codebooks {
			if cb == "" {
				return 0, validationError(op, "codebooks", "must not contain empty names")
			}
		}

		path, err := buildPath(op, "pq", name)
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "pq " + name,
			method:   http.MethodPost,
			path:     path,
			body:     req,
		}, nil)
	})
}

// ListPQs returns every product quantizer.
func (c *Client) ListPQs(ctx context.Context) ([]PQInfo, error) {
	const op = "list_pqs"
	var out []PQInfo
	err := c.run(ctx, operation{name: op}, func(ctx context.Context) (int64, error) {
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "pqs",
			method:   http.MethodGet,
			path:     "pq/list",
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []PQInfo{}
	}
	return out, nil
}

func (c *Client) GetPQ(ctx context.Context, name string) (*PQInfo, error) {
	const op = "get_pq"
	var info PQInfo
	err := c.run(ctx, operation{name: op, resource: name}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "name", name); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "pq", name)
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "pq " + name,
			method:   http.MethodGet,
			path:     path,
		}, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) DeletePQ(ctx context.Context, name string) error {
	const op = "delete_pq"
	return c.run(ctx, operation{name: op, resource: name}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "name", name); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "pq", name)
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "pq " + name,
			method:   http.MethodDelete,
			path:     path,
		}, nil)
	})
}
