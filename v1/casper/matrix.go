package casper

import (
	"context"
	"fmt"
	"net/http"
)

// UploadMatrix streams a matrix to the server over gRPC.
//
// Values are cut into frames of at most ChunkFloats values (the configured
// default when zero); frames need not align with rows. The call returns after
// the server's single acknowledgment. Cancelling ctx or closing the client
// aborts the stream and leaves the server state undefined; no cleanup call is
// made.
func (c *Client) UploadMatrix(ctx context.Context, req UploadMatrixRequest) (*UploadMatrixResult, error) {
	const op = "upload_matrix"
	var result *UploadMatrixResult
	err := c.run(ctx, operation{name: op, resource: req.Name, transport: transportGRPC}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "name", req.Name); err != nil {
			return 0, err
		}
		if req.Dim == 0 {
			return 0, validationError(op, "dim", "must be greater than zero")
		}
		if req.ChunkFloats < 0 {
			return 0, validationError(op, "chunk_floats", "must not be negative")
		}
		if len(req.Values) == 0 {
			return 0, validationError(op, "values", "must not be empty")
		}
		if len(req.Values)%int(req.Dim) != 0 {
			return 0, validationError(op, "values", fmt.Sprintf("length %d is not a multiple of dim %d", len(req.Values), req.Dim))
		}

		chunk := req.ChunkFloats
		if chunk == 0 {
			chunk = c.cfg.ChunkFloats
		}

		var err error
		result, err = c.stream.upload(ctx, req, chunk, c.carrier(ctx))
		if err != nil {
			return 0, err
		}
		return int64(len(req.Values)), nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListMatrices returns every stored matrix.
func (c *Client) ListMatrices(ctx context.Context) ([]MatrixInfo, error) {
	const op = "list_matrices"
	var out []MatrixInfo
	err := c.run(ctx, operation{name: op}, func(ctx context.Context) (int64, error) {
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "matrices",
			method:   http.MethodGet,
			path:     "matrix/list",
		}, &out)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []MatrixInfo{}
	}
	return out, nil
}

// GetMatrix returns the description of one matrix.
func (c *Client) GetMatrix(ctx context.Context, name string) (*MatrixInfo, error) {
	const op = "get_matrix"
	var info MatrixInfo
	err := c.run(ctx, operation{name: op, resource: name}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "name", name); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "matrix", name)
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "matrix " + name,
			method:   http.MethodGet,
			path:     path,
		}, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteMatrix removes a matrix.
func (c *Client) DeleteMatrix(ctx context.Context, name string) error {
	const op = "delete_matrix"
	return c.run(ctx, operation{name: op, resource: name}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "name", name); err != nil {
			return 0, err
		}
		path, err := buildPath(op, "matrix", name)
		if err != nil {
			return 0, err
		}
		return c.http.doJSON(ctx, httpCall{
			op:       op,
			resource: "matrix " + name,
			method:   http.MethodDelete,
			path:     path,
		}, nil)
	})
}
