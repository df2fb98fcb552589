package casper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// BatchOp names the kind of a batch item.
type BatchOp string

const (
	BatchOpInsert BatchOp = "insert"
	BatchOpDelete BatchOp = "delete"
)

// ItemOutcome is the result of one batch item.
type ItemOutcome struct {
	ID    uint32
	Op    BatchOp
	OK    bool
	Error string
}

// BatchOutcome is the result of a batch update.
//
// When the server reports per-item results, Items holds one entry per input
// item, inserts first then deletes, in input order. Otherwise Items is nil and
// the batch succeeded as a whole.
type BatchOutcome struct {
	Items []ItemOutcome
}

// Succeeded reports whether every item was applied.
func (o BatchOutcome) Succeeded() bool {
	for _, item := range o.Items {
		if !item.OK {
			return false
		}
	}
	return true
}

// Failed returns the items the server rejected.
func (o BatchOutcome) Failed() []ItemOutcome {
	var failed []ItemOutcome
	for _, item := range o.Items {
		if !item.OK {
			failed = append(failed, item)
		}
	}
	return failed
}

// Batch accumulates inserts and deletes for one BatchUpdate call.
//
//	req := casper.NewBatch().
//	    Insert(1, v1).
//	    Insert(2, v2).
//	    Delete(7).
//	    Request()
type Batch struct {
	inserts []BatchInsertOperation
	deletes []uint32
}

// NewBatch returns an empty batch.
func NewBatch() *Batch {
	return &Batch{}
}

func (b *Batch) Insert(id uint32, vector []float32) *Batch {
	b.inserts = append(b.inserts, BatchInsertOperation{ID: id, Vector: vector})
	return b
}

func (b *Batch) Delete(ids ...uint32) *Batch {
	b.deletes = append(b.deletes, ids...)
	return b
}

// Len returns the number of items in the batch.
func (b *Batch) Len() int {
	return len(b.inserts) + len(b.deletes)
}

// Request builds the wire request.
func (b *Batch) Request() BatchUpdateRequest {
	return ComposeBatch(b.inserts, b.deletes)
}

// ComposeBatch builds a BatchUpdateRequest. Both lists are always present on
// the wire, empty when nothing is given. Overlap between inserted and deleted
// ids is not checked here.
func ComposeBatch(inserts []BatchInsertOperation, deletes []uint32) BatchUpdateRequest {
	req := BatchUpdateRequest{
		Insert: make([]BatchInsertOperation, len(inserts)),
		Delete: make([]uint32, len(deletes)),
	}
	copy(req.Insert, inserts)
	copy(req.Delete, deletes)
	return req
}

// overlappingIDs returns ids that appear both in inserts and deletes.
func overlappingIDs(req BatchUpdateRequest) []uint32 {
	if len(req.Insert) == 0 || len(req.Delete) == 0 {
		return nil
	}
	inserted := make(map[uint32]struct{}, len(req.Insert))
	for _, op := range req.Insert {
		inserted[op.ID] = struct{}{}
	}
	var overlap []uint32
	seen := make(map[uint32]struct{})
	for _, id := range req.Delete {
		if _, ok := inserted[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		overlap = append(overlap, id)
	}
	return overlap
}

// BatchUpdate applies inserts and deletes in one request.
//
// A non-success status fails the whole batch. Ids present in both lists are
// sent as given; the server decides the result and a warning is logged.
func (c *Client) BatchUpdate(ctx context.Context, collection string, req BatchUpdateRequest) (*BatchOutcome, error) {
	const op = "batch_update"
	var outcome *BatchOutcome
	err := c.run(ctx, operation{name: op, resource: collection}, func(ctx context.Context) (int64, error) {
		if err := requireName(op, "collection", collection); err != nil {
			return 0, err
		}
		for _, ins := range req.Insert {
			if err := requireVector(op, ins.Vector); err != nil {
				return 0, err
			}
		}

		req = ComposeBatch(req.Insert, req.Delete)
		if overlap := overlappingIDs(req); len(overlap) > 0 {
			c.logger.Warn("batch inserts and deletes the same ids", nil, map[string]interface{}{
				"collection": collection,
				"ids":        overlap,
			})
		}

		path, err := buildPath(op, "collection", collection, "update")
		if err != nil {
			return 0, err
		}
		resp, err := c.http.do(ctx, httpCall{
			op:       op,
			resource: "collection " + collection,
			method:   http.MethodPost,
			path:     path,
			body:     req,
		})
		if err != nil {
			return 0, err
		}

		outcome, err = decodeBatchOutcome(op, req, resp.body)
		return int64(len(resp.body)), err
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

type batchItemResult struct {
	ID    uint32  `json:"id"`
	Op    BatchOp `json:"op"`
	OK    bool    `json:"ok"`
	Error string  `json:"error,omitempty"`
}

// decodeBatchOutcome reads per-item results when the body carries a results
// key and pairs each result with its input item by op and id, so the server
// may report them in any order. A body without results is an aggregate
// success; a results key that does not decode is a DecodeError.
func decodeBatchOutcome(op string, req BatchUpdateRequest, body []byte) (*BatchOutcome, error) {
	var fields map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &fields) != nil {
		return &BatchOutcome{}, nil
	}
	raw, ok := fields["results"]
	if !ok {
		return &BatchOutcome{}, nil
	}

	var results []batchItemResult
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, &DecodeError{Op: op, Body: body, Err: fmt.Errorf("batch results: %w", err)}
	}
	if results == nil {
		return &BatchOutcome{}, nil
	}

	want := len(req.Insert) + len(req.Delete)
	if len(results) != want {
		return nil, &DecodeError{Op: op, Body: body, Err: fmt.Errorf("batch response has %d results for %d items", len(results), want)}
	}

	items := make([]ItemOutcome, want)
	matched := make([]bool, want)
	for _, r := range results {
		i := matchItem(req, matched, r)
		if i < 0 {
			return nil, &DecodeError{Op: op, Body: body, Err: fmt.Errorf("batch result for %s id %d matches no pending item", displayOp(r.Op), r.ID)}
		}
		matched[i] = true
		item := expectedItem(req, i)
		item.OK = r.OK
		item.Error = r.Error
		items[i] = item
	}
	return &BatchOutcome{Items: items}, nil
}

// matchItem returns the first unmatched input item with the id of r and, when
// r names one, the same op. It returns -1 when there is none.
func matchItem(req BatchUpdateRequest, matched []bool, r batchItemResult) int {
	for i := range matched {
		if matched[i] {
			continue
		}
		item := expectedItem(req, i)
		if item.ID == r.ID && (r.Op == "" || r.Op == item.Op) {
			return i
		}
	}
	return -1
}

func displayOp(op BatchOp) string {
	if op == "" {
		return "item"
	}
	return string(op)
}

func expectedItem(req BatchUpdateRequest, i int) ItemOutcome {
	if i < len(req.Insert) {
		return ItemOutcome{ID: req.Insert[i].ID, Op: BatchOpInsert}
	}
	return ItemOutcome{ID: req.Delete[i-len(req.Insert)], Op: BatchOpDelete}
}
