package casper

import (
	"time"

	"github.com/casper-db/casper-go/v1/observability"
)

const component = "casper"

// observeOperation notifies the observer about a completed operation if one is configured.
//
// Notes:
//   - resource: the collection, matrix or PQ name
//   - subResource: vector id or other secondary target
func (c *Client) observeOperation(operation, resource, subResource, transport string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   component,
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Transport:   transport,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}
