// Package remote talks to the store of record for property listings.
//
// Every call is a single attempt. Failures surface as *errors.RemoteError so
// callers can tell them apart from local validation failures.
package remote

import (
	"context"

	"github.com/dreamdwell/dreamdwell/pkg/properties"
)

// Operation names carried by RemoteError.Operation.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Client is the remote catalog.
type Client interface {
	// List returns every stored property in server order.
	List(ctx context.Context) ([]properties.Property, error)

	// Create stores a new property and returns it with its assigned ID.
	Create(ctx context.Context, payload properties.Payload) (properties.Property, error)

	// Update overwrites the property identified by id.
	Update(ctx context.Context, id string, payload properties.Payload) (properties.Property, error)

	// Delete removes the property identified by id.
	Delete(ctx context.Context, id string) error
}
