// Package ports defines the contracts between the order workflow core and its
// adapters: persistence, the in-memory working copy, operator notification and
// confirmation.
package ports

import (
	"context"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
)

// ListHints narrows what the store returns. The zero value lists every order.
// Hints only reduce the transfer size; the filter engine still runs over the result.
type ListHints struct {
	Status order.Status
	Limit  int
}

// OrderRepository defines the persistence contract for order documents.
type OrderRepository interface {
	// Add persists a new order. The order must be valid and not already stored.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its document identifier.
	// Returns *errs.ObjectNotFoundError when no such document exists.
	Get(ctx context.Context, id string) (*order.Order, error)

	// Patch writes only the fields set in p. The store is authoritative:
	// nothing else of the document is read or overwritten.
	// Returns *errs.ObjectNotFoundError when no such document exists.
	Patch(ctx context.Context, id string, p order.Patch) error

	// List returns orders newest first.
	List(ctx context.Context, hints ListHints) ([]*order.Order, error)
}
