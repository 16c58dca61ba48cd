package ports

import (
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
)

// WorkingCopy is the client-side collection the console renders and filters.
// It is only ever updated with state the store already committed.
type WorkingCopy interface {
	// All returns the cached orders in store order.
	All() []*order.Order

	// Apply mirrors a committed patch into the cached order.
	// Unknown ids are ignored.
	Apply(id string, p order.Patch)

	// Replace swaps the whole collection after a reload.
	Replace(orders []*order.Order)
}
