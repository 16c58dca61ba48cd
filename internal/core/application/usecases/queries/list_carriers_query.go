package queries

import (
	"errors"

	"github.com/thanosshawn/shopAdmin/internal/pkg/guard"
)

var (
	ErrListCarriersQueryIsNotConstructed = errors.New(
		"ListCarriersQuery must be created via NewListCarriersQuery constructor",
	)
)

// ListCarriersQuery lists every carrier that appears on a stored order.
// The console uses it to fill the carrier filter.
type ListCarriersQuery struct {
	guard guard.ConstructorGuard
}

func NewListCarriersQuery() ListCarriersQuery {
	return ListCarriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListCarriersQuery) Validate() error {
	return q.guard.Validate(ErrListCarriersQueryIsNotConstructed)
}
