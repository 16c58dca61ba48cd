// Package queries contains the read operations of the order console.
// Queries never change state; list reads are served from the working copy,
// single-order and reference-data reads go to the store.
package queries

import (
	"errors"

	"github.com/thanosshawn/shopAdmin/internal/core/domain/services"
	"github.com/thanosshawn/shopAdmin/internal/pkg/guard"
)

var (
	ErrFilterOrdersQueryIsNotConstructed = errors.New(
		"FilterOrdersQuery must be created via NewFilterOrdersQuery constructor",
	)
)

// FilterOrdersQuery selects orders from the working copy.
//
// Example:
//
//	query := NewFilterOrdersQuery(services.FilterState{Status: "Placed", MinAmount: "500"})
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d of %d orders match\n", resp.Report.Output, resp.Report.Input)
type FilterOrdersQuery struct {
	state services.FilterState

	guard guard.ConstructorGuard
}

// NewFilterOrdersQuery accepts any state; malformed values disable their predicate.
func NewFilterOrdersQuery(state services.FilterState) FilterOrdersQuery {
	return FilterOrdersQuery{state: state, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q FilterOrdersQuery) Validate() error {
	return q.guard.Validate(ErrFilterOrdersQueryIsNotConstructed)
}

func (q FilterOrdersQuery) State() services.FilterState {
	return q.state
}
