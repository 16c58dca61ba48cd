package order

import (
	"fmt"
	"strings"

	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
)

// Status represents the fulfillment state of an order.
//
// State transitions:
//
//	Placed ──> Approved ──> Packed ──> Shipped ──> Delivered ──> Refunded
//	  │  │         │           │   (tracking only)
//	  │  └─────────┴───────────┴──> Cancelled
//	  └──> Declined
//
// Declined, Cancelled and Refunded are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status set by the order-placement flow.
	Placed

	// Approved means an operator accepted the order for fulfillment.
	Approved

	// Packed means the parcel is ready to be handed to a carrier.
	Packed

	// Shipped is reached only by attaching a tracking code to a Packed order.
	Shipped

	// Delivered means the carrier handed the parcel to the customer.
	Delivered

	// Declined is terminal: the order was rejected before approval.
	Declined

	// Cancelled is terminal: the order was withdrawn before shipping.
	Cancelled

	// Refunded is terminal: the delivered order was paid back.
	Refunded
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Placed:    "Placed",
	Approved:  "Approved",
	Packed:    "Packed",
	Shipped:   "Shipped",
	Delivered: "Delivered",
	Declined:  "Declined",
	Cancelled: "Cancelled",
	Refunded:  "Refunded",
}

// transitions lists allowed targets per source, in the order the console offers them.
//
//nolint:exhaustive // Unknown has no transitions
var transitions = map[Status][]Status{
	Placed:    {Approved, Declined, Cancelled},
	Approved:  {Packed, Cancelled},
	Packed:    {Shipped, Cancelled},
	Shipped:   {Delivered},
	Delivered: {Refunded},
	Declined:  {},
	Cancelled: {},
	Refunded:  {},
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Placed, Approved, Packed, Shipped, Delivered, Declined, Cancelled, Refunded}
}

// ParseStatus resolves a status name case-insensitively ("placed", "Placed").
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the known lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status, "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

// RequiresConfirmation reports whether moving into s needs an explicit operator confirmation.
func (s Status) RequiresConfirmation() bool {
	return s == Declined || s == Cancelled
}

// AllowedTargets returns the statuses an operator may pick from s. Shipped is
// included for Packed orders although it can only be reached by attaching tracking.
func (s Status) AllowedTargets() []Status {
	targets := transitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionTo reports whether target is listed for s in the transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Transition returns target when it is reachable from s through a plain status change.
//
// Shipped is refused here even from Packed: shipping has to carry a tracking code
// and goes through Ship.
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if target == Shipped {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), target.String(),
			fmt.Errorf("%s is reachable only by attaching tracking", Shipped),
		)
	}
	if !s.CanTransitionTo(target) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}

// Ship transitions a Packed status to Shipped.
func (s Status) Ship() (Status, error) {
	if s != Packed {
		return Unknown, errs.NewInvalidTransitionErrorWithCause(
			s.String(), Shipped.String(),
			fmt.Errorf("only %s orders can be shipped", Packed),
		)
	}
	return Shipped, nil
}
