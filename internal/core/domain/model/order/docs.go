// Package order provides the order aggregate of the admin console's fulfillment
// workflow.
//
// The package includes:
//   - Order: the aggregate root holding items, financials, customer, tracking and
//     the append-only status history
//   - Status: the fulfillment state machine (Placed, Approved, Packed, Shipped,
//     Delivered, Declined, Cancelled, Refunded)
//   - Priority: Urgent, High, Normal, Low with Normal as the zero value
//   - Patch: a partial-field update planned by the aggregate and committed by the store
//
// Key business rules:
//   - Declined, Cancelled and Refunded are terminal
//   - Shipped is reachable only from Packed and only by attaching tracking
//   - Every status change appends exactly one history entry
//   - Changes are planned first and applied to the working copy only after the
//     store committed them
//   - EffectiveTotal tolerates the inconsistent total fields of legacy records
package order
