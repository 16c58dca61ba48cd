// Package services provides domain services that work over collections of orders
// rather than a single aggregate.
//
// The package includes:
//   - OrderFilter: the conjunctive filter and free-text search behind the order list
//
// Services here are pure: they never mutate orders and never touch persistence.
package services
