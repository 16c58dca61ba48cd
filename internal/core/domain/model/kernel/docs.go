// Package kernel provides the shared value objects of the order domain.
//
// The package includes:
//   - UUID: identifier value object used for persistence-assigned order ids and bulk run ids
//   - Money: decimal monetary amount used by order financials and filter thresholds
//
// Both are immutable and safe for concurrent use.
package kernel
