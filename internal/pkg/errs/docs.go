// Package errs provides standardized error types for the order workflow engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes the error taxonomy surfaced to the operator:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input,
//     all of them match ErrValidation
//   - InvalidTransitionError: the requested status is not reachable from the current one
//   - ObjectNotFoundError: the order vanished between read and write
//   - PersistenceError: the order store rejected or failed a read/write
//   - ErrOperationNotConfirmed: a destructive action was refused by the operator
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
