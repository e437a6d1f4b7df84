// Package errs provides standardized error types for the shop application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// Domain-specific error kinds (invalid status transition, insufficient
// stock) live next to the aggregates they belong to and follow the same
// sentinel-plus-struct pattern.
package errs
