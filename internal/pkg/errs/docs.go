// Package errs provides standardized error types for the marketplace backend.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The taxonomy covers the failure classes the order lifecycle exposes:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input, reported with the offending field name
//   - ObjectNotFoundError: unknown order, product, or account
//   - UnauthorizedError: wrong role, or caller is not the resource owner
//   - ConflictError: a state guard rejected a transition (including the losing
//     side of a concurrent accept)
//   - UpstreamUnavailableError: mail or geocoding collaborator failure
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// The HTTP adapter maps each sentinel to a stable status class, so handlers
// and use cases never deal in status codes directly.
package errs
