// Package errs provides standardized error types for the cafeteria
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// The HTTP adapter maps these kinds onto status codes: ObjectNotFound to
// 404, ValueIsRequired/ValueIsInvalid/ValueIsOutOfRange to 4xx validation
// responses, and Conflict to 409. No error kind is used for normal control
// flow and none is silently swallowed.
package errs
