// Package errors provides structured error types for the evds-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the offending parameter name, a detail
// message and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindInvalidDate).
//		Param("date").
//		Detail("day 31 does not exist in month 2").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.EmptyParameter(errors.PhaseValidate, "api_key")
//	err := errors.InvalidUTF8(errors.PhaseBoundary, "series", data)
//
// All errors implement the standard error interface and support errors.Is/As.
//
// The Code type is the flattened, append-only numeric taxonomy that crosses
// the foreign-call boundary; CodeOf projects any error onto exactly one code.
package errors
