// Package errors provides structured error types for the realm-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: value path, realm name,
// offending value and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCopy, errors.KindUnsupported).
//		Path("user", "callback").
//		Detail("functions cannot be copied").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OptionConflict("copy", "reference")
//	err := errors.NonTransferable()
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
