// Package errors provides structured error types for the gen-runtime library.
//
// Errors are categorized by Phase (which operation the error occurred in)
// and Kind (error category). The Error type includes rich context: the
// instance state, the program name, an optional scenario step path, and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResume, errors.KindInvalidState).
//		State("running").
//		Detail("instance is already executing").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Reentrant(errors.PhaseResume)
//	err := errors.UnsupportedSuspension("yield after the body suspended")
//	err := errors.BodyFailure(errors.PhaseResume, cause)
//
// All errors implement the standard error interface and support
// errors.Is/As. Two *Error values match under errors.Is when their Phase
// and Kind agree, so callers can classify failures without string
// inspection:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseBody, Kind: errors.KindUnsupportedSuspension}) {
//		// suspension attempted from an unpausable context
//	}
package errors
