// Package errors provides standardized error handling patterns for wirekit.
//
// # Overview
//
// The errors package implements a three-class error classification system for
// the wiring core: Invalid (bad capability or argument input), Config
// (assembly configuration errors such as ambiguous setter matches), and
// Fatal (unrecoverable states).
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping:
//
//	errors.WrapInvalid(err, "Component", "Method", "action")
//	errors.WrapConfig(err, "Component", "Method", "action")
//	errors.WrapFatal(err, "Component", "Method", "action")
//
// # The Mediation Boundary
//
// Dispatch failures raised by an implementation or interceptor must reach
// proxy callers verbatim. Classification layers are therefore stripped once
// at the dispatch boundary:
//
//	_, err := proxy.Call("Store", item)
//	// err is exactly the error Store raised, no wrapper types leak through
//
// Cause implements the stripping: it removes *ClassifiedError layers and
// stops at the first error the framework did not produce.
//
// # Standard Error Variables
//
// Use the pre-defined variables instead of ad-hoc messages so callers can
// test conditions with errors.Is:
//
//	if errors.Is(err, errors.ErrAmbiguousSetter) { ... }
//
// # Integration with errors.As/Is
//
// All error types support standard library error inspection. Classification
// is preserved through wrapping chains:
//
//	var ie *errors.InstantiationError
//	if errors.As(err, &ie) {
//	    log.Printf("type: %s, args: %v", ie.TypeName, ie.ArgTypes)
//	}
package errors
