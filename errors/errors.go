// Package errors provides standardized error handling patterns for wirekit.
// It includes error classification, standard error variables, and helper functions
// for consistent error wrapping across the wiring core.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorInvalid represents errors due to invalid input, such as a
	// capability that is not an interface or arguments that cannot be coerced
	ErrorInvalid ErrorClass = iota
	// ErrorConfig represents assembly-time configuration errors, such as an
	// ambiguous setter match; these are fatal to wiring and must not be swallowed
	ErrorConfig
	// ErrorFatal represents unrecoverable errors
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorInvalid:
		return "invalid"
	case ErrorConfig:
		return "config"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Capability errors
	ErrNilImplementation    = errors.New("implementation can not be nil")
	ErrNotAnInterface       = errors.New("capability is not an interface")
	ErrNotImplemented       = errors.New("implementation does not implement capability")
	ErrUnknownCapability    = errors.New("capability not declared")
	ErrDuplicateEntry       = errors.New("already registered")
	ErrProxyFactoryRequired = errors.New("capability needs a registered ProxyFactory for injection")

	// Injection and invocation errors
	ErrAmbiguousSetter = errors.New("more than one setter found")
	ErrNoSuchMethod    = errors.New("no matching method found")
	ErrNotCoercible    = errors.New("value can not be coerced to target type")

	// Instantiation errors
	ErrUnknownType   = errors.New("type not registered")
	ErrNoConstructor = errors.New("no matching public constructor")

	// Assembly errors
	ErrUnknownComponent = errors.New("no component with given id")
)

// ClassifiedError wraps an error with its classification and the component
// context it occurred in. Unwrap returns the original cause directly so that
// Cause can strip framework layers at the mediation boundary.
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// InstantiationError reports a failed constructor resolution or invocation.
// It carries the attempted type name and the argument types that were offered.
type InstantiationError struct {
	TypeName string
	ArgTypes []string
	Err      error
}

// Error implements the error interface
func (ie *InstantiationError) Error() string {
	msg := fmt.Sprintf("can not instantiate %s with arguments: %s",
		ie.TypeName, strings.Join(ie.ArgTypes, ","))
	if ie.Err != nil {
		msg += ": " + ie.Err.Error()
	}
	return msg
}

// Unwrap returns the triggering failure, if any
func (ie *InstantiationError) Unwrap() error {
	return ie.Err
}

// IsInvalid checks if an error is due to invalid input
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrNotAnInterface) ||
		errors.Is(err, ErrNotImplemented) ||
		errors.Is(err, ErrNotCoercible) ||
		errors.Is(err, ErrNoSuchMethod)
}

// IsConfig checks if an error is an assembly configuration error
func IsConfig(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorConfig
	}

	var ie *InstantiationError
	if errors.As(err, &ie) {
		return true
	}

	return errors.Is(err, ErrAmbiguousSetter) ||
		errors.Is(err, ErrDuplicateEntry) ||
		errors.Is(err, ErrProxyFactoryRequired)
}

// IsFatal checks if an error is fatal
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return false
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if IsConfig(err) {
		return ErrorConfig
	}
	if IsFatal(err) {
		return ErrorFatal
	}
	return ErrorInvalid
}

// newClassified creates a new classified error
// This is an internal helper - use WrapInvalid(), WrapConfig() or WrapFatal() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// wrapMessage formats the standard message without adding a wrapping layer.
func wrapMessage(err error, component, method, action string) string {
	return fmt.Sprintf("%s.%s: %s failed: %v", component, method, action, err)
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return newClassified(ErrorInvalid, err, component, method, wrapMessage(err, component, method, action))
}

// WrapConfig wraps an error as a configuration error with context
func WrapConfig(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return newClassified(ErrorConfig, err, component, method, wrapMessage(err, component, method, action))
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return newClassified(ErrorFatal, err, component, method, wrapMessage(err, component, method, action))
}

// Cause strips classification layers added by the framework and returns the
// original failure. It is applied once at the dispatch boundary so callers of
// a proxy observe the error raised inside the implementation or interceptor,
// never a wrapper. Errors wrapped by the implementation itself are left intact.
func Cause(err error) error {
	for err != nil {
		ce, ok := err.(*ClassifiedError)
		if !ok || ce.Err == nil {
			break
		}
		err = ce.Err
	}
	return err
}

// New creates a plain error. Re-exported so callers need a single errors import.
func New(text string) error {
	return errors.New(text)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
