package component

import (
	"reflect"
	"time"

	"github.com/c360/wirekit/errors"
	"github.com/c360/wirekit/reflection"
)

// Interceptor gets first refusal on every mediated call directed at proxies
// of one capability. It receives the real implementation, the resolved method
// descriptor, and the (already coerced) arguments, and decides whether and
// how to forward to the implementation.
type Interceptor func(impl any, method reflect.Method, args []any) ([]any, error)

// SetInvocationInterceptor registers a capability-scoped interception
// handler. The capability must be part of the component's capability set;
// a nil interceptor clears the registration.
func (c *Component) SetInvocationInterceptor(capability reflect.Type, interceptor Interceptor) error {
	declared, err := c.validateCapability("SetInvocationInterceptor", capability)
	if err != nil {
		return err
	}
	if interceptor == nil {
		delete(c.interceptors, declared.Type)
		return nil
	}
	c.interceptors[declared.Type] = interceptor
	c.logger.Debug("interceptor registered", "capability", declared.Name)
	return nil
}

// Invoke addresses the component by method name rather than through a typed
// proxy: candidate methods are gathered across every capability, the
// best-matching overload (exact types first, then coercible) is resolved,
// and the call is mediated exactly like a proxied one, interceptors included.
func (c *Component) Invoke(methodName string, args ...any) ([]any, error) {
	var candidates []reflect.Method
	for _, capType := range c.capabilities {
		candidates = append(candidates, reflection.MethodsByName(capType, methodName, len(args))...)
	}

	invoke := func(method reflect.Method, coerced []any) ([]any, error) {
		results, _, err := c.mediate(c.declaringCapability(method), method, coerced)
		return results, err
	}
	results, err := reflection.NewMethodInvocation(c.impl, methodName, candidates, invoke, args...).Invoke()
	if err != nil {
		return nil, errors.Cause(err)
	}
	return results, nil
}

// dispatch is the single entry point every proxy call funnels into.
// The proxy's capability keys the interceptor lookup; without one the call
// goes straight to the implementation. Failures are unwrapped once here so
// callers observe the real failure, never mediation plumbing.
func (c *Component) dispatch(capability *Capability, methodName string, args []any) ([]any, error) {
	start := time.Now()
	intercepted := false

	candidates := reflection.MethodsByName(capability.Type, methodName, len(args))
	invoke := func(method reflect.Method, coerced []any) ([]any, error) {
		results, wasIntercepted, err := c.mediate(capability.Type, method, coerced)
		intercepted = wasIntercepted
		return results, err
	}
	results, err := reflection.NewMethodInvocation(c.impl, methodName, candidates, invoke, args...).Invoke()

	if c.metrics != nil {
		c.metrics.ObserveDispatch(c.id, capability.Name, start, intercepted, err)
	}
	if err != nil {
		return nil, errors.Cause(err)
	}
	return results, nil
}

// mediate performs one resolved call: the capability's interceptor if any,
// otherwise the implementation directly. The bool reports whether an
// interceptor actually handled the call.
func (c *Component) mediate(capability reflect.Type, method reflect.Method, args []any) ([]any, bool, error) {
	if capability != nil {
		if interceptor, ok := c.interceptors[capability]; ok {
			results, err := interceptor(c.impl, method, args)
			return results, true, err
		}
	}
	results, err := reflection.CallMethod(c.impl, method.Name, args)
	return results, false, err
}

// declaringCapability finds the capability whose interface declares the
// given method descriptor, for interceptor lookup on the by-name path.
func (c *Component) declaringCapability(method reflect.Method) reflect.Type {
	for _, capType := range c.capabilities {
		if m, ok := capType.MethodByName(method.Name); ok && m.Type == method.Type {
			return capType
		}
	}
	return nil
}
