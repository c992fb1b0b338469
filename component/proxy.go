package component

import (
	"fmt"
	"reflect"
)

// Invoker is the dispatch entry point a proxy forwards into. Every call on
// a generated stand-in reaches the owning component through this interface,
// which is where interception happens.
type Invoker interface {
	Invoke(methodName string, args ...any) ([]any, error)
}

// Facade resolves a peer component's capability to a proxy. The wiring
// container implements this; components never inspect how.
type Facade interface {
	GetProxy(componentID string, capability reflect.Type) (any, error)
}

// Proxy is the generic stand-in for a single capability of a component.
// It holds no state of its own: Call routes the method name and arguments
// into the owning component's dispatch entry point, where an interceptor
// gets first refusal before the implementation. Capabilities registered
// with a ProxyFactory get a typed stand-in instead; this generic form
// serves by-name callers only, since it does not implement the capability
// interface and therefore cannot be handed to setters or Register hooks.
type Proxy struct {
	component  *Component
	capability *Capability
}

// Call invokes a method of the proxied capability by name.
func (p *Proxy) Call(methodName string, args ...any) ([]any, error) {
	return p.component.dispatch(p.capability, methodName, args)
}

// Invoke makes *Proxy an Invoker, so a generic proxy can stand wherever a
// typed forwarder's backing invoker would.
func (p *Proxy) Invoke(methodName string, args ...any) ([]any, error) {
	return p.Call(methodName, args...)
}

// Capability returns the interface type this proxy stands in for.
func (p *Proxy) Capability() reflect.Type {
	return p.capability.Type
}

func (p *Proxy) String() string {
	return fmt.Sprintf("proxy for %s of %s", p.capability.Name, p.component.id)
}

// capabilityInvoker binds a component and one of its capabilities into an
// Invoker handed to a ProxyFactory. Typed forwarders route through this.
type capabilityInvoker struct {
	component  *Component
	capability *Capability
}

func (ci *capabilityInvoker) Invoke(methodName string, args ...any) ([]any, error) {
	return ci.component.dispatch(ci.capability, methodName, args)
}
