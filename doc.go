// Package wirekit is the runtime core of a component-wiring framework:
// given a plain implementation object, it exposes a declared set of
// interface capabilities, mediates every call to those capabilities through
// an interception layer, and performs dependency injection by handing out
// proxies that other components can invoke.
//
// # Architecture
//
// Two cooperating layers, leaf-first:
//
// Introspection layer (reflection, convert):
//   - Ancestry walks over embedded struct types
//   - Capability enumeration against a declared interface registry
//   - Constructor resolution with argument coercion and a last-used cache
//   - Method resolution by name and arity with overload selection
//
// Wiring layer (component, cluster):
//   - Component: wraps one implementation, freezes its capability set,
//     memoizes per-capability proxies, mediates dispatch through
//     interceptors, injects properties and peer references into setters,
//     and manages bidirectional listener registration
//   - Cluster: the in-memory container acting as the Facade components
//     resolve peers through
//
// Supporting packages: errors (classified errors with cause unwrapping),
// metric (Prometheus registry and core wiring metrics), pkg/cache
// (thread-safe generic cache with statistics).
//
// # Usage
//
//	registry := component.NewRegistry()
//	registry.MustRegister(component.CapabilityConfig{
//		Name: "greeter",
//		Type: reflect.TypeOf((*Greeter)(nil)).Elem(),
//	})
//
//	cl := cluster.New(registry, component.Dependencies{})
//	cl.Add("service", &GreeterService{})
//	cl.Add("client", &GreeterClient{})
//	cl.Connect("client", "service")
//
// After assembly, typed access flows through proxies obtained from the
// cluster or injected into setters; every call is mediated by the owning
// component's dispatch entry point.
package wirekit
