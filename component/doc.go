// Package component wraps plain implementation objects into Components that
// expose a declared set of interface capabilities, mediate every call to
// those capabilities through an interception layer, and perform dependency
// injection by handing out proxies that other components can invoke.
//
// # Overview
//
// A Component owns exactly one implementation instance. Its capability set
// is computed once at construction: every interface declared in the
// capability Registry that the implementation satisfies, directly or through
// embedded types, in declaration order. The set is frozen afterwards.
//
// All typed access flows through proxies. A proxy stands in for a single
// capability and routes each call back into the owning Component's dispatch
// entry point, where a capability-scoped interceptor gets first refusal
// before the implementation. Proxies are memoized: GetProxy returns the
// identical instance for the same capability for the Component's lifetime.
//
// # Capability Registration Pattern
//
// Capabilities use EXPLICIT registration rather than init() self-registration.
// Go cannot enumerate the interfaces a type satisfies, so the wiring domain
// declares them up front:
//
//	registry := component.NewRegistry()
//	registry.MustRegister(component.CapabilityConfig{
//		Name: "greeter",
//		Type: reflect.TypeOf((*Greeter)(nil)).Elem(),
//	})
//
// A capability may carry a ProxyFactory producing a hand-authored typed
// forwarder that implements the interface and routes through the supplied
// Invoker; capabilities without one are served by the generic *Proxy, whose
// Call method forwards by method name. The generic *Proxy does not itself
// implement the capability interface, so a capability that should reach a
// setter via SetReference or a Register hook MUST be registered with a
// ProxyFactory — wiring such a capability without one fails with a
// configuration error before any setter is invoked.
//
// # Wiring
//
// The surrounding container drives assembly:
//
//   - SetProperties injects configuration values into Set<Key> setters with
//     coercion, exactly-one-setter rule per key.
//   - SetReference obtains peer capability proxies from a Facade and injects
//     them into assignable setters, reconciling on repeat calls. Removal is
//     bookkeeping only: a wired setter value is never overwritten with nil.
//   - Register / Unregister hand peer capability proxies to the
//     implementation's Register/Unregister hooks, skipping capabilities
//     without a matching hook.
//
// Wiring operations assume a single orchestrator; only proxy dispatch is
// meant for concurrent use after assembly.
package component
