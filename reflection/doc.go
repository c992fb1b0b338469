// Package reflection provides the introspection support underneath the wiring
// core: ancestry walks over embedded types, capability enumeration against a
// declared candidate set, method lookup by name and arity, best-effort
// constructor resolution, and overload-resolving method invocation.
//
// # Ancestry
//
// Go has no class inheritance; the ancestry of a type is its chain of
// embedded (anonymous) types, immediate embeds first, then their embeds
// outward:
//
//	type base struct{}
//	type middle struct{ base }
//	type leaf struct{ middle }
//
//	reflection.AncestryOf(reflect.TypeOf(leaf{}))  // [middle, base]
//
// # Capabilities
//
// Interfaces are structural in Go, so capability enumeration works against an
// explicit candidate set rather than runtime discovery. CapabilitiesOf
// returns the candidates implemented by a type or its ancestors, first-seen
// order preserved. The component package maintains the candidate set.
//
// # Instantiation
//
// A Context holds named constructor tables and a speculative
// last-used-constructor cache:
//
//	ctx := reflection.NewContext()
//	ctx.MustRegisterType("store.Paged", NewPaged, NewPagedSized)
//
//	instance, err := ctx.Instantiate("store.Paged", "64")
//
// Resolution order is cache hint, exact parameter types, then coercion scan;
// a cache failure only costs a full resolution, never an incorrect result.
package reflection
