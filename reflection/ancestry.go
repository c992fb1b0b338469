package reflection

import (
	"reflect"
)

// AncestryOf returns the ordered ancestors of a type: the types it embeds,
// immediate embeds first in declaration order, then their embeds outward.
// Pointer types are unwrapped; non-struct types have no ancestry.
func AncestryOf(t reflect.Type) []reflect.Type {
	base := deref(t)
	if base.Kind() != reflect.Struct {
		return nil
	}

	var result []reflect.Type
	seen := map[reflect.Type]bool{base: true}

	queue := []reflect.Type{base}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for i := 0; i < current.NumField(); i++ {
			field := current.Field(i)
			if !field.Anonymous {
				continue
			}
			ancestor := deref(field.Type)
			if seen[ancestor] {
				continue
			}
			seen[ancestor] = true
			result = append(result, ancestor)
			if ancestor.Kind() == reflect.Struct {
				queue = append(queue, ancestor)
			}
		}
	}

	return result
}

// BoundedAncestryOf returns the ancestors of a type, truncated to those
// assignable to the given upper bound. Descent stops at the first ancestor
// outside the bound, so embeds of an out-of-bound ancestor are not visited.
func BoundedAncestryOf(t reflect.Type, upperBound reflect.Type) []reflect.Type {
	base := deref(t)
	if base.Kind() != reflect.Struct {
		return nil
	}

	var result []reflect.Type
	seen := map[reflect.Type]bool{base: true}

	queue := []reflect.Type{base}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for i := 0; i < current.NumField(); i++ {
			field := current.Field(i)
			if !field.Anonymous {
				continue
			}
			ancestor := deref(field.Type)
			if seen[ancestor] {
				continue
			}
			seen[ancestor] = true
			if !assignable(ancestor, upperBound) {
				continue
			}
			result = append(result, ancestor)
			if ancestor.Kind() == reflect.Struct {
				queue = append(queue, ancestor)
			}
		}
	}

	return result
}

// CapabilitiesOf returns every declared capability implemented by the type or
// any of its ancestors, deduplicated, in first-encountered order: the type
// itself first, then ancestors outward, candidates in declaration order.
func CapabilitiesOf(t reflect.Type, declared []reflect.Type) []reflect.Type {
	var result []reflect.Type
	seen := make(map[reflect.Type]bool)

	line := append([]reflect.Type{t}, AncestryOf(t)...)
	for _, typ := range line {
		for _, capability := range declared {
			if capability.Kind() != reflect.Interface || seen[capability] {
				continue
			}
			if Implements(typ, capability) {
				seen[capability] = true
				result = append(result, capability)
			}
		}
	}

	return result
}

// CapabilitiesAndAncestryOf returns the type's ancestry, the type itself, and
// its capabilities, in that order. Capabilities already present as ancestors
// (embedded interfaces) are not repeated.
func CapabilitiesAndAncestryOf(t reflect.Type, declared []reflect.Type) []reflect.Type {
	result := append(AncestryOf(t), deref(t))

	present := make(map[reflect.Type]bool, len(result))
	for _, typ := range result {
		present[typ] = true
	}

	for _, capability := range CapabilitiesOf(t, declared) {
		if !present[capability] {
			present[capability] = true
			result = append(result, capability)
		}
	}

	return result
}

// Implements reports whether a type satisfies an interface, checking the
// pointer receiver method set as well.
func Implements(t reflect.Type, iface reflect.Type) bool {
	if iface.Kind() != reflect.Interface {
		return false
	}
	if t.Implements(iface) {
		return true
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		return reflect.PointerTo(t).Implements(iface)
	}
	return false
}

// assignable reports whether t can stand in for bound.
func assignable(t, bound reflect.Type) bool {
	if t == bound {
		return true
	}
	if bound.Kind() == reflect.Interface {
		return Implements(t, bound)
	}
	return t.AssignableTo(bound)
}

// deref unwraps a pointer type to its element type.
func deref(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
