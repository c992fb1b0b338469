package reflection

import (
	"reflect"
)

// MethodsByName returns the exported methods on a type matching the given
// name and parameter count exactly. Works for both concrete and interface
// types; the receiver is not counted as a parameter. No attempt is made to
// disambiguate further - more than one match is the caller's problem to
// surface.
func MethodsByName(t reflect.Type, methodName string, paramCount int) []reflect.Method {
	var result []reflect.Method
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if method.PkgPath != "" {
			continue
		}
		if method.Name != methodName {
			continue
		}
		if len(Params(method)) == paramCount {
			result = append(result, method)
		}
	}
	return result
}

// Params returns the parameter types of a method, excluding the receiver
// when the method came from a concrete type.
func Params(method reflect.Method) []reflect.Type {
	start := 0
	if method.Func.IsValid() {
		// Concrete method: In(0) is the receiver.
		start = 1
	}
	mt := method.Type
	params := make([]reflect.Type, 0, mt.NumIn()-start)
	for i := start; i < mt.NumIn(); i++ {
		params = append(params, mt.In(i))
	}
	return params
}

// Results returns the result types of a method.
func Results(method reflect.Method) []reflect.Type {
	mt := method.Type
	results := make([]reflect.Type, 0, mt.NumOut())
	for i := 0; i < mt.NumOut(); i++ {
		results = append(results, mt.Out(i))
	}
	return results
}
