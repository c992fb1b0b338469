package reflection

import (
	"fmt"
	"reflect"

	"github.com/c360/wirekit/convert"
	"github.com/c360/wirekit/errors"
)

// InvokeFunc performs the actual call once a method has been resolved.
// The wiring core supplies its dispatch entry point here so by-name
// invocations are mediated like any proxied call.
type InvokeFunc func(method reflect.Method, args []any) ([]any, error)

// MethodInvocation resolves the best-matching method among a candidate set
// (by arity and coercible parameter types) and performs the call.
type MethodInvocation struct {
	target     any
	methodName string
	candidates []reflect.Method
	args       []any
	invoke     InvokeFunc
}

// NewMethodInvocation prepares an invocation of methodName on target with the
// given candidate methods. A nil invoke calls the method directly on target.
func NewMethodInvocation(target any, methodName string, candidates []reflect.Method, invoke InvokeFunc, args ...any) *MethodInvocation {
	return &MethodInvocation{
		target:     target,
		methodName: methodName,
		candidates: candidates,
		args:       args,
		invoke:     invoke,
	}
}

// Invoke resolves and performs the call. Resolution prefers a candidate whose
// parameter types equal the runtime argument types exactly; otherwise the
// first candidate the arguments coerce to wins. A not-found failure is
// surfaced when no candidate matches.
func (mi *MethodInvocation) Invoke() ([]any, error) {
	// Exact pass.
	for _, candidate := range mi.candidates {
		params := Params(candidate)
		if exactMatch(params, mi.args) {
			return mi.call(candidate, mi.args)
		}
	}

	// Coercion pass.
	for _, candidate := range mi.candidates {
		params := Params(candidate)
		if len(params) != len(mi.args) {
			continue
		}
		coerced, err := convert.ToTypes(mi.args, params)
		if err != nil {
			continue
		}
		return mi.call(candidate, coerced)
	}

	return nil, errors.WrapInvalid(
		fmt.Errorf("%w: %s with %d argument(s) on %T", errors.ErrNoSuchMethod, mi.methodName, len(mi.args), mi.target),
		"MethodInvocation", "Invoke", "method resolution")
}

func (mi *MethodInvocation) call(method reflect.Method, args []any) ([]any, error) {
	if mi.invoke != nil {
		return mi.invoke(method, args)
	}
	return CallMethod(mi.target, method.Name, args)
}

// CallMethod invokes a named method directly on a target with pre-matched
// arguments. The method's own error return, if any, is passed through
// verbatim as the trailing result.
func CallMethod(target any, methodName string, args []any) ([]any, error) {
	m := reflect.ValueOf(target).MethodByName(methodName)
	if !m.IsValid() {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s on %T", errors.ErrNoSuchMethod, methodName, target),
			"reflection", "CallMethod", "method lookup")
	}

	mt := m.Type()
	if mt.NumIn() != len(args) {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s expects %d argument(s), got %d", errors.ErrNoSuchMethod, methodName, mt.NumIn(), len(args)),
			"reflection", "CallMethod", "arity check")
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(mt.In(i))
			continue
		}
		if !reflect.TypeOf(arg).AssignableTo(mt.In(i)) {
			return nil, errors.WrapInvalid(
				fmt.Errorf("argument %d of type %T is not assignable to %s", i, arg, mt.In(i)),
				"reflection", "CallMethod", "argument check")
		}
		in[i] = reflect.ValueOf(arg)
	}

	out := m.Call(in)
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, nil
}

// InvokeMethod resolves a method on the implementation by name and argument
// count, coercing arguments when no exact signature matches, and invokes it.
func InvokeMethod(impl any, methodName string, args ...any) ([]any, error) {
	candidates := MethodsByName(reflect.TypeOf(impl), methodName, len(args))
	return NewMethodInvocation(impl, methodName, candidates, nil, args...).Invoke()
}
