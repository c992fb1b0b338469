package reflection

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/wirekit/errors"
)

type calculator struct {
	total int
}

func (c *calculator) Add(n int) int {
	c.total += n
	return c.total
}

func (c *calculator) Total() int { return c.total }

func (c *calculator) Divide(n int) (int, error) {
	if n == 0 {
		return 0, errors.New("division by zero")
	}
	return c.total / n, nil
}

func (c *calculator) reset() { c.total = 0 }

type adder interface {
	Add(n int) int
}

func TestMethodsByName(t *testing.T) {
	ct := reflect.TypeOf(&calculator{})

	methods := MethodsByName(ct, "Add", 1)
	require.Len(t, methods, 1)
	assert.Equal(t, "Add", methods[0].Name)

	assert.Empty(t, MethodsByName(ct, "Add", 2))
	assert.Empty(t, MethodsByName(ct, "Subtract", 1))
	// Unexported methods are not candidates.
	assert.Empty(t, MethodsByName(ct, "reset", 0))
}

func TestMethodsByNameOnInterface(t *testing.T) {
	at := reflect.TypeOf((*adder)(nil)).Elem()

	methods := MethodsByName(at, "Add", 1)
	require.Len(t, methods, 1)
	assert.Equal(t, []reflect.Type{reflect.TypeOf(0)}, Params(methods[0]))
	assert.Equal(t, []reflect.Type{reflect.TypeOf(0)}, Results(methods[0]))
}

func TestInvokeMethodExact(t *testing.T) {
	calc := &calculator{}

	results, err := InvokeMethod(calc, "Add", 5)
	require.NoError(t, err)
	assert.Equal(t, []any{5}, results)
	assert.Equal(t, 5, calc.total)
}

func TestInvokeMethodCoercesArguments(t *testing.T) {
	calc := &calculator{}

	results, err := InvokeMethod(calc, "Add", "12")
	require.NoError(t, err)
	assert.Equal(t, []any{12}, results)
}

func TestInvokeMethodReturnsMethodError(t *testing.T) {
	calc := &calculator{total: 10}

	results, err := InvokeMethod(calc, "Divide", 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.EqualError(t, results[1].(error), "division by zero")
}

func TestInvokeMethodNotFound(t *testing.T) {
	calc := &calculator{}

	_, err := InvokeMethod(calc, "Multiply", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoSuchMethod)

	_, err = InvokeMethod(calc, "Add", "not a number")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoSuchMethod)
}

func TestMethodInvocationCustomInvoke(t *testing.T) {
	calc := &calculator{}
	candidates := MethodsByName(reflect.TypeOf(calc), "Add", 1)

	var seen string
	invoke := func(method reflect.Method, args []any) ([]any, error) {
		seen = method.Name
		return CallMethod(calc, method.Name, args)
	}

	results, err := NewMethodInvocation(calc, "Add", candidates, invoke, 3).Invoke()
	require.NoError(t, err)
	assert.Equal(t, "Add", seen)
	assert.Equal(t, []any{3}, results)
}

func TestCallMethodArityMismatch(t *testing.T) {
	_, err := CallMethod(&calculator{}, "Add", []any{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoSuchMethod)
}
