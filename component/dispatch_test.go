package component

import (
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/wirekit/errors"
	"github.com/c360/wirekit/metric"
	"github.com/c360/wirekit/reflection"
)

func TestProxyCallReachesImplementation(t *testing.T) {
	impl := &service{}
	c := newTestComponent("svc", impl)

	proxy, err := c.GetProxy(counterType)
	require.NoError(t, err)

	results, err := proxy.(*Proxy).Call("Increment", 5)
	require.NoError(t, err)
	assert.Equal(t, []any{5}, results)
	assert.Equal(t, 5, impl.count)
}

func TestProxyCallCoercesArguments(t *testing.T) {
	c := newTestComponent("svc", &service{})

	proxy, err := c.GetProxy(counterType)
	require.NoError(t, err)

	results, err := proxy.(*Proxy).Call("Increment", "12")
	require.NoError(t, err)
	assert.Equal(t, []any{12}, results)
}

func TestProxyCallUnknownMethod(t *testing.T) {
	c := newTestComponent("svc", &service{})

	proxy, err := c.GetProxy(counterType)
	require.NoError(t, err)

	// Greet exists on the implementation but not on the Counter capability.
	_, err = proxy.(*Proxy).Call("Greet", "bob")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoSuchMethod)
}

func TestInterceptorGetsFirstRefusal(t *testing.T) {
	impl := &service{name: "svc"}
	c := newTestComponent("svc", impl)

	var seenImpl any
	var seenMethod string
	var seenArgs []any
	err := c.SetInvocationInterceptor(greeterType, func(target any, method reflect.Method, args []any) ([]any, error) {
		seenImpl = target
		seenMethod = method.Name
		seenArgs = args
		return []any{"intercepted"}, nil
	})
	require.NoError(t, err)

	proxy, err := c.GetProxy(greeterType)
	require.NoError(t, err)

	// The interceptor's return value is what the proxy caller observes.
	assert.Equal(t, "intercepted", proxy.(Greeter).Greet("bob"))
	assert.Same(t, impl, seenImpl)
	assert.Equal(t, "Greet", seenMethod)
	assert.Equal(t, []any{"bob"}, seenArgs)
}

func TestInterceptorCanForwardToImplementation(t *testing.T) {
	impl := &service{name: "svc"}
	c := newTestComponent("svc", impl)

	err := c.SetInvocationInterceptor(greeterType, func(target any, method reflect.Method, args []any) ([]any, error) {
		return reflection.CallMethod(target, method.Name, args)
	})
	require.NoError(t, err)

	proxy, err := c.GetProxy(greeterType)
	require.NoError(t, err)
	assert.Equal(t, "hello bob from svc", proxy.(Greeter).Greet("bob"))
}

func TestInterceptorScopedToItsCapability(t *testing.T) {
	impl := &service{}
	c := newTestComponent("svc", impl)

	err := c.SetInvocationInterceptor(greeterType, func(any, reflect.Method, []any) ([]any, error) {
		return []any{"intercepted"}, nil
	})
	require.NoError(t, err)

	// Counter calls bypass the Greeter interceptor.
	proxy, err := c.GetProxy(counterType)
	require.NoError(t, err)
	results, err := proxy.(*Proxy).Call("Increment", 3)
	require.NoError(t, err)
	assert.Equal(t, []any{3}, results)
	assert.Equal(t, 3, impl.count)
}

func TestInterceptorFailurePassedThroughUnwrapped(t *testing.T) {
	c := newTestComponent("svc", &service{})

	sentinel := errors.New("interceptor failure")
	err := c.SetInvocationInterceptor(counterType, func(any, reflect.Method, []any) ([]any, error) {
		return nil, sentinel
	})
	require.NoError(t, err)

	proxy, err := c.GetProxy(counterType)
	require.NoError(t, err)

	_, err = proxy.(*Proxy).Call("Increment", 1)
	assert.Equal(t, sentinel, err)
}

func TestDispatchSurfacesImplementationError(t *testing.T) {
	c := newTestComponent("svc", &service{})

	proxy, err := c.GetProxy(failerType)
	require.NoError(t, err)

	results, err := proxy.(*Proxy).Call("Fail")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, errImplementation, results[0])
}

func TestSetInvocationInterceptorValidation(t *testing.T) {
	c := newTestComponent("hub", &hub{})

	err := c.SetInvocationInterceptor(greeterType, func(any, reflect.Method, []any) ([]any, error) {
		return nil, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotImplemented)
}

func TestClearInterceptor(t *testing.T) {
	impl := &service{name: "svc"}
	c := newTestComponent("svc", impl)

	require.NoError(t, c.SetInvocationInterceptor(greeterType, func(any, reflect.Method, []any) ([]any, error) {
		return []any{"intercepted"}, nil
	}))
	require.NoError(t, c.SetInvocationInterceptor(greeterType, nil))

	proxy, err := c.GetProxy(greeterType)
	require.NoError(t, err)
	assert.Equal(t, "hello bob from svc", proxy.(Greeter).Greet("bob"))
}

func TestInterceptedCallsCountsOnlyMediatedCalls(t *testing.T) {
	registry := metric.NewMetricsRegistry()
	c, err := New("svc", &service{}, newTestRegistry(), Dependencies{MetricsRegistry: registry})
	require.NoError(t, err)

	require.NoError(t, c.SetInvocationInterceptor(counterType, func(target any, method reflect.Method, args []any) ([]any, error) {
		return reflection.CallMethod(target, method.Name, args)
	}))

	proxy, err := c.GetProxy(counterType)
	require.NoError(t, err)

	counter := registry.Metrics.InterceptedCalls.WithLabelValues("svc", "counter")

	// A call that never resolves to a method is not an intercepted call.
	_, err = proxy.(*Proxy).Call("Greet", "bob")
	require.Error(t, err)
	assert.Equal(t, 0.0, testutil.ToFloat64(counter))

	_, err = proxy.(*Proxy).Call("Increment", 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))
}

func TestInvokeByName(t *testing.T) {
	impl := &service{name: "svc"}
	c := newTestComponent("svc", impl)

	results, err := c.Invoke("Greet", "bob")
	require.NoError(t, err)
	assert.Equal(t, []any{"hello bob from svc"}, results)

	// Coercion applies on the by-name path too.
	results, err = c.Invoke("Increment", "7")
	require.NoError(t, err)
	assert.Equal(t, []any{7}, results)
}

func TestInvokeByNameMediatesThroughInterceptor(t *testing.T) {
	c := newTestComponent("svc", &service{})

	require.NoError(t, c.SetInvocationInterceptor(greeterType, func(any, reflect.Method, []any) ([]any, error) {
		return []any{"intercepted"}, nil
	}))

	results, err := c.Invoke("Greet", "bob")
	require.NoError(t, err)
	assert.Equal(t, []any{"intercepted"}, results)
}

func TestInvokeByNameUnknownMethod(t *testing.T) {
	c := newTestComponent("svc", &service{})

	_, err := c.Invoke("Explode")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoSuchMethod)
}
