package component

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/c360/wirekit/errors"
	"github.com/c360/wirekit/metric"
	"github.com/c360/wirekit/pkg/cache"
	"github.com/c360/wirekit/reflection"
)

// Component wraps exactly one implementation instance and mediates all typed
// access to it. The capability set is computed once at construction against
// the registry's declared interfaces and frozen.
//
// Wiring operations (SetProperties, SetReference, Register, Unregister,
// SetInvocationInterceptor) are expected to be serialized by a single
// orchestrator during assembly; only proxy dispatch is safe to run
// concurrently afterwards.
type Component struct {
	id       string
	impl     any
	registry *Registry
	deps     Dependencies
	logger   *slog.Logger
	metrics  *metric.Metrics

	capabilities []reflect.Type
	capSet       map[reflect.Type]*Capability

	proxies      cache.Cache[any]
	interceptors map[reflect.Type]Interceptor

	properties     map[string]string
	setterInjected map[string]any

	injected         map[string]map[reflect.Type]bool
	referenceProxies map[reflect.Type]any

	listeners map[*Component]map[reflect.Type]any
}

// New wraps an implementation into a Component identified by id. The
// implementation must be non-nil; its capability set is every registry
// interface it satisfies, directly or through embedded types, in the
// registry's declaration order.
func New(id string, impl any, registry *Registry, deps Dependencies) (*Component, error) {
	if id == "" {
		return nil, errors.WrapConfig(errors.New("component id cannot be empty"),
			"Component", "New", "id validation")
	}
	if isNilImplementation(impl) {
		return nil, errors.WrapConfig(
			fmt.Errorf("%w: component %q", errors.ErrNilImplementation, id),
			"Component", "New", "implementation validation")
	}
	if registry == nil {
		return nil, errors.WrapConfig(errors.New("capability registry is required"),
			"Component", "New", "registry validation")
	}

	capabilities := reflection.CapabilitiesOf(reflect.TypeOf(impl), registry.Declared())
	capSet := make(map[reflect.Type]*Capability, len(capabilities))
	for _, t := range capabilities {
		capability, ok := registry.Lookup(t)
		if !ok {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: %s", errors.ErrUnknownCapability, t),
				"Component", "New", "capability lookup")
		}
		capSet[t] = capability
	}

	proxies, err := cache.NewSimple[any]()
	if err != nil {
		return nil, errors.WrapFatal(err, "Component", "New", "proxy cache setup")
	}

	c := &Component{
		id:               id,
		impl:             impl,
		registry:         registry,
		deps:             deps,
		logger:           deps.GetLoggerWithComponent(id),
		metrics:          deps.coreMetrics(),
		capabilities:     capabilities,
		capSet:           capSet,
		proxies:          proxies,
		interceptors:     make(map[reflect.Type]Interceptor),
		setterInjected:   make(map[string]any),
		injected:         make(map[string]map[reflect.Type]bool),
		referenceProxies: make(map[reflect.Type]any),
		listeners:        make(map[*Component]map[reflect.Type]any),
	}

	c.logger.Debug("component created",
		"implementation", fmt.Sprintf("%T", impl),
		"capabilities", len(capabilities))
	return c, nil
}

// ID returns the component's identifier.
func (c *Component) ID() string {
	return c.id
}

// Implementation returns the wrapped implementation instance.
func (c *Component) Implementation() any {
	return c.impl
}

// Capabilities returns the frozen capability set in registry declaration order.
func (c *Component) Capabilities() []reflect.Type {
	out := make([]reflect.Type, len(c.capabilities))
	copy(out, c.capabilities)
	return out
}

// ImplementsCapability reports whether the capability is part of the
// component's frozen capability set.
func (c *Component) ImplementsCapability(capability reflect.Type) bool {
	_, ok := c.capSet[capability]
	return ok
}

// CreateProxy generates a fresh stand-in for a single capability. The
// capability must be a declared interface that the implementation satisfies.
// Capabilities registered with a ProxyFactory yield a typed forwarder;
// everything else yields a generic *Proxy.
func (c *Component) CreateProxy(capability reflect.Type) (any, error) {
	declared, err := c.validateCapability("CreateProxy", capability)
	if err != nil {
		return nil, err
	}

	var proxy any
	if declared.ProxyFactory != nil {
		proxy = declared.ProxyFactory(&capabilityInvoker{component: c, capability: declared})
	} else {
		proxy = &Proxy{component: c, capability: declared}
	}

	if c.metrics != nil {
		c.metrics.ProxiesCreated.WithLabelValues(c.id, declared.Name).Inc()
	}
	return proxy, nil
}

// GetProxy is the memoized form of CreateProxy: the same capability always
// yields the identical proxy instance for the lifetime of the component.
func (c *Component) GetProxy(capability reflect.Type) (any, error) {
	declared, err := c.validateCapability("GetProxy", capability)
	if err != nil {
		return nil, err
	}

	if proxy, ok := c.proxies.Get(declared.Name); ok {
		return proxy, nil
	}

	proxy, err := c.CreateProxy(capability)
	if err != nil {
		return nil, err
	}
	if _, err := c.proxies.Set(declared.Name, proxy); err != nil {
		return nil, errors.WrapFatal(err, "Component", "GetProxy", "proxy memoization")
	}
	return proxy, nil
}

// Equals reports whether the other value wraps or is the same implementation
// instance. Both another *Component and a raw implementation compare equal
// to this component when the underlying instance is identical.
func (c *Component) Equals(other any) bool {
	if peer, ok := other.(*Component); ok {
		return sameInstance(c.impl, peer.impl)
	}
	return sameInstance(c.impl, other)
}

func (c *Component) String() string {
	return fmt.Sprintf("component %q wrapping %T", c.id, c.impl)
}

// validateCapability checks that a requested capability is an interface the
// wrapped implementation actually exposes, returning its registration.
func (c *Component) validateCapability(operation string, capability reflect.Type) (*Capability, error) {
	if capability == nil || capability.Kind() != reflect.Interface {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %v", errors.ErrNotAnInterface, capability),
			"Component", operation, "capability validation")
	}
	declared, ok := c.capSet[capability]
	if !ok {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s is not a capability of %s", errors.ErrNotImplemented, capability, c),
			"Component", operation, "capability validation")
	}
	return declared, nil
}

// isNilImplementation catches both untyped nil and a typed nil pointer
// hiding inside the interface value.
func isNilImplementation(impl any) bool {
	if impl == nil {
		return true
	}
	v := reflect.ValueOf(impl)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// sameInstance compares by identity: pointers by address, other comparable
// values by equality. Non-comparable values are never the same instance.
func sameInstance(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() == reflect.Pointer && vb.Kind() == reflect.Pointer {
		return va.Pointer() == vb.Pointer()
	}
	if va.Type() != vb.Type() || !va.Type().Comparable() {
		return false
	}
	return a == b
}
