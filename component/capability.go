package component

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/c360/wirekit/errors"
)

// ProxyFactory builds a typed stand-in for one capability. The returned
// value must implement the capability's interface and forward every method
// call through the supplied Invoker. Capabilities without a factory are
// served by the generic *Proxy instead.
type ProxyFactory func(invoker Invoker) any

// Capability describes one declared interface a component may expose.
type Capability struct {
	Name         string
	Type         reflect.Type
	ProxyFactory ProxyFactory
}

// CapabilityConfig provides a clean API for capability registration.
// It maps 1:1 to Capability fields.
type CapabilityConfig struct {
	Name         string       // Capability name (e.g., "greeter", "event-sink")
	Type         reflect.Type // Interface type, typically reflect.TypeOf((*I)(nil)).Elem()
	ProxyFactory ProxyFactory // Optional typed proxy constructor
}

// Registry manages the declared capability interfaces of a wiring domain.
// Components compute their capability set against a Registry at construction
// time, so every interface that should be proxyable must be declared here
// first. Registration and lookup are thread-safe.
type Registry struct {
	byType map[reflect.Type]*Capability
	byName map[string]*Capability
	order  []*Capability // declaration order drives capability-set ordering
	mu     sync.RWMutex
}

// NewRegistry creates a new empty capability registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*Capability),
		byName: make(map[string]*Capability),
	}
}

// Register declares a capability interface under a name.
// Returns an error if the type is not an interface or if the name or type
// is already registered.
func (r *Registry) Register(config CapabilityConfig) error {
	if config.Name == "" {
		return errors.WrapConfig(errors.New("capability name cannot be empty"),
			"Registry", "Register", "name validation")
	}
	if config.Type == nil || config.Type.Kind() != reflect.Interface {
		return errors.WrapConfig(
			fmt.Errorf("%w: capability %q", errors.ErrNotAnInterface, config.Name),
			"Registry", "Register", "type validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[config.Name]; exists {
		return errors.WrapConfig(
			fmt.Errorf("%w: capability %q is already registered", errors.ErrDuplicateEntry, config.Name),
			"Registry", "Register", "duplicate name check")
	}
	if _, exists := r.byType[config.Type]; exists {
		return errors.WrapConfig(
			fmt.Errorf("%w: capability type %s is already registered", errors.ErrDuplicateEntry, config.Type),
			"Registry", "Register", "duplicate type check")
	}

	capability := &Capability{
		Name:         config.Name,
		Type:         config.Type,
		ProxyFactory: config.ProxyFactory,
	}
	r.byName[config.Name] = capability
	r.byType[config.Type] = capability
	r.order = append(r.order, capability)
	return nil
}

// MustRegister is Register that panics on registration errors.
// Intended for assembly code where a bad capability table is a programming error.
func (r *Registry) MustRegister(config CapabilityConfig) {
	if err := r.Register(config); err != nil {
		panic(err)
	}
}

// Lookup returns the capability registered for an interface type.
func (r *Registry) Lookup(t reflect.Type) (*Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	capability, ok := r.byType[t]
	return capability, ok
}

// LookupName returns the capability registered under a name.
func (r *Registry) LookupName(name string) (*Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	capability, ok := r.byName[name]
	return capability, ok
}

// Declared returns the registered interface types in declaration order.
func (r *Registry) Declared() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]reflect.Type, len(r.order))
	for i, capability := range r.order {
		types[i] = capability.Type
	}
	return types
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
