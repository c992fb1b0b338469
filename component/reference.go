package component

import (
	"fmt"
	"reflect"

	"github.com/c360/wirekit/errors"
	"github.com/c360/wirekit/reflection"
)

// SetReference wires proxies for a peer component's capabilities into the
// implementation's setters. The surrounding container calls this once a
// peer's identity and exposed capabilities are known.
//
// On the first call for a peerID every requested capability is matched
// against the implementation's single-argument setters; each setter whose
// parameter the capability satisfies receives a facade-obtained proxy.
// A repeat call reconciles: bookkeeping for capabilities no longer requested
// is dropped (the already-wired setter value is deliberately left in place),
// and newly requested capabilities are injected. When nothing remains wired
// for the peer, all of its bookkeeping is removed.
func (c *Component) SetReference(facade Facade, peerID string, capabilities ...reflect.Type) error {
	if facade == nil {
		return errors.WrapConfig(errors.New("facade is required"),
			"Component", "SetReference", "facade validation")
	}
	if peerID == "" {
		return errors.WrapConfig(errors.New("peer id cannot be empty"),
			"Component", "SetReference", "peer validation")
	}

	current, wired := c.injected[peerID]
	if !wired {
		injected, err := c.injectReferences(facade, peerID, capabilities)
		if err != nil {
			return err
		}
		if len(injected) > 0 {
			c.injected[peerID] = injected
		}
		return nil
	}

	requested := make(map[reflect.Type]bool, len(capabilities))
	for _, capability := range capabilities {
		requested[capability] = true
	}

	// Capabilities no longer requested: bookkeeping only, never un-injected.
	var added []reflect.Type
	for capability := range current {
		if !requested[capability] {
			delete(current, capability)
			delete(c.referenceProxies, capability)
			c.logger.Debug("reference dropped", "peer", peerID, "capability", capability.String())
		}
	}
	for _, capability := range capabilities {
		if !current[capability] {
			added = append(added, capability)
		}
	}

	injected, err := c.injectReferences(facade, peerID, added)
	if err != nil {
		return err
	}
	for capability := range injected {
		current[capability] = true
	}
	if len(current) == 0 {
		delete(c.injected, peerID)
	}
	return nil
}

// RemoveDependency drops all bookkeeping for a peer unconditionally. The
// implementation's setters keep whatever proxy was last injected; only the
// component's internal record is cleared.
func (c *Component) RemoveDependency(peerID string) {
	for capability := range c.injected[peerID] {
		delete(c.referenceProxies, capability)
	}
	delete(c.injected, peerID)
	c.logger.Debug("dependency removed", "peer", peerID)
}

// InjectedCapabilities returns the capabilities currently recorded as
// injected from a peer, in no particular order.
func (c *Component) InjectedCapabilities(peerID string) []reflect.Type {
	out := make([]reflect.Type, 0, len(c.injected[peerID]))
	for capability := range c.injected[peerID] {
		out = append(out, capability)
	}
	return out
}

// ProxyForReference returns the proxy last injected for a capability,
// whichever peer provided it.
func (c *Component) ProxyForReference(capability reflect.Type) (any, bool) {
	proxy, ok := c.referenceProxies[capability]
	return proxy, ok
}

// injectReferences wires one proxy per matching setter for each capability
// and returns the set of capabilities that actually reached a setter.
func (c *Component) injectReferences(facade Facade, peerID string, capabilities []reflect.Type) (map[reflect.Type]bool, error) {
	injected := make(map[reflect.Type]bool)
	for _, capability := range capabilities {
		setters := c.referenceSetters(capability)
		if len(setters) == 0 {
			continue
		}

		proxy, err := facade.GetProxy(peerID, capability)
		if err != nil {
			return nil, errors.Wrap(err, "Component", "SetReference", "peer proxy resolution")
		}
		// Checked for every setter before any is invoked, so a bad proxy
		// never leaves this capability half wired.
		for _, setter := range setters {
			if err := proxyAssignable(proxy, capability, reflection.Params(setter)[0]); err != nil {
				return nil, errors.WrapConfig(err, "Component", "SetReference", "proxy type check")
			}
		}
		for _, setter := range setters {
			if _, err := reflection.CallMethod(c.impl, setter.Name, []any{proxy}); err != nil {
				return nil, err
			}
		}

		injected[capability] = true
		c.referenceProxies[capability] = proxy
		if c.metrics != nil {
			c.metrics.ReferenceInjections.WithLabelValues(c.id, capability.String()).Inc()
		}
		c.logger.Debug("reference injected",
			"peer", peerID, "capability", capability.String(), "setters", len(setters))
	}
	return injected, nil
}

// proxyAssignable verifies an obtained proxy can actually be handed to a
// setter or hook parameter. The generic *Proxy does not implement the
// capability interface itself, so injectable capabilities must be registered
// with a ProxyFactory producing a typed forwarder.
func proxyAssignable(proxy any, capability, param reflect.Type) error {
	if reflect.TypeOf(proxy).AssignableTo(param) {
		return nil
	}
	return fmt.Errorf("%w: proxy of type %T for capability %s is not assignable to %s",
		errors.ErrProxyFactoryRequired, proxy, capability, param)
}

// referenceSetters finds every exported single-argument Set* method on the
// implementation whose parameter type the capability satisfies.
func (c *Component) referenceSetters(capability reflect.Type) []reflect.Method {
	t := reflect.TypeOf(c.impl)
	var setters []reflect.Method
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if method.PkgPath != "" || len(method.Name) <= 3 || method.Name[:3] != "Set" {
			continue
		}
		params := reflection.Params(method)
		if len(params) != 1 {
			continue
		}
		if capability.AssignableTo(params[0]) {
			setters = append(setters, method)
		}
	}
	return setters
}
