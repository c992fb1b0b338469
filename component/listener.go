package component

import (
	"reflect"

	"github.com/c360/wirekit/errors"
	"github.com/c360/wirekit/reflection"
)

// Register wires event-style listeners between this component and a peer.
// For every capability the peer exposes, the implementation's single-argument
// Register method accepting that capability type (if any) receives a proxy
// obtained from the peer. The proxy is remembered per (peer, capability) so
// Unregister can later hand back the identical instance. A missing Register
// hook for a capability is expected and skipped; any other failure aborts.
func (c *Component) Register(peer *Component) error {
	if peer == nil {
		return errors.WrapConfig(errors.New("peer component is required"),
			"Component", "Register", "peer validation")
	}

	for _, capability := range peer.Capabilities() {
		hook, ok := c.listenerHook("Register", capability)
		if !ok {
			continue
		}

		proxy, err := peer.GetProxy(capability)
		if err != nil {
			return err
		}
		if err := proxyAssignable(proxy, capability, reflection.Params(hook)[0]); err != nil {
			return errors.WrapConfig(err, "Component", "Register", "proxy type check")
		}
		if _, err := reflection.CallMethod(c.impl, hook.Name, []any{proxy}); err != nil {
			return err
		}

		if c.listeners[peer] == nil {
			c.listeners[peer] = make(map[reflect.Type]any)
		}
		c.listeners[peer][capability] = proxy
		if c.metrics != nil {
			c.metrics.ListenersRegistered.WithLabelValues(c.id, capability.String()).Inc()
		}
		c.logger.Debug("listener registered", "peer", peer.id, "capability", capability.String())
	}
	return nil
}

// Unregister reverses Register using the remembered proxies. Capabilities
// never registered, and capabilities without a matching Unregister hook,
// are skipped.
func (c *Component) Unregister(peer *Component) error {
	if peer == nil {
		return errors.WrapConfig(errors.New("peer component is required"),
			"Component", "Unregister", "peer validation")
	}

	registered := c.listeners[peer]
	for _, capability := range peer.Capabilities() {
		proxy, ok := registered[capability]
		if !ok {
			continue
		}
		hook, ok := c.listenerHook("Unregister", capability)
		if !ok {
			continue
		}

		if _, err := reflection.CallMethod(c.impl, hook.Name, []any{proxy}); err != nil {
			return err
		}
		delete(registered, capability)
		c.logger.Debug("listener unregistered", "peer", peer.id, "capability", capability.String())
	}
	if len(registered) == 0 {
		delete(c.listeners, peer)
	}
	return nil
}

// listenerHook finds the implementation's single-argument method of the
// given name whose parameter accepts the capability type.
func (c *Component) listenerHook(name string, capability reflect.Type) (reflect.Method, bool) {
	for _, method := range reflection.MethodsByName(reflect.TypeOf(c.impl), name, 1) {
		if capability.AssignableTo(reflection.Params(method)[0]) {
			return method, true
		}
	}
	return reflect.Method{}, false
}
