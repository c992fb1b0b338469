package cluster

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/c360/wirekit/component"
	"github.com/c360/wirekit/errors"
)

// Cluster is an in-memory assembly of components. It implements the Facade
// contract components use to resolve peers, and drives the wiring protocol
// (reference injection and listener registration) when components are
// connected or disconnected.
//
// Mutating operations (Add, Remove, Connect, Disconnect) serialize through
// the cluster's lock, satisfying the single-orchestrator assumption the
// components' own wiring operations rely on.
type Cluster struct {
	registry   *component.Registry
	deps       component.Dependencies
	logger     *slog.Logger
	components map[string]*component.Component
	mu         sync.RWMutex
}

// New creates an empty cluster over a capability registry.
func New(registry *component.Registry, deps component.Dependencies) *Cluster {
	return &Cluster{
		registry:   registry,
		deps:       deps,
		logger:     deps.GetLoggerWithComponent("cluster"),
		components: make(map[string]*component.Component),
	}
}

// Add wraps an implementation into a component and registers it under id.
func (cl *Cluster) Add(id string, impl any) (*component.Component, error) {
	c, err := component.New(id, impl, cl.registry, cl.deps)
	if err != nil {
		return nil, err
	}

	cl.mu.Lock()
	defer cl.mu.Unlock()
	if _, exists := cl.components[id]; exists {
		return nil, errors.WrapConfig(
			fmt.Errorf("%w: component %q is already part of the cluster", errors.ErrDuplicateEntry, id),
			"Cluster", "Add", "duplicate component check")
	}
	cl.components[id] = c
	cl.logger.Debug("component added", "id", id)
	return c, nil
}

// Component returns the component registered under id.
func (cl *Cluster) Component(id string) (*component.Component, bool) {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	c, ok := cl.components[id]
	return c, ok
}

// IDs returns the registered component ids in sorted order.
func (cl *Cluster) IDs() []string {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	ids := make([]string, 0, len(cl.components))
	for id := range cl.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetProxy resolves a peer component's capability to a proxy, making the
// cluster the Facade its components wire through.
func (cl *Cluster) GetProxy(componentID string, capability reflect.Type) (any, error) {
	c, ok := cl.Component(componentID)
	if !ok {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrUnknownComponent, componentID),
			"Cluster", "GetProxy", "component lookup")
	}
	return c.GetProxy(capability)
}

// Connect wires two components bidirectionally: each side gets the other's
// capabilities offered for reference injection and listener registration.
// Sides without matching setters or hooks simply receive nothing.
func (cl *Cluster) Connect(firstID, secondID string) error {
	first, second, err := cl.pair("Connect", firstID, secondID)
	if err != nil {
		return err
	}

	if err := first.SetReference(cl, secondID, second.Capabilities()...); err != nil {
		return err
	}
	if err := second.SetReference(cl, firstID, first.Capabilities()...); err != nil {
		return err
	}
	if err := first.Register(second); err != nil {
		return err
	}
	if err := second.Register(first); err != nil {
		return err
	}

	cl.logger.Debug("components connected", "first", firstID, "second", secondID)
	return nil
}

// Disconnect reverses Connect: listeners are unregistered and dependency
// bookkeeping is dropped on both sides. Setter values injected during
// Connect are left in place.
func (cl *Cluster) Disconnect(firstID, secondID string) error {
	first, second, err := cl.pair("Disconnect", firstID, secondID)
	if err != nil {
		return err
	}

	if err := first.Unregister(second); err != nil {
		return err
	}
	if err := second.Unregister(first); err != nil {
		return err
	}
	first.RemoveDependency(secondID)
	second.RemoveDependency(firstID)

	cl.logger.Debug("components disconnected", "first", firstID, "second", secondID)
	return nil
}

// Remove disconnects a component from every peer and drops it from the
// cluster.
func (cl *Cluster) Remove(id string) error {
	c, ok := cl.Component(id)
	if !ok {
		return cl.unknownComponent("Remove", id)
	}

	for _, peerID := range cl.IDs() {
		if peerID == id {
			continue
		}
		if err := cl.Disconnect(id, peerID); err != nil {
			return err
		}
	}

	cl.mu.Lock()
	delete(cl.components, id)
	cl.mu.Unlock()
	cl.logger.Debug("component removed", "id", id, "component", c.String())
	return nil
}

// pair resolves both endpoints of a wiring operation.
func (cl *Cluster) pair(operation, firstID, secondID string) (*component.Component, *component.Component, error) {
	first, ok := cl.Component(firstID)
	if !ok {
		return nil, nil, cl.unknownComponent(operation, firstID)
	}
	second, ok := cl.Component(secondID)
	if !ok {
		return nil, nil, cl.unknownComponent(operation, secondID)
	}
	return first, second, nil
}

func (cl *Cluster) unknownComponent(operation, id string) error {
	return errors.WrapInvalid(
		fmt.Errorf("%w: %s", errors.ErrUnknownComponent, id),
		"Cluster", operation, "component lookup")
}
