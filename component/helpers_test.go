package component

import (
	"fmt"
	"reflect"

	"github.com/c360/wirekit/errors"
)

// Test capability interfaces.

type Greeter interface {
	Greet(name string) string
}

type Counter interface {
	Increment(n int) int
	Value() int
}

type Failer interface {
	Fail() error
}

var (
	greeterType = reflect.TypeOf((*Greeter)(nil)).Elem()
	counterType = reflect.TypeOf((*Counter)(nil)).Elem()
	failerType  = reflect.TypeOf((*Failer)(nil)).Elem()
)

var errImplementation = errors.New("implementation failure")

// service implements Greeter, Counter and Failer and carries setters for
// property and reference injection.
type service struct {
	name    string
	retries int
	props   map[string]string
	count   int
	greeter Greeter
}

func (s *service) Greet(name string) string {
	return fmt.Sprintf("hello %s from %s", name, s.name)
}

func (s *service) Increment(n int) int {
	s.count += n
	return s.count
}

func (s *service) Value() int { return s.count }

func (s *service) Fail() error { return errImplementation }

func (s *service) SetName(name string)               { s.name = name }
func (s *service) SetRetries(retries int)            { s.retries = retries }
func (s *service) SetProperties(p map[string]string) { s.props = p }
func (s *service) SetGreeter(g Greeter)              { s.greeter = g }

// hub implements no declared capability; it only carries listener hooks
// for Greeter.
type hub struct {
	registered []Greeter
}

func (h *hub) Register(g Greeter) {
	h.registered = append(h.registered, g)
}

func (h *hub) Unregister(g Greeter) {
	for i, registered := range h.registered {
		if registered == g {
			h.registered = append(h.registered[:i], h.registered[i+1:]...)
			return
		}
	}
}

// counterConsumer wants a Counter injected; Counter is declared without a
// ProxyFactory, so wiring it must fail instead of handing over a generic
// proxy the setter cannot accept.
type counterConsumer struct {
	counter Counter
}

func (c *counterConsumer) SetCounter(counter Counter) { c.counter = counter }

// counterHub carries a listener hook for Counter only.
type counterHub struct {
	registered []Counter
}

func (h *counterHub) Register(counter Counter) {
	h.registered = append(h.registered, counter)
}

// greeterProxy is a hand-authored typed forwarder for Greeter.
type greeterProxy struct {
	invoker Invoker
}

func (p *greeterProxy) Greet(name string) string {
	results, err := p.invoker.Invoke("Greet", name)
	if err != nil {
		panic(err)
	}
	return results[0].(string)
}

// newTestRegistry declares the test capabilities: Greeter with a typed
// forwarder, Counter and Failer served by the generic proxy.
func newTestRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(CapabilityConfig{
		Name: "greeter",
		Type: greeterType,
		ProxyFactory: func(invoker Invoker) any {
			return &greeterProxy{invoker: invoker}
		},
	})
	registry.MustRegister(CapabilityConfig{Name: "counter", Type: counterType})
	registry.MustRegister(CapabilityConfig{Name: "failer", Type: failerType})
	return registry
}

func newTestComponent(id string, impl any) *Component {
	c, err := New(id, impl, newTestRegistry(), Dependencies{})
	if err != nil {
		panic(err)
	}
	return c
}

// mapFacade resolves peers from a fixed component table.
type mapFacade struct {
	components map[string]*Component
}

func (f *mapFacade) GetProxy(componentID string, capability reflect.Type) (any, error) {
	c, ok := f.components[componentID]
	if !ok {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrUnknownComponent, componentID),
			"mapFacade", "GetProxy", "component lookup")
	}
	return c.GetProxy(capability)
}
