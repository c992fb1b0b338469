package reflection

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/c360/wirekit/convert"
	"github.com/c360/wirekit/errors"
	"github.com/c360/wirekit/metric"
	"github.com/c360/wirekit/pkg/cache"
)

// Context owns a constructor registry and the last-used-constructor cache.
// The cache is a hint, never a source of truth: any failure of the cached
// constructor triggers full resolution. Scoping the cache to a Context keeps
// instantiation behavior free of hidden cross-component coupling; callers
// that want process-wide memoization share one Context.
type Context struct {
	mu           sync.RWMutex
	constructors map[string][]reflect.Value
	lastUsed     cache.Cache[reflect.Value]
	metrics      *metric.Metrics
}

// ContextOption configures a Context.
type ContextOption func(*contextConfig)

type contextConfig struct {
	registry *metric.MetricsRegistry
}

// WithMetrics enables instantiation outcome counters and constructor cache
// metrics on the given registry.
func WithMetrics(registry *metric.MetricsRegistry) ContextOption {
	return func(cfg *contextConfig) {
		cfg.registry = registry
	}
}

// NewContext creates an empty instantiation context.
func NewContext(options ...ContextOption) *Context {
	cfg := &contextConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	ctx := &Context{
		constructors: make(map[string][]reflect.Value),
	}

	var cacheOptions []cache.Option[reflect.Value]
	if cfg.registry != nil {
		ctx.metrics = cfg.registry.CoreMetrics()
		cacheOptions = append(cacheOptions, cache.WithMetrics[reflect.Value](cfg.registry, "constructors"))
	}

	lastUsed, err := cache.NewSimple[reflect.Value](cacheOptions...)
	if err != nil {
		// Cache metrics are best-effort; fall back to an unmetered cache.
		lastUsed, _ = cache.NewSimple[reflect.Value]()
	}
	ctx.lastUsed = lastUsed

	return ctx
}

// RegisterType declares the public constructors of a type under its name.
// Constructors must be non-variadic functions returning the constructed value,
// optionally followed by an error. Repeated registration appends.
func (c *Context) RegisterType(typeName string, constructors ...any) error {
	if typeName == "" {
		return errors.WrapConfig(errors.New("type name cannot be empty"),
			"Context", "RegisterType", "name validation")
	}
	if len(constructors) == 0 {
		return errors.WrapConfig(errors.New("at least one constructor required"),
			"Context", "RegisterType", "constructor validation")
	}

	values := make([]reflect.Value, 0, len(constructors))
	for _, ctor := range constructors {
		v := reflect.ValueOf(ctor)
		if !v.IsValid() || v.Kind() != reflect.Func {
			return errors.WrapConfig(
				fmt.Errorf("constructor for %s is not a function", typeName),
				"Context", "RegisterType", "constructor validation")
		}
		t := v.Type()
		if t.IsVariadic() {
			return errors.WrapConfig(
				fmt.Errorf("constructor for %s is variadic", typeName),
				"Context", "RegisterType", "constructor validation")
		}
		if t.NumOut() < 1 || t.NumOut() > 2 {
			return errors.WrapConfig(
				fmt.Errorf("constructor for %s must return the value and an optional error", typeName),
				"Context", "RegisterType", "constructor validation")
		}
		if t.NumOut() == 2 && t.Out(1) != reflect.TypeOf((*error)(nil)).Elem() {
			return errors.WrapConfig(
				fmt.Errorf("constructor for %s second return must be error", typeName),
				"Context", "RegisterType", "constructor validation")
		}
		values = append(values, v)
	}

	c.mu.Lock()
	c.constructors[typeName] = append(c.constructors[typeName], values...)
	c.mu.Unlock()
	return nil
}

// MustRegisterType is RegisterType that panics on registration errors.
// Intended for assembly code where a bad constructor table is a programming error.
func (c *Context) MustRegisterType(typeName string, constructors ...any) {
	if err := c.RegisterType(typeName, constructors...); err != nil {
		panic(err)
	}
}

// Instantiate resolves and invokes a constructor for the named type:
//
//  1. The last successfully used constructor is attempted first; any failure
//     falls through to full resolution.
//  2. Exact resolution: a constructor whose parameter types equal the runtime
//     types of the arguments is cached and invoked.
//  3. Coercion scan: among constructors of matching arity, the first whose
//     parameters the arguments coerce to is cached and invoked.
//
// A constructor-returned error propagates wrapped in an InstantiationError
// with the type name and argument types preserved; a constructor panic
// (the unchecked case) propagates as-is.
func (c *Context) Instantiate(typeName string, args ...any) (any, error) {
	c.mu.RLock()
	ctors := c.constructors[typeName]
	c.mu.RUnlock()

	argTypes := typeNames(args)

	if len(ctors) == 0 {
		c.recordOutcome(typeName, "failed")
		return nil, &errors.InstantiationError{TypeName: typeName, ArgTypes: argTypes, Err: errors.ErrUnknownType}
	}

	// Speculative cache hit; a losing attempt only costs a full resolution.
	if cached, ok := c.lastUsed.Get(typeName); ok {
		if instance, err := c.attempt(cached, args); err == nil {
			c.recordOutcome(typeName, "cached")
			return instance, nil
		}
	}

	// Exact resolution against the runtime types of the arguments.
	for _, ctor := range ctors {
		if !exactMatch(funcParams(ctor.Type()), args) {
			continue
		}
		_, _ = c.lastUsed.Set(typeName, ctor)
		instance, err := callConstructor(ctor, args)
		if err != nil {
			c.recordOutcome(typeName, "failed")
			return nil, &errors.InstantiationError{TypeName: typeName, ArgTypes: argTypes, Err: err}
		}
		c.recordOutcome(typeName, "exact")
		return instance, nil
	}

	// Coercion scan over arity-matching constructors.
	var lastErr error = errors.ErrNoConstructor
	for _, ctor := range ctors {
		params := funcParams(ctor.Type())
		if len(params) != len(args) {
			continue
		}
		coerced, err := convert.ToTypes(args, params)
		if err != nil {
			// Maybe another one fits.
			lastErr = err
			continue
		}
		_, _ = c.lastUsed.Set(typeName, ctor)
		instance, err := callConstructor(ctor, coerced)
		if err != nil {
			c.recordOutcome(typeName, "failed")
			return nil, &errors.InstantiationError{TypeName: typeName, ArgTypes: argTypes, Err: err}
		}
		c.recordOutcome(typeName, "coerced")
		return instance, nil
	}

	c.recordOutcome(typeName, "failed")
	return nil, &errors.InstantiationError{TypeName: typeName, ArgTypes: argTypes, Err: lastErr}
}

// attempt invokes a cached constructor with coerced arguments.
func (c *Context) attempt(ctor reflect.Value, args []any) (any, error) {
	coerced, err := convert.ToTypes(args, funcParams(ctor.Type()))
	if err != nil {
		return nil, err
	}
	return callConstructor(ctor, coerced)
}

func (c *Context) recordOutcome(typeName, outcome string) {
	if c.metrics != nil {
		c.metrics.Instantiations.WithLabelValues(typeName, outcome).Inc()
	}
}

// callConstructor invokes a constructor function. A non-nil trailing error
// return is handed back to the caller; panics are not recovered.
func callConstructor(ctor reflect.Value, args []any) (any, error) {
	t := ctor.Type()
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(t.In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}

	out := ctor.Call(in)
	if t.NumOut() == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// exactMatch reports whether the runtime types of args equal params exactly.
func exactMatch(params []reflect.Type, args []any) bool {
	if len(params) != len(args) {
		return false
	}
	for i, arg := range args {
		if arg == nil {
			return false
		}
		if reflect.TypeOf(arg) != params[i] {
			return false
		}
	}
	return true
}

// funcParams returns the parameter types of a plain function type.
func funcParams(t reflect.Type) []reflect.Type {
	params := make([]reflect.Type, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		params[i] = t.In(i)
	}
	return params
}

// typeNames renders the runtime type of each argument for error reporting.
func typeNames(args []any) []string {
	names := make([]string, len(args))
	for i, arg := range args {
		if arg == nil {
			names[i] = "nil"
			continue
		}
		names[i] = reflect.TypeOf(arg).String()
	}
	return names
}
