// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recwire/internal/metrics"
)

// DefaultSetterPrefix is the name prefix of injection methods.
const DefaultSetterPrefix = "Inject"

// Config holds container options.
type Config struct {
	// SetterPrefix is the name prefix identifying injection methods.
	SetterPrefix string

	// DisableJIT turns off just-in-time binding of unregistered concrete types.
	DisableJIT bool
}

// DefaultConfig returns the default container configuration.
func DefaultConfig() Config {
	return Config{SetterPrefix: DefaultSetterPrefix}
}

// Container resolves components by key.
//
// Lookup order is: explicit binding, cached just-in-time adapter, new
// just-in-time adapter. Just-in-time adapters are only created for struct and
// pointer-to-struct types and are never evicted. Container is safe for
// concurrent use; registrations are expected to happen before resolution
// starts but are synchronized either way.
type Container struct {
	config Config
	logger zerolog.Logger

	mu        sync.RWMutex
	explicit  map[Key]Adapter
	defaults  map[Key]Default
	types     map[reflect.Type]*typeInfo
	observers []Observer

	// jit maps Key to *constructorAdapter.
	jit sync.Map
}

// New creates an empty container.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, logger zerolog.Logger) *Container {
	if cfg.SetterPrefix == "" {
		cfg.SetterPrefix = DefaultSetterPrefix
	}
	return &Container{
		config:   cfg,
		logger:   logger.With().Str("component", "inject").Logger(),
		explicit: make(map[Key]Adapter),
		defaults: make(map[Key]Default),
		types:    make(map[reflect.Type]*typeInfo),
	}
}

// Bind registers a custom adapter under its key.
func (c *Container) Bind(a Adapter) error {
	if a == nil {
		return &BindingError{Reason: "nil adapter"}
	}
	key := a.Key()
	if key.IsZero() {
		return &BindingError{Key: key, Reason: "adapter key has no type"}
	}
	return c.bind(a)
}

// BindInstance binds key to a pre-built value.
//
//nolint:gocritic // Key is a small value type
func (c *Container) BindInstance(key Key, v any) error {
	if key.IsZero() {
		return &BindingError{Key: key, Reason: "key has no type"}
	}
	if v == nil {
		return &BindingError{Key: key, Reason: "nil instance"}
	}
	if t := reflect.TypeOf(v); !t.AssignableTo(key.Type) {
		return &BindingError{Key: key, Reason: fmt.Sprintf("instance of %s is not assignable", t)}
	}
	return c.bind(&instanceAdapter{key: key, value: v})
}

// BindType binds key to the implementation type impl, built by constructor
// injection. impl must be a struct or pointer-to-struct type, or a type
// described before the binding.
//
//nolint:gocritic // Key is a small value type
func (c *Container) BindType(key Key, impl reflect.Type) error {
	if key.IsZero() || impl == nil {
		return &BindingError{Key: key, Reason: "missing type"}
	}
	if !impl.AssignableTo(key.Type) {
		return &BindingError{Key: key, Reason: fmt.Sprintf("%s is not assignable", impl)}
	}
	if !jitCandidate(impl) && !c.described(impl) {
		return &BindingError{Key: key, Reason: fmt.Sprintf("%s has no constructor", impl)}
	}
	return c.bind(newConstructorAdapter(c, key, impl))
}

// BindBuilder binds key to the product of builder. The builder itself is
// resolved through the container and its Build method is called once.
//
//nolint:gocritic // Key is a small value type
func (c *Container) BindBuilder(key Key, builder reflect.Type) error {
	if key.IsZero() || builder == nil {
		return &BindingError{Key: key, Reason: "missing type"}
	}
	a, err := newBuilderAdapter(c, key, builder)
	if err != nil {
		return &BindingError{Key: key, Reason: err.Error()}
	}
	return c.bind(a)
}

func (c *Container) bind(a Adapter) error {
	key := a.Key()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.explicit[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateBinding, key)
	}
	if _, ok := c.jit.Load(key); ok {
		return fmt.Errorf("%w: %s already bound just-in-time", ErrDuplicateBinding, key)
	}
	c.explicit[key] = a

	c.logger.Debug().
		Stringer("key", key).
		Str("adapter", fmt.Sprintf("%T", a)).
		Msg("binding registered")
	return nil
}

// Default registers the fallback used when a parameter with the given key
// cannot be resolved.
//
//nolint:gocritic // Key is a small value type
func (c *Container) Default(key Key, d Default) error {
	if key.IsZero() || d == nil {
		return &BindingError{Key: key, Reason: "missing default"}
	}
	prepared, err := d.prepare(key)
	if err != nil {
		return &BindingError{Key: key, Reason: err.Error()}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.defaults[key]; ok {
		return fmt.Errorf("%w: default for %s", ErrDuplicateBinding, key)
	}
	c.defaults[key] = prepared
	return nil
}

// Describe registers the constructors and injection-method qualifiers of t.
// A described type is built with its declared constructors only; undescribed
// struct types use their zero value.
func (c *Container) Describe(t reflect.Type, members ...Member) error {
	if t == nil {
		return &BindingError{Reason: "nil type"}
	}
	info := &typeInfo{typ: t}
	for _, m := range members {
		if err := m.apply(info); err != nil {
			return &BindingError{Key: KeyFor(t), Reason: err.Error()}
		}
	}
	sortConstructors(info.ctors)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.types[t]; ok {
		return fmt.Errorf("%w: description of %s", ErrDuplicateBinding, t)
	}
	c.types[t] = info
	return nil
}

// Observe adds an observer notified of every instantiation.
func (c *Container) Observe(o Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, o)
	c.mu.Unlock()
}

// Lookup returns the adapter for key, creating and caching a just-in-time
// adapter when key's type is concrete. It returns nil when key cannot be bound.
//
//nolint:gocritic // Key is a small value type
func (c *Container) Lookup(key Key) Adapter {
	c.mu.RLock()
	a, ok := c.explicit[key]
	c.mu.RUnlock()
	if ok {
		return a
	}

	if cached, ok := c.jit.Load(key); ok {
		return cached.(Adapter)
	}

	if c.config.DisableJIT || !jitCandidate(key.Type) {
		return nil
	}

	actual, loaded := c.jit.LoadOrStore(key, newConstructorAdapter(c, key, key.Type))
	if !loaded {
		metrics.RecordJITBinding()
		c.logger.Debug().Stringer("key", key).Msg("just-in-time binding created")
	}
	return actual.(Adapter)
}

// Resolve returns the component for key, or nil when nothing can be bound to
// it. Construction failures are returned as errors.
//
//nolint:gocritic // Key is a small value type
func (c *Container) Resolve(key Key) (any, error) {
	start := time.Now()
	s := NewStack()

	v, err := c.resolve(s, key)

	outcome := "resolved"
	switch {
	case err != nil:
		outcome = "error"
		c.logger.Debug().
			Str("resolution", s.ID()).
			Stringer("key", key).
			Err(err).
			Msg("resolution failed")
	case v == nil:
		outcome = "absent"
	}
	metrics.RecordResolution(outcome, time.Since(start))
	return v, err
}

// resolve resolves key within an active resolution.
//
//nolint:gocritic // Key is a small value type
func (c *Container) resolve(s *Stack, key Key) (any, error) {
	a := c.Lookup(key)
	if a == nil {
		return nil, nil
	}
	return a.Instance(s)
}

// resolveDependency resolves a required parameter, falling back to its
// registered default. Cycles and instantiation failures are returned as-is;
// any other failure is reported as an unsatisfied dependency.
//
//nolint:gocritic // Key is a small value type
func (c *Container) resolveDependency(s *Stack, key Key) (Arg, error) {
	v, err := c.resolve(s, key)
	if err != nil && fatal(err) {
		return Arg{}, err
	}
	if err == nil && v != nil {
		return Arg{Key: key, Value: v}, nil
	}

	c.mu.RLock()
	d, ok := c.defaults[key]
	c.mu.RUnlock()
	if ok {
		arg, derr := d.resolve(c, s, key)
		if derr == nil {
			return arg, nil
		}
		if fatal(derr) {
			return Arg{}, derr
		}
		err = errors.Join(err, derr)
	}

	return Arg{}, &UnsatisfiedDependencyError{Key: key, Cause: err}
}

// resolveArgs resolves constructor parameters in order, stopping at the first failure.
func (c *Container) resolveArgs(s *Stack, params []Key) ([]Arg, error) {
	args := make([]Arg, 0, len(params))
	for _, p := range params {
		arg, err := c.resolveDependency(s, p)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// Keys returns the explicit and just-in-time keys, sorted.
func (c *Container) Keys() []Key {
	c.mu.RLock()
	keys := make([]Key, 0, len(c.explicit))
	for k := range c.explicit {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	c.jit.Range(func(k, _ any) bool {
		keys = append(keys, k.(Key))
		return true
	})

	sortKeys(keys)
	return keys
}

// described reports whether t has a registered description.
func (c *Container) described(t reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.types[t]
	return ok
}

// constructorsFor returns the candidate constructors of t, most specific first.
func (c *Container) constructorsFor(t reflect.Type) []*constructor {
	c.mu.RLock()
	info, ok := c.types[t]
	c.mu.RUnlock()

	if ok && len(info.ctors) > 0 {
		out := make([]*constructor, len(info.ctors))
		copy(out, info.ctors)
		return out
	}
	if z := zeroConstructor(t); z != nil {
		return []*constructor{z}
	}
	return nil
}

// setterQualifiers returns the declared injection-method qualifiers of t.
func (c *Container) setterQualifiers(t reflect.Type) map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if info, ok := c.types[t]; ok {
		return info.setterQualifiers
	}
	return nil
}

// cycleDetected records a cycle reported by an adapter.
func (c *Container) cycleDetected(s *Stack, err error) {
	metrics.RecordCycle()
	c.logger.Debug().
		Str("resolution", s.ID()).
		Err(err).
		Msg("cyclic dependency detected")
}

//nolint:gocritic // Event is passed by value to observers
func (c *Container) notifyInstantiated(ev Event) {
	for _, o := range c.snapshotObservers() {
		o.Instantiated(ev)
	}
}

//nolint:gocritic // Key is a small value type
func (c *Container) notifyFailed(key Key, err error) {
	for _, o := range c.snapshotObservers() {
		o.Failed(key, err)
	}
}

func (c *Container) snapshotObservers() []Observer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.observers
}
