// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"reflect"
	"sync/atomic"

	"github.com/tomtom215/recwire/internal/metrics"
)

// constructorAdapter builds its component by calling the most specific
// satisfiable constructor of impl and then running its injection methods.
type constructorAdapter struct {
	c    *Container
	key  Key
	impl reflect.Type

	// recipe is the constructor chosen by the first successful construction.
	recipe atomic.Pointer[constructor]
	inst   slot
}

func newConstructorAdapter(c *Container, key Key, impl reflect.Type) *constructorAdapter {
	return &constructorAdapter{c: c, key: key, impl: impl}
}

func (a *constructorAdapter) Key() Key { return a.key }

// Instance implements Adapter.
func (a *constructorAdapter) Instance(s *Stack) (any, error) {
	if v, ok := a.inst.load(); ok {
		return v, nil
	}

	release, err := s.enter(a.key)
	if err != nil {
		a.c.cycleDetected(s, err)
		return nil, err
	}
	defer release()

	v, err := a.construct(s)
	if err != nil {
		return nil, err
	}
	if err := a.c.injectMethods(s, a.key, v); err != nil {
		return nil, err
	}
	return a.inst.publish(v), nil
}

// construct resolves and calls a constructor. A memoized recipe is reused
// as-is; otherwise constructors are tried most-specific first until one has
// all of its parameters satisfied.
func (a *constructorAdapter) construct(s *Stack) (any, error) {
	if r := a.recipe.Load(); r != nil {
		args, err := a.c.resolveArgs(s, r.params)
		if err != nil {
			return nil, err
		}
		return a.instantiate(r, args)
	}

	ctors := a.c.constructorsFor(a.impl)
	var lastErr error
	for _, ctor := range ctors {
		if err := a.selfDependency(ctor); err != nil {
			lastErr = err
			continue
		}

		args, err := a.c.resolveArgs(s, ctor.params)
		if err != nil {
			if fatal(err) {
				return nil, err
			}
			lastErr = err
			a.c.logger.Debug().
				Str("resolution", s.ID()).
				Stringer("key", a.key).
				Str("constructor", ctor.name).
				Err(err).
				Msg("constructor rejected")
			continue
		}

		v, err := a.instantiate(ctor, args)
		if err != nil {
			return nil, err
		}
		a.recipe.CompareAndSwap(nil, ctor)
		return v, nil
	}

	return nil, &NoConstructorError{Type: a.impl, Cause: lastErr}
}

// selfDependency rejects constructors that would need the component itself:
// a parameter bound to the adapter's own key, or one the implementation
// type could satisfy.
func (a *constructorAdapter) selfDependency(ctor *constructor) error {
	for _, p := range ctor.params {
		if p == a.key || a.impl.AssignableTo(p.Type) {
			return &CycleError{Key: p, Path: []Key{a.key, p}}
		}
	}
	return nil
}

// instantiate calls ctor and notifies observers of the outcome.
func (a *constructorAdapter) instantiate(ctor *constructor, args []Arg) (any, error) {
	v, err := ctor.invoke(args)
	if err != nil {
		ierr := &InstantiationError{Key: a.key, Cause: err}
		metrics.RecordConstruction("constructor", ierr)
		a.c.notifyFailed(a.key, ierr)
		return nil, ierr
	}

	metrics.RecordConstruction("constructor", nil)
	a.c.logger.Debug().
		Stringer("key", a.key).
		Str("constructor", ctor.name).
		Int("args", len(args)).
		Msg("component constructed")
	a.c.notifyInstantiated(Event{Key: a.key, Instance: v, Args: args})
	return v, nil
}
