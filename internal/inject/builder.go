// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"fmt"
	"reflect"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/recwire/internal/metrics"
)

// buildMethod is the method a builder type must provide.
const buildMethod = "Build"

// Builder is a two-phase factory: the builder is constructed by the
// container, then Build is called once to produce the component.
type Builder[T any] interface {
	Build() (T, error)
}

// builderAdapter resolves a builder through the container, invokes its Build
// method once and memoizes the product.
type builderAdapter struct {
	c          *Container
	key        Key
	builderKey Key
	withErr    bool
	inst       slot

	// flight collapses concurrent first builds into one Build call.
	flight singleflight.Group
}

// newBuilderAdapter validates that builder has a Build method returning a
// value assignable to key's type, optionally followed by an error.
//
//nolint:gocritic // Key is a small value type
func newBuilderAdapter(c *Container, key Key, builder reflect.Type) (*builderAdapter, error) {
	m, ok := builder.MethodByName(buildMethod)
	if !ok {
		return nil, fmt.Errorf("%s has no %s method", builder, buildMethod)
	}
	mt := m.Type
	if mt.NumIn() != 1 || mt.IsVariadic() {
		return nil, fmt.Errorf("%s.%s must take no arguments", builder, buildMethod)
	}
	if mt.NumOut() == 0 || mt.NumOut() > 2 {
		return nil, fmt.Errorf("%s.%s must return (T) or (T, error)", builder, buildMethod)
	}
	if !mt.Out(0).AssignableTo(key.Type) {
		return nil, fmt.Errorf("%s.%s returns %s, not assignable to %s", builder, buildMethod, mt.Out(0), key.Type)
	}
	withErr := mt.NumOut() == 2
	if withErr && mt.Out(1) != errorType {
		return nil, fmt.Errorf("%s.%s: second result must be error", builder, buildMethod)
	}
	return &builderAdapter{c: c, key: key, builderKey: KeyFor(builder), withErr: withErr}, nil
}

func (a *builderAdapter) Key() Key { return a.key }

// Instance implements Adapter. The product key is pushed before the builder
// is resolved, so a builder that needs its own product fails fast. Build runs
// at most once per successful product; concurrent callers share its result.
func (a *builderAdapter) Instance(s *Stack) (any, error) {
	if v, ok := a.inst.load(); ok {
		return v, nil
	}

	release, err := s.enter(a.key)
	if err != nil {
		a.c.cycleDetected(s, err)
		return nil, err
	}
	defer release()

	arg, err := a.c.resolveDependency(s, a.builderKey)
	if err != nil {
		return nil, err
	}

	v, err, _ := a.flight.Do(buildMethod, func() (any, error) {
		if v, ok := a.inst.load(); ok {
			return v, nil
		}
		return a.buildAndPublish(arg)
	})
	return v, err
}

// buildAndPublish calls Build, notifies observers and publishes the product.
func (a *builderAdapter) buildAndPublish(arg Arg) (any, error) {
	product, err := a.build(arg.Value)
	if err != nil {
		ierr := &InstantiationError{Key: a.key, Method: buildMethod, Cause: err}
		metrics.RecordConstruction("builder", ierr)
		a.c.notifyFailed(a.key, ierr)
		return nil, ierr
	}

	metrics.RecordConstruction("builder", nil)
	a.c.logger.Debug().
		Stringer("key", a.key).
		Stringer("builder", a.builderKey).
		Msg("component built")
	a.c.notifyInstantiated(Event{Key: a.key, Instance: product, Args: []Arg{arg}})
	return a.inst.publish(product), nil
}

// build calls Build on the resolved builder.
func (a *builderAdapter) build(builder any) (product any, err error) {
	defer func() {
		if r := recover(); r != nil {
			product = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	out := reflect.ValueOf(builder).MethodByName(buildMethod).Call(nil)
	if a.withErr && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	if isNil(out[0]) {
		return nil, fmt.Errorf("%s returned nil", buildMethod)
	}
	return out[0].Interface(), nil
}
