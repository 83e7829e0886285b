// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/tomtom215/recwire/internal/metrics"
)

// injectMethods calls every injection method of instance in method order.
// An injection method is exported, has exactly one parameter, returns
// nothing and its name starts with the configured prefix. Methods already
// applied are not rolled back when a later one fails.
//
//nolint:gocritic // Key is a small value type
func (c *Container) injectMethods(s *Stack, key Key, instance any) error {
	v := reflect.ValueOf(instance)
	t := v.Type()
	quals := c.setterQualifiers(t)

	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !c.isInjectionMethod(m) {
			continue
		}

		pkey := Key{Type: m.Type.In(1), Qualifier: quals[m.Name]}
		arg, err := c.resolveDependency(s, pkey)
		if err != nil {
			return err
		}

		if err := callMethod(v.Method(i), arg); err != nil {
			ierr := &InstantiationError{Key: key, Method: m.Name, Cause: err}
			metrics.RecordConstruction("setter", ierr)
			c.notifyFailed(key, ierr)
			return ierr
		}

		metrics.RecordConstruction("setter", nil)
		c.notifyInstantiated(Event{Key: key, Instance: instance, Method: m.Name, Args: []Arg{arg}})
	}
	return nil
}

// isInjectionMethod reports whether m follows the injection-method convention.
// m comes from reflect.Type.Method, so its type includes the receiver.
func (c *Container) isInjectionMethod(m reflect.Method) bool {
	if !m.IsExported() || !strings.HasPrefix(m.Name, c.config.SetterPrefix) {
		return false
	}
	mt := m.Type
	return mt.NumIn() == 2 && mt.NumOut() == 0 && !mt.IsVariadic()
}

// callMethod invokes a bound one-argument method, recovering panics.
//
//nolint:gocritic // Arg is a small value type
func callMethod(method reflect.Value, arg Arg) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	method.Call([]reflect.Value{reflect.ValueOf(arg.Value)})
	return nil
}
