// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"fmt"
	"reflect"
)

// BindTo binds I, optionally qualified, to the implementation type T.
//
//	inject.BindTo[recommend.ItemScorer, *recommend.ItemItemScorer](c)
func BindTo[I, T any](c *Container, qualifier ...string) error {
	return c.BindType(keyWith[I](qualifier), reflect.TypeFor[T]())
}

// BindValue binds T, optionally qualified, to v.
func BindValue[T any](c *Container, v T, qualifier ...string) error {
	return c.BindInstance(keyWith[T](qualifier), v)
}

// BindBuilderFor binds T, optionally qualified, to the product of builder B.
func BindBuilderFor[T any, B Builder[T]](c *Container, qualifier ...string) error {
	return c.BindBuilder(keyWith[T](qualifier), reflect.TypeFor[B]())
}

// Get resolves the unqualified component of type T. Unlike Resolve, a missing
// component is an *UnsatisfiedDependencyError.
func Get[T any](c *Container) (T, error) {
	return get[T](c, KeyOf[T]())
}

// GetQualified resolves the component of type T qualified by q.
func GetQualified[T any](c *Container, q string) (T, error) {
	return get[T](c, QualifiedKeyOf[T](q))
}

// Must is Get that panics on failure. Intended for wiring code and tests.
func Must[T any](c *Container) T {
	v, err := Get[T](c)
	if err != nil {
		panic(err)
	}
	return v
}

//nolint:gocritic // Key is a small value type
func get[T any](c *Container, key Key) (T, error) {
	var zero T
	v, err := c.Resolve(key)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, &UnsatisfiedDependencyError{Key: key}
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("inject: %s resolved to %T", key, v)
	}
	return t, nil
}

func keyWith[T any](qualifier []string) Key {
	key := KeyOf[T]()
	if len(qualifier) > 0 {
		key.Qualifier = qualifier[0]
	}
	return key
}
