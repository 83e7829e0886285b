// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"reflect"
)

// Key identifies a requested component: a type plus an optional qualifier.
//
// Keys are comparable and are used directly as map keys. Two keys are equal
// when both the type and the qualifier are equal, so *Gear and *Gear@left are
// distinct components.
type Key struct {
	// Type is the requested interface or implementation type.
	Type reflect.Type

	// Qualifier distinguishes several components of the same type.
	// Empty means unqualified.
	Qualifier string
}

// KeyOf returns the unqualified key for T.
func KeyOf[T any]() Key {
	return Key{Type: reflect.TypeFor[T]()}
}

// QualifiedKeyOf returns the key for T qualified by q.
func QualifiedKeyOf[T any](q string) Key {
	return Key{Type: reflect.TypeFor[T](), Qualifier: q}
}

// KeyFor returns the unqualified key for t.
func KeyFor(t reflect.Type) Key {
	return Key{Type: t}
}

// Qualified returns a copy of k with the qualifier replaced by q.
//
//nolint:gocritic // Key is a small value type
func (k Key) Qualified(q string) Key {
	return Key{Type: k.Type, Qualifier: q}
}

// Unqualified returns a copy of k without its qualifier.
//
//nolint:gocritic // Key is a small value type
func (k Key) Unqualified() Key {
	return Key{Type: k.Type}
}

// IsQualified reports whether k carries a qualifier.
//
//nolint:gocritic // Key is a small value type
func (k Key) IsQualified() bool {
	return k.Qualifier != ""
}

// IsZero reports whether k has no type.
//
//nolint:gocritic // Key is a small value type
func (k Key) IsZero() bool {
	return k.Type == nil
}

// String renders the key as "type" or "type@qualifier".
//
//nolint:gocritic // Key is a small value type
func (k Key) String() string {
	name := "<nil>"
	if k.Type != nil {
		name = k.Type.String()
	}
	if k.Qualifier == "" {
		return name
	}
	return name + "@" + k.Qualifier
}

// MarshalText implements encoding.TextMarshaler so keys render as strings in reports.
//
//nolint:gocritic // Key is a small value type
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// jitCandidate reports whether t may be bound just-in-time: only struct
// types and pointers to struct types can be built without a registration.
// Interfaces, basic kinds, funcs, channels, maps and slices are rejected.
func jitCandidate(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}
