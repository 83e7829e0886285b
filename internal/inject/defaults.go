// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"fmt"
	"math"
	"reflect"
)

// Default supplies a value for a key that cannot otherwise be resolved.
// Defaults are registered next to bindings with Container.Default and are
// consulted only when a constructor or injection-method parameter fails to
// resolve.
type Default interface {
	// prepare validates the default against key and returns the bound form.
	prepare(key Key) (Default, error)

	// resolve produces the default argument.
	resolve(c *Container, s *Stack, key Key) (Arg, error)
}

// DefaultValue returns a literal default. v must be a bool, integer, float or
// string convertible to the key's type.
//
//	c.Default(inject.QualifiedKeyOf[int]("NeighborhoodSize"), inject.DefaultValue(20))
func DefaultValue(v any) Default {
	return literalDefault{value: v}
}

// DefaultType returns a default that resolves t (unqualified) instead of the
// requested key. t must be assignable to the key's type.
func DefaultType(t reflect.Type) Default {
	return typeDefault{typ: t}
}

// DefaultTypeOf is DefaultType for T.
func DefaultTypeOf[T any]() Default {
	return typeDefault{typ: reflect.TypeFor[T]()}
}

type literalDefault struct {
	value     any
	converted reflect.Value
}

//nolint:gocritic // Key is a small value type
func (d literalDefault) prepare(key Key) (Default, error) {
	v := reflect.ValueOf(d.value)
	if !v.IsValid() {
		return nil, fmt.Errorf("nil default literal")
	}
	if !isLiteralKind(v.Kind()) {
		return nil, fmt.Errorf("default literal of type %s is not a bool, number or string", v.Type())
	}
	if !literalCompatible(v.Type(), key.Type) {
		return nil, fmt.Errorf("default literal %v cannot be used for %s", d.value, key.Type)
	}
	if !fitsInteger(v, key.Type) {
		return nil, fmt.Errorf("default literal %v does not fit %s", d.value, key.Type)
	}
	return literalDefault{value: d.value, converted: v.Convert(key.Type)}, nil
}

//nolint:gocritic // Key is a small value type
func (d literalDefault) resolve(_ *Container, _ *Stack, key Key) (Arg, error) {
	return Arg{Key: key, Value: d.converted.Interface()}, nil
}

type typeDefault struct {
	typ reflect.Type
}

//nolint:gocritic // Key is a small value type
func (d typeDefault) prepare(key Key) (Default, error) {
	if d.typ == nil {
		return nil, fmt.Errorf("nil default type")
	}
	if !d.typ.AssignableTo(key.Type) {
		return nil, fmt.Errorf("default type %s is not assignable to %s", d.typ, key.Type)
	}
	if d.typ == key.Type && !key.IsQualified() {
		return nil, fmt.Errorf("default type %s refers to its own key", d.typ)
	}
	return d, nil
}

//nolint:gocritic // Key is a small value type
func (d typeDefault) resolve(c *Container, s *Stack, _ Key) (Arg, error) {
	fallback := KeyFor(d.typ)
	v, err := c.resolve(s, fallback)
	if err != nil {
		return Arg{}, err
	}
	if v == nil {
		return Arg{}, &UnsatisfiedDependencyError{Key: fallback}
	}
	return Arg{Key: fallback, Value: v}, nil
}

// isLiteralKind reports whether k is a bool, numeric or string kind.
func isLiteralKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// literalCompatible reports whether a literal of type from may be converted
// to to: assignable types, or the same family of bool, numeric or string kinds.
func literalCompatible(from, to reflect.Type) bool {
	if from.AssignableTo(to) {
		return true
	}
	return literalFamily(from.Kind()) != "" && literalFamily(from.Kind()) == literalFamily(to.Kind())
}

// fitsInteger reports whether converting v to an integer type to keeps its
// value. Fractions, negative values for unsigned types and overflow do not
// fit. Non-integer targets always fit.
func fitsInteger(v reflect.Value, to reflect.Type) bool {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.CanUint() && v.Uint() > math.MaxInt64 {
			return false
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.Int() < 0 {
				return false
			}
		case reflect.Float32, reflect.Float64:
			if v.Float() < 0 {
				return false
			}
		}
	default:
		return true
	}
	if f := v.Kind(); f == reflect.Float32 || f == reflect.Float64 {
		x := v.Float()
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.Abs(x) >= 1<<63 {
			return false
		}
	}
	return v.Convert(to).Convert(v.Type()).Equal(v)
}

// literalFamily groups kinds that convert into each other without surprises.
func literalFamily(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "bool"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return ""
	}
}
