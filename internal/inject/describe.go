// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sort"
)

var errorType = reflect.TypeFor[error]()

// Param configures one constructor or injection-method parameter.
type Param struct {
	qualifier string
}

// Qualified marks a parameter as resolved under the given qualifier.
func Qualified(q string) Param {
	return Param{qualifier: q}
}

// Plain marks a parameter as unqualified. It is only needed to skip a
// position when a later parameter is qualified.
func Plain() Param {
	return Param{}
}

// Member is part of a type description: a constructor or a setter declaration.
type Member interface {
	apply(info *typeInfo) error
}

// Constructor declares a constructor function for a described type.
// Use Ctor to create one.
type Constructor struct {
	fn     any
	params []Param
}

// Ctor declares fn as a constructor. fn must be a non-variadic function
// returning the described type (or a type assignable to it), optionally
// followed by an error. params qualify fn's parameters by position; missing
// trailing entries are unqualified.
//
//	inject.Ctor(NewItemItemScorer, inject.Plain(), inject.Qualified("NeighborhoodSize"))
func Ctor(fn any, params ...Param) Constructor {
	return Constructor{fn: fn, params: params}
}

func (c Constructor) apply(info *typeInfo) error {
	ctor, err := compileConstructor(info.typ, c.fn, c.params)
	if err != nil {
		return err
	}
	info.ctors = append(info.ctors, ctor)
	return nil
}

// SetterDecl qualifies the parameter of an injection method.
type SetterDecl struct {
	method string
	param  Param
}

// Setter declares the qualifier used for the single parameter of the named
// injection method. Injection methods without a declaration resolve their
// parameter unqualified.
func Setter(method string, p Param) SetterDecl {
	return SetterDecl{method: method, param: p}
}

func (s SetterDecl) apply(info *typeInfo) error {
	if s.method == "" {
		return errors.New("setter declaration without method name")
	}
	if info.setterQualifiers == nil {
		info.setterQualifiers = make(map[string]string)
	}
	info.setterQualifiers[s.method] = s.param.qualifier
	return nil
}

// typeInfo is the registered description of an implementation type.
type typeInfo struct {
	typ              reflect.Type
	ctors            []*constructor
	setterQualifiers map[string]string
}

// constructor is a compiled constructor: its parameter keys and a call func.
type constructor struct {
	name   string
	params []Key
	call   func(args []reflect.Value) (reflect.Value, error)
}

// compileConstructor validates fn against t and prepares its parameter keys.
func compileConstructor(t reflect.Type, fn any, params []Param) (*constructor, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("constructor for %s is not a function", t)
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("constructor %s for %s is variadic", ft, t)
	}
	if ft.NumOut() == 0 || ft.NumOut() > 2 {
		return nil, fmt.Errorf("constructor %s for %s must return (T) or (T, error)", ft, t)
	}
	if !ft.Out(0).AssignableTo(t) {
		return nil, fmt.Errorf("constructor %s returns %s, not assignable to %s", ft, ft.Out(0), t)
	}
	withErr := ft.NumOut() == 2
	if withErr && ft.Out(1) != errorType {
		return nil, fmt.Errorf("constructor %s for %s: second result must be error", ft, t)
	}
	if len(params) > ft.NumIn() {
		return nil, fmt.Errorf("constructor %s for %s: %d params declared for %d inputs", ft, t, len(params), ft.NumIn())
	}

	keys := make([]Key, ft.NumIn())
	for i := range keys {
		keys[i] = Key{Type: ft.In(i)}
		if i < len(params) {
			keys[i].Qualifier = params[i].qualifier
		}
	}

	name := ft.String()
	if f := runtime.FuncForPC(fv.Pointer()); f != nil {
		name = f.Name()
	}

	return &constructor{
		name:   name,
		params: keys,
		call: func(args []reflect.Value) (reflect.Value, error) {
			out := fv.Call(args)
			if withErr && !out[1].IsNil() {
				return reflect.Value{}, out[1].Interface().(error)
			}
			return out[0], nil
		},
	}, nil
}

// zeroConstructor returns the implicit no-argument constructor for struct
// and pointer-to-struct types, or nil for any other type.
func zeroConstructor(t reflect.Type) *constructor {
	if !jitCandidate(t) {
		return nil
	}
	return &constructor{
		name: "new(" + t.String() + ")",
		call: func([]reflect.Value) (reflect.Value, error) {
			if t.Kind() == reflect.Pointer {
				return reflect.New(t.Elem()), nil
			}
			return reflect.New(t).Elem(), nil
		},
	}
}

// invoke calls the constructor with the resolved arguments, converting
// panics and nil results into errors.
func (c *constructor) invoke(args []Arg) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("panic in %s: %v", c.name, r)
		}
	}()

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = reflect.ValueOf(a.Value)
	}

	out, err := c.call(in)
	if err != nil {
		return nil, err
	}
	if isNil(out) {
		return nil, fmt.Errorf("%s returned nil", c.name)
	}
	return out.Interface(), nil
}

// sortConstructors orders constructors by parameter count, most specific
// first; constructors with the same count keep their declaration order.
func sortConstructors(ctors []*constructor) {
	sort.SliceStable(ctors, func(i, j int) bool {
		return len(ctors[i].params) > len(ctors[j].params)
	})
}

// isNil reports whether v is invalid or a nil pointer, interface, map, slice, func or chan.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
