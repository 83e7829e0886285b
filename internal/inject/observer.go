// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

// Arg is one injected argument: the key it was resolved under and its value.
type Arg struct {
	Key   Key
	Value any
}

// Event describes one instantiation or injection-method invocation.
type Event struct {
	// Key is the key of the adapter that produced Instance.
	Key Key

	// Instance is the constructed (or injected) component.
	Instance any

	// Method is the injection method name, empty for constructors and builders.
	Method string

	// Args are the arguments passed to the constructor, builder or method.
	Args []Arg
}

// Observer is notified of every instantiation and injection-method call made
// by the container. Observers may be called concurrently.
type Observer interface {
	// Instantiated is called after a successful construction or invocation.
	Instantiated(ev Event)

	// Failed is called before an instantiation or invocation failure is returned.
	Failed(key Key, err error)
}
