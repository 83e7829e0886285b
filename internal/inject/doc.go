// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

/*
Package inject provides the runtime component resolver used to wire
recommender components together.

A Container maps binding keys (a type plus an optional qualifier) to
adapters that produce and cache components:

  - direct-instance adapters return a pre-built value (BindInstance)
  - constructor-injecting adapters call the most specific constructor whose
    parameters can all be resolved, then run injection methods (BindType)
  - builder adapters resolve a builder and call its Build method once
    (BindBuilder)

Concrete types that were never registered are bound just-in-time: any struct
or pointer-to-struct type can be resolved, using the constructors declared
with Describe or its zero value. Interfaces, basic kinds and other abstract
types are never bound just-in-time; resolving them without a binding yields
nil.

# Constructors

Go has no constructor metadata, so constructors are declared explicitly:

	c.Describe(reflect.TypeFor[*ItemItemScorer](),
	    inject.Ctor(NewItemItemScorer, inject.Plain(), inject.Qualified("NeighborhoodSize")),
	    inject.Ctor(NewDefaultItemItemScorer),
	)

Constructors are tried with the most parameters first. A constructor whose
parameters cannot be resolved is skipped; parameters fall back to the
defaults registered with Container.Default. Cycles and instantiation
failures abort the resolution. The first constructor that succeeds is
memoized for the key.

Injection methods are exported methods with one parameter and no results
whose name starts with Config.SetterPrefix ("Inject" by default). They run
in method order after construction.

# Cycles

Each call to Container.Resolve threads a Stack of keys in progress through
every adapter. Re-entering a key fails with a *CycleError carrying the path.

# Monitoring

Observers receive an Event for every construction and injection-method
call. Monitor is an Observer that records which keys transitively depend on
a watched type, which lets callers decide which components can be shared
across data sets:

	mon := inject.NewMonitorFor[recommend.DataSource]()
	c.Observe(mon)

# Concurrency

Container is safe for concurrent use. Just-in-time adapters are created
with an atomic load-or-store, so a key maps to exactly one adapter. Two
goroutines resolving the same uncached key may both run its constructor;
the first published instance wins and both receive it.
*/
package inject
