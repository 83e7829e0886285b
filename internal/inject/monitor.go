// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"reflect"
	"sort"
	"sync"

	"github.com/tomtom215/recwire/internal/metrics"
)

// Monitor discovers which keys transitively depend on a watched type.
//
// It is a passive Observer: it only learns about dependencies through values
// that were actually injected. A key becomes dependent when one of its
// arguments is an instance of the watched type, or was itself produced under
// a dependent key. The index is keyed by Key rather than by instance, so the
// monitor never retains components; it only grows.
type Monitor struct {
	watched reflect.Type

	mu         sync.Mutex
	dependents map[Key]struct{}
	failures   int
}

var _ Observer = (*Monitor)(nil)

// NewMonitor returns a monitor watching the given type. Interface types match
// every argument implementing them; other types match assignable values.
func NewMonitor(watched reflect.Type) *Monitor {
	return &Monitor{
		watched:    watched,
		dependents: make(map[Key]struct{}),
	}
}

// NewMonitorFor returns a monitor watching T.
func NewMonitorFor[T any]() *Monitor {
	return NewMonitor(reflect.TypeFor[T]())
}

// Watched returns the watched type.
func (m *Monitor) Watched() reflect.Type { return m.watched }

// Instantiated implements Observer.
//
//nolint:gocritic // hugeParam: Event is passed by value to keep observers side-effect free
func (m *Monitor) Instantiated(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.dependents[ev.Key]; ok {
		return
	}

	for _, arg := range ev.Args {
		if m.isWatched(arg.Value) {
			m.addLocked(ev.Key)
			return
		}
		if _, ok := m.dependents[arg.Key]; ok {
			m.addLocked(ev.Key)
			return
		}
	}
}

// Failed implements Observer. Failures never change the dependency index.
//
//nolint:gocritic // Key is a small value type
func (m *Monitor) Failed(_ Key, _ error) {
	m.mu.Lock()
	m.failures++
	m.mu.Unlock()
}

// DependsOn reports whether key is known to depend on the watched type.
//
//nolint:gocritic // Key is a small value type
func (m *Monitor) DependsOn(key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.dependents[key]
	return ok
}

// Dependents returns the dependent keys sorted by their string form.
func (m *Monitor) Dependents() []Key {
	m.mu.Lock()
	keys := make([]Key, 0, len(m.dependents))
	for k := range m.dependents {
		keys = append(keys, k)
	}
	m.mu.Unlock()

	sortKeys(keys)
	return keys
}

// Failures returns the number of observed failures.
func (m *Monitor) Failures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures
}

// addLocked records key as dependent. Must be called with mu held.
//
//nolint:gocritic // Key is a small value type
func (m *Monitor) addLocked(key Key) {
	m.dependents[key] = struct{}{}
	metrics.SetMonitorDependents(m.watched.String(), len(m.dependents))
}

// isWatched reports whether v is an instance of the watched type.
func (m *Monitor) isWatched(v any) bool {
	if v == nil || m.watched == nil {
		return false
	}
	t := reflect.TypeOf(v)
	if m.watched.Kind() == reflect.Interface {
		return t.Implements(m.watched)
	}
	return t.AssignableTo(m.watched)
}

// sortKeys orders keys by their string form.
func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
}
