// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"sync/atomic"
)

// Adapter produces and caches the component for one key.
//
// Instance is called with the stack of the resolution in progress. An adapter
// that resolves further keys must pass the same stack down and must guard its
// own key with it, so cycles are reported instead of recursing forever.
type Adapter interface {
	// Key returns the key the adapter is bound to.
	Key() Key

	// Instance returns the component, constructing it on first use.
	Instance(s *Stack) (any, error)
}

// slot holds an adapter's published instance. The first published value
// wins; later publishers receive the winner.
type slot struct {
	p atomic.Pointer[box]
}

type box struct {
	v any
}

// load returns the published instance, if any.
func (s *slot) load() (any, bool) {
	if b := s.p.Load(); b != nil {
		return b.v, true
	}
	return nil, false
}

// publish stores v unless another value was published first, and returns
// the instance every caller must use.
func (s *slot) publish(v any) any {
	if s.p.CompareAndSwap(nil, &box{v: v}) {
		return v
	}
	return s.p.Load().v
}

// instanceAdapter returns a pre-built component.
type instanceAdapter struct {
	key   Key
	value any
}

func (a *instanceAdapter) Key() Key { return a.key }

func (a *instanceAdapter) Instance(*Stack) (any, error) { return a.value, nil }
