// Recwire - Recommender Toolkit Component Resolver
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recwire

package inject

import (
	"github.com/tomtom215/recwire/internal/logging"
)

// Stack records the keys being resolved by one top-level resolution.
//
// A Stack is created per Container.Resolve call and passed down through every
// adapter, so re-entering a key that is already in progress is detected
// deterministically regardless of which goroutine runs the resolution. A Stack
// must not be shared between goroutines.
type Stack struct {
	id   string
	keys []Key
}

// NewStack returns an empty stack with a fresh correlation id.
func NewStack() *Stack {
	return &Stack{id: logging.GenerateCorrelationID()}
}

// ID returns the correlation id used in resolution logs.
func (s *Stack) ID() string { return s.id }

// Depth returns the number of keys in progress.
func (s *Stack) Depth() int { return len(s.keys) }

// Contains reports whether key is currently being resolved.
//
//nolint:gocritic // Key is a small value type
func (s *Stack) Contains(key Key) bool {
	for _, k := range s.keys {
		if k == key {
			return true
		}
	}
	return false
}

// Path returns a copy of the keys in progress, outermost first.
func (s *Stack) Path() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}

// enter pushes key and returns the matching release function. It fails with a
// *CycleError when key is already in progress; in that case nothing is pushed.
//
//	release, err := s.enter(key)
//	if err != nil {
//	    return nil, err
//	}
//	defer release()
//
//nolint:gocritic // Key is a small value type
func (s *Stack) enter(key Key) (func(), error) {
	if s.Contains(key) {
		path := append(s.Path(), key)
		return nil, &CycleError{Key: key, Path: path}
	}
	s.keys = append(s.keys, key)
	depth := len(s.keys)
	return func() {
		s.keys = s.keys[:depth-1]
	}, nil
}
