// Package state is a small reducer-driven state container. Each store holds
// one slice of application state; the only way to change it is to dispatch an
// action through the store's reducer.
package state

import "sync"

// Action is a typed state transition. Payload carries the data for fulfilled
// actions and Err the failure for rejected ones.
type Action struct {
	Type    string
	Payload any
	Err     error
}

// Reducer computes the next state. It must not mutate prev.
type Reducer[S any] func(prev S, a Action) S

type Store[S any] struct {
	mu        sync.RWMutex
	state     S
	reduce    Reducer[S]
	listeners map[int]func(S)
	nextID    int
}

func NewStore[S any](initial S, reduce Reducer[S]) *Store[S] {
	return &Store[S]{
		state:     initial,
		reduce:    reduce,
		listeners: make(map[int]func(S)),
	}
}

// Dispatch applies a and notifies subscribers with the new state.
func (s *Store[S]) Dispatch(a Action) S {
	s.mu.Lock()
	s.state = s.reduce(s.state, a)
	next := s.state
	listeners := make([]func(S), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers fn for every dispatched state and returns a function
// that removes it.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Pending, Fulfilled and Rejected build the three action types of an async
// operation named op.
func Pending(op string) Action {
	return Action{Type: op + "/pending"}
}

func Fulfilled(op string, payload any) Action {
	return Action{Type: op + "/fulfilled", Payload: payload}
}

func Rejected(op string, err error) Action {
	return Action{Type: op + "/rejected", Err: err}
}

// Without returns a copy of items minus those matching drop.
func Without[T any](items []T, drop func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

// Replace returns a copy of items with the first match swapped for v.
func Replace[T any](items []T, match func(T) bool, v T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if match(out[i]) {
			out[i] = v
			break
		}
	}
	return out
}

// Append returns a fresh slice of items followed by v.
func Append[T any](items []T, v ...T) []T {
	out := make([]T, 0, len(items)+len(v))
	out = append(out, items...)
	return append(out, v...)
}
