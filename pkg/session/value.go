// Package session holds the per-session context that sits around the catalog:
// the signed in identity, the theme, and the menu and image viewer states.
//
// Each piece of state is a Value that anyone can read and subscribe to, but
// only the holder of its Writer can change.
package session

import (
	"sync"
)

// Value is an observable piece of session state.
type Value[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

// Writer is the single handle allowed to change a Value.
type Writer[T any] struct {
	target *Value[T]
}

// NewValue creates a Value holding initial and the Writer that owns it.
func NewValue[T any](initial T) (*Value[T], *Writer[T]) {
	v := &Value[T]{value: initial}
	return v, &Writer[T]{target: v}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Subscribe registers fn to be called with every new value. The returned
// func removes the subscription.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscription[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			for i, s := range v.subs {
				if s.id == id {
					v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Set stores value and notifies subscribers outside the lock.
func (w *Writer[T]) Set(value T) {
	v := w.target
	v.mu.Lock()
	v.value = value
	subs := append([]subscription[T](nil), v.subs...)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(value)
	}
}

// Update applies fn to the current value and stores the result.
func (w *Writer[T]) Update(fn func(T) T) T {
	v := w.target
	v.mu.Lock()
	next := fn(v.value)
	v.value = next
	subs := append([]subscription[T](nil), v.subs...)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
	return next
}

// Value returns the Value this Writer owns.
func (w *Writer[T]) Value() *Value[T] {
	return w.target
}
