// Package observable provides a minimal notify-on-change value holder.
package observable

import "sync"

type Value[T any] struct {
	mu    sync.Mutex
	value T

	nextId      uint64
	subscribers map[uint64]func(T)
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		value:       initial,
		subscribers: map[uint64]func(T){},
	}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}

// Set stores the value and notifies every subscriber synchronously.
// Subscribers must not call back into the same Value.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	notify := make([]func(T), 0, len(v.subscribers))
	for _, fn := range v.subscribers {
		notify = append(notify, fn)
	}
	v.mu.Unlock()

	for _, fn := range notify {
		fn(value)
	}
}

// Subscribe registers fn to run on every Set. The returned function
// removes the subscription.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextId
	v.nextId++
	v.subscribers[id] = fn

	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.subscribers, id)
	}
}
