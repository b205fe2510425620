// Package observable provides a mutex-guarded state cell whose updates are
// atomic from the point of view of readers and subscribers.
package observable

import "sync"

// Value holds a T. Readers get a copy; T should not contain maps or other
// shared references that callers mutate in place.
type Value[T any] struct {
	mu   sync.RWMutex
	v    T
	subs map[int]func(T)
	next int
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{v: initial, subs: make(map[int]func(T))}
}

func (o *Value[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.v
}

// Update applies fn to the current value under the write lock and publishes
// the result. fn must not block or call back into o.
func (o *Value[T]) Update(fn func(T) T) T {
	o.mu.Lock()
	o.v = fn(o.v)
	v := o.v
	subs := make([]func(T), 0, len(o.subs))
	for _, s := range o.subs {
		subs = append(subs, s)
	}
	o.mu.Unlock()

	for _, s := range subs {
		s(v)
	}
	return v
}

func (o *Value[T]) Set(v T) {
	o.Update(func(T) T { return v })
}

// Subscribe registers fn to receive every published value. The returned
// function unsubscribes.
func (o *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	o.mu.Lock()
	id := o.next
	o.next++
	o.subs[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}
