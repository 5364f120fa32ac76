package observable

import "sync"

// Value is a typed reactive cell. Set notifies observers only when the
// stored value actually changes, synchronously on the setting
// goroutine.
type Value[T comparable] struct {
	mu        sync.RWMutex
	current   T
	observers map[int]func(T)
	order     []int
	nextID    int
}

// NewValue builds a cell holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{
		current:   initial,
		observers: map[int]func(T){},
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set stores next and notifies observers in registration order. A
// write of the value already held is a no-op.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	if v.current == next {
		v.mu.Unlock()
		return
	}
	v.current = next
	observers := make([]func(T), 0, len(v.observers))
	for _, id := range v.order {
		if fn, ok := v.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	v.mu.Unlock()

	for _, fn := range observers {
		fn(next)
	}
}

// Observe registers fn and returns an id for Unobserve.
func (v *Value[T]) Observe(fn func(T)) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.nextID++
	id := v.nextID
	v.observers[id] = fn
	v.order = append(v.order, id)
	return id
}

// Unobserve removes a previously registered observer.
func (v *Value[T]) Unobserve(id int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.observers, id)
	v.order = removeID(v.order, id)
}
