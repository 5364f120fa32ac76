// Package observable provides the change-notification primitives the
// form engine is built on: a path-observable document store and a
// typed observable value cell. Mutations notify synchronously on the
// mutating goroutine, after the store's lock is released, so callbacks
// may freely read back into the store.
package observable

import (
	"sort"
	"strconv"
	"sync"

	"github.com/goliatone/go-formstate/pkg/fieldpath"
)

// Change describes one mutated location in a Store.
type Change struct {
	Path  fieldpath.Path
	Value any
}

// Observer receives granular change notifications scoped by a path
// pattern.
type Observer func(Change)

// Store is a mutex-guarded JSON-shaped document with two notification
// channels: path-scoped observers receive a Change per mutated
// location, and subscribers receive exactly one callback per mutating
// call regardless of how many locations it touched.
type Store struct {
	mu              sync.RWMutex
	data            map[string]any
	observers       map[int]pathObserver
	observerOrder   []int
	subscribers     map[int]func()
	subscriberOrder []int
	nextID          int
}

type pathObserver struct {
	pattern fieldpath.Path
	fn      Observer
}

// NewStore builds a Store seeded with a deep copy of seed. A nil seed
// yields an empty document.
func NewStore(seed map[string]any) *Store {
	data := map[string]any{}
	if seed != nil {
		data = fieldpath.DeepCopy(seed).(map[string]any)
	}
	return &Store{
		data:        data,
		observers:   map[int]pathObserver{},
		subscribers: map[int]func(){},
	}
}

// Get returns the value at p. The reference is live; copy with
// fieldpath.DeepCopy before mutating.
func (s *Store) Get(p fieldpath.Path) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fieldpath.Get(s.data, p)
}

// Exists reports whether p resolves in the document.
func (s *Store) Exists(p fieldpath.Path) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fieldpath.Exists(s.data, p)
}

// Snapshot returns a deep copy of the whole document.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fieldpath.DeepCopy(s.data).(map[string]any)
}

// Set writes value at p, vivifying intermediate containers, then
// notifies.
func (s *Store) Set(p fieldpath.Path, value any) {
	if p.IsEmpty() {
		return
	}
	s.mu.Lock()
	fieldpath.Set(s.data, p, value)
	s.mu.Unlock()
	s.notify([]Change{{Path: p, Value: value}})
}

// Delete removes the value at p, then notifies with a nil value.
func (s *Store) Delete(p fieldpath.Path) {
	if p.IsEmpty() {
		return
	}
	s.mu.Lock()
	fieldpath.Delete(s.data, p)
	s.mu.Unlock()
	s.notify([]Change{{Path: p, Value: nil}})
}

// Merge deep-merges src into the document, src winning on conflicts,
// and notifies once per leaf that src contributed.
func (s *Store) Merge(src map[string]any) {
	if len(src) == 0 {
		return
	}
	s.mu.Lock()
	s.data = fieldpath.Merge(s.data, src)
	s.mu.Unlock()
	s.notify(collectLeaves(fieldpath.Path{}, src))
}

// Replace swaps the whole document for a deep copy of next and
// notifies once per top-level key of the new document.
func (s *Store) Replace(next map[string]any) {
	copied := map[string]any{}
	if next != nil {
		copied = fieldpath.DeepCopy(next).(map[string]any)
	}
	s.mu.Lock()
	s.data = copied
	s.mu.Unlock()

	keys := make([]string, 0, len(copied))
	for k := range copied {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	changes := make([]Change, 0, len(keys))
	for _, k := range keys {
		changes = append(changes, Change{Path: fieldpath.New(k), Value: copied[k]})
	}
	s.notify(changes)
}

// Observe registers a path-scoped observer. The pattern scopes
// delivery to changes whose path overlaps it; an empty pattern
// receives everything. Returns a registration id for Unobserve.
func (s *Store) Observe(pattern fieldpath.Path, fn Observer) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.observers[id] = pathObserver{pattern: pattern, fn: fn}
	s.observerOrder = append(s.observerOrder, id)
	return id
}

// Unobserve removes a path-scoped observer.
func (s *Store) Unobserve(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
	s.observerOrder = removeID(s.observerOrder, id)
}

// Subscribe registers a per-mutation callback and returns its id.
func (s *Store) Subscribe(fn func()) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subscribers[id] = fn
	s.subscriberOrder = append(s.subscriberOrder, id)
	return id
}

// Unsubscribe removes a per-mutation callback.
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, id)
	s.subscriberOrder = removeID(s.subscriberOrder, id)
}

// removeID splices id out of order so removal churn cannot grow the
// delivery slices without bound.
func removeID(order []int, id int) []int {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func (s *Store) notify(changes []Change) {
	s.mu.RLock()
	observers := make([]pathObserver, 0, len(s.observers))
	for _, id := range s.observerOrder {
		if ob, ok := s.observers[id]; ok {
			observers = append(observers, ob)
		}
	}
	subscribers := make([]func(), 0, len(s.subscribers))
	for _, id := range s.subscriberOrder {
		if fn, ok := s.subscribers[id]; ok {
			subscribers = append(subscribers, fn)
		}
	}
	s.mu.RUnlock()

	for _, change := range changes {
		for _, ob := range observers {
			if ob.pattern.IsEmpty() || ob.pattern.Overlaps(change.Path) {
				ob.fn(change)
			}
		}
	}
	if len(changes) > 0 {
		for _, fn := range subscribers {
			fn()
		}
	}
}

// collectLeaves flattens a value tree into one Change per leaf, with
// map keys visited in sorted order for deterministic delivery.
func collectLeaves(prefix fieldpath.Path, v any) []Change {
	switch c := v.(type) {
	case map[string]any:
		if len(c) == 0 {
			return []Change{{Path: prefix, Value: v}}
		}
		keys := make([]string, 0, len(c))
		for k := range c {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []Change
		for _, k := range keys {
			out = append(out, collectLeaves(prefix.Append(k), c[k])...)
		}
		return out
	case []any:
		if len(c) == 0 {
			return []Change{{Path: prefix, Value: v}}
		}
		var out []Change
		for i, e := range c {
			out = append(out, collectLeaves(prefix.Append(strconv.Itoa(i)), e)...)
		}
		return out
	default:
		return []Change{{Path: prefix, Value: v}}
	}
}
