// Package lifecycle implements the event bus a form publishes its
// lifecycle through. Handlers are grouped into owner-scoped sets so a
// unit of behaviour can be installed and torn down as one piece, and
// direct subscribers observe every event regardless of type.
package lifecycle

import (
	"io"
	"log/slog"
	"sync"
)

// DefaultOwner is the owner key used for handler sets installed
// without an explicit owner.
const DefaultOwner = "default"

// Event is one published lifecycle occurrence. A nil Payload is
// replaced with the bus context at publish time.
type Event struct {
	Type    string
	Payload any
}

// Handler consumes published events.
type Handler func(Event)

// HandlerSet groups handlers by the event type they respond to.
type HandlerSet map[string][]Handler

// Option configures a Bus.
type Option func(*Bus)

// WithContext sets the default payload attached to events published
// without one.
func WithContext(ctx any) Option {
	return func(b *Bus) {
		b.context = ctx
	}
}

// WithLogger sets the logger used for publish traces.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Bus routes events to owner-scoped handler sets and direct
// subscribers. Delivery is synchronous on the publishing goroutine:
// owner sets in owner-registration order first, then subscribers in
// subscription order. Handlers may publish further events or mutate
// registrations without deadlocking.
type Bus struct {
	mu         sync.RWMutex
	context    any
	logger     *slog.Logger
	owners     map[string]HandlerSet
	ownerOrder []string
	subs       map[int]Handler
	subOrder   []int
	nextID     int
}

// New builds an empty Bus.
func New(opts ...Option) *Bus {
	b := &Bus{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		owners: map[string]HandlerSet{},
		subs:   map[int]Handler{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetContext replaces the default payload context.
func (b *Bus) SetContext(ctx any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.context = ctx
}

// Publish delivers evt to every handler registered for its type, then
// to every subscriber.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	if evt.Payload == nil {
		evt.Payload = b.context
	}
	var handlers []Handler
	for _, owner := range b.ownerOrder {
		set, ok := b.owners[owner]
		if !ok {
			continue
		}
		handlers = append(handlers, set[evt.Type]...)
	}
	for _, id := range b.subOrder {
		if h, ok := b.subs[id]; ok {
			handlers = append(handlers, h)
		}
	}
	b.mu.RUnlock()

	b.logger.Debug("lifecycle publish", "type", evt.Type, "handlers", len(handlers))
	for _, h := range handlers {
		h(evt)
	}
}

// AddHandlers installs (or replaces) the handler set registered under
// owner. Owner order is fixed by first registration.
func (b *Bus) AddHandlers(owner string, set HandlerSet) {
	if owner == "" || len(set) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.owners[owner]; !exists {
		b.ownerOrder = append(b.ownerOrder, owner)
	}
	b.owners[owner] = set
}

// RemoveHandlers drops the handler set registered under owner.
func (b *Bus) RemoveHandlers(owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.owners[owner]; !exists {
		return
	}
	delete(b.owners, owner)
	for i, o := range b.ownerOrder {
		if o == owner {
			b.ownerOrder = append(b.ownerOrder[:i], b.ownerOrder[i+1:]...)
			break
		}
	}
}

// ReplaceHandlers drops every owner-scoped set and installs set under
// DefaultOwner. Subscribers are unaffected.
func (b *Bus) ReplaceHandlers(set HandlerSet) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.owners = map[string]HandlerSet{}
	b.ownerOrder = nil
	if len(set) > 0 {
		b.owners[DefaultOwner] = set
		b.ownerOrder = []string{DefaultOwner}
	}
}

// Subscribe registers a handler for every event and returns its id.
func (b *Bus) Subscribe(h Handler) int {
	if h == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs[id] = h
	b.subOrder = append(b.subOrder, id)
	return id
}

// Unsubscribe removes a subscriber. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.subs[id]; !exists {
		return
	}
	delete(b.subs, id)
	for i, s := range b.subOrder {
		if s == id {
			b.subOrder = append(b.subOrder[:i], b.subOrder[i+1:]...)
			break
		}
	}
}

// Clear removes every owner-scoped set and every subscriber.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.owners = map[string]HandlerSet{}
	b.ownerOrder = nil
	b.subs = map[int]Handler{}
	b.subOrder = nil
}
