// Package form implements a reactive state engine for hierarchical
// form data. A Form owns the current and initial value stores, a
// lazily populated field registry, an interaction pattern, debounced
// busy flags, and a lifecycle event bus; fields are collaborators the
// form fans validation, reset, and feedback aggregation out to.
package form

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formstate/pkg/devtools"
	"github.com/goliatone/go-formstate/pkg/fieldpath"
	"github.com/goliatone/go-formstate/pkg/lifecycle"
	"github.com/goliatone/go-formstate/pkg/observable"
)

// Effects computes the lifecycle handler set a unit of behaviour
// installs on a form. The function runs once at install time with the
// form it is being attached to.
type Effects func(*Form) lifecycle.HandlerSet

// Props configures a new Form. Every field is optional: the zero value
// yields an empty editable form.
type Props struct {
	Values        map[string]any
	InitialValues map[string]any
	Pattern       Pattern
	Effects       Effects
	Logger        *slog.Logger
	DevTools      devtools.Hook
}

func (p *Props) applyDefaults() {
	if !p.Pattern.Valid() {
		p.Pattern = PatternEditable
	}
	if p.Logger == nil {
		p.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Form is the orchestrator owning all form-level state. All methods
// are safe for concurrent use; event handlers run synchronously on the
// publishing goroutine.
type Form struct {
	id     string
	logger *slog.Logger
	hook   devtools.Hook

	values        *observable.Store
	initialValues *observable.Store

	initialized *observable.Value[bool]
	submitting  *observable.Value[bool]
	validating  *observable.Value[bool]
	modified    *observable.Value[bool]
	mounted     *observable.Value[bool]
	unmounted   *observable.Value[bool]
	pattern     *observable.Value[Pattern]

	bus *lifecycle.Bus

	mu       sync.RWMutex
	fields   map[string]Handle
	order    []string
	indexes  map[string]string
	requests map[string]*time.Timer
}

// New builds a Form: stores seeded from props, lifecycle bus wired
// with the form as default payload and props.Effects installed, value
// stores re-publishing their change events, and the init event
// published last.
func New(props Props) *Form {
	props.applyDefaults()
	f := &Form{
		id:            uuid.NewString(),
		logger:        props.Logger,
		hook:          props.DevTools,
		values:        observable.NewStore(props.Values),
		initialValues: observable.NewStore(props.InitialValues),
		initialized:   observable.NewValue(false),
		submitting:    observable.NewValue(false),
		validating:    observable.NewValue(false),
		modified:      observable.NewValue(false),
		mounted:       observable.NewValue(false),
		unmounted:     observable.NewValue(false),
		pattern:       observable.NewValue(props.Pattern),
		fields:        map[string]Handle{},
		indexes:       map[string]string{},
		requests:      map[string]*time.Timer{},
	}
	f.bus = lifecycle.New(lifecycle.WithContext(f), lifecycle.WithLogger(f.logger))
	if props.Effects != nil {
		f.bus.AddHandlers(lifecycle.DefaultOwner, props.Effects(f))
	}
	f.values.Subscribe(func() { f.Notify(EventValuesChange) })
	f.initialValues.Subscribe(func() { f.Notify(EventInitialValuesChange) })
	f.initialized.Set(true)
	f.Notify(EventInit)
	f.logger.Debug("form initialised", "id", f.id)
	return f
}

// ID returns the form's unique identifier.
func (f *Form) ID() string { return f.id }

// Initialized reports whether construction completed.
func (f *Form) Initialized() bool { return f.initialized.Get() }

// Submitting reports whether a submit operation is in flight, after
// the status debounce window.
func (f *Form) Submitting() bool { return f.submitting.Get() }

// Validating reports whether a validate operation is in flight, after
// the status debounce window.
func (f *Form) Validating() bool { return f.validating.Get() }

// Modified reports whether SetValues has run since construction.
func (f *Form) Modified() bool { return f.modified.Get() }

// Mounted reports whether OnMount has run.
func (f *Form) Mounted() bool { return f.mounted.Get() }

// Unmounted reports whether OnUnmount has run. Unmounting is terminal.
func (f *Form) Unmounted() bool { return f.unmounted.Get() }

// Values returns the effective form data: the initial values deep-
// merged with the current values, current winning on conflicts. The
// result is a detached copy.
func (f *Form) Values() map[string]any {
	return fieldpath.Merge(f.initialValues.Snapshot(), f.values.Snapshot())
}

// SetValues deep-merges values into the current value store and
// publishes the values-change event. Any call, even with an empty
// patch, marks the form modified.
func (f *Form) SetValues(values map[string]any) {
	f.modified.Set(true)
	f.values.Merge(values)
}

// InitialValues returns a detached copy of the initial value store.
func (f *Form) InitialValues() map[string]any {
	return f.initialValues.Snapshot()
}

// SetInitialValues deep-merges values into the initial value store and
// publishes the initial-values-change event.
func (f *Form) SetInitialValues(values map[string]any) {
	if len(values) == 0 {
		return
	}
	f.initialValues.Merge(values)
}

// GetValuesIn returns a copy of the value at path. When the current
// value is empty (nil, empty string, or empty container) and a
// non-empty initial value exists at the same path, the initial value
// is returned instead.
func (f *Form) GetValuesIn(path string) any {
	p := fieldpath.Parse(path)
	current, ok := f.values.Get(p)
	if !ok || fieldpath.IsEmpty(current) {
		if initial, found := f.initialValues.Get(p); found && !fieldpath.IsEmpty(initial) {
			return fieldpath.DeepCopy(initial)
		}
	}
	return fieldpath.DeepCopy(current)
}

// SetValuesIn writes value at path in the current value store.
func (f *Form) SetValuesIn(path string, value any) {
	f.values.Set(fieldpath.Parse(path), value)
}

// DeleteValuesIn removes the value at path from the current store.
func (f *Form) DeleteValuesIn(path string) {
	f.values.Delete(fieldpath.Parse(path))
}

// ExistValuesIn reports whether path resolves in the current store.
func (f *Form) ExistValuesIn(path string) bool {
	return f.values.Exists(fieldpath.Parse(path))
}

// GetInitialValuesIn returns a copy of the initial value at path.
func (f *Form) GetInitialValuesIn(path string) any {
	initial, _ := f.initialValues.Get(fieldpath.Parse(path))
	return fieldpath.DeepCopy(initial)
}

// SetInitialValuesIn writes value at path in the initial value store.
func (f *Form) SetInitialValuesIn(path string, value any) {
	f.initialValues.Set(fieldpath.Parse(path), value)
}

// DeleteInitialValuesIn removes the initial value at path.
func (f *Form) DeleteInitialValuesIn(path string) {
	f.initialValues.Delete(fieldpath.Parse(path))
}

// ExistInitialValuesIn reports whether path resolves in the initial
// store.
func (f *Form) ExistInitialValuesIn(path string) bool {
	return f.initialValues.Exists(fieldpath.Parse(path))
}

// ObserveValuesIn registers a granular observer on the current value
// store, scoped to changes overlapping pattern. It returns an id for
// UnobserveValues.
func (f *Form) ObserveValuesIn(pattern string, fn func(observable.Change)) int {
	return f.values.Observe(fieldpath.Parse(pattern), observable.Observer(fn))
}

// UnobserveValues removes a granular value observer.
func (f *Form) UnobserveValues(id int) {
	f.values.Unobserve(id)
}

// Notify publishes a lifecycle event. Without an explicit payload the
// form itself travels with the event.
func (f *Form) Notify(eventType string, payload ...any) {
	evt := lifecycle.Event{Type: eventType}
	if len(payload) > 0 {
		evt.Payload = payload[0]
	}
	f.bus.Publish(evt)
}

// AddEffects installs the handlers computed by fx under the owner id,
// replacing that owner's previous handlers.
func (f *Form) AddEffects(id string, fx Effects) {
	if id == "" || fx == nil {
		return
	}
	f.bus.AddHandlers(id, fx(f))
}

// RemoveEffects tears down the handlers installed under the owner id.
func (f *Form) RemoveEffects(id string) {
	f.bus.RemoveHandlers(id)
}

// SetEffects replaces every owner-scoped handler set with the handlers
// computed by fx. Direct subscribers are unaffected.
func (f *Form) SetEffects(fx Effects) {
	if fx == nil {
		return
	}
	f.bus.ReplaceHandlers(fx(f))
}

// Subscribe registers a handler for every lifecycle event and returns
// its id.
func (f *Form) Subscribe(handler lifecycle.Handler) int {
	return f.bus.Subscribe(handler)
}

// Unsubscribe removes a subscriber registered with Subscribe.
func (f *Form) Unsubscribe(id int) {
	f.bus.Unsubscribe(id)
}

// Lookup finds a field by its address, falling back to the data-path
// index for fields whose path differs from their address.
func (f *Form) Lookup(address string) (Handle, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if h, ok := f.fields[address]; ok {
		return h, true
	}
	if key, ok := f.indexes[address]; ok {
		if h, ok := f.fields[key]; ok {
			return h, true
		}
	}
	return nil, false
}

// OnMount marks the form mounted, publishes the mount event, and
// announces the form to the development-tooling hook when one is
// present.
func (f *Form) OnMount() {
	f.mounted.Set(true)
	f.Notify(EventMount)
	if hook := f.devtoolsHook(); hook != nil {
		hook.Inject(f.id, f)
	}
}

// OnUnmount tears the form down: the unmounted flag becomes true
// permanently, every registered field is disposed exactly once, the
// registry and path index empty out, the unmount event is published,
// and all lifecycle registrations are dropped. A form cannot be
// remounted; calling OnMount afterwards flips the mounted flag but
// restores neither fields nor subscriptions.
func (f *Form) OnUnmount() {
	f.unmounted.Set(true)
	f.Query("*").EachAll(func(h Handle) {
		h.Dispose()
	})
	f.cancelStatusTimer(requestKeySubmit)
	f.cancelStatusTimer(requestKeyValidate)
	f.mu.Lock()
	f.fields = map[string]Handle{}
	f.order = nil
	f.indexes = map[string]string{}
	f.mu.Unlock()
	f.Notify(EventUnmount)
	f.bus.Clear()
	if hook := f.devtoolsHook(); hook != nil {
		hook.Unmount(f.id)
	}
	f.logger.Debug("form unmounted", "id", f.id)
}

func (f *Form) devtoolsHook() devtools.Hook {
	if f.hook != nil {
		return f.hook
	}
	return devtools.Installed()
}
