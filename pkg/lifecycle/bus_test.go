package lifecycle_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/lifecycle"
)

func TestPublishRoutesByType(t *testing.T) {
	bus := lifecycle.New()

	var got []string
	bus.AddHandlers("owner", lifecycle.HandlerSet{
		"created": {func(lifecycle.Event) { got = append(got, "created") }},
		"removed": {func(lifecycle.Event) { got = append(got, "removed") }},
	})

	bus.Publish(lifecycle.Event{Type: "created"})
	bus.Publish(lifecycle.Event{Type: "ignored"})

	if diff := cmp.Diff([]string{"created"}, got); diff != "" {
		t.Fatalf("deliveries mismatch (-want +got):\n%s", diff)
	}
}

func TestPublishDefaultsPayloadToContext(t *testing.T) {
	type form struct{ name string }
	ctx := &form{name: "checkout"}
	bus := lifecycle.New(lifecycle.WithContext(ctx))

	var payload any
	bus.Subscribe(func(evt lifecycle.Event) { payload = evt.Payload })

	bus.Publish(lifecycle.Event{Type: "ping"})
	if payload != ctx {
		t.Fatalf("payload = %v, want bus context", payload)
	}

	bus.Publish(lifecycle.Event{Type: "ping", Payload: "explicit"})
	if payload != "explicit" {
		t.Fatalf("payload = %v, want explicit value", payload)
	}
}

func TestPublishOrderOwnersThenSubscribers(t *testing.T) {
	bus := lifecycle.New()

	var order []string
	bus.AddHandlers("first", lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { order = append(order, "first") }},
	})
	bus.AddHandlers("second", lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { order = append(order, "second") }},
	})
	bus.Subscribe(func(lifecycle.Event) { order = append(order, "subscriber") })

	bus.Publish(lifecycle.Event{Type: "evt"})

	want := []string{"first", "second", "subscriber"}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Fatalf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestAddHandlersReplacesOwnerSet(t *testing.T) {
	bus := lifecycle.New()

	calls := map[string]int{}
	bus.AddHandlers("owner", lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { calls["old"]++ }},
	})
	bus.AddHandlers("owner", lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { calls["new"]++ }},
	})

	bus.Publish(lifecycle.Event{Type: "evt"})

	if calls["old"] != 0 || calls["new"] != 1 {
		t.Fatalf("calls = %v, want only the replacement set", calls)
	}
}

func TestRemoveHandlers(t *testing.T) {
	bus := lifecycle.New()

	calls := 0
	bus.AddHandlers("owner", lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { calls++ }},
	})

	bus.Publish(lifecycle.Event{Type: "evt"})
	bus.RemoveHandlers("owner")
	bus.Publish(lifecycle.Event{Type: "evt"})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestReplaceHandlersDropsAllOwners(t *testing.T) {
	bus := lifecycle.New()

	var got []string
	bus.AddHandlers("a", lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { got = append(got, "a") }},
	})
	bus.AddHandlers("b", lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { got = append(got, "b") }},
	})

	bus.ReplaceHandlers(lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { got = append(got, "replacement") }},
	})
	bus.Publish(lifecycle.Event{Type: "evt"})

	if diff := cmp.Diff([]string{"replacement"}, got); diff != "" {
		t.Fatalf("deliveries mismatch (-want +got):\n%s", diff)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := lifecycle.New()

	calls := 0
	id := bus.Subscribe(func(lifecycle.Event) { calls++ })

	bus.Publish(lifecycle.Event{Type: "evt"})
	bus.Unsubscribe(id)
	bus.Publish(lifecycle.Event{Type: "evt"})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	bus := lifecycle.New()

	calls := 0
	bus.AddHandlers("owner", lifecycle.HandlerSet{
		"evt": {func(lifecycle.Event) { calls++ }},
	})
	bus.Subscribe(func(lifecycle.Event) { calls++ })

	bus.Clear()
	bus.Publish(lifecycle.Event{Type: "evt"})

	if calls != 0 {
		t.Fatalf("calls = %d, want 0 after Clear", calls)
	}
}

func TestHandlerMayPublishReentrantly(t *testing.T) {
	bus := lifecycle.New()

	var got []string
	bus.AddHandlers("owner", lifecycle.HandlerSet{
		"outer": {func(lifecycle.Event) {
			got = append(got, "outer")
			bus.Publish(lifecycle.Event{Type: "inner"})
		}},
		"inner": {func(lifecycle.Event) { got = append(got, "inner") }},
	})

	bus.Publish(lifecycle.Event{Type: "outer"})

	want := []string{"outer", "inner"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("re-entrant publish mismatch (-want +got):\n%s", diff)
	}
}
