package form_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formstate/pkg/form"
)

// The busy flags debounce by 100ms, so these tests sleep across the
// window with generous margins rather than racing the timer edge.

func TestSubmittingFlagDebounces(t *testing.T) {
	f := form.New(form.Props{})
	log := newEventLog(f, form.EventSubmitStart, form.EventSubmitEnd)

	f.SetSubmitting(true)
	if f.Submitting() {
		t.Fatal("flag should stay false inside the debounce window")
	}

	time.Sleep(150 * time.Millisecond)
	if !f.Submitting() {
		t.Fatal("flag should flip true once the window elapses")
	}

	f.SetSubmitting(false)
	if f.Submitting() {
		t.Fatal("flag should drop immediately")
	}

	want := []string{form.EventSubmitStart, form.EventSubmitEnd}
	if diff := cmp.Diff(want, log.events()); diff != "" {
		t.Fatalf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestRapidFlipNeverShowsBusy(t *testing.T) {
	f := form.New(form.Props{})
	log := newEventLog(f, form.EventValidateStart, form.EventValidateEnd)

	f.SetValidating(true)
	f.SetValidating(false)

	if f.Validating() {
		t.Fatal("flag should stay false on a rapid flip")
	}

	// Both events still fire even though the flag never went true.
	want := []string{form.EventValidateStart, form.EventValidateEnd}
	if diff := cmp.Diff(want, log.events()); diff != "" {
		t.Fatalf("event order mismatch (-want +got):\n%s", diff)
	}

	// The cancelled timer must not resurrect the flag later.
	time.Sleep(150 * time.Millisecond)
	if f.Validating() {
		t.Fatal("cancelled debounce timer fired anyway")
	}
}

func TestReenteringBusyRestartsTheWindow(t *testing.T) {
	f := form.New(form.Props{})
	log := newEventLog(f, form.EventSubmitStart)

	f.SetSubmitting(true)
	time.Sleep(50 * time.Millisecond)
	f.SetSubmitting(true) // restarts the window and re-announces

	time.Sleep(55 * time.Millisecond) // 105ms after the first call, 55ms after the second
	if f.Submitting() {
		t.Fatal("first timer should have been cancelled by the second call")
	}

	time.Sleep(100 * time.Millisecond)
	if !f.Submitting() {
		t.Fatal("second timer should have fired by now")
	}

	if got := len(log.events()); got != 2 {
		t.Fatalf("submit-start events = %d, want 2", got)
	}

	f.SetSubmitting(false)
}

func TestSubmittingAndValidatingAreIndependent(t *testing.T) {
	f := form.New(form.Props{})

	f.SetSubmitting(true)
	f.SetValidating(true)
	f.SetValidating(false)

	time.Sleep(150 * time.Millisecond)
	if !f.Submitting() {
		t.Fatal("cancelling validating must not touch the submitting timer")
	}
	if f.Validating() {
		t.Fatal("validating should have been cancelled")
	}

	f.SetSubmitting(false)
}
