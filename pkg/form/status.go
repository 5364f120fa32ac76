package form

import (
	"time"

	"github.com/goliatone/go-formstate/pkg/observable"
)

// statusNotifyDelay is how long a busy flag waits before flipping to
// true. Operations that finish inside the window never show a busy
// flag, which keeps short validations from flashing spinners.
const statusNotifyDelay = 100 * time.Millisecond

const (
	requestKeySubmit   = "submit"
	requestKeyValidate = "validate"
)

// SetSubmitting drives the submitting flag. Entering the busy state
// cancels any pending flip, publishes the submit-start event
// immediately, and schedules the flag to turn true after the debounce
// window. Leaving cancels the pending flip, clears the flag at once,
// and publishes the submit-end event. A rapid true/false pair fires
// both events without the flag ever reading true.
func (f *Form) SetSubmitting(submitting bool) {
	f.setStatus(requestKeySubmit, submitting, f.submitting, EventSubmitStart, EventSubmitEnd)
}

// SetValidating drives the validating flag with the same debounce
// protocol as SetSubmitting, publishing the validate-start and
// validate-end events.
func (f *Form) SetValidating(validating bool) {
	f.setStatus(requestKeyValidate, validating, f.validating, EventValidateStart, EventValidateEnd)
}

func (f *Form) setStatus(key string, busy bool, flag *observable.Value[bool], startEvent, endEvent string) {
	f.cancelStatusTimer(key)
	if busy {
		f.Notify(startEvent)
		f.scheduleStatusFlip(key, flag)
		return
	}
	flag.Set(false)
	f.Notify(endEvent)
}

// scheduleStatusFlip arms the single pending timer for key. The timer
// callback re-checks that it is still the current timer under the
// form lock, so a cancel that lost the race to Stop still wins.
func (f *Form) scheduleStatusFlip(key string, flag *observable.Value[bool]) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var t *time.Timer
	t = time.AfterFunc(statusNotifyDelay, func() {
		f.mu.Lock()
		live := f.requests[key] == t
		if live {
			delete(f.requests, key)
		}
		f.mu.Unlock()
		if live {
			flag.Set(true)
		}
	})
	f.requests[key] = t
}

func (f *Form) cancelStatusTimer(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.requests[key]; ok {
		t.Stop()
		delete(f.requests, key)
	}
}
