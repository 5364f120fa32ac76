package form

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ValidationError carries the error feedbacks that failed a validate
// or submit operation.
type ValidationError struct {
	Feedbacks []Feedback
}

var _ error = (*ValidationError)(nil)

// Error implements error.
func (e *ValidationError) Error() string {
	count := 0
	for _, fb := range e.Feedbacks {
		count += len(fb.Messages)
	}
	if count == 1 {
		for _, fb := range e.Feedbacks {
			if len(fb.Messages) > 0 {
				return fmt.Sprintf("form: validation failed: %s: %s", fb.Path, fb.Messages[0])
			}
		}
	}
	return fmt.Sprintf("form: validation failed with %d violations", count)
}

// Validate fans validation out over the data fields matched by
// pattern, which defaults to "*". Every field runs regardless of its
// siblings' outcomes; rule violations land as field feedbacks rather
// than errors. Once the barrier settles, an invalid form publishes the
// validate-failed event and returns a *ValidationError carrying the
// current error list; a valid form publishes validate-success. A
// non-nil return from a field itself (a rule that could not run)
// aborts with that error instead.
func (f *Form) Validate(ctx context.Context, pattern ...string) error {
	target := defaultPattern(pattern)
	f.SetValidating(true)
	var g errgroup.Group
	f.Query(target).Each(func(h Handle) {
		g.Go(func() error {
			return h.Validate(ctx)
		})
	})
	err := g.Wait()
	f.SetValidating(false)
	if err != nil {
		return fmt.Errorf("form: validate: %w", err)
	}
	if f.Invalid() {
		f.Notify(EventValidateFailed)
		return &ValidationError{Feedbacks: f.Errors()}
	}
	f.Notify(EventValidateSuccess)
	return nil
}

// Submit runs the full submission sequence: enter the submitting
// state, publish submit-validate-start, validate everything, publish
// submit-validate-success or submit-validate-failed and then always
// submit-validate-end. If validation passes and onSubmit is non-nil,
// onSubmit receives the merged values; an invalid form fails with the
// *ValidationError whether or not a callback was supplied. Failure of
// either kind leaves the submitting state, publishes submit-failed and
// then submit, and returns the error. Success publishes
// submit-success, leaves the submitting state, publishes submit, and
// returns the callback's result (nil without a callback).
func (f *Form) Submit(ctx context.Context, onSubmit func(context.Context, map[string]any) (any, error)) (any, error) {
	f.SetSubmitting(true)
	f.Notify(EventSubmitValidateStart)
	err := f.Validate(ctx)
	if err != nil {
		f.Notify(EventSubmitValidateFailed)
	} else {
		f.Notify(EventSubmitValidateSuccess)
	}
	f.Notify(EventSubmitValidateEnd)

	var results any
	if err == nil && onSubmit != nil {
		results, err = onSubmit(ctx, f.Values())
	}
	if err != nil {
		f.SetSubmitting(false)
		f.Notify(EventSubmitFailed)
		f.Notify(EventSubmit)
		return nil, err
	}
	f.Notify(EventSubmitSuccess)
	f.SetSubmitting(false)
	f.Notify(EventSubmit)
	return results, nil
}

// Reset fans reset out over the data fields matched by pattern, which
// defaults to "*". The reset event publishes as soon as the resets are
// launched, before the barrier settles. The first field error, if any,
// comes back once every reset has finished.
func (f *Form) Reset(ctx context.Context, pattern string, opts ResetOptions) error {
	if pattern == "" {
		pattern = "*"
	}
	var g errgroup.Group
	f.Query(pattern).Each(func(h Handle) {
		g.Go(func() error {
			return h.Reset(ctx, opts)
		})
	})
	f.Notify(EventReset)
	if err := g.Wait(); err != nil {
		return fmt.Errorf("form: reset: %w", err)
	}
	return nil
}
