package form

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// FeedbackType classifies a feedback entry.
type FeedbackType string

const (
	FeedbackError   FeedbackType = "error"
	FeedbackWarning FeedbackType = "warning"
	FeedbackSuccess FeedbackType = "success"
)

// FeedbackCodeValidateError marks feedbacks produced by rule
// validation, as opposed to feedbacks set programmatically.
const FeedbackCodeValidateError = "ValidateError"

// Feedback is one annotated message bundle attached to a field. The
// engine stamps Address and Path with the owning field's location when
// the feedback is set.
type Feedback struct {
	Type     FeedbackType `json:"type"`
	Code     string       `json:"code,omitempty"`
	Address  string       `json:"address,omitempty"`
	Path     string       `json:"path,omitempty"`
	Messages []string     `json:"messages"`
}

// FeedbackSearch narrows feedback queries. Empty fields match
// everything; Address takes precedence over Path when both are set.
type FeedbackSearch struct {
	Type    FeedbackType
	Code    string
	Address string
	Path    string
}

var (
	messagePolicyOnce sync.Once
	messagePolicy     *bluemonday.Policy
)

// sanitizeMessages strips markup from feedback text so downstream
// surfaces can render it without further escaping. Entities introduced
// by the sanitiser are unescaped again: the result is plain text.
func sanitizeMessages(messages []string) []string {
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	out := make([]string, 0, len(messages))
	for _, msg := range messages {
		clean := html.UnescapeString(messagePolicy.Sanitize(msg))
		clean = strings.TrimSpace(clean)
		if clean == "" {
			continue
		}
		out = append(out, clean)
	}
	return out
}

// QueryFeedbacks aggregates feedbacks from every data field matched by
// the search. The target pattern is the search address when set, else
// the search path, else "*"; type and code filters apply on top.
func (f *Form) QueryFeedbacks(search FeedbackSearch) []Feedback {
	target := search.Address
	if target == "" {
		target = search.Path
	}
	if target == "" {
		target = "*"
	}
	var out []Feedback
	f.Query(target).Each(func(h Handle) {
		out = append(out, h.Feedbacks(FeedbackSearch{Type: search.Type, Code: search.Code})...)
	})
	return out
}

// Errors returns every error feedback on the form.
func (f *Form) Errors() []Feedback {
	return f.QueryFeedbacks(FeedbackSearch{Type: FeedbackError})
}

// Warnings returns every warning feedback on the form.
func (f *Form) Warnings() []Feedback {
	return f.QueryFeedbacks(FeedbackSearch{Type: FeedbackWarning})
}

// Successes returns every success feedback on the form.
func (f *Form) Successes() []Feedback {
	return f.QueryFeedbacks(FeedbackSearch{Type: FeedbackSuccess})
}

// Valid reports whether the form carries no error feedbacks.
func (f *Form) Valid() bool {
	return len(f.Errors()) == 0
}

// Invalid reports whether the form carries at least one error feedback.
func (f *Form) Invalid() bool {
	return !f.Valid()
}

// ClearErrors removes error feedbacks from the fields matched by
// pattern, which defaults to "*".
func (f *Form) ClearErrors(pattern ...string) {
	f.clearFeedbacks(FeedbackError, defaultPattern(pattern))
}

// ClearWarnings removes warning feedbacks from the fields matched by
// pattern, which defaults to "*".
func (f *Form) ClearWarnings(pattern ...string) {
	f.clearFeedbacks(FeedbackWarning, defaultPattern(pattern))
}

// ClearSuccesses removes success feedbacks from the fields matched by
// pattern. Unlike ClearErrors and ClearWarnings there is no default:
// an empty pattern matches nothing.
func (f *Form) ClearSuccesses(pattern string) {
	f.clearFeedbacks(FeedbackSuccess, pattern)
}

func (f *Form) clearFeedbacks(ft FeedbackType, pattern string) {
	if pattern == "" {
		return
	}
	f.Query(pattern).Each(func(h Handle) {
		h.ClearFeedbacks(FeedbackSearch{Type: ft})
	})
}

func defaultPattern(pattern []string) string {
	if len(pattern) > 0 && pattern[0] != "" {
		return pattern[0]
	}
	return "*"
}
