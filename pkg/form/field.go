package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-formstate/pkg/fieldpath"
	"github.com/goliatone/go-formstate/pkg/rules"
)

// FieldKind identifies the concrete shape of a registered field.
type FieldKind string

const (
	KindForm        FieldKind = "Form"
	KindField       FieldKind = "Field"
	KindArrayField  FieldKind = "ArrayField"
	KindObjectField FieldKind = "ObjectField"
	KindVoidField   FieldKind = "VoidField"
)

// Handle is the contract the form traverses when it validates, resets,
// aggregates feedback, or tears fields down. All implementations in
// this package are safe for concurrent use.
type Handle interface {
	Address() fieldpath.Path
	Path() fieldpath.Path
	Kind() FieldKind
	Title() string
	Validate(ctx context.Context) error
	Reset(ctx context.Context, opts ResetOptions) error
	SetFeedback(fb Feedback)
	Feedbacks(search FeedbackSearch) []Feedback
	ClearFeedbacks(search FeedbackSearch)
	Dispose()
}

// ResetOptions controls field reset behaviour. ForceClear removes the
// value outright instead of restoring the initial value; Validate runs
// validation after the value settles.
type ResetOptions struct {
	ForceClear bool
	Validate   bool
}

// FieldProps configures a field at creation time. The field's address
// is BasePath extended with Name; an empty result aborts creation.
type FieldProps struct {
	Name         string
	BasePath     fieldpath.Path
	Title        string
	Value        any
	InitialValue any
	Required     bool
	Rules        []rules.Rule
}

// Field is the leaf data field. Its value lives in the owning form's
// stores, addressed by the field's data path.
type Field struct {
	form     *Form
	kind     FieldKind
	address  fieldpath.Path
	path     fieldpath.Path
	title    string
	required bool
	rules    []rules.Rule

	mu        sync.Mutex
	feedbacks []Feedback
	disposed  bool
}

var _ Handle = (*Field)(nil)

// Form returns the owning form.
func (f *Field) Form() *Form { return f.form }

// Address returns the field's structural location, void segments
// included.
func (f *Field) Address() fieldpath.Path { return f.address }

// Path returns the field's data location: the address with void
// ancestor segments removed.
func (f *Field) Path() fieldpath.Path { return f.path }

// Kind returns the field's concrete shape.
func (f *Field) Kind() FieldKind { return f.kind }

// Title returns the human-readable label, if one was configured.
func (f *Field) Title() string { return f.title }

// Required reports whether the field must hold a non-empty value.
func (f *Field) Required() bool { return f.required }

// Value reads the field's current value from the form, falling back to
// the initial value when the current one is empty.
func (f *Field) Value() any {
	if f.kind == KindVoidField {
		return nil
	}
	return f.form.GetValuesIn(f.path.String())
}

// SetValue writes the field's current value into the form.
func (f *Field) SetValue(value any) {
	if f.kind == KindVoidField {
		return
	}
	f.form.SetValuesIn(f.path.String(), value)
}

// InitialValue reads the field's initial value from the form.
func (f *Field) InitialValue() any {
	if f.kind == KindVoidField {
		return nil
	}
	return f.form.GetInitialValuesIn(f.path.String())
}

// SetInitialValue writes the field's initial value into the form.
func (f *Field) SetInitialValue(value any) {
	if f.kind == KindVoidField {
		return
	}
	f.form.SetInitialValuesIn(f.path.String(), value)
}

// Validate runs the field's rules against its current value and
// replaces the field's validation feedback with the outcome: rule
// violations become one error feedback, a clean pass removes it. The
// returned error is reserved for rules that could not run.
func (f *Field) Validate(ctx context.Context) error {
	if f.kind == KindVoidField {
		return nil
	}
	value := f.Value()
	ruleSet := f.rules
	if f.required {
		ruleSet = append([]rules.Rule{rules.Required()}, ruleSet...)
	}
	var messages []string
	for _, rule := range ruleSet {
		msgs, err := rule.Validate(ctx, value)
		if err != nil {
			return fmt.Errorf("form: validate %s: %w", f.address, err)
		}
		messages = append(messages, msgs...)
	}
	f.SetFeedback(Feedback{
		Type:     FeedbackError,
		Code:     FeedbackCodeValidateError,
		Messages: messages,
	})
	return nil
}

// Reset clears the field's feedbacks and restores its value: back to
// the initial value, or removed entirely with ForceClear. With
// opts.Validate the field re-validates afterwards.
func (f *Field) Reset(ctx context.Context, opts ResetOptions) error {
	f.ClearFeedbacks(FeedbackSearch{})
	if f.kind == KindVoidField {
		return nil
	}
	pathKey := f.path.String()
	if opts.ForceClear {
		f.form.DeleteValuesIn(pathKey)
	} else if initial := f.form.GetInitialValuesIn(pathKey); initial != nil {
		f.form.SetValuesIn(pathKey, initial)
	} else {
		f.form.DeleteValuesIn(pathKey)
	}
	if opts.Validate {
		return f.Validate(ctx)
	}
	return nil
}

// SetFeedback attaches fb to the field, stamped with the field's
// address and path and with its messages sanitised to plain text. A
// feedback whose messages sanitise to nothing removes the entry with
// the same type and code instead.
func (f *Field) SetFeedback(fb Feedback) {
	if fb.Type == "" {
		fb.Type = FeedbackError
	}
	fb.Address = f.address.String()
	fb.Path = f.path.String()
	fb.Messages = sanitizeMessages(fb.Messages)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disposed {
		return
	}
	if len(fb.Messages) == 0 {
		f.feedbacks = removeFeedbacks(f.feedbacks, FeedbackSearch{Type: fb.Type, Code: fb.Code})
		return
	}
	for i, existing := range f.feedbacks {
		if existing.Type == fb.Type && existing.Code == fb.Code {
			f.feedbacks[i] = fb
			return
		}
	}
	f.feedbacks = append(f.feedbacks, fb)
}

// Feedbacks returns copies of the field's feedbacks matching search.
func (f *Field) Feedbacks(search FeedbackSearch) []Feedback {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Feedback
	for _, fb := range f.feedbacks {
		if !f.feedbackMatches(fb, search) {
			continue
		}
		copied := fb
		copied.Messages = append([]string(nil), fb.Messages...)
		out = append(out, copied)
	}
	return out
}

// ClearFeedbacks removes the field's feedbacks matching search. The
// zero search clears everything.
func (f *Field) ClearFeedbacks(search FeedbackSearch) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedbacks = f.filterFeedbacks(f.feedbacks, search)
}

func (f *Field) filterFeedbacks(feedbacks []Feedback, search FeedbackSearch) []Feedback {
	var out []Feedback
	for _, fb := range feedbacks {
		if f.feedbackMatches(fb, search) {
			continue
		}
		out = append(out, fb)
	}
	return out
}

func (f *Field) feedbackMatches(fb Feedback, search FeedbackSearch) bool {
	if search.Type != "" && fb.Type != search.Type {
		return false
	}
	if search.Code != "" && fb.Code != search.Code {
		return false
	}
	if search.Address != "" && !fieldpath.Parse(search.Address).Match(f.address) {
		return false
	}
	if search.Path != "" && !fieldpath.Parse(search.Path).Match(f.path) {
		return false
	}
	return true
}

func removeFeedbacks(feedbacks []Feedback, search FeedbackSearch) []Feedback {
	var out []Feedback
	for _, fb := range feedbacks {
		if (search.Type == "" || fb.Type == search.Type) &&
			(search.Code == "" || fb.Code == search.Code) {
			continue
		}
		out = append(out, fb)
	}
	return out
}

// Dispose releases the field's feedbacks and marks it dead. Disposing
// twice is a no-op.
func (f *Field) Dispose() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.disposed {
		return
	}
	f.disposed = true
	f.feedbacks = nil
}

// Disposed reports whether the field has been torn down.
func (f *Field) Disposed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposed
}

// CreateField registers a leaf data field and returns it. Creation is
// idempotent per address: an existing registration is returned as-is
// (nil if it has a different kind). An empty address returns nil
// without touching the registry.
func (f *Form) CreateField(props FieldProps) *Field {
	h := f.registerField(KindField, props)
	fld, _ := h.(*Field)
	return fld
}

// CreateArrayField registers an array field and returns it.
func (f *Form) CreateArrayField(props FieldProps) *ArrayField {
	h := f.registerField(KindArrayField, props)
	fld, _ := h.(*ArrayField)
	return fld
}

// CreateObjectField registers an object field and returns it.
func (f *Form) CreateObjectField(props FieldProps) *ObjectField {
	h := f.registerField(KindObjectField, props)
	fld, _ := h.(*ObjectField)
	return fld
}

// CreateVoidField registers a layout-only field. Void fields carry no
// data: they never contribute to values, validation, or reset, and
// their descendants' data paths skip the void segment.
func (f *Form) CreateVoidField(props FieldProps) *VoidField {
	h := f.registerField(KindVoidField, props)
	fld, _ := h.(*VoidField)
	return fld
}

func (f *Form) registerField(kind FieldKind, props FieldProps) Handle {
	address := props.BasePath.Concat(fieldpath.Parse(props.Name))
	if address.IsEmpty() {
		f.logger.Debug("form: skipping field with empty address")
		return nil
	}
	key := address.String()

	f.mu.Lock()
	if existing, ok := f.fields[key]; ok {
		f.mu.Unlock()
		return existing
	}
	path := f.dataPathLocked(address)
	var h Handle
	switch kind {
	case KindArrayField:
		h = &ArrayField{Field: Field{form: f, kind: kind, address: address, path: path, title: props.Title, required: props.Required, rules: props.Rules}}
	case KindObjectField:
		h = &ObjectField{Field: Field{form: f, kind: kind, address: address, path: path, title: props.Title, required: props.Required, rules: props.Rules}}
	case KindVoidField:
		h = &VoidField{Field: Field{form: f, kind: kind, address: address, path: path, title: props.Title, required: props.Required, rules: props.Rules}}
	default:
		h = &Field{form: f, kind: kind, address: address, path: path, title: props.Title, required: props.Required, rules: props.Rules}
	}
	f.fields[key] = h
	f.order = append(f.order, key)
	if pathKey := path.String(); pathKey != key {
		f.indexes[pathKey] = key
	}
	f.mu.Unlock()

	if kind != KindVoidField {
		pathKey := path.String()
		if props.InitialValue != nil {
			f.SetInitialValuesIn(pathKey, props.InitialValue)
		}
		if props.Value != nil {
			f.SetValuesIn(pathKey, props.Value)
		}
	}
	f.logger.Debug("form: field registered", "address", key, "kind", string(kind))
	f.Notify(EventGraphChange)
	return h
}

// dataPathLocked derives a field's data path from its address by
// dropping segments owned by void ancestors. The field's own segment
// is always kept. Callers hold f.mu.
func (f *Form) dataPathLocked(address fieldpath.Path) fieldpath.Path {
	segments := address.Segments()
	kept := make([]string, 0, len(segments))
	for i, seg := range segments {
		if i < len(segments)-1 {
			prefix := fieldpath.New(segments[:i+1]...)
			if h, ok := f.fields[prefix.String()]; ok && h.Kind() == KindVoidField {
				continue
			}
		}
		kept = append(kept, seg)
	}
	return fieldpath.New(kept...)
}
