package form

import "github.com/goliatone/go-formstate/pkg/fieldpath"

// Query is the result of matching a path pattern against the field
// registry. Matches are resolved eagerly at construction, in field
// creation order, against both addresses and data paths.
type Query struct {
	form    *Form
	pattern fieldpath.Path
	handles []Handle
}

// Query matches pattern against the registry and returns the result.
// "*" matches every field; a wildcard segment matches exactly one
// address segment.
func (f *Form) Query(pattern string) *Query {
	p := fieldpath.Parse(pattern)
	q := &Query{form: f, pattern: p}
	if p.IsEmpty() {
		return q
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, key := range f.order {
		h, ok := f.fields[key]
		if !ok {
			continue
		}
		if p.Match(h.Address()) || p.Match(h.Path()) {
			q.handles = append(q.handles, h)
		}
	}
	return q
}

// Pattern returns the pattern the query was built from.
func (q *Query) Pattern() fieldpath.Path { return q.pattern }

// Len returns the number of matched fields, void fields included.
func (q *Query) Len() int { return len(q.handles) }

// First returns the first matched field, or nil when nothing matched.
func (q *Query) First() Handle {
	if len(q.handles) == 0 {
		return nil
	}
	return q.handles[0]
}

// Each visits every matched data field, skipping void fields.
func (q *Query) Each(fn func(Handle)) {
	for _, h := range q.handles {
		if h.Kind() == KindVoidField {
			continue
		}
		fn(h)
	}
}

// EachAll visits every matched field, void fields included.
func (q *Query) EachAll(fn func(Handle)) {
	for _, h := range q.handles {
		fn(h)
	}
}

// Handles returns a copy of all matched fields, void fields included.
func (q *Query) Handles() []Handle {
	out := make([]Handle, len(q.handles))
	copy(out, q.handles)
	return out
}

// Addresses returns the matched fields' addresses in match order.
func (q *Query) Addresses() []string {
	out := make([]string, 0, len(q.handles))
	for _, h := range q.handles {
		out = append(out, h.Address().String())
	}
	return out
}
