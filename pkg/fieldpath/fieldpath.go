// Package fieldpath provides parsing, matching, and container access for
// the dotted paths that address values inside a form's data tree.
//
// A path is a sequence of segments. Keys address map entries, decimal
// segments address slice elements, and the wildcard "*" matches any
// single segment. The single-segment pattern "*" matches every
// non-empty path. Bracket index syntax is accepted on parse
// ("tags[0]") and normalised to dotted form ("tags.0").
package fieldpath

import "strings"

// Wildcard is the segment that matches any single path segment.
const Wildcard = "*"

// Path is an immutable sequence of segments addressing a location in a
// data tree. The zero value is the empty path.
type Path struct {
	segments []string
}

// New builds a Path from already-split segments. Empty segments are
// dropped.
func New(segments ...string) Path {
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		out = append(out, seg)
	}
	return Path{segments: out}
}

// Parse converts a raw path expression into a Path. It accepts dotted
// form ("user.address.city"), bracket indices ("tags[0].label"), and
// wildcard segments ("user.*.street"). Parse("") returns the empty
// path.
func Parse(raw string) Path {
	if raw == "" {
		return Path{}
	}
	var segments []string
	for _, chunk := range strings.Split(raw, ".") {
		segments = appendChunk(segments, chunk)
	}
	return Path{segments: segments}
}

// appendChunk splits one dot-delimited chunk into plain and bracketed
// segments: "tags[0][1]" becomes "tags", "0", "1".
func appendChunk(segments []string, chunk string) []string {
	for chunk != "" {
		open := strings.IndexByte(chunk, '[')
		if open < 0 {
			return append(segments, chunk)
		}
		if open > 0 {
			segments = append(segments, chunk[:open])
		}
		closing := strings.IndexByte(chunk[open:], ']')
		if closing < 0 {
			// Unterminated bracket, treat the remainder literally.
			return append(segments, chunk[open:])
		}
		if inner := chunk[open+1 : open+closing]; inner != "" {
			segments = append(segments, inner)
		}
		chunk = chunk[open+closing+1:]
	}
	return segments
}

// String renders the path in normalised dotted form.
func (p Path) String() string {
	return strings.Join(p.segments, ".")
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Len reports the number of segments.
func (p Path) Len() int { return len(p.segments) }

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool { return len(p.segments) == 0 }

// IsPattern reports whether the path contains a wildcard segment.
func (p Path) IsPattern() bool {
	for _, seg := range p.segments {
		if seg == Wildcard {
			return true
		}
	}
	return false
}

// Append returns a new path with the given segments appended. Empty
// segments are dropped.
func (p Path) Append(segments ...string) Path {
	out := make([]string, len(p.segments), len(p.segments)+len(segments))
	copy(out, p.segments)
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		out = append(out, seg)
	}
	return Path{segments: out}
}

// Concat returns a new path with other's segments appended to p's.
func (p Path) Concat(other Path) Path {
	return p.Append(other.segments...)
}

// Parent returns the path without its final segment. The parent of the
// empty path is the empty path.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return Path{}
	}
	return New(p.segments[:len(p.segments)-1]...)
}

// Last returns the final segment, or "" for the empty path.
func (p Path) Last() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Index returns the segment at position i, or "" when i is out of
// range.
func (p Path) Index(i int) string {
	if i < 0 || i >= len(p.segments) {
		return ""
	}
	return p.segments[i]
}

// Match reports whether target matches p treated as a pattern. The
// lone wildcard "*" matches every non-empty target. Otherwise the
// paths must have the same length and agree segment by segment, with
// wildcard segments matching anything.
func (p Path) Match(target Path) bool {
	if len(p.segments) == 1 && p.segments[0] == Wildcard {
		return len(target.segments) > 0
	}
	if len(p.segments) != len(target.segments) {
		return false
	}
	for i, seg := range p.segments {
		if seg == Wildcard {
			continue
		}
		if seg != target.segments[i] {
			return false
		}
	}
	return true
}

// MatchString is shorthand for p.Match(Parse(target)).
func (p Path) MatchString(target string) bool {
	return p.Match(Parse(target))
}

// Overlaps reports whether p and other could address overlapping
// regions of a tree: one is a (wildcard-aware) prefix of the other.
// Stores use this to scope change notifications.
func (p Path) Overlaps(other Path) bool {
	if (len(p.segments) == 1 && p.segments[0] == Wildcard) ||
		(len(other.segments) == 1 && other.segments[0] == Wildcard) {
		return len(p.segments) > 0 && len(other.segments) > 0
	}
	n := len(p.segments)
	if len(other.segments) < n {
		n = len(other.segments)
	}
	for i := 0; i < n; i++ {
		a, b := p.segments[i], other.segments[i]
		if a == Wildcard || b == Wildcard {
			continue
		}
		if a != b {
			return false
		}
	}
	return true
}

// isIndex reports whether seg addresses a slice element.
func isIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}
