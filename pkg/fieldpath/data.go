package fieldpath

import "strconv"

// Data trees are JSON-shaped: map[string]any nodes, []any slices, and
// scalar leaves. Accessors return live references into the tree;
// callers that need isolation copy with DeepCopy.

// Get walks p through root and returns the value found. The second
// return is false when any segment cannot be resolved, including the
// empty path.
func Get(root map[string]any, p Path) (any, bool) {
	if root == nil || p.IsEmpty() {
		return nil, false
	}
	var current any = root
	for _, seg := range p.segments {
		switch c := current.(type) {
		case map[string]any:
			v, ok := c[seg]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			idx, ok := parseIndex(seg)
			if !ok || idx < 0 || idx >= len(c) {
				return nil, false
			}
			current = c[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// Exists reports whether p resolves inside root. A key present with a
// nil value still exists.
func Exists(root map[string]any, p Path) bool {
	_, ok := Get(root, p)
	return ok
}

// Set writes value at p inside root, creating intermediate containers
// as needed. A numeric segment vivifies a slice, anything else a map;
// slices grow with nil elements up to the addressed index. Non-container
// values standing where a container is needed are replaced. Segments
// that cannot address a slice (non-numeric) are ignored.
func Set(root map[string]any, p Path, value any) {
	if root == nil || p.IsEmpty() {
		return
	}
	setSegments(root, p.segments, value)
}

func setSegments(container any, segs []string, value any) any {
	seg := segs[0]
	last := len(segs) == 1
	switch c := container.(type) {
	case map[string]any:
		if last {
			c[seg] = value
			return c
		}
		child, ok := c[seg]
		if !ok || !shapeFits(child, segs[1]) {
			child = newContainer(segs[1])
		}
		c[seg] = setSegments(child, segs[1:], value)
		return c
	case []any:
		idx, ok := parseIndex(seg)
		if !ok || idx < 0 {
			return c
		}
		for len(c) <= idx {
			c = append(c, nil)
		}
		if last {
			c[idx] = value
			return c
		}
		child := c[idx]
		if child == nil || !shapeFits(child, segs[1]) {
			child = newContainer(segs[1])
		}
		c[idx] = setSegments(child, segs[1:], value)
		return c
	default:
		return setSegments(newContainer(seg), segs, value)
	}
}

// Delete removes the value at p. Map entries are deleted; slice
// elements are cleared to nil so sibling indices keep their positions.
func Delete(root map[string]any, p Path) {
	if root == nil || p.IsEmpty() {
		return
	}
	var parent any = root
	if p.Len() > 1 {
		v, ok := Get(root, p.Parent())
		if !ok {
			return
		}
		parent = v
	}
	switch c := parent.(type) {
	case map[string]any:
		delete(c, p.Last())
	case []any:
		if idx, ok := parseIndex(p.Last()); ok && idx >= 0 && idx < len(c) {
			c[idx] = nil
		}
	}
}

// Merge returns a new map holding dst deep-merged with src, with src
// winning wherever both sides hold a non-map value. Neither input is
// mutated.
func Merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = DeepCopy(v)
	}
	for k, v := range src {
		if existing, ok := out[k].(map[string]any); ok {
			if incoming, ok := v.(map[string]any); ok {
				out[k] = Merge(existing, incoming)
				continue
			}
		}
		out[k] = DeepCopy(v)
	}
	return out
}

// DeepCopy copies map[string]any and []any trees recursively; every
// other value is returned as-is.
func DeepCopy(v any) any {
	switch c := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(c))
		for k, e := range c {
			out[k] = DeepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(c))
		for i, e := range c {
			out[i] = DeepCopy(e)
		}
		return out
	default:
		return v
	}
}

// IsEmpty reports whether v is nil, an empty string, or a zero-length
// map or slice. Zero numbers and false are not empty.
func IsEmpty(v any) bool {
	switch c := v.(type) {
	case nil:
		return true
	case string:
		return c == ""
	case map[string]any:
		return len(c) == 0
	case []any:
		return len(c) == 0
	}
	return false
}

func shapeFits(child any, nextSeg string) bool {
	switch child.(type) {
	case map[string]any:
		return !isIndex(nextSeg)
	case []any:
		return isIndex(nextSeg)
	default:
		return false
	}
}

func newContainer(nextSeg string) any {
	if isIndex(nextSeg) {
		return []any{}
	}
	return map[string]any{}
}

func parseIndex(seg string) (int, bool) {
	if !isIndex(seg) {
		return 0, false
	}
	idx, err := strconv.Atoi(seg)
	if err != nil {
		return 0, false
	}
	return idx, true
}
