package form

// ArrayField is a data field holding an ordered list. Its element
// operations read the current list, apply the change, and write the
// whole list back through the form so observers see one change per
// operation.
type ArrayField struct {
	Field
}

var _ Handle = (*ArrayField)(nil)

func (a *ArrayField) items() []any {
	items, _ := a.Value().([]any)
	return items
}

// Len returns the number of elements currently held.
func (a *ArrayField) Len() int {
	return len(a.items())
}

// Push appends values to the end of the list.
func (a *ArrayField) Push(values ...any) {
	if len(values) == 0 {
		return
	}
	a.SetValue(append(a.items(), values...))
}

// Pop removes and returns the last element, or nil when empty.
func (a *ArrayField) Pop() any {
	items := a.items()
	if len(items) == 0 {
		return nil
	}
	last := items[len(items)-1]
	a.SetValue(items[:len(items)-1])
	return last
}

// Insert places values at index, shifting later elements right.
// Indexes are clamped to the list bounds.
func (a *ArrayField) Insert(index int, values ...any) {
	if len(values) == 0 {
		return
	}
	items := a.items()
	if index < 0 {
		index = 0
	}
	if index > len(items) {
		index = len(items)
	}
	next := make([]any, 0, len(items)+len(values))
	next = append(next, items[:index]...)
	next = append(next, values...)
	next = append(next, items[index:]...)
	a.SetValue(next)
}

// Remove deletes the element at index, shifting later elements left.
// Out-of-range indexes are ignored.
func (a *ArrayField) Remove(index int) {
	items := a.items()
	if index < 0 || index >= len(items) {
		return
	}
	next := make([]any, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)
	a.SetValue(next)
}

// Move relocates the element at from to position to. Out-of-range
// indexes are ignored.
func (a *ArrayField) Move(from, to int) {
	items := a.items()
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return
	}
	moved := items[from]
	rest := make([]any, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)
	next := make([]any, 0, len(items))
	next = append(next, rest[:to]...)
	next = append(next, moved)
	next = append(next, rest[to:]...)
	a.SetValue(next)
}
