package form

// VoidField is a layout-only field. It occupies a structural address
// so descendants can anchor under it, but it carries no data: value
// accessors are inert, validation and reset skip it, and descendant
// data paths omit its segment.
type VoidField struct {
	Field
}

var _ Handle = (*VoidField)(nil)
