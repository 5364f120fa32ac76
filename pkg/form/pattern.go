package form

// Pattern is the form-wide interaction mode. It is the single source
// of truth the boolean views derive from; there is no independent
// editable/disabled state to drift out of sync.
type Pattern string

const (
	PatternEditable   Pattern = "editable"
	PatternReadOnly   Pattern = "readOnly"
	PatternDisabled   Pattern = "disabled"
	PatternReadPretty Pattern = "readPretty"
)

// Valid reports whether p is one of the defined interaction modes.
func (p Pattern) Valid() bool {
	switch p {
	case PatternEditable, PatternReadOnly, PatternDisabled, PatternReadPretty:
		return true
	}
	return false
}

// Pattern returns the current interaction mode.
func (f *Form) Pattern() Pattern {
	return f.pattern.Get()
}

// SetPattern switches the interaction mode. Unknown modes are ignored.
func (f *Form) SetPattern(p Pattern) {
	if !p.Valid() {
		f.logger.Warn("form: ignoring unknown pattern", "pattern", string(p))
		return
	}
	f.pattern.Set(p)
}

// Editable reports whether the form is in the editable mode.
func (f *Form) Editable() bool { return f.Pattern() == PatternEditable }

// SetEditable forces the editable mode when true; false switches to
// readOnly.
func (f *Form) SetEditable(editable bool) {
	if editable {
		f.SetPattern(PatternEditable)
		return
	}
	f.SetPattern(PatternReadOnly)
}

// ReadOnly reports whether the form is in the readOnly mode.
func (f *Form) ReadOnly() bool { return f.Pattern() == PatternReadOnly }

// SetReadOnly forces the readOnly mode when true; false switches back
// to editable.
func (f *Form) SetReadOnly(readOnly bool) {
	if readOnly {
		f.SetPattern(PatternReadOnly)
		return
	}
	f.SetPattern(PatternEditable)
}

// Disabled reports whether the form is in the disabled mode.
func (f *Form) Disabled() bool { return f.Pattern() == PatternDisabled }

// SetDisabled forces the disabled mode when true; false switches back
// to editable.
func (f *Form) SetDisabled(disabled bool) {
	if disabled {
		f.SetPattern(PatternDisabled)
		return
	}
	f.SetPattern(PatternEditable)
}

// ReadPretty reports whether the form is in the readPretty mode.
func (f *Form) ReadPretty() bool { return f.Pattern() == PatternReadPretty }

// SetReadPretty forces the readPretty mode when true; false switches
// back to editable.
func (f *Form) SetReadPretty(readPretty bool) {
	if readPretty {
		f.SetPattern(PatternReadPretty)
		return
	}
	f.SetPattern(PatternEditable)
}
