package encoders

// CheckState is the resolved state of a checkbox field. The document
// format has exactly two representable states; nothing upstream of the
// document adapter deals in raw checkbox tokens.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
)

// String implements fmt.Stringer for logs and reports.
func (c CheckState) String() string {
	if c == Checked {
		return "checked"
	}
	return "unchecked"
}

// Checkbox resolves an optional boolean to a definite checkbox state.
// Unknown (nil) resolves to Unchecked; the output is never ambiguous.
func Checkbox(v *bool) CheckState {
	if v != nil && *v {
		return Checked
	}
	return Unchecked
}
