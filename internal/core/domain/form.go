package domain

// FieldKind is the widget type a template reports for one fillable field.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldCheckbox FieldKind = "checkbox"
	FieldDropdown FieldKind = "dropdown"
	// FieldUnknown covers widget types the engine does not write
	// (signatures, buttons, barcodes). They are counted as skipped.
	FieldUnknown FieldKind = "unknown"
)

// FormField is one fillable field as reported by the loaded template.
// The ID is an opaque hierarchical key owned by the template (e.g.
// "topmostSubform[0].Page3[0].Datawyp[0]") and must never be parsed for
// meaning.
type FormField struct {
	ID        string    `json:"id"`
	Kind      FieldKind `json:"kind"`
	MaxLength int       `json:"max_length,omitempty"` // 0 means unlimited
	Options   []string  `json:"options,omitempty"`    // dropdown choices
}

// HasOption reports whether value is one of the field's declared choices.
func (f *FormField) HasOption(value string) bool {
	for _, o := range f.Options {
		if o == value {
			return true
		}
	}
	return false
}
