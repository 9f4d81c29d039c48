package viewmodel

import "strconv"

// FieldSpec describes one editable form field of an entity screen.
type FieldSpec[E any] struct {
	// Name is the field key, matching the wire name (e.g. "order_number").
	Name string
	// Default is the form value when nothing is selected.
	Default string
	// Present renders the entity's value as form text; absent optional
	// fields render as the empty string.
	Present func(e *E) string
	// Validate, when set, runs on every edit of this field and returns a
	// human-readable message, or "" when the value is acceptable. It is
	// advisory only and never blocks further edits.
	Validate func(value string) string
}

// Schema is everything the generic view-model needs to know about one
// entity type.
type Schema[E any] struct {
	// Noun and Plural name the entity in status messages ("client",
	// "clients").
	Noun   string
	Plural string
	// ID reads the server-assigned id; 0 means not yet created.
	ID func(e *E) int
	// Fields in form/rendering order.
	Fields []FieldSpec[E]
	// Collect builds a draft entity from the current form values. A
	// non-empty reason is the first validation failure; no draft is
	// produced then.
	Collect func(get func(name string) string) (*E, string)
}

func presentInt(v int) string {
	return strconv.Itoa(v)
}

func presentOptString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func presentOptInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
