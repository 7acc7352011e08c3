// Package sharing holds the pure derivation rules for shared daily-log
// entries: which form sections count as "shared" for an entry being edited,
// and which attendant entries are linked to a main entry.
//
// Everything here is synchronous and side-effect free; the dailylogs store
// applies these rules against the database.
package sharing

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldSet is a set of item-type tags marked as shared for the entry
// currently being edited.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from the given item types.
func NewFieldSet(types ...string) FieldSet {
	s := make(FieldSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether the item type is in the set.
func (s FieldSet) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// Slice returns the set's members in the order they appear in ordered.
// Members not listed in ordered are dropped; a FieldSet is always a subset
// of the configured item types, so nothing is lost in practice.
func (s FieldSet) Slice(ordered []string) []string {
	out := make([]string, 0, len(s))
	for _, t := range ordered {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// ShouldShareByDefault reports whether a freshly opened entry defaults to
// shared: true exactly when the applied-to selection is non-empty.
func ShouldShareByDefault(appliedTo []primitive.ObjectID) bool {
	return len(appliedTo) > 0
}

// InitialSharedFields returns the shared-field set for an entry that has
// just been loaded: empty when nobody is selected, otherwise every field
// type starts out shared.
func InitialSharedFields(appliedTo []primitive.ObjectID, allFieldTypes []string) FieldSet {
	if len(appliedTo) == 0 {
		return FieldSet{}
	}
	return NewFieldSet(allFieldTypes...)
}

// UpdateSharedFieldsOnAppliedToChange recomputes the shared-field set after
// the applied-to selection changed. An emptied selection collapses the set;
// any non-empty selection re-enables all field types, deliberately not
// preserving a previously toggled-off subset.
func UpdateSharedFieldsOnAppliedToChange(current FieldSet, appliedTo []primitive.ObjectID, allFieldTypes []string) FieldSet {
	if len(appliedTo) == 0 {
		return FieldSet{}
	}
	next := NewFieldSet(allFieldTypes...)
	for t := range current {
		next[t] = struct{}{}
	}
	return next
}

// Toggle returns a copy of current with the field type added when enabled
// is true and removed otherwise.
func Toggle(current FieldSet, fieldType string, enabled bool) FieldSet {
	next := make(FieldSet, len(current)+1)
	for t := range current {
		next[t] = struct{}{}
	}
	if enabled {
		next[fieldType] = struct{}{}
	} else {
		delete(next, fieldType)
	}
	return next
}
