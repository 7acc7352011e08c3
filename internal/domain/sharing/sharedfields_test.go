package sharing

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/triplog/internal/domain/models"
)

func someUsers(n int) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, n)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return ids
}

func TestShouldShareByDefault(t *testing.T) {
	if ShouldShareByDefault(nil) {
		t.Error("nil applied-to should not share by default")
	}
	if ShouldShareByDefault([]primitive.ObjectID{}) {
		t.Error("empty applied-to should not share by default")
	}
	if !ShouldShareByDefault(someUsers(1)) {
		t.Error("non-empty applied-to should share by default")
	}
}

func TestInitialSharedFields(t *testing.T) {
	tests := []struct {
		name      string
		appliedTo []primitive.ObjectID
		want      []string
	}{
		{"empty selection", nil, []string{}},
		{"one recipient", someUsers(1), models.AllItemTypes},
		{"many recipients", someUsers(3), models.AllItemTypes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InitialSharedFields(tt.appliedTo, models.AllItemTypes).Slice(models.AllItemTypes)
			if !reflect.DeepEqual(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateSharedFieldsOnAppliedToChange(t *testing.T) {
	tests := []struct {
		name      string
		current   FieldSet
		appliedTo []primitive.ObjectID
		want      []string
	}{
		{
			name:      "emptied selection collapses the set",
			current:   NewFieldSet(models.ItemTravel, models.ItemWorktime),
			appliedTo: nil,
			want:      []string{},
		},
		{
			name:      "empty to non-empty re-enables everything",
			current:   FieldSet{},
			appliedTo: someUsers(2),
			want:      models.AllItemTypes,
		},
		{
			name:      "non-empty to non-empty does not preserve a disabled subset",
			current:   NewFieldSet(models.ItemTravel), // user had toggled the rest off
			appliedTo: someUsers(1),
			want:      models.AllItemTypes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpdateSharedFieldsOnAppliedToChange(tt.current, tt.appliedTo, models.AllItemTypes)
			gotSlice := got.Slice(models.AllItemTypes)
			if len(gotSlice) != len(tt.want) {
				t.Fatalf("got %v, want %v", gotSlice, tt.want)
			}
			for i := range tt.want {
				if gotSlice[i] != tt.want[i] {
					t.Errorf("got %v, want %v", gotSlice, tt.want)
					break
				}
			}
		})
	}
}

func TestUpdateSharedFields_AlwaysSubsetOfAll(t *testing.T) {
	got := UpdateSharedFieldsOnAppliedToChange(NewFieldSet(models.ItemTravel), someUsers(2), models.AllItemTypes)
	for f := range got {
		if !models.ValidItemType(f) {
			t.Errorf("unexpected field type %q in shared set", f)
		}
	}
}

func TestToggle(t *testing.T) {
	s := InitialSharedFields(someUsers(1), models.AllItemTypes)

	s = Toggle(s, models.ItemAccommodation, false)
	if s.Has(models.ItemAccommodation) {
		t.Error("accommodation should be toggled off")
	}
	if !s.Has(models.ItemTravel) || !s.Has(models.ItemWorktime) || !s.Has(models.ItemAdditional) {
		t.Error("toggling one field must not touch the others")
	}

	s = Toggle(s, models.ItemAccommodation, true)
	if !s.Has(models.ItemAccommodation) {
		t.Error("accommodation should be toggled back on")
	}
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	orig := NewFieldSet(models.ItemTravel)
	_ = Toggle(orig, models.ItemTravel, false)
	if !orig.Has(models.ItemTravel) {
		t.Error("Toggle must not mutate its input set")
	}
}
