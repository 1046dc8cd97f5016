package fields

import (
	"testing"

	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/stretchr/testify/assert"
)

func TestMigrateValues_DropdownToMultiSelect(t *testing.T) {
	oldFields := models.FieldDefinitions{{ID: "2", Name: "Kind", Type: models.FieldTypeDropdown, Options: []string{"A", "B"}}}
	newFields := models.FieldDefinitions{{ID: "2", Name: "Kind", Type: models.FieldTypeMultiSelect, Options: []string{"A", "B"}}}

	got := MigrateValues(models.FieldValues{"2": models.StringValue("A")}, oldFields, newFields)

	assert.Equal(t, models.FieldValues{"2": models.ListValue("A")}, got)
}

func TestMigrateValues_RemovedFieldIsDropped(t *testing.T) {
	oldFields := models.FieldDefinitions{
		{ID: "2", Name: "Cuisine", Type: models.FieldTypeText},
		{ID: "3", Name: "Price", Type: models.FieldTypeNumber},
	}
	newFields := models.FieldDefinitions{
		{ID: "2", Name: "Cuisine", Type: models.FieldTypeText},
	}

	got := MigrateValues(models.FieldValues{
		"2": models.StringValue("Thai"),
		"3": models.NumberValue(25),
	}, oldFields, newFields)

	assert.NotContains(t, got, "3")
	assert.Equal(t, models.StringValue("Thai"), got["2"])
}

func TestMigrateValues_AddedFieldStartsNull(t *testing.T) {
	oldFields := models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText}}
	newFields := models.FieldDefinitions{
		{ID: "2", Name: "Cuisine", Type: models.FieldTypeText},
		{ID: "4", Name: "Notes", Type: models.FieldTypeText},
	}

	got := MigrateValues(models.FieldValues{"2": models.StringValue("Thai")}, oldFields, newFields)

	v, ok := got["4"]
	assert.True(t, ok)
	assert.True(t, v.IsNull())
}

func TestMigrateValues_SkipsNameFieldAndStaleKeys(t *testing.T) {
	oldFields := models.FieldDefinitions{
		{ID: models.NameFieldID, Name: "Name", Type: models.FieldTypeText},
		{ID: "2", Name: "Visited", Type: models.FieldTypeText},
	}
	newFields := models.FieldDefinitions{
		{ID: models.NameFieldID, Name: "Name", Type: models.FieldTypeText},
		{ID: "2", Name: "Visited", Type: models.FieldTypeYesNo},
	}

	values := models.FieldValues{
		"2":     models.StringValue("True"),
		"stale": models.StringValue("left over"),
	}

	got := MigrateValues(values, oldFields, newFields)

	assert.Equal(t, models.FieldValues{"2": models.StringValue("yes")}, got)
	assert.Len(t, values, 2, "input must not be modified")
}

func TestMigrateValues_UnchangedTypeKeepsValue(t *testing.T) {
	defs := models.FieldDefinitions{{ID: "2", Name: "Tags", Type: models.FieldTypeMultiSelect}}

	got := MigrateValues(models.FieldValues{"2": models.ListValue("x", "y")}, defs, defs)

	assert.Equal(t, models.FieldValues{"2": models.ListValue("x", "y")}, got)
}

func TestMigrateValues_MissingValueOfExistingFieldIsNull(t *testing.T) {
	oldFields := models.FieldDefinitions{{ID: "2", Name: "Price", Type: models.FieldTypeText}}
	newFields := models.FieldDefinitions{{ID: "2", Name: "Price", Type: models.FieldTypeNumber}}

	got := MigrateValues(models.FieldValues{}, oldFields, newFields)

	assert.True(t, got["2"].IsNull())
}

func TestFingerprint(t *testing.T) {
	a := models.FieldDefinitions{{ID: "2", Name: "A", Type: models.FieldTypeText}}
	b := models.FieldDefinitions{{ID: "2", Name: "A", Type: models.FieldTypeNumber}}

	assert.NotEmpty(t, Fingerprint(a))
	assert.Equal(t, Fingerprint(a), Fingerprint(models.FieldDefinitions{{ID: "2", Name: "A", Type: models.FieldTypeText}}))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}
