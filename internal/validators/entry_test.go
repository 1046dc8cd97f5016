package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/stretchr/testify/assert"
)

func TestListValidator_Entry(t *testing.T) {
	v := NewListValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.Entry)
		wantErr error
	}{
		{"valid", func(*models.Entry) {}, nil},
		{"unset rating", func(e *models.Entry) { e.Rating = nil }, nil},
		{"missing list", func(e *models.Entry) { e.ListID = 0 }, ErrInvalidListID},
		{"blank name", func(e *models.Entry) { e.Name = "" }, ErrEmptyEntryName},
		{"rating above max", func(e *models.Entry) { e.Rating = ptr(5.5) }, ErrInvalidRating},
		{"rating off step", func(e *models.Entry) { e.Rating = ptr(4.2) }, ErrInvalidRating},
		{"value keyed by name field", func(e *models.Entry) { e.FieldValues[models.NameFieldID] = models.StringValue("x") }, ErrUnknownFieldValue},
		{"value for unknown field", func(e *models.Entry) { e.FieldValues["99"] = models.NullValue() }, ErrUnknownFieldValue},
		{"number for dropdown", func(e *models.Entry) { e.FieldValues["2"] = models.NumberValue(1) }, ErrFieldValueMismatch},
		{"string for multi-select", func(e *models.Entry) { e.FieldValues["4"] = models.StringValue("cosy") }, ErrFieldValueMismatch},
		{"maybe for yes-no", func(e *models.Entry) { e.FieldValues["5"] = models.StringValue("maybe") }, ErrFieldValueMismatch},
		{"rating field over its max", func(e *models.Entry) { e.FieldValues["6"] = models.NumberValue(11) }, ErrInvalidRating},
		{"required field null", func(e *models.Entry) { e.FieldValues["3"] = models.NullValue() }, ErrRequiredFieldValue},
		{"required field missing", func(e *models.Entry) { delete(e.FieldValues, "3") }, ErrRequiredFieldValue},
		{"optional field missing", func(e *models.Entry) { delete(e.FieldValues, "2") }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(&e)
			err := v.Validate(ctx, EntryInput{Entry: e, List: validList()})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListValidator_EntryUpdate(t *testing.T) {
	v := NewListValidator()
	ctx := context.Background()
	list := validList()

	values := validEntry().FieldValues
	badValues := models.FieldValues{"3": models.StringValue("cheap")}

	tests := []struct {
		name    string
		update  models.EntryUpdate
		wantErr error
	}{
		{"rename", models.EntryUpdate{ID: 3, UserID: 1, Name: ptr("Baan")}, nil},
		{"clear rating", models.EntryUpdate{ID: 3, UserID: 1, ClearRating: true, Rating: ptr(99.0)}, nil},
		{"replace values", models.EntryUpdate{ID: 3, UserID: 1, FieldValues: &values}, nil},
		{"empty update", models.EntryUpdate{ID: 3, UserID: 1}, ErrNoFieldsToUpdate},
		{"missing entry id", models.EntryUpdate{UserID: 1, Name: ptr("Baan")}, ErrInvalidEntryID},
		{"missing user", models.EntryUpdate{ID: 3, Name: ptr("Baan")}, ErrInvalidUserID},
		{"blank name", models.EntryUpdate{ID: 3, UserID: 1, Name: ptr(" ")}, ErrEmptyEntryName},
		{"negative rating", models.EntryUpdate{ID: 3, UserID: 1, Rating: ptr(-1.0)}, ErrInvalidRating},
		{"mismatched values", models.EntryUpdate{ID: 3, UserID: 1, FieldValues: &badValues}, ErrFieldValueMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, EntryUpdateInput{Update: tt.update, List: list})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateFieldValues_WithoutRequired(t *testing.T) {
	defs := validList().FieldDefinitions

	assert.NoError(t, ValidateFieldValues(defs, models.FieldValues{}, false))
	assert.ErrorIs(t, ValidateFieldValues(defs, models.FieldValues{}, true), ErrRequiredFieldValue)
}
