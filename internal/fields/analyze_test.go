// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fields

import (
	"testing"

	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFieldChanges(t *testing.T) {
	tests := []struct {
		name      string
		oldFields models.FieldDefinitions
		newFields models.FieldDefinitions
		want      []models.FieldChange
	}{
		{
			name:      "no changes",
			oldFields: models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText}},
			newFields: models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText}},
			want:      []models.FieldChange{},
		},
		{
			name:      "added field",
			oldFields: models.FieldDefinitions{},
			newFields: models.FieldDefinitions{{ID: "4", Name: "Notes", Type: models.FieldTypeText}},
			want: []models.FieldChange{
				{Type: models.FieldAdded, FieldID: "4", FieldName: "Notes"},
			},
		},
		{
			name:      "removed field",
			oldFields: models.FieldDefinitions{{ID: "3", Name: "Price", Type: models.FieldTypeNumber}},
			newFields: models.FieldDefinitions{},
			want: []models.FieldChange{
				{Type: models.FieldRemoved, FieldID: "3", FieldName: "Price"},
			},
		},
		{
			name:      "type change supersedes rename",
			oldFields: models.FieldDefinitions{{ID: "2", Name: "Kind", Type: models.FieldTypeDropdown, Options: []string{"A", "B"}}},
			newFields: models.FieldDefinitions{{ID: "2", Name: "Kinds", Type: models.FieldTypeMultiSelect, Options: []string{"A", "B"}}},
			want: []models.FieldChange{
				{
					Type:      models.FieldTypeChanged,
					FieldID:   "2",
					FieldName: "Kinds",
					OldType:   models.FieldTypeDropdown,
					NewType:   models.FieldTypeMultiSelect,
				},
			},
		},
		{
			name:      "renamed field",
			oldFields: models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText}},
			newFields: models.FieldDefinitions{{ID: "2", Name: "Kitchen", Type: models.FieldTypeText}},
			want: []models.FieldChange{
				{Type: models.FieldModified, FieldID: "2", FieldName: "Kitchen"},
			},
		},
		{
			name:      "required flag toggled",
			oldFields: models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText}},
			newFields: models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText, Required: true}},
			want: []models.FieldChange{
				{Type: models.FieldModified, FieldID: "2", FieldName: "Cuisine"},
			},
		},
		{
			name:      "options reordered",
			oldFields: models.FieldDefinitions{{ID: "2", Name: "Kind", Type: models.FieldTypeDropdown, Options: []string{"A", "B"}}},
			newFields: models.FieldDefinitions{{ID: "2", Name: "Kind", Type: models.FieldTypeDropdown, Options: []string{"B", "A"}}},
			want: []models.FieldChange{
				{Type: models.FieldModified, FieldID: "2", FieldName: "Kind"},
			},
		},
		{
			name:      "order change alone is not reported",
			oldFields: models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText, Order: 1}},
			newFields: models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText, Order: 5}},
			want:      []models.FieldChange{},
		},
		{
			name: "mixed changes keep scan order",
			oldFields: models.FieldDefinitions{
				{ID: "2", Name: "A", Type: models.FieldTypeText},
				{ID: "3", Name: "B", Type: models.FieldTypeNumber},
				{ID: "5", Name: "E", Type: models.FieldTypeDate},
			},
			newFields: models.FieldDefinitions{
				{ID: "4", Name: "D", Type: models.FieldTypeText},
				{ID: "2", Name: "A", Type: models.FieldTypeNumber},
			},
			want: []models.FieldChange{
				{Type: models.FieldAdded, FieldID: "4", FieldName: "D"},
				{Type: models.FieldTypeChanged, FieldID: "2", FieldName: "A", OldType: models.FieldTypeText, NewType: models.FieldTypeNumber},
				{Type: models.FieldRemoved, FieldID: "3", FieldName: "B"},
				{Type: models.FieldRemoved, FieldID: "5", FieldName: "E"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeFieldChanges(tt.oldFields, tt.newFields)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzeFieldChanges_NameFieldIsNeverReported(t *testing.T) {
	nameField := models.FieldDefinition{ID: models.NameFieldID, Name: "Name", Type: models.FieldTypeText, Required: true}
	renamed := models.FieldDefinition{ID: models.NameFieldID, Name: "Title", Type: models.FieldTypeNumber}

	cases := [][2]models.FieldDefinitions{
		{{nameField}, {}},
		{{}, {nameField}},
		{{nameField}, {renamed}},
		{{nameField, {ID: "2", Name: "X", Type: models.FieldTypeText}}, {renamed}},
	}

	for _, c := range cases {
		for _, change := range AnalyzeFieldChanges(c[0], c[1]) {
			assert.NotEqual(t, models.NameFieldID, change.FieldID)
		}
	}
}

func TestAnalyzeFieldChanges_Deterministic(t *testing.T) {
	oldFields := models.FieldDefinitions{
		{ID: "2", Name: "A", Type: models.FieldTypeText},
		{ID: "3", Name: "B", Type: models.FieldTypeNumber},
	}
	newFields := models.FieldDefinitions{
		{ID: "3", Name: "B", Type: models.FieldTypeText},
		{ID: "6", Name: "F", Type: models.FieldTypeYesNo},
	}

	first := AnalyzeFieldChanges(oldFields, newFields)
	for range 10 {
		require.Equal(t, first, AnalyzeFieldChanges(oldFields, newFields))
	}
}

func TestHasBreakingChanges(t *testing.T) {
	assert.False(t, HasBreakingChanges(nil))
	assert.False(t, HasBreakingChanges([]models.FieldChange{
		{Type: models.FieldAdded, FieldID: "4"},
		{Type: models.FieldModified, FieldID: "2"},
	}))
	assert.True(t, HasBreakingChanges([]models.FieldChange{
		{Type: models.FieldAdded, FieldID: "4"},
		{Type: models.FieldRemoved, FieldID: "3"},
	}))
	assert.True(t, HasBreakingChanges([]models.FieldChange{
		{Type: models.FieldTypeChanged, FieldID: "2"},
	}))
}
