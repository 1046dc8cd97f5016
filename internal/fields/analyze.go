// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fields implements the list schema model: change analysis between
// two schemas, the value conversion policy and the per-entry rewrite applied
// by schema migrations. Everything here is pure.
package fields

import (
	"slices"

	"github.com/MKhiriev/go-list-keeper/models"
)

// AnalyzeFieldChanges diffs two schemas.
//
// Added, modified and typeChanged records follow the order of newFields;
// removed records follow the order of oldFields and come last. The reserved
// name field is never reported.
func AnalyzeFieldChanges(oldFields, newFields models.FieldDefinitions) []models.FieldChange {
	oldByID := oldFields.ByID()
	newByID := newFields.ByID()

	changes := make([]models.FieldChange, 0)

	for _, newField := range newFields {
		if newField.IsNameField() {
			continue
		}

		oldField, existed := oldByID[newField.ID]
		if !existed {
			changes = append(changes, models.FieldChange{
				Type:      models.FieldAdded,
				FieldID:   newField.ID,
				FieldName: newField.Name,
			})
			continue
		}

		if oldField.Type != newField.Type {
			changes = append(changes, models.FieldChange{
				Type:      models.FieldTypeChanged,
				FieldID:   newField.ID,
				FieldName: newField.Name,
				OldType:   oldField.Type,
				NewType:   newField.Type,
			})
			continue
		}

		if oldField.Name != newField.Name ||
			oldField.Required != newField.Required ||
			!slices.Equal(oldField.Options, newField.Options) {
			changes = append(changes, models.FieldChange{
				Type:      models.FieldModified,
				FieldID:   newField.ID,
				FieldName: newField.Name,
			})
		}
	}

	for _, oldField := range oldFields {
		if oldField.IsNameField() {
			continue
		}
		if _, kept := newByID[oldField.ID]; !kept {
			changes = append(changes, models.FieldChange{
				Type:      models.FieldRemoved,
				FieldID:   oldField.ID,
				FieldName: oldField.Name,
			})
		}
	}

	return changes
}

// HasBreakingChanges reports whether any change requires rewriting stored
// entry values. Additions and metadata edits do not.
func HasBreakingChanges(changes []models.FieldChange) bool {
	return slices.ContainsFunc(changes, models.FieldChange.IsBreaking)
}
