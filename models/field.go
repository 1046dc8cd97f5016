// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// FieldType defines how the values of a custom list field are interpreted,
// validated and converted during schema migrations.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeDropdown    FieldType = "dropdown"
	FieldTypeMultiSelect FieldType = "multi-select"
	FieldTypeYesNo       FieldType = "yes-no"
	FieldTypeRating      FieldType = "rating"
)

// NameFieldID is the reserved identifier of the entry name field.
// The name itself is stored in [Entry.Name]; a field definition carrying this
// id is never analysed, migrated or rendered as a custom field.
const NameFieldID = "1"

// AllFieldTypes lists every supported [FieldType].
var AllFieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeDropdown,
	FieldTypeMultiSelect,
	FieldTypeYesNo,
	FieldTypeRating,
}

// IsValid reports whether t is one of the supported field types.
func (t FieldType) IsValid() bool {
	return slices.Contains(AllFieldTypes, t)
}

// HasOptions reports whether fields of this type carry a list of options.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeDropdown || t == FieldTypeMultiSelect
}

// FieldRatingConfig configures a field of type [FieldTypeRating].
type FieldRatingConfig struct {
	Max  float64 `json:"max"`
	Step float64 `json:"step,omitempty"`
}

// FieldDefinition is a single element of a list schema. It describes one
// attribute that entries of the list may carry.
type FieldDefinition struct {
	// ID identifies the field inside its list. Values of the field are stored
	// under this key in [Entry.FieldValues].
	ID string `json:"id"`

	// Name is the user-facing label.
	Name string `json:"name"`

	// Type determines how values are validated and converted.
	Type FieldType `json:"type"`

	// Required marks fields that must hold a non-null value.
	Required bool `json:"required"`

	// Options is the ordered set of choices for dropdown and multi-select
	// fields. It is ignored for all other types.
	Options []string `json:"options,omitempty"`

	// RatingConfig is only used by fields of type rating.
	RatingConfig *FieldRatingConfig `json:"ratingConfig,omitempty"`

	// Order defines the display sequence. It does not have to be unique.
	Order int `json:"order"`
}

// IsNameField reports whether the definition describes the reserved name field.
func (f FieldDefinition) IsNameField() bool {
	return f.ID == NameFieldID
}

// FieldDefinitions is the ordered schema of a list. It is persisted as a
// JSONB column.
type FieldDefinitions []FieldDefinition

// Sorted returns a copy ordered by [FieldDefinition.Order]. Ties keep their
// original relative sequence.
func (fd FieldDefinitions) Sorted() FieldDefinitions {
	sorted := slices.Clone(fd)
	slices.SortStableFunc(sorted, func(a, b FieldDefinition) int {
		return a.Order - b.Order
	})
	return sorted
}

// Custom returns the definitions without the reserved name field, in display order.
func (fd FieldDefinitions) Custom() FieldDefinitions {
	custom := make(FieldDefinitions, 0, len(fd))
	for _, def := range fd.Sorted() {
		if def.IsNameField() {
			continue
		}
		custom = append(custom, def)
	}
	return custom
}

// ByID indexes the definitions by field id.
func (fd FieldDefinitions) ByID() map[string]FieldDefinition {
	index := make(map[string]FieldDefinition, len(fd))
	for _, def := range fd {
		index[def.ID] = def
	}
	return index
}

// Value implements [driver.Valuer].
func (fd FieldDefinitions) Value() (driver.Value, error) {
	if fd == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(fd)
}

// Scan implements [sql.Scanner].
func (fd *FieldDefinitions) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*fd = FieldDefinitions{}
		return nil
	case []byte:
		return json.Unmarshal(v, fd)
	case string:
		return json.Unmarshal([]byte(v), fd)
	default:
		return fmt.Errorf("%w: field definitions from %T", errUnsupportedScanType, src)
	}
}

var errUnsupportedScanType = errors.New("unsupported scan type")
