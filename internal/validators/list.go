// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/MKhiriev/go-list-keeper/internal/rating"
	"github.com/MKhiriev/go-list-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldUserID targets the owner identifier of a list, entry or request.
	FieldUserID = "user_id"

	// FieldListID targets the list identifier.
	FieldListID = "list_id"

	// FieldEntryID targets the entry identifier.
	FieldEntryID = "entry_id"

	// FieldName targets the user-facing name of a list or entry.
	FieldName = "name"

	// FieldIcon targets the list icon (emoji or URL).
	FieldIcon = "icon"

	// FieldRating targets the rating type and config of a list, or the
	// rating of an entry.
	FieldRating = "rating"

	// FieldDefinitions targets the list schema.
	FieldDefinitions = "field_definitions"

	// FieldValues targets the custom field values of an entry.
	FieldValues = "field_values"

	// FieldUpdate enforces that a partial update carries at least one field.
	FieldUpdate = "update"
)

// maxIconLength bounds the icon column; icons are an emoji or a public URL.
const maxIconLength = 2048

// EntryInput pairs an entry with the list it is written to. Field values
// and the rating can only be checked against the owning list.
type EntryInput struct {
	Entry models.Entry
	List  models.List
}

// EntryUpdateInput pairs a partial entry update with the owning list.
type EntryUpdateInput struct {
	Update models.EntryUpdate
	List   models.List
}

// ListValidator implements the Validator interface for lists, schemas and
// entries.
type ListValidator struct {
}

// NewListValidator constructs a new ListValidator
// and returns it as the Validator interface.
func NewListValidator() Validator {
	return &ListValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms are
// accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *ListValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.List:
		return v.validateList(ctx, value, fields...)
	case *models.List:
		return v.validateList(ctx, *value, fields...)

	case models.ListUpdate:
		return v.validateListUpdate(ctx, value, fields...)
	case *models.ListUpdate:
		return v.validateListUpdate(ctx, *value, fields...)

	case models.ListFieldsUpdate:
		return v.validateListFieldsUpdate(ctx, value, fields...)
	case *models.ListFieldsUpdate:
		return v.validateListFieldsUpdate(ctx, *value, fields...)

	case models.FieldDefinitions:
		return validateFieldDefinitions(value)

	case EntryInput:
		return v.validateEntry(ctx, value, fields...)
	case *EntryInput:
		return v.validateEntry(ctx, *value, fields...)

	case EntryUpdateInput:
		return v.validateEntryUpdate(ctx, value, fields...)
	case *EntryUpdateInput:
		return v.validateEntryUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ListValidator) validateList(ctx context.Context, list models.List, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldName, FieldIcon, FieldRating, FieldDefinitions}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if list.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldListID:
			if list.ID <= 0 {
				return ErrInvalidListID
			}
		case FieldName:
			if strings.TrimSpace(list.Name) == "" {
				return ErrEmptyListName
			}
		case FieldIcon:
			if len(list.Icon) > maxIconLength {
				return ErrInvalidIconSize
			}
		case FieldRating:
			if err := rating.ValidateConfig(list.RatingType, list.RatingConfig); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidRating, err)
			}
		case FieldDefinitions:
			if err := validateFieldDefinitions(list.FieldDefinitions); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ListValidator) validateListUpdate(ctx context.Context, update models.ListUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldListID, FieldUpdate, FieldName, FieldIcon, FieldRating}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if update.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldListID:
			if update.ID <= 0 {
				return ErrInvalidListID
			}
		case FieldUpdate:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
				return ErrEmptyListName
			}
		case FieldIcon:
			if update.Icon != nil && len(*update.Icon) > maxIconLength {
				return ErrInvalidIconSize
			}
		case FieldRating:
			if update.RatingType == nil && update.RatingConfig == nil {
				continue
			}
			// a config without a type is checked against any valid type
			ratingType := models.RatingStars
			if update.RatingType != nil {
				ratingType = *update.RatingType
			}
			var cfg models.RatingConfig
			if update.RatingConfig != nil {
				cfg = *update.RatingConfig
			}
			if err := rating.ValidateConfig(ratingType, cfg); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidRating, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ListValidator) validateListFieldsUpdate(ctx context.Context, update models.ListFieldsUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldListID, FieldDefinitions}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if update.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldListID:
			if update.ListID <= 0 {
				return ErrInvalidListID
			}
		case FieldDefinitions:
			if err := validateFieldDefinitions(update.FieldDefinitions); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateFieldDefinitions checks a whole schema. Field ids must be unique;
// the reserved name field, when present, must be a text field.
func validateFieldDefinitions(defs models.FieldDefinitions) error {
	seen := make(map[string]struct{}, len(defs))

	for i, def := range defs {
		if err := validateFieldDefinition(def); err != nil {
			return fmt.Errorf("field at index %d: %w", i, err)
		}
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateFieldID, def.ID)
		}
		seen[def.ID] = struct{}{}
	}

	return nil
}

func validateFieldDefinition(def models.FieldDefinition) error {
	if strings.TrimSpace(def.ID) == "" {
		return ErrEmptyFieldID
	}
	if strings.TrimSpace(def.Name) == "" {
		return ErrEmptyFieldName
	}
	if !def.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidFieldType, def.Type)
	}
	if def.IsNameField() && def.Type != models.FieldTypeText {
		return ErrInvalidNameField
	}

	if len(def.Options) > 0 {
		if !def.Type.HasOptions() {
			return ErrOptionsNotAllowed
		}
		options := make(map[string]struct{}, len(def.Options))
		for _, opt := range def.Options {
			if strings.TrimSpace(opt) == "" {
				return ErrEmptyOption
			}
			if _, dup := options[opt]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateOption, opt)
			}
			options[opt] = struct{}{}
		}
	}

	if def.RatingConfig != nil {
		if def.Type != models.FieldTypeRating {
			return ErrRatingConfigForbidden
		}
		if def.RatingConfig.Max <= 0 || def.RatingConfig.Step < 0 || math.IsInf(def.RatingConfig.Max, 0) {
			return ErrInvalidRatingConfig
		}
	}

	return nil
}
