package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-list-keeper/internal/rating"
	"github.com/MKhiriev/go-list-keeper/models"
)

func (v *ListValidator) validateEntry(ctx context.Context, input EntryInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldListID, FieldName, FieldRating, FieldValues}
	}

	entry := input.Entry
	for _, f := range fields {
		switch f {
		case FieldUserID:
			if entry.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldListID:
			if entry.ListID <= 0 {
				return ErrInvalidListID
			}
		case FieldEntryID:
			if entry.ID <= 0 {
				return ErrInvalidEntryID
			}
		case FieldName:
			if strings.TrimSpace(entry.Name) == "" {
				return ErrEmptyEntryName
			}
		case FieldRating:
			if err := rating.Validate(input.List.RatingType, input.List.RatingConfig, entry.Rating); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidRating, err)
			}
		case FieldValues:
			if err := ValidateFieldValues(input.List.FieldDefinitions, entry.FieldValues, true); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ListValidator) validateEntryUpdate(ctx context.Context, input EntryUpdateInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldEntryID, FieldUpdate, FieldName, FieldRating, FieldValues}
	}

	update := input.Update
	for _, f := range fields {
		switch f {
		case FieldUserID:
			if update.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldEntryID:
			if update.ID <= 0 {
				return ErrInvalidEntryID
			}
		case FieldUpdate:
			if update.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
				return ErrEmptyEntryName
			}
		case FieldRating:
			if update.ClearRating {
				continue
			}
			if err := rating.Validate(input.List.RatingType, input.List.RatingConfig, update.Rating); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidRating, err)
			}
		case FieldValues:
			if update.FieldValues == nil {
				continue
			}
			if err := ValidateFieldValues(input.List.FieldDefinitions, *update.FieldValues, true); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateFieldValues checks values against the custom fields of defs.
//
// Every key must name a custom field of the schema and every value must
// conform to its field type. Values of rating fields must lie within the
// field's rating config. When enforceRequired is set, required fields must
// hold a non-null value.
func ValidateFieldValues(defs models.FieldDefinitions, values models.FieldValues, enforceRequired bool) error {
	byID := defs.ByID()

	for id, value := range values {
		def, ok := byID[id]
		if !ok || def.IsNameField() {
			return fmt.Errorf("%w: %q", ErrUnknownFieldValue, id)
		}
		if !value.ConformsTo(def.Type) {
			return fmt.Errorf("%w: field %q expects %s, got %s", ErrFieldValueMismatch, id, def.Type, value.Kind())
		}
		if def.Type == models.FieldTypeRating && def.RatingConfig != nil {
			if n, isNumber := value.Number(); isNumber {
				cfg := models.RatingConfig{Max: def.RatingConfig.Max, Step: def.RatingConfig.Step}
				if err := rating.Validate(models.RatingPoints, cfg, &n); err != nil {
					return fmt.Errorf("%w: field %q: %w", ErrInvalidRating, id, err)
				}
			}
		}
	}

	if !enforceRequired {
		return nil
	}

	for _, def := range defs.Custom() {
		if !def.Required {
			continue
		}
		if values[def.ID].IsNull() {
			return fmt.Errorf("%w: %q", ErrRequiredFieldValue, def.ID)
		}
	}

	return nil
}
