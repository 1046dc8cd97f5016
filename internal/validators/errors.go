package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidListID    = errors.New("invalid list ID")
	ErrInvalidEntryID   = errors.New("invalid entry ID")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")

	ErrEmptyListName   = errors.New("list name is required")
	ErrEmptyEntryName  = errors.New("entry name is required")
	ErrInvalidRating   = errors.New("invalid rating")
	ErrInvalidIconSize = errors.New("icon is too long")

	ErrEmptyFieldID          = errors.New("field id is required")
	ErrDuplicateFieldID      = errors.New("duplicate field id")
	ErrEmptyFieldName        = errors.New("field name is required")
	ErrInvalidFieldType      = errors.New("invalid field type")
	ErrInvalidNameField      = errors.New("name field must be of type text")
	ErrOptionsNotAllowed     = errors.New("options are only allowed for dropdown and multi-select fields")
	ErrDuplicateOption       = errors.New("duplicate field option")
	ErrEmptyOption           = errors.New("field option must not be empty")
	ErrRatingConfigForbidden = errors.New("rating config is only allowed for rating fields")
	ErrInvalidRatingConfig   = errors.New("invalid field rating config")

	ErrUnknownFieldValue  = errors.New("value for unknown field")
	ErrFieldValueMismatch = errors.New("value does not match field type")
	ErrRequiredFieldValue = errors.New("required field has no value")

	ErrEmptyDisplayName = errors.New("display name is required")
	ErrEmptyUpload      = errors.New("upload is empty")
	ErrUploadTooLarge   = errors.New("upload is too large")
	ErrInvalidMediaType = errors.New("unsupported media type")
)
