package validators

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-list-keeper/models"
)

const (
	// FieldDisplayName targets the public display name of a profile.
	FieldDisplayName = "display_name"

	// FieldUpload targets the payload of a file upload.
	FieldUpload = "upload"
)

// MaxUploadSize bounds icon and avatar uploads.
const MaxUploadSize = 5 << 20

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// ProfileValidator validates profiles and image uploads.
type ProfileValidator struct{}

// NewProfileValidator constructs a new ProfileValidator.
func NewProfileValidator() Validator {
	return &ProfileValidator{}
}

func (v *ProfileValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Profile:
		return v.validateProfile(value, fields...)
	case *models.Profile:
		return v.validateProfile(*value, fields...)
	case models.Upload:
		return v.validateUpload(value)
	case *models.Upload:
		return v.validateUpload(*value)
	default:
		return ErrUnsupportedType
	}
}

func (v *ProfileValidator) validateProfile(profile models.Profile, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldDisplayName}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if profile.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldDisplayName:
			if strings.TrimSpace(profile.DisplayName) == "" {
				return ErrEmptyDisplayName
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ProfileValidator) validateUpload(upload models.Upload) error {
	if upload.OwnerID <= 0 {
		return ErrInvalidUserID
	}
	if len(upload.Data) == 0 {
		return ErrEmptyUpload
	}
	if len(upload.Data) > MaxUploadSize {
		return ErrUploadTooLarge
	}

	mediaType, _, _ := strings.Cut(upload.ContentType, ";")
	for _, allowed := range allowedImageTypes {
		if strings.EqualFold(strings.TrimSpace(mediaType), allowed) {
			return nil
		}
	}
	return ErrInvalidMediaType
}
