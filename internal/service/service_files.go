package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/internal/validators"
	"github.com/MKhiriev/go-list-keeper/models"
)

const (
	BucketIcons   = "icons"
	BucketAvatars = "avatars"
)

type fileService struct {
	objects   store.ObjectStore
	validator validators.Validator

	logger *logger.Logger
}

func NewFileService(objects store.ObjectStore, logger *logger.Logger) FileService {
	return &fileService{
		objects:   objects,
		validator: validators.NewProfileValidator(),
		logger:    logger,
	}
}

// Upload stores an image and returns its public URL. Storage failures are
// reported as ErrUploadFailed with the bucket and file name attached.
func (f *fileService) Upload(ctx context.Context, upload models.Upload) (models.StoredObject, error) {
	if err := f.validator.Validate(ctx, upload); err != nil {
		return models.StoredObject{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	stored, err := f.objects.Save(ctx, upload)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*fileService.Upload").
			Str("bucket", upload.Bucket).
			Str("file_name", upload.FileName).
			Msg("failed to store upload")
		return models.StoredObject{}, fmt.Errorf("%w: %s/%s: %w", ErrUploadFailed, upload.Bucket, upload.FileName, err)
	}

	return stored, nil
}
