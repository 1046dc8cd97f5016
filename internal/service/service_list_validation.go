package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-list-keeper/internal/validators"
	"github.com/MKhiriev/go-list-keeper/models"
)

// ListServiceWrapper decorates a ListService, e.g. with input validation.
type ListServiceWrapper interface {
	Wrap(ListService) ListService
}

// listValidationService checks list input before it reaches the wrapped
// ListService. Ownership is left to the inner service, so user ids are not
// validated here.
type listValidationService struct {
	inner     ListService
	validator validators.Validator
}

func NewListValidationService() ListServiceWrapper {
	return &listValidationService{
		validator: validators.NewListValidator(),
	}
}

func (v *listValidationService) Wrap(inner ListService) ListService {
	v.inner = inner
	return v
}

func (v *listValidationService) CreateList(ctx context.Context, list models.List) (models.List, error) {
	err := v.validator.Validate(ctx, list,
		validators.FieldName, validators.FieldIcon, validators.FieldRating, validators.FieldDefinitions)
	if err != nil {
		return models.List{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.CreateList(ctx, list)
}

func (v *listValidationService) GetList(ctx context.Context, listID int64) (models.List, error) {
	return v.inner.GetList(ctx, listID)
}

func (v *listValidationService) GetUserLists(ctx context.Context) ([]models.List, error) {
	return v.inner.GetUserLists(ctx)
}

func (v *listValidationService) CountLists(ctx context.Context) (int64, error) {
	return v.inner.CountLists(ctx)
}

func (v *listValidationService) UpdateList(ctx context.Context, update models.ListUpdate) (models.List, error) {
	if update.ID <= 0 {
		return models.List{}, ErrListIDRequired
	}

	err := v.validator.Validate(ctx, update,
		validators.FieldUpdate, validators.FieldName, validators.FieldIcon, validators.FieldRating)
	if err != nil {
		return models.List{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return v.inner.UpdateList(ctx, update)
}

func (v *listValidationService) UpdateListFields(ctx context.Context, update models.ListFieldsUpdate) (models.SchemaUpdate, error) {
	if err := v.validateFields(ctx, update); err != nil {
		return models.SchemaUpdate{}, err
	}

	return v.inner.UpdateListFields(ctx, update)
}

func (v *listValidationService) AnalyzeFields(ctx context.Context, update models.ListFieldsUpdate) ([]models.FieldChange, error) {
	if err := v.validateFields(ctx, update); err != nil {
		return nil, err
	}

	return v.inner.AnalyzeFields(ctx, update)
}

func (v *listValidationService) DeleteList(ctx context.Context, listID int64) error {
	return v.inner.DeleteList(ctx, listID)
}

func (v *listValidationService) UploadListIcon(ctx context.Context, listID int64, upload models.Upload) (models.List, error) {
	return v.inner.UploadListIcon(ctx, listID, upload)
}

func (v *listValidationService) validateFields(ctx context.Context, update models.ListFieldsUpdate) error {
	if update.ListID <= 0 {
		return ErrListIDRequired
	}
	if err := v.validator.Validate(ctx, update, validators.FieldDefinitions); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
