// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-list-keeper/internal/events"
	"github.com/MKhiriev/go-list-keeper/internal/fields"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/models"
)

type listService struct {
	listRepository store.ListRepository
	migrations     MigrationService
	files          FileService
	publisher      events.Publisher

	logger *logger.Logger
}

func NewListService(
	listRepository store.ListRepository,
	migrations MigrationService,
	files FileService,
	publisher events.Publisher,
	logger *logger.Logger,
) ListService {
	return &listService{
		listRepository: listRepository,
		migrations:     migrations,
		files:          files,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *listService) CreateList(ctx context.Context, list models.List) (models.List, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.List{}, err
	}

	list.UserID = userID
	if list.FieldDefinitions == nil {
		list.FieldDefinitions = models.FieldDefinitions{}
	}

	created, err := s.listRepository.CreateList(ctx, list)
	if err != nil {
		return models.List{}, err
	}

	s.publish(ctx, created, models.ActionCreated)
	return created, nil
}

func (s *listService) GetList(ctx context.Context, listID int64) (models.List, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.List{}, err
	}
	if listID <= 0 {
		return models.List{}, ErrListIDRequired
	}

	list, err := s.listRepository.GetList(ctx, listID)
	if err != nil {
		return models.List{}, err
	}
	return ownedList(list, userID)
}

func (s *listService) GetUserLists(ctx context.Context) ([]models.List, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.listRepository.GetUserLists(ctx, userID)
}

func (s *listService) CountLists(ctx context.Context) (int64, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}

	return s.listRepository.CountLists(ctx, userID)
}

func (s *listService) UpdateList(ctx context.Context, update models.ListUpdate) (models.List, error) {
	current, err := s.GetList(ctx, update.ID)
	if err != nil {
		return models.List{}, err
	}

	update.UserID = current.UserID
	updated, err := s.listRepository.UpdateList(ctx, update)
	if err != nil {
		return models.List{}, err
	}

	s.publish(ctx, updated, models.ActionUpdated)
	return updated, nil
}

// UpdateListFields stores the schema right away when nothing breaks. Otherwise
// the migration job stores it once every entry has been rewritten.
func (s *listService) UpdateListFields(ctx context.Context, update models.ListFieldsUpdate) (models.SchemaUpdate, error) {
	current, err := s.GetList(ctx, update.ListID)
	if err != nil {
		return models.SchemaUpdate{}, err
	}

	result, err := s.migrations.MigrateList(ctx, current.ID, current.FieldDefinitions, update.FieldDefinitions)
	if err != nil {
		return models.SchemaUpdate{Migration: result}, err
	}

	var list models.List
	if result.JobID == 0 {
		list, err = s.listRepository.UpdateListFields(ctx, current.ID, update.FieldDefinitions)
		if err == nil {
			s.publish(ctx, list, models.ActionUpdated)
		}
	} else {
		list, err = s.listRepository.GetList(ctx, current.ID)
	}
	if err != nil {
		return models.SchemaUpdate{Migration: result}, err
	}

	return models.SchemaUpdate{List: list, Migration: result}, nil
}

func (s *listService) AnalyzeFields(ctx context.Context, update models.ListFieldsUpdate) ([]models.FieldChange, error) {
	current, err := s.GetList(ctx, update.ListID)
	if err != nil {
		return nil, err
	}

	return fields.AnalyzeFieldChanges(current.FieldDefinitions, update.FieldDefinitions), nil
}

// DeleteList removes the list; entries, shares and subscriptions go with it.
func (s *listService) DeleteList(ctx context.Context, listID int64) error {
	current, err := s.GetList(ctx, listID)
	if err != nil {
		return err
	}

	if err = s.listRepository.DeleteList(ctx, current.ID, current.UserID); err != nil {
		return err
	}

	s.publish(ctx, current, models.ActionDeleted)
	return nil
}

func (s *listService) UploadListIcon(ctx context.Context, listID int64, upload models.Upload) (models.List, error) {
	current, err := s.GetList(ctx, listID)
	if err != nil {
		return models.List{}, err
	}

	upload.Bucket = BucketIcons
	upload.OwnerID = current.UserID

	stored, err := s.files.Upload(ctx, upload)
	if err != nil {
		return models.List{}, err
	}

	return s.UpdateList(ctx, models.ListUpdate{ID: current.ID, Icon: &stored.PublicURL})
}

func (s *listService) publish(ctx context.Context, list models.List, action models.ChangeAction) {
	s.publisher.Publish(ctx, models.EntityChanged{
		EntityType: models.EntityList,
		Action:     action,
		ID:         list.ID,
		ListID:     list.ID,
		UserID:     list.UserID,
	})
}
