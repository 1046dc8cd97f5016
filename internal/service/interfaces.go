// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-list-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// All methods except the ones of AuthService and AppInfoService act on behalf
// of the user whose id is stored in ctx (see utils.WithUserID) and fail
// with ErrNoUserID without it.

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context) (models.Profile, error)
	UpsertProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
	UploadAvatar(ctx context.Context, upload models.Upload) (models.Profile, error)
}

type ListService interface {
	CreateList(ctx context.Context, list models.List) (models.List, error)
	GetList(ctx context.Context, listID int64) (models.List, error)
	GetUserLists(ctx context.Context) ([]models.List, error)
	CountLists(ctx context.Context) (int64, error)
	UpdateList(ctx context.Context, update models.ListUpdate) (models.List, error)

	// UpdateListFields replaces the schema of a list. Entries are migrated
	// first when the change removes fields or changes their type.
	UpdateListFields(ctx context.Context, update models.ListFieldsUpdate) (models.SchemaUpdate, error)

	// AnalyzeFields previews the changes UpdateListFields would apply.
	AnalyzeFields(ctx context.Context, update models.ListFieldsUpdate) ([]models.FieldChange, error)

	DeleteList(ctx context.Context, listID int64) error
	UploadListIcon(ctx context.Context, listID int64, upload models.Upload) (models.List, error)
}

type EntryService interface {
	CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)
	GetEntry(ctx context.Context, entryID int64) (models.Entry, error)
	GetListEntries(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error)
	CountEntries(ctx context.Context, listID int64) (int64, error)
	GetRecentEntries(ctx context.Context, limit uint64) ([]models.Entry, error)
	UpdateEntry(ctx context.Context, update models.EntryUpdate) (models.Entry, error)
	DeleteEntry(ctx context.Context, entryID int64) error
	GetRatingDisplay(ctx context.Context, entryID int64) (models.RatingDisplay, error)
}

type MigrationService interface {
	// MigrateList rewrites the field values of every entry of a list from
	// oldFields to newFields. Changes without removed or retyped fields
	// are reported but nothing is written.
	MigrateList(ctx context.Context, listID int64, oldFields, newFields models.FieldDefinitions) (models.MigrationResult, error)

	// ResumeMigration continues a failed job after its cursor.
	ResumeMigration(ctx context.Context, jobID int64) (models.MigrationResult, error)

	// ResumePending picks up failed and abandoned jobs of all users and
	// returns how many of them were completed.
	ResumePending(ctx context.Context) (int, error)

	GetJob(ctx context.Context, jobID int64) (models.MigrationJob, error)
}

type SharingService interface {
	ShareList(ctx context.Context, listID int64) (models.SharedList, error)
	UnshareList(ctx context.Context, listID int64) error

	// GetSharedList is public and needs no user in ctx.
	GetSharedList(ctx context.Context, code string) (models.SharedListView, error)

	Subscribe(ctx context.Context, listID int64) (models.ListSubscription, error)
	Unsubscribe(ctx context.Context, listID int64) error
	GetSubscriptions(ctx context.Context) ([]models.ListSubscription, error)
}

type FileService interface {
	Upload(ctx context.Context, upload models.Upload) (models.StoredObject, error)
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
