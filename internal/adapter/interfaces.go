// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client SDK of the go-list-keeper REST API.
//
// [NewHTTPServerAdapter] talks to the server with resty. [NewCachedAdapter]
// wraps any [ServerAdapter] with a response cache keyed by logical query
// identity ("list:<id>", "entries:<listID>", "entry:<id>",
// "profile:<userID>"); writes and streamed change events invalidate the
// affected keys.
//
// Error values defined in errors.go are mapped from HTTP status codes so that
// callers can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrNotFound] for
// 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-list-keeper/models"
)

// ServerAdapter mirrors the REST API one method per route.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	// Register and Login call it themselves.
	SetToken(token string)
	Token() string

	Register(ctx context.Context, user models.User) (models.Token, error)
	Login(ctx context.Context, user models.User) (models.Token, error)
	GetVersion(ctx context.Context) (models.AppInfo, error)

	GetProfile(ctx context.Context) (models.Profile, error)
	UpsertProfile(ctx context.Context, profile models.Profile) (models.Profile, error)

	GetLists(ctx context.Context) ([]models.List, error)
	CreateList(ctx context.Context, list models.List) (models.List, error)
	GetList(ctx context.Context, listID int64) (models.List, error)
	UpdateList(ctx context.Context, update models.ListUpdate) (models.List, error)
	DeleteList(ctx context.Context, listID int64) error

	// UpdateListFields replaces the schema. When the server-side migration
	// stops, the partial result is returned next to the error.
	UpdateListFields(ctx context.Context, update models.ListFieldsUpdate) (models.SchemaUpdate, error)
	AnalyzeFields(ctx context.Context, update models.ListFieldsUpdate) ([]models.FieldChange, error)
	UploadListIcon(ctx context.Context, listID int64, fileName string, data []byte) (models.List, error)

	GetEntries(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error)
	CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)
	GetEntry(ctx context.Context, entryID int64) (models.Entry, error)
	GetRecentEntries(ctx context.Context, limit uint64) ([]models.Entry, error)
	UpdateEntry(ctx context.Context, update models.EntryUpdate) (models.Entry, error)
	DeleteEntry(ctx context.Context, entryID int64) error
	GetRatingDisplay(ctx context.Context, entryID int64) (models.RatingDisplay, error)

	ShareList(ctx context.Context, listID int64) (models.SharedList, error)
	UnshareList(ctx context.Context, listID int64) error
	GetSharedList(ctx context.Context, code string) (models.SharedListView, error)
	Subscribe(ctx context.Context, listID int64) (models.ListSubscription, error)
	Unsubscribe(ctx context.Context, listID int64) error
	GetSubscriptions(ctx context.Context) ([]models.ListSubscription, error)

	GetMigrationJob(ctx context.Context, jobID int64) (models.MigrationJob, error)
	ResumeMigration(ctx context.Context, jobID int64) (models.MigrationResult, error)

	// StreamEvents blocks, calling handle for every change event of the
	// logged-in user, until ctx is done or the connection drops.
	StreamEvents(ctx context.Context, handle func(models.EntityChanged)) error
}
