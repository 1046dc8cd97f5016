package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-list-keeper/models"
)

type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	UpsertProfile(ctx context.Context, profile models.Profile) (models.Profile, error)
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) (models.Profile, error)
}

// ListRepository reads lists by id only; ownership is checked by the caller.
type ListRepository interface {
	CreateList(ctx context.Context, list models.List) (models.List, error)
	GetList(ctx context.Context, listID int64) (models.List, error)
	GetUserLists(ctx context.Context, userID int64) ([]models.List, error)
	CountLists(ctx context.Context, userID int64) (int64, error)
	UpdateList(ctx context.Context, update models.ListUpdate) (models.List, error)
	UpdateListFields(ctx context.Context, listID int64, fields models.FieldDefinitions) (models.List, error)
	DeleteList(ctx context.Context, listID, userID int64) error
}

type EntryRepository interface {
	CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error)
	GetEntry(ctx context.Context, entryID int64) (models.Entry, error)
	GetEntries(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error)
	CountEntries(ctx context.Context, listID int64) (int64, error)
	GetRecentEntries(ctx context.Context, userID int64, limit uint64) ([]models.Entry, error)

	// GetEntriesAfter returns up to limit entries of a list with id > afterID,
	// in ascending id order.
	GetEntriesAfter(ctx context.Context, listID, afterID int64, limit uint64) ([]models.Entry, error)

	UpdateEntry(ctx context.Context, update models.EntryUpdate) (models.Entry, error)
	DeleteEntry(ctx context.Context, entryID, userID int64) error
}

type SharingRepository interface {
	CreateShare(ctx context.Context, share models.SharedList) (models.SharedList, error)
	GetShareByCode(ctx context.Context, code string) (models.SharedList, error)
	GetShareByList(ctx context.Context, listID int64) (models.SharedList, error)
	DeleteShare(ctx context.Context, listID, userID int64) error

	CreateSubscription(ctx context.Context, subscription models.ListSubscription) (models.ListSubscription, error)
	DeleteSubscription(ctx context.Context, listID, subscriberID int64) error
	GetSubscriptions(ctx context.Context, subscriberID int64) ([]models.ListSubscription, error)
}

type MigrationJobRepository interface {
	// CreateJob inserts a running job. It fails with
	// [ErrMigrationInProgress] if the list already has an unfinished one.
	CreateJob(ctx context.Context, job models.MigrationJob) (models.MigrationJob, error)
	GetJob(ctx context.Context, jobID int64) (models.MigrationJob, error)

	// HasUnfinishedJob reports whether the list has a pending, running or
	// failed job.
	HasUnfinishedJob(ctx context.Context, listID int64) (bool, error)

	// StartJob moves a pending, failed or stale running job to running and
	// counts the attempt.
	StartJob(ctx context.Context, jobID int64, staleBefore time.Time) (models.MigrationJob, error)

	// SaveMigratedEntry writes the new field values of one entry and
	// advances the job cursor in one transaction.
	SaveMigratedEntry(ctx context.Context, progress models.MigrationProgress, entryID int64, values models.FieldValues) error

	// FailJob records the error of the last attempt.
	FailJob(ctx context.Context, progress models.MigrationProgress) error

	// CompleteJob stores the new schema on the list and closes the job.
	CompleteJob(ctx context.Context, job models.MigrationJob) (models.List, error)

	GetResumableJobs(ctx context.Context, staleBefore time.Time, maxAttempts int, limit uint64) ([]models.MigrationJob, error)
}

// ObjectStore keeps uploaded files and resolves their public URLs.
type ObjectStore interface {
	Save(ctx context.Context, upload models.Upload) (models.StoredObject, error)
	Root() string
}

// ResponseCache is the client-side cache of API reads.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
	Invalidate(ctx context.Context, keys ...string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	Close() error
}
