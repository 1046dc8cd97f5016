// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-list-keeper/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	userColumns    = []string{"user_id", "login", "name", "password_hash", "created_at"}
	profileColumns = []string{"user_id", "display_name", "avatar_url", "bio", "created_at", "updated_at"}
	listColumns    = []string{"id", "user_id", "name", "rating_type", "rating_config", "field_definitions", "icon", "created_at", "updated_at"}
	entryColumns   = []string{"id", "list_id", "user_id", "name", "rating", "field_values", "created_at", "updated_at"}
	shareColumns   = []string{"id", "list_id", "user_id", "share_code", "created_at"}
	subColumns     = []string{"id", "list_id", "subscriber_id", "created_at"}
	jobColumns     = []string{
		"id", "list_id", "user_id", "status", "old_fields", "new_fields", "schema_fingerprint",
		"cursor", "migrated", "attempts", "last_error", "retryable", "created_at", "updated_at",
	}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// users

func buildCreateUserQuery(user models.User) (string, []any, error) {
	return psql.Insert("users").
		Columns("login", "name", "password_hash").
		Values(user.Login, user.Name, user.PasswordHash).
		Suffix(returning(userColumns)).
		ToSql()
}

func buildFindUserByLoginQuery(login string) (string, []any, error) {
	return psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"login": login}).
		ToSql()
}

// profiles

func buildGetProfileQuery(userID int64) (string, []any, error) {
	return psql.Select(profileColumns...).
		From("profiles").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildUpsertProfileQuery(profile models.Profile) (string, []any, error) {
	return psql.Insert("profiles").
		Columns("user_id", "display_name", "avatar_url", "bio").
		Values(profile.UserID, profile.DisplayName, profile.AvatarURL, profile.Bio).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			bio = EXCLUDED.bio,
			avatar_url = CASE WHEN EXCLUDED.avatar_url = '' THEN profiles.avatar_url ELSE EXCLUDED.avatar_url END,
			updated_at = NOW() ` + returning(profileColumns)).
		ToSql()
}

func buildUpdateAvatarQuery(userID int64, avatarURL string) (string, []any, error) {
	return psql.Update("profiles").
		Set("avatar_url", avatarURL).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": userID}).
		Suffix(returning(profileColumns)).
		ToSql()
}

// lists

func buildCreateListQuery(list models.List) (string, []any, error) {
	return psql.Insert("lists").
		Columns("user_id", "name", "rating_type", "rating_config", "field_definitions", "icon").
		Values(list.UserID, list.Name, list.RatingType, list.RatingConfig, list.FieldDefinitions, list.Icon).
		Suffix(returning(listColumns)).
		ToSql()
}

func buildGetListQuery(listID int64) (string, []any, error) {
	return psql.Select(listColumns...).
		From("lists").
		Where(sq.Eq{"id": listID}).
		ToSql()
}

func buildGetUserListsQuery(userID int64) (string, []any, error) {
	return psql.Select(listColumns...).
		From("lists").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id DESC").
		ToSql()
}

func buildCountListsQuery(userID int64) (string, []any, error) {
	return psql.Select("COUNT(*)").
		From("lists").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildUpdateListQuery writes only the non-nil fields of update.
func buildUpdateListQuery(update models.ListUpdate) (string, []any, error) {
	query := psql.Update("lists").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID})

	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	if update.Icon != nil {
		query = query.Set("icon", *update.Icon)
	}
	if update.RatingType != nil {
		query = query.Set("rating_type", *update.RatingType)
	}
	if update.RatingConfig != nil {
		query = query.Set("rating_config", *update.RatingConfig)
	}

	return query.Suffix(returning(listColumns)).ToSql()
}

func buildUpdateListFieldsQuery(listID int64, fields models.FieldDefinitions) (string, []any, error) {
	return psql.Update("lists").
		Set("field_definitions", fields).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": listID}).
		Suffix(returning(listColumns)).
		ToSql()
}

func buildDeleteListQuery(listID, userID int64) (string, []any, error) {
	return psql.Delete("lists").
		Where(sq.Eq{"id": listID, "user_id": userID}).
		ToSql()
}

// entries

var entryOrderColumns = map[string]string{
	models.EntryOrderCreatedAt: "created_at",
	models.EntryOrderUpdatedAt: "updated_at",
	models.EntryOrderRating:    "rating",
	models.EntryOrderName:      "LOWER(name)",
}

const maxEntriesPage = 500

func buildCreateEntryQuery(entry models.Entry) (string, []any, error) {
	return psql.Insert("entries").
		Columns("list_id", "user_id", "name", "rating", "field_values").
		Values(entry.ListID, entry.UserID, entry.Name, entry.Rating, entry.FieldValues).
		Suffix(returning(entryColumns)).
		ToSql()
}

func buildGetEntryQuery(entryID int64) (string, []any, error) {
	return psql.Select(entryColumns...).
		From("entries").
		Where(sq.Eq{"id": entryID}).
		ToSql()
}

// buildGetEntriesQuery applies search, minimum rating, ordering and paging.
// Unknown order columns fall back to creation time; id breaks ties so that
// pages are stable.
func buildGetEntriesQuery(filter models.EntryFilter) (string, []any, error) {
	query := psql.Select(entryColumns...).
		From("entries").
		Where(sq.Eq{"list_id": filter.ListID})

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where(sq.ILike{"name": "%" + escapeLike(search) + "%"})
	}
	if filter.MinRating != nil {
		query = query.Where(sq.GtOrEq{"rating": *filter.MinRating})
	}

	column, ok := entryOrderColumns[filter.OrderBy]
	if !ok {
		column = entryOrderColumns[models.EntryOrderCreatedAt]
	}
	direction := " ASC"
	if filter.Descending {
		direction = " DESC"
	}
	query = query.OrderBy(column+direction+" NULLS LAST", "id"+direction)

	limit := filter.Limit
	if limit == 0 || limit > maxEntriesPage {
		limit = maxEntriesPage
	}
	query = query.Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	return query.ToSql()
}

func buildCountEntriesQuery(listID int64) (string, []any, error) {
	return psql.Select("COUNT(*)").
		From("entries").
		Where(sq.Eq{"list_id": listID}).
		ToSql()
}

func buildGetRecentEntriesQuery(userID int64, limit uint64) (string, []any, error) {
	return psql.Select(entryColumns...).
		From("entries").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
}

func buildGetEntriesAfterQuery(listID, afterID int64, limit uint64) (string, []any, error) {
	return psql.Select(entryColumns...).
		From("entries").
		Where(sq.Eq{"list_id": listID}).
		Where(sq.Gt{"id": afterID}).
		OrderBy("id ASC").
		Limit(limit).
		ToSql()
}

// buildUpdateEntryQuery writes only the fields carried by update.
// ClearRating wins over Rating.
func buildUpdateEntryQuery(update models.EntryUpdate) (string, []any, error) {
	query := psql.Update("entries").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": update.ID, "user_id": update.UserID})

	if update.Name != nil {
		query = query.Set("name", *update.Name)
	}
	switch {
	case update.ClearRating:
		query = query.Set("rating", nil)
	case update.Rating != nil:
		query = query.Set("rating", *update.Rating)
	}
	if update.FieldValues != nil {
		query = query.Set("field_values", *update.FieldValues)
	}

	return query.Suffix(returning(entryColumns)).ToSql()
}

func buildUpdateEntryFieldValuesQuery(entryID int64, values models.FieldValues) (string, []any, error) {
	return psql.Update("entries").
		Set("field_values", values).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": entryID}).
		ToSql()
}

func buildDeleteEntryQuery(entryID, userID int64) (string, []any, error) {
	return psql.Delete("entries").
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
}

// sharing

func buildCreateShareQuery(share models.SharedList) (string, []any, error) {
	return psql.Insert("shared_lists").
		Columns("list_id", "user_id", "share_code").
		Values(share.ListID, share.UserID, share.ShareCode).
		Suffix(returning(shareColumns)).
		ToSql()
}

func buildGetShareQuery(where sq.Eq) (string, []any, error) {
	return psql.Select(shareColumns...).
		From("shared_lists").
		Where(where).
		ToSql()
}

func buildDeleteShareQuery(listID, userID int64) (string, []any, error) {
	return psql.Delete("shared_lists").
		Where(sq.Eq{"list_id": listID, "user_id": userID}).
		ToSql()
}

func buildCreateSubscriptionQuery(subscription models.ListSubscription) (string, []any, error) {
	return psql.Insert("list_subscriptions").
		Columns("list_id", "subscriber_id").
		Values(subscription.ListID, subscription.SubscriberID).
		Suffix(returning(subColumns)).
		ToSql()
}

func buildDeleteSubscriptionQuery(listID, subscriberID int64) (string, []any, error) {
	return psql.Delete("list_subscriptions").
		Where(sq.Eq{"list_id": listID, "subscriber_id": subscriberID}).
		ToSql()
}

func buildGetSubscriptionsQuery(subscriberID int64) (string, []any, error) {
	return psql.Select(subColumns...).
		From("list_subscriptions").
		Where(sq.Eq{"subscriber_id": subscriberID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
}

// migration jobs

func buildCreateJobQuery(job models.MigrationJob) (string, []any, error) {
	return psql.Insert("migration_jobs").
		Columns("list_id", "user_id", "status", "old_fields", "new_fields", "schema_fingerprint", "attempts").
		Values(job.ListID, job.UserID, models.MigrationRunning, job.OldFields, job.NewFields, job.SchemaFingerprint, 1).
		Suffix(returning(jobColumns)).
		ToSql()
}

func buildGetJobQuery(jobID int64) (string, []any, error) {
	return psql.Select(jobColumns...).
		From("migration_jobs").
		Where(sq.Eq{"id": jobID}).
		ToSql()
}

func buildHasUnfinishedJobQuery(listID int64) (string, []any, error) {
	return psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("migration_jobs").
		Where(sq.Eq{
			"list_id": listID,
			"status":  []string{string(models.MigrationPending), string(models.MigrationRunning), string(models.MigrationFailed)},
		}).
		Suffix(")").
		ToSql()
}

// buildStartJobQuery only matches jobs nobody is working on: pending or
// failed ones, or running ones that stopped reporting progress.
func buildStartJobQuery(jobID int64, staleBefore time.Time) (string, []any, error) {
	return psql.Update("migration_jobs").
		Set("status", models.MigrationRunning).
		Set("attempts", sq.Expr("attempts + 1")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": jobID}).
		Where(sq.Or{
			sq.Eq{"status": []models.MigrationStatus{models.MigrationPending, models.MigrationFailed}},
			sq.And{sq.Eq{"status": models.MigrationRunning}, sq.Lt{"updated_at": staleBefore}},
		}).
		Suffix(returning(jobColumns)).
		ToSql()
}

func buildJobProgressQuery(progress models.MigrationProgress) (string, []any, error) {
	return psql.Update("migration_jobs").
		Set("status", progress.Status).
		Set("cursor", progress.Cursor).
		Set("migrated", progress.Migrated).
		Set("last_error", progress.LastError).
		Set("retryable", progress.Retryable).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": progress.JobID}).
		ToSql()
}

func buildGetResumableJobsQuery(staleBefore time.Time, maxAttempts int, limit uint64) (string, []any, error) {
	return psql.Select(jobColumns...).
		From("migration_jobs").
		Where(sq.Lt{"attempts": maxAttempts}).
		Where(sq.Or{
			sq.And{sq.Eq{"status": models.MigrationFailed}, sq.Eq{"retryable": true}},
			sq.And{
				sq.Eq{"status": []models.MigrationStatus{models.MigrationPending, models.MigrationRunning}},
				sq.Lt{"updated_at": staleBefore},
			},
		}).
		OrderBy("updated_at ASC", "id ASC").
		Limit(limit).
		ToSql()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
