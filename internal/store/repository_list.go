// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/jackc/pgerrcode"
)

// listRepository stores lists in the "lists" table. Entries, shares and
// subscriptions are removed by ON DELETE CASCADE when a list is deleted.
type listRepository struct {
	*DB
	logger *logger.Logger
}

func NewListRepository(db *DB, logger *logger.Logger) ListRepository {
	logger.Debug().Msg("creating list repository")
	return &listRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *listRepository) CreateList(ctx context.Context, list models.List) (models.List, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateListQuery(list)
	if err != nil {
		return models.List{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanList(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*listRepository.CreateList").Int64("user_id", list.UserID).Msg("failed to insert list")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.List{}, ErrNoUserWasFound
		}
		return models.List{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *listRepository) GetList(ctx context.Context, listID int64) (models.List, error) {
	query, args, err := buildGetListQuery(listID)
	if err != nil {
		return models.List{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySingle(ctx, "*listRepository.GetList", listID, query, args)
}

func (r *listRepository) GetUserLists(ctx context.Context, userID int64) ([]models.List, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetUserListsQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*listRepository.GetUserLists").Int64("user_id", userID).Msg("failed to query lists")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	lists := make([]models.List, 0, 16)
	for rows.Next() {
		list, scanErr := scanList(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*listRepository.GetUserLists").Int64("user_id", userID).Msg("failed to scan list row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		lists = append(lists, list)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return lists, nil
}

func (r *listRepository) CountLists(ctx context.Context, userID int64) (int64, error) {
	query, args, err := buildCountListsQuery(userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*listRepository.CountLists").Int64("user_id", userID).Msg("failed to count lists")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// UpdateList writes the non-nil fields of update. The list must belong to
// update.UserID.
func (r *listRepository) UpdateList(ctx context.Context, update models.ListUpdate) (models.List, error) {
	query, args, err := buildUpdateListQuery(update)
	if err != nil {
		return models.List{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySingle(ctx, "*listRepository.UpdateList", update.ID, query, args)
}

func (r *listRepository) UpdateListFields(ctx context.Context, listID int64, fields models.FieldDefinitions) (models.List, error) {
	query, args, err := buildUpdateListFieldsQuery(listID, fields)
	if err != nil {
		return models.List{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySingle(ctx, "*listRepository.UpdateListFields", listID, query, args)
}

func (r *listRepository) DeleteList(ctx context.Context, listID, userID int64) error {
	query, args, err := buildDeleteListQuery(listID, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execAffectingOne(ctx, r.DB, "*listRepository.DeleteList", ErrListNotFound, query, args)
}

func (r *listRepository) querySingle(ctx context.Context, funcName string, listID int64, query string, args []any) (models.List, error) {
	list, err := scanList(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.List{}, ErrListNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Int64("list_id", listID).Msg("list query failed")
		return models.List{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return list, nil
}

func scanList(row rowScanner) (models.List, error) {
	var l models.List
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.RatingType, &l.RatingConfig, &l.FieldDefinitions, &l.Icon, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// execAffectingOne runs a DELETE or UPDATE and maps "no rows affected" to notFound.
func execAffectingOne(ctx context.Context, db *DB, funcName string, notFound error, query string, args []any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
