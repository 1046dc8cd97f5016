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

type entryRepository struct {
	*DB
	logger *logger.Logger
}

func NewEntryRepository(db *DB, logger *logger.Logger) EntryRepository {
	logger.Debug().Msg("creating entry repository")
	return &entryRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateEntry inserts entry. A list that disappeared in the meantime
// surfaces as [ErrListNotFound].
func (r *entryRepository) CreateEntry(ctx context.Context, entry models.Entry) (models.Entry, error) {
	query, args, err := buildCreateEntryQuery(entry)
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanEntry(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*entryRepository.CreateEntry").
			Int64("list_id", entry.ListID).
			Msg("failed to insert entry")
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Entry{}, ErrListNotFound
		}
		return models.Entry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *entryRepository) GetEntry(ctx context.Context, entryID int64) (models.Entry, error) {
	query, args, err := buildGetEntryQuery(entryID)
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySingle(ctx, "*entryRepository.GetEntry", entryID, query, args)
}

func (r *entryRepository) GetEntries(ctx context.Context, filter models.EntryFilter) ([]models.Entry, error) {
	query, args, err := buildGetEntriesQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryMany(ctx, "*entryRepository.GetEntries", query, args)
}

// CountEntries runs a count-only query; no rows are transferred.
func (r *entryRepository) CountEntries(ctx context.Context, listID int64) (int64, error) {
	query, args, err := buildCountEntriesQuery(listID)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*entryRepository.CountEntries").Int64("list_id", listID).Msg("failed to count entries")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (r *entryRepository) GetRecentEntries(ctx context.Context, userID int64, limit uint64) ([]models.Entry, error) {
	query, args, err := buildGetRecentEntriesQuery(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryMany(ctx, "*entryRepository.GetRecentEntries", query, args)
}

func (r *entryRepository) GetEntriesAfter(ctx context.Context, listID, afterID int64, limit uint64) ([]models.Entry, error) {
	query, args, err := buildGetEntriesAfterQuery(listID, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryMany(ctx, "*entryRepository.GetEntriesAfter", query, args)
}

func (r *entryRepository) UpdateEntry(ctx context.Context, update models.EntryUpdate) (models.Entry, error) {
	query, args, err := buildUpdateEntryQuery(update)
	if err != nil {
		return models.Entry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.querySingle(ctx, "*entryRepository.UpdateEntry", update.ID, query, args)
}

func (r *entryRepository) DeleteEntry(ctx context.Context, entryID, userID int64) error {
	query, args, err := buildDeleteEntryQuery(entryID, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execAffectingOne(ctx, r.DB, "*entryRepository.DeleteEntry", ErrEntryNotFound, query, args)
}

func (r *entryRepository) querySingle(ctx context.Context, funcName string, entryID int64, query string, args []any) (models.Entry, error) {
	entry, err := scanEntry(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, ErrEntryNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Int64("entry_id", entryID).Msg("entry query failed")
		return models.Entry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return entry, nil
}

func (r *entryRepository) queryMany(ctx context.Context, funcName, query string, args []any) ([]models.Entry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.Entry, 0, 32)
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var e models.Entry
	err := row.Scan(&e.ID, &e.ListID, &e.UserID, &e.Name, &e.Rating, &e.FieldValues, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}
