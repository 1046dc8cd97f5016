package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/jackc/pgerrcode"
)

// migrationJobRepository persists [models.MigrationJob] rows. A partial
// unique index keeps at most one unfinished job per list.
type migrationJobRepository struct {
	*DB
	logger *logger.Logger
}

func NewMigrationJobRepository(db *DB, logger *logger.Logger) MigrationJobRepository {
	logger.Debug().Msg("creating migration job repository")
	return &migrationJobRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *migrationJobRepository) CreateJob(ctx context.Context, job models.MigrationJob) (models.MigrationJob, error) {
	query, args, err := buildCreateJobQuery(job)
	if err != nil {
		return models.MigrationJob{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanJob(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*migrationJobRepository.CreateJob").
			Int64("list_id", job.ListID).
			Msg("failed to create migration job")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.MigrationJob{}, ErrMigrationInProgress
		case pgerrcode.ForeignKeyViolation:
			return models.MigrationJob{}, ErrListNotFound
		default:
			return models.MigrationJob{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}
	return created, nil
}

func (r *migrationJobRepository) GetJob(ctx context.Context, jobID int64) (models.MigrationJob, error) {
	query, args, err := buildGetJobQuery(jobID)
	if err != nil {
		return models.MigrationJob{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	job, err := scanJob(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.MigrationJob{}, ErrMigrationJobNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*migrationJobRepository.GetJob").Int64("job_id", jobID).Msg("failed to get migration job")
		return models.MigrationJob{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return job, nil
}

func (r *migrationJobRepository) HasUnfinishedJob(ctx context.Context, listID int64) (bool, error) {
	query, args, err := buildHasUnfinishedJobQuery(listID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var exists bool
	if err = r.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*migrationJobRepository.HasUnfinishedJob").Int64("list_id", listID).Msg("failed to look up unfinished jobs")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return exists, nil
}

// StartJob returns [ErrMigrationInProgress] when the job is completed or
// another worker holds it.
func (r *migrationJobRepository) StartJob(ctx context.Context, jobID int64, staleBefore time.Time) (models.MigrationJob, error) {
	query, args, err := buildStartJobQuery(jobID, staleBefore)
	if err != nil {
		return models.MigrationJob{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	job, err := scanJob(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.MigrationJob{}, ErrMigrationInProgress
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*migrationJobRepository.StartJob").Int64("job_id", jobID).Msg("failed to start migration job")
		return models.MigrationJob{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return job, nil
}

func (r *migrationJobRepository) SaveMigratedEntry(ctx context.Context, progress models.MigrationProgress, entryID int64, values models.FieldValues) error {
	entryQuery, entryArgs, err := buildUpdateEntryFieldValuesQuery(entryID, values)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	jobQuery, jobArgs, err := buildJobProgressQuery(progress)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, entryQuery, entryArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		if _, err := tx.ExecContext(ctx, jobQuery, jobArgs...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*migrationJobRepository.SaveMigratedEntry").
			Int64("job_id", progress.JobID).
			Int64("entry_id", entryID).
			Msg("failed to save migrated entry")
	}
	return err
}

func (r *migrationJobRepository) FailJob(ctx context.Context, progress models.MigrationProgress) error {
	progress.Status = models.MigrationFailed

	query, args, err := buildJobProgressQuery(progress)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return execAffectingOne(ctx, r.DB, "*migrationJobRepository.FailJob", ErrMigrationJobNotFound, query, args)
}

// CompleteJob writes job.NewFields to the list and marks the job completed
// in one transaction.
func (r *migrationJobRepository) CompleteJob(ctx context.Context, job models.MigrationJob) (models.List, error) {
	listQuery, listArgs, err := buildUpdateListFieldsQuery(job.ListID, job.NewFields)
	if err != nil {
		return models.List{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	jobQuery, jobArgs, err := buildJobProgressQuery(models.MigrationProgress{
		JobID:     job.ID,
		Status:    models.MigrationCompleted,
		Cursor:    job.Cursor,
		Migrated:  job.Migrated,
		Retryable: true,
	})
	if err != nil {
		return models.List{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var list models.List
	err = r.inTx(ctx, func(tx *sql.Tx) error {
		var scanErr error
		list, scanErr = scanList(tx.QueryRowContext(ctx, listQuery, listArgs...))
		if errors.Is(scanErr, sql.ErrNoRows) {
			return ErrListNotFound
		}
		if scanErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
		}

		if _, execErr := tx.ExecContext(ctx, jobQuery, jobArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*migrationJobRepository.CompleteJob").
			Int64("job_id", job.ID).
			Int64("list_id", job.ListID).
			Msg("failed to complete migration job")
		return models.List{}, err
	}

	return list, nil
}

func (r *migrationJobRepository) GetResumableJobs(ctx context.Context, staleBefore time.Time, maxAttempts int, limit uint64) ([]models.MigrationJob, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetResumableJobsQuery(staleBefore, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*migrationJobRepository.GetResumableJobs").Msg("failed to query resumable jobs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	jobs := make([]models.MigrationJob, 0, limit)
	for rows.Next() {
		job, scanErr := scanJob(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return jobs, nil
}

func scanJob(row rowScanner) (models.MigrationJob, error) {
	var j models.MigrationJob
	err := row.Scan(
		&j.ID,
		&j.ListID,
		&j.UserID,
		&j.Status,
		&j.OldFields,
		&j.NewFields,
		&j.SchemaFingerprint,
		&j.Cursor,
		&j.Migrated,
		&j.Attempts,
		&j.LastError,
		&j.Retryable,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	return j, err
}
