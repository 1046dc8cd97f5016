// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-list-keeper/internal/config"
	"github.com/MKhiriev/go-list-keeper/internal/events"
	"github.com/MKhiriev/go-list-keeper/internal/fields"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/internal/store"
	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

const (
	migrationBatchSize  = 200
	resumableJobsPerRun = 10

	defaultMaxAttempts = 5
	defaultStaleAfter  = 10 * time.Minute
)

// migrationService rewrites entry values when a list schema changes.
//
// Entries are processed in ascending id order and every write advances the
// job cursor in the same transaction, so a failed run continues right after
// the last migrated entry. Values are always rebuilt from the schemas stored
// on the job, which makes repeated runs produce the same result.
type migrationService struct {
	jobs    store.MigrationJobRepository
	entries store.EntryRepository

	publisher events.Publisher

	maxAttempts int
	staleAfter  time.Duration
	batchSize   uint64

	isRetryable func(error) bool
	now         func() time.Time

	logger *logger.Logger
}

func NewMigrationService(
	jobs store.MigrationJobRepository,
	entries store.EntryRepository,
	publisher events.Publisher,
	cfg config.Workers,
	logger *logger.Logger,
) MigrationService {
	s := &migrationService{
		jobs:        jobs,
		entries:     entries,
		publisher:   publisher,
		maxAttempts: cfg.MigrationMaxAttempts,
		staleAfter:  cfg.MigrationStaleAfter,
		batchSize:   migrationBatchSize,
		isRetryable: store.IsRetryable,
		now:         time.Now,
		logger:      logger,
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = defaultMaxAttempts
	}
	if s.staleAfter <= 0 {
		s.staleAfter = defaultStaleAfter
	}
	return s
}

func (s *migrationService) MigrateList(ctx context.Context, listID int64, oldFields, newFields models.FieldDefinitions) (models.MigrationResult, error) {
	changes := fields.AnalyzeFieldChanges(oldFields, newFields)
	result := models.MigrationResult{Changes: changes}

	if !fields.HasBreakingChanges(changes) {
		// an unfinished job would overwrite this schema when it completes
		unfinished, err := s.jobs.HasUnfinishedJob(ctx, listID)
		if err != nil {
			return result, err
		}
		if unfinished {
			return result, store.ErrMigrationInProgress
		}
		return result, nil
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return result, err
	}

	job, err := s.jobs.CreateJob(ctx, models.MigrationJob{
		ListID:            listID,
		UserID:            userID,
		OldFields:         oldFields,
		NewFields:         newFields,
		SchemaFingerprint: fields.Fingerprint(newFields),
	})
	if err != nil {
		return result, err
	}

	logger.FromContext(ctx).Info().
		Int64("job_id", job.ID).
		Int64("list_id", listID).
		Int("changes", len(changes)).
		Msg("starting list migration")

	result.JobID = job.ID
	result.Migrated, err = s.run(ctx, job)
	return result, err
}

func (s *migrationService) ResumeMigration(ctx context.Context, jobID int64) (models.MigrationResult, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return models.MigrationResult{}, err
	}

	result := models.MigrationResult{
		Changes: fields.AnalyzeFieldChanges(job.OldFields, job.NewFields),
		JobID:   job.ID,
	}
	if job.Status == models.MigrationCompleted {
		return result, nil
	}

	job, err = s.jobs.StartJob(ctx, job.ID, s.now().Add(-s.staleAfter))
	if err != nil {
		return result, err
	}

	result.Migrated, err = s.run(ctx, job)
	return result, err
}

func (s *migrationService) ResumePending(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	staleBefore := s.now().Add(-s.staleAfter)

	jobs, err := s.jobs.GetResumableJobs(ctx, staleBefore, s.maxAttempts, resumableJobsPerRun)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, pending := range jobs {
		if ctx.Err() != nil {
			break
		}

		job, err := s.jobs.StartJob(ctx, pending.ID, staleBefore)
		if errors.Is(err, store.ErrMigrationInProgress) {
			continue
		}
		if err != nil {
			log.Err(err).Str("func", "*migrationService.ResumePending").Int64("job_id", pending.ID).Msg("failed to start migration job")
			continue
		}

		if _, err = s.run(utils.WithUserID(ctx, job.UserID), job); err != nil {
			continue
		}
		completed++
	}

	return completed, nil
}

func (s *migrationService) GetJob(ctx context.Context, jobID int64) (models.MigrationJob, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return models.MigrationJob{}, err
	}
	if jobID <= 0 {
		return models.MigrationJob{}, ErrJobIDRequired
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return models.MigrationJob{}, err
	}
	if job.UserID != userID {
		return models.MigrationJob{}, ErrForbidden
	}
	return job, nil
}

// run migrates the entries after job.Cursor and completes the job. It
// returns how many entries this run rewrote. The first failure stops the
// run and marks the job failed.
func (s *migrationService) run(ctx context.Context, job models.MigrationJob) (int, error) {
	progress := models.MigrationProgress{
		JobID:     job.ID,
		Status:    models.MigrationRunning,
		Cursor:    job.Cursor,
		Migrated:  job.Migrated,
		Retryable: true,
	}
	migrated := 0

	for {
		batch, err := s.entries.GetEntriesAfter(ctx, job.ListID, progress.Cursor, s.batchSize)
		if err != nil {
			return migrated, s.fail(ctx, progress, err)
		}

		for _, entry := range batch {
			values := fields.MigrateValues(entry.FieldValues, job.OldFields, job.NewFields)

			next := progress
			next.Cursor = entry.ID
			next.Migrated++

			if err = s.jobs.SaveMigratedEntry(ctx, next, entry.ID, values); err != nil {
				return migrated, s.fail(ctx, progress, fmt.Errorf("entry %d: %w", entry.ID, err))
			}

			progress = next
			migrated++
		}

		if uint64(len(batch)) < s.batchSize {
			break
		}
	}

	job.Cursor = progress.Cursor
	job.Migrated = progress.Migrated
	list, err := s.jobs.CompleteJob(ctx, job)
	if err != nil {
		return migrated, s.fail(ctx, progress, err)
	}

	logger.FromContext(ctx).Info().
		Int64("job_id", job.ID).
		Int64("list_id", job.ListID).
		Int("migrated", progress.Migrated).
		Msg("list migration completed")

	s.publisher.Publish(ctx, models.EntityChanged{
		EntityType: models.EntityList,
		Action:     models.ActionMigrated,
		ID:         list.ID,
		ListID:     list.ID,
		UserID:     list.UserID,
	})
	return migrated, nil
}

// fail records cause on the job and returns it wrapped in ErrMigrationFailed.
// The job is updated even if ctx is already cancelled.
func (s *migrationService) fail(ctx context.Context, progress models.MigrationProgress, cause error) error {
	log := logger.FromContext(ctx)

	progress.LastError = cause.Error()
	progress.Retryable = s.isRetryable(cause)

	if err := s.jobs.FailJob(context.WithoutCancel(ctx), progress); err != nil {
		log.Err(err).Str("func", "*migrationService.fail").Int64("job_id", progress.JobID).Msg("failed to record migration failure")
	}

	log.Err(cause).
		Str("func", "*migrationService.run").
		Int64("job_id", progress.JobID).
		Int64("cursor", progress.Cursor).
		Bool("retryable", progress.Retryable).
		Msg("list migration failed")

	return fmt.Errorf("%w: %w", ErrMigrationFailed, cause)
}
